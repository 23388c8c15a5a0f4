package steps

import (
	"strings"

	"confmigrate/internal/sanitize"
	"confmigrate/internal/source"
)

// resolveUser maps a legacy avatar principal to a migrated user id, going
// through the merge map first and falling back to the e-mail indexes.
func (e *Env) resolveUser(p source.Principal) (int, bool) {
	if p.Kind != source.PrincipalAvatar {
		return 0, false
	}
	if id, ok := e.NS.UserByAvatar[p.ID]; ok {
		return id, true
	}
	if p.Email != "" {
		email := strings.ToLower(sanitize.Text(p.Email))
		if id, ok := e.NS.UsersByEmail[email]; ok {
			return id, true
		}
	}
	return 0, false
}

// creatorOrSystem resolves an authorship principal, attributing to the
// system user when the author is unknown.
func (e *Env) creatorOrSystem(p source.Principal) int {
	if id, ok := e.resolveUser(p); ok {
		return id
	}
	return e.NS.SystemUserID
}
