package steps

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"confmigrate/internal/domain"
	"confmigrate/internal/sanitize"
	"confmigrate/internal/source"
	"confmigrate/internal/target/postgres"
	"confmigrate/pkg/logger"
)

// UsersStep migrates avatars into users, their login identities, favorite
// lists, groups and the system user.
type UsersStep struct {
	env *Env
	log *logger.StepLogger
}

func NewUsersStep(env *Env) *UsersStep {
	return &UsersStep{env: env, log: logger.Step("users")}
}

func (s *UsersStep) Name() string { return "users" }

func (s *UsersStep) Run(ctx context.Context) error {
	return inTx(ctx, s.env.DB, func(tx *sql.Tx) error {
		repo := postgres.NewUserRepository(tx)

		favorites, err := s.migrateUsers(ctx, repo)
		if err != nil {
			return err
		}
		if err := s.migrateFavorites(ctx, repo, favorites); err != nil {
			return err
		}
		if err := s.migrateGroups(ctx, repo); err != nil {
			return err
		}
		return s.migrateSystemUser(ctx, repo, tx)
	})
}

// migrateUsers walks all avatars and returns the raw favorite links to be
// resolved once every avatar has an id.
func (s *UsersStep) migrateUsers(ctx context.Context, repo *postgres.UserRepository) (map[string][]string, error) {
	cur, err := s.env.Store.Collection(source.CollAvatars).Iter(ctx)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	ns := s.env.NS
	// merge targets seen before the avatar they point at
	pendingMerges := map[string][]string{}
	favorites := map[string][]string{}
	seenIdentities := map[string]bool{}
	count := 0

	for cur.Next(ctx) {
		var av source.Avatar
		if err := cur.Decode(&av); err != nil {
			s.log.Warnf("Skipping undecodable avatar record: %v", err)
			continue
		}

		if av.MergedInto != "" {
			if target, ok := ns.UserByAvatar[av.MergedInto]; ok {
				ns.UserByAvatar[av.ID] = target
			} else {
				pendingMerges[av.MergedInto] = append(pendingMerges[av.MergedInto], av.ID)
			}
			s.log.Debugf("Avatar %s merged into %s", av.ID, av.MergedInto)
			continue
		}
		if av.Status == source.AvatarNotConfirmed {
			s.log.Warnf("Skipping avatar %s - not activated", av.ID)
			continue
		}

		email := sanitize.Email(av.Email, s.env.Opts.DefaultEmail)
		if email == s.env.Opts.DefaultEmail && !strings.EqualFold(strings.TrimSpace(av.Email), s.env.Opts.DefaultEmail) {
			s.log.Warnf("Avatar %s has garbage e-mail %q; using fallback", av.ID, av.Email)
		}

		user := domain.User{
			FirstName:   sanitize.Text(av.FirstName),
			LastName:    sanitize.Text(av.Surname),
			Email:       email,
			Affiliation: sanitize.Text(av.Affiliation),
			Phone:       sanitize.Text(av.Phone),
			Address:     sanitize.Text(av.Address),
			Title:       sanitize.Text(av.Title),
			Timezone:    av.Timezone,
			IsAdmin:     av.IsAdmin,
		}
		for _, secondary := range av.SecondaryEmails {
			if addr := sanitize.Email(secondary, ""); addr != "" && addr != email {
				user.SecondaryEmails = append(user.SecondaryEmails, addr)
			}
		}

		if err := repo.Create(ctx, &user); err != nil {
			return nil, fmt.Errorf("avatar %s: %w", av.ID, err)
		}
		ns.UserByAvatar[av.ID] = user.ID
		if _, taken := ns.UsersByEmail[email]; !taken {
			ns.UsersByEmail[email] = user.ID
		}
		for _, secondary := range user.SecondaryEmails {
			if _, taken := ns.UsersByEmail[secondary]; !taken {
				ns.UsersByEmail[secondary] = user.ID
			}
		}

		for _, merged := range pendingMerges[av.ID] {
			ns.UserByAvatar[merged] = user.ID
		}
		delete(pendingMerges, av.ID)

		if len(av.Favorites) > 0 {
			favorites[av.ID] = av.Favorites
		}

		if err := s.migrateIdentities(ctx, repo, &av, user.ID, seenIdentities); err != nil {
			return nil, err
		}

		count++
		if count%s.env.progressInterval() == 0 {
			s.log.Infof("%d users migrated", count)
		}
	}
	if err := cur.Err(); err != nil {
		return nil, err
	}

	// anything still pending points at an avatar that never materialized
	for target, ids := range pendingMerges {
		if uid, ok := ns.UserByAvatar[target]; ok {
			for _, id := range ids {
				ns.UserByAvatar[id] = uid
			}
			continue
		}
		s.log.Errorf("Merge target %s does not exist (%d avatars affected)", target, len(ids))
	}

	s.log.Infof("Migrated %d users", count)
	return favorites, nil
}

func (s *UsersStep) migrateIdentities(ctx context.Context, repo *postgres.UserRepository, av *source.Avatar, userID int, seen map[string]bool) error {
	for _, legacy := range av.Identities {
		ident := domain.Identity{UserID: userID, LastLogin: legacy.LastLogin}
		switch legacy.Kind {
		case source.IdentityLocal:
			if s.env.Opts.IgnoreLocalAccounts {
				continue
			}
			ident.Provider = source.IdentityLocal
			ident.Identifier = legacy.Login
			ident.PasswordHash = legacy.PasswordHash
		case source.IdentityLDAP, source.IdentityNice:
			ident.Provider = s.env.Opts.LDAPProviderName
			ident.Identifier = legacy.Login
		default:
			s.log.Warnf("Avatar %s has unknown identity kind %q", av.ID, legacy.Kind)
			continue
		}
		key := ident.Provider + ":" + ident.Identifier
		if ident.Identifier == "" || seen[key] {
			continue
		}
		seen[key] = true
		if err := repo.CreateIdentity(ctx, &ident); err != nil {
			return fmt.Errorf("identity %s of avatar %s: %w", ident.Identifier, av.ID, err)
		}
	}
	return nil
}

func (s *UsersStep) migrateFavorites(ctx context.Context, repo *postgres.UserRepository, favorites map[string][]string) error {
	ns := s.env.NS
	for avatarID, targets := range favorites {
		userID, ok := ns.UserByAvatar[avatarID]
		if !ok {
			continue
		}
		for _, targetAvatar := range targets {
			targetID, ok := ns.UserByAvatar[targetAvatar]
			if !ok {
				s.log.Debugf("Dropping favorite of %s: avatar %s not migrated", avatarID, targetAvatar)
				continue
			}
			if targetID == userID {
				continue
			}
			if err := repo.AddFavorite(ctx, userID, targetID); err != nil {
				return err
			}
		}
	}
	return nil
}

func (s *UsersStep) migrateGroups(ctx context.Context, repo *postgres.UserRepository) error {
	cur, err := s.env.Store.Collection(source.CollGroups).Iter(ctx)
	if err != nil {
		return err
	}
	defer cur.Close(ctx)

	ns := s.env.NS
	for cur.Next(ctx) {
		var legacy source.Group
		if err := cur.Decode(&legacy); err != nil {
			s.log.Warnf("Skipping undecodable group record: %v", err)
			continue
		}
		if legacy.Obsolete {
			s.log.Debugf("Skipping obsolete group %s", legacy.ID)
			continue
		}

		group := domain.Group{Name: sanitize.Title(legacy.Name)}
		if legacy.Kind == "ldap" {
			group.Provider = s.env.Opts.DefaultGroupProvider
		}
		if group.Name == "" {
			s.log.Warnf("Skipping unnamed group %s", legacy.ID)
			continue
		}
		if err := repo.CreateGroup(ctx, &group); err != nil {
			return fmt.Errorf("group %s: %w", legacy.ID, err)
		}
		ns.GroupByLegacyID[legacy.ID] = group.ID

		if group.Provider != "" {
			continue // external groups carry no local membership
		}
		for _, memberAvatar := range legacy.MemberIDs {
			userID, ok := ns.UserByAvatar[memberAvatar]
			if !ok {
				s.log.Warnf("Group %s member %s does not exist", legacy.ID, memberAvatar)
				continue
			}
			if err := repo.AddGroupMember(ctx, group.ID, userID); err != nil {
				return err
			}
		}
	}
	return cur.Err()
}

// migrateSystemUser marks the configured system user or creates a new one
// with id 0 when no id was supplied.
func (s *UsersStep) migrateSystemUser(ctx context.Context, repo *postgres.UserRepository, tx *sql.Tx) error {
	ns := s.env.NS
	if id := s.env.Opts.SystemUserID; id >= 0 {
		if err := repo.MarkSystem(ctx, id); err != nil {
			return fmt.Errorf("invalid system user id %d: %w", id, err)
		}
		ns.SystemUserID = id
		s.log.Infof("Using existing system user %d", id)
		return nil
	}

	system := domain.User{ID: 0, FirstName: "System", LastName: "User", Email: s.env.Opts.DefaultEmail, IsSystem: true}
	if err := repo.CreateWithID(ctx, &system); err != nil {
		return fmt.Errorf("failed to create system user: %w", err)
	}
	if err := postgres.FixSequence(ctx, tx, "users"); err != nil {
		return err
	}
	ns.SystemUserID = system.ID
	s.log.Infof("Added new system user %d", system.ID)
	return nil
}
