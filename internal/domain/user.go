package domain

import "time"

type User struct {
	ID              int
	FirstName       string
	LastName        string
	Email           string
	SecondaryEmails []string
	Affiliation     string
	Phone           string
	Address         string
	Title           string
	Timezone        string
	IsAdmin         bool
	IsSystem        bool
	IsDeleted       bool
}

// Identity is a login credential attached to a user. Provider is "local"
// for password accounts, otherwise the configured LDAP provider name.
type Identity struct {
	ID           int
	UserID       int
	Provider     string
	Identifier   string
	PasswordHash string
	LastLogin    *time.Time
}

// Group is either a local group (Provider empty, with memberships) or a
// reference to a group in an external provider.
type Group struct {
	ID       int
	Name     string
	Provider string
}
