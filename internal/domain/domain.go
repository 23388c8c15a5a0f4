// Package domain defines the rows written to the target schema.
package domain

import "errors"

var ErrNotFound = errors.New("not found")

// Protection modes carried over from the legacy access controllers.
const (
	ProtectionPublic     = "public"
	ProtectionInheriting = "inheriting"
	ProtectionProtected  = "protected"
)
