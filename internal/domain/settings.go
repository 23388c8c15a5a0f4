package domain

import "time"

// Setting is a module-scoped key/value pair stored as JSON.
type Setting struct {
	Module string
	Name   string
	Value  any
}

type NewsItem struct {
	ID        int
	Title     string
	Content   string
	CreatedAt time.Time
}

// IPNetworkGroup is a named set of CIDR networks migrated from the legacy
// access domains.
type IPNetworkGroup struct {
	ID       int
	Name     string
	Networks []string
}
