package domain

type Category struct {
	ID                      int
	ParentID                *int
	Title                   string
	Description             string
	Position                int
	Protection              string
	EventCreationRestricted bool
	NoAccessContact         string
	LegacyID                string
}
