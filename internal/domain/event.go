package domain

import "time"

type Event struct {
	ID          int
	CategoryID  int
	Title       string
	Description string
	Timezone    string
	StartAt     time.Time
	EndAt       time.Time
	CreatorID   int
	Protection  string
	SeriesID    *int
	LegacyID    string
}

// EventPerson is a chairperson or speaker record. UserID is set when the
// person could be matched to a migrated user.
type EventPerson struct {
	ID          int
	EventID     int
	UserID      *int
	FirstName   string
	LastName    string
	Email       string
	Affiliation string
	IsChair     bool
}

type Contribution struct {
	ID          int
	EventID     int
	Title       string
	Description string
	StartAt     *time.Time
	Duration    time.Duration
	Position    int
	LegacyID    string
}

// ReferenceType is a registered "report number" system.
type ReferenceType struct {
	ID   int
	Name string
}

// EventReference links an event to an external reference type with a value.
type EventReference struct {
	ID              int
	EventID         int
	ReferenceTypeID int
	Value           string
}

type EventSeries struct {
	ID int
}
