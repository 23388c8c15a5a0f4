package domain

import "time"

type Location struct {
	ID        int
	Name      string
	IsDefault bool
}

type Room struct {
	ID           int
	LocationID   int
	Name         string
	Site         string
	Building     string
	Floor        string
	Number       string
	Capacity     int
	OwnerID      *int
	IsReservable bool
	PhotoPath    string
	LegacyID     string
}

// Reservation repeat frequencies.
const (
	RepeatNever = "never"
	RepeatDay   = "day"
	RepeatWeek  = "week"
	RepeatMonth = "month"
)

type Reservation struct {
	ID              int
	RoomID          int
	StartAt         time.Time
	EndAt           time.Time
	RepeatFrequency string
	RepeatInterval  int
	BookedForName   string
	Reason          string
	CreatedByID     *int
	IsAccepted      bool
	IsCancelled     bool
	IsRejected      bool
}
