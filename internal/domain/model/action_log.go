package model

import "time"

// ActionLog is a single row from the game server's action log.
type ActionLog struct {
	ID          int64     `db:"id"          json:"id"`
	Type        string    `db:"type"        json:"type"`
	Description string    `db:"description" json:"desc"`
	LoggedAt    time.Time `db:"logged_at"   json:"loggedAt"`
}

// ActionLogListOptions carries the filters and pagination for listing
// action logs. Nil pointers mean "no filter".
type ActionLogListOptions struct {
	// Type filters by exact log type.
	Type *string
	// Q filters by description substring (case-insensitive).
	Q *string
	// From / To bound LoggedAt (inclusive lower, exclusive upper).
	From *time.Time
	To   *time.Time

	Sort   string
	Dir    string
	Limit  int
	Offset int
}
