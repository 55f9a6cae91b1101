package domain

import "time"

type Activity struct {
	ID           int
	Username     string
	ActivityType string
	Duration     string
	Calories     int
	Date         time.Time
}

// DateLayout is the calendar-date wire format used for activity dates.
const DateLayout = "2006-01-02"
