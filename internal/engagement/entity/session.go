package entity

import "time"

// Session is one calendar-day activity row for a user. The first login of a
// day creates it; later same-day activity only bumps EntryCount/LastEntryAt.
type Session struct {
	ID          string    `db:"id" json:"id"`
	UserID      int64     `db:"user_id" json:"userId"`
	SessionID   string    `db:"session_id" json:"sessionId"`
	LoginAt     time.Time `db:"login_at" json:"loginAt"`
	LastEntryAt time.Time `db:"last_entry_at" json:"lastEntryAt"`
	EntryCount  int       `db:"entry_count" json:"entryCount"`
	// IsOffensive is sticky: it reflects the first login of the day
	// (before 12:00 local) and is never recomputed on later activity.
	IsOffensive bool `db:"is_offensive" json:"isOffensive"`
}

// WeekProgress is the Sunday..Saturday calendar for one week.
type WeekProgress struct {
	Days          [7]bool `json:"days"`
	CompletedDays int     `json:"completedDaysThisWeek"`
}

// DayPresence is one calendar day inside a monthly presence report.
type DayPresence struct {
	Day      int   `json:"day"`
	Present  bool  `json:"present"`
	Sessions int64 `json:"sessions"`
}

// PresenceStats aggregates a monthly presence report.
type PresenceStats struct {
	PresentDays   int   `json:"presentDays"`
	TotalSessions int64 `json:"totalSessions"`
	// Rate is presentDays/daysInMonth as a rounded percentage.
	Rate int `json:"rate"`
}

// MonthlyPresence carries one entry per calendar day of the month.
type MonthlyPresence struct {
	PerDay []DayPresence `json:"perDay"`
	Stats  PresenceStats `json:"stats"`
}
