package engagement

import (
	"context"
	"math"
	"time"

	"github.com/ProjetosBerg/Projeto-X-Backend-sub001/internal/engagement/entity"
	"github.com/ProjetosBerg/Projeto-X-Backend-sub001/pkg/apperror"
)

// Presence builds the full-month daily presence report for a user: one entry
// per calendar day, absent days defaulting to {present:false, sessions:0}.
// Sessions for the whole month are fetched in a single range query.
func (s *Service) Presence(ctx context.Context, userID int64, month, year int) (entity.MonthlyPresence, error) {
	var report entity.MonthlyPresence
	if userID <= 0 {
		return report, apperror.Validation("user id is required")
	}
	if month < 1 || month > 12 {
		return report, apperror.Validation("month must be between 1 and 12")
	}
	if year < 1 {
		return report, apperror.Validation("year is required")
	}

	first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.Local)
	nextMonth := first.AddDate(0, 1, 0)
	daysInMonth := nextMonth.AddDate(0, 0, -1).Day()

	sessions, err := s.sessions.FindSessionsInRange(ctx, userID, first, nextMonth)
	if err != nil {
		return report, apperror.Internalize(err)
	}

	sessionsPerDay := make(map[int]int64, len(sessions))
	for _, session := range sessions {
		sessionsPerDay[session.LoginAt.Day()] += int64(session.EntryCount)
	}

	report.PerDay = make([]entity.DayPresence, 0, daysInMonth)
	for day := 1; day <= daysInMonth; day++ {
		count := sessionsPerDay[day]
		present := count > 0
		report.PerDay = append(report.PerDay, entity.DayPresence{Day: day, Present: present, Sessions: count})
		if present {
			report.Stats.PresentDays++
			report.Stats.TotalSessions += count
		}
	}
	report.Stats.Rate = int(math.Round(float64(report.Stats.PresentDays) / float64(daysInMonth) * 100))
	return report, nil
}
