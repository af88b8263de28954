package engagement

import (
	"context"
	"time"

	"github.com/ProjetosBerg/Projeto-X-Backend-sub001/internal/engagement/entity"
	"github.com/ProjetosBerg/Projeto-X-Backend-sub001/pkg/apperror"
)

// maxStreakDays bounds the backward day-walk so corrupted data can never
// cause an unbounded scan. One leap year is the longest streak reported.
const maxStreakDays = 366

// Streak counts consecutive days with an offensive login, walking backward
// from asOf. A result of 0 means asOf itself does not qualify. The value is
// recomputed on every call; the iteration cap makes memoization unnecessary.
func (s *Service) Streak(ctx context.Context, userID int64, asOf time.Time) (int, error) {
	if userID <= 0 {
		return 0, apperror.Validation("user id is required")
	}

	cursor := dayStart(asOf)
	streak := 0
	for i := 0; i < maxStreakDays; i++ {
		ok, err := s.sessions.HasOffensiveLoginOnDate(ctx, userID, cursor)
		if err != nil {
			return 0, apperror.Internalize(err)
		}
		if !ok {
			break
		}
		streak++
		cursor = cursor.AddDate(0, 0, -1)
	}
	return streak, nil
}

// WeekProgress reports the Sunday..Saturday calendar containing asOf.
// Days strictly after asOf are false without touching the store, since the
// future is undeterminable. Always exactly 7 entries.
func (s *Service) WeekProgress(ctx context.Context, userID int64, asOf time.Time) (entity.WeekProgress, error) {
	var progress entity.WeekProgress
	if userID <= 0 {
		return progress, apperror.Validation("user id is required")
	}

	today := dayStart(asOf)
	sunday := today.AddDate(0, 0, -int(today.Weekday()))
	for i := 0; i < 7; i++ {
		day := sunday.AddDate(0, 0, i)
		if day.After(today) {
			continue
		}
		ok, err := s.sessions.HasOffensiveLoginOnDate(ctx, userID, day)
		if err != nil {
			return entity.WeekProgress{}, apperror.Internalize(err)
		}
		progress.Days[i] = ok
		if ok {
			progress.CompletedDays++
		}
	}
	return progress, nil
}
