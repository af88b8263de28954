package engagement

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/ProjetosBerg/Projeto-X-Backend-sub001/internal/engagement/entity"
	"github.com/ProjetosBerg/Projeto-X-Backend-sub001/pkg/apperror"
	"github.com/ProjetosBerg/Projeto-X-Backend-sub001/pkg/utilities"
)

// burstWindow suppresses same-session activity pings closer together than this.
const burstWindow = 60 * time.Second

// offensiveHourCutoff: logins before this local hour qualify the day as a streak day.
const offensiveHourCutoff = 12

// SessionStore is the persistence contract for calendar-day session rows.
type SessionStore interface {
	// FindActiveSessionForDay returns the session active on the calendar day
	// of `day` for the user, or nil when there is none. A non-empty sessionID
	// restricts the match to that identifier; otherwise the most recent
	// same-day row wins.
	FindActiveSessionForDay(ctx context.Context, userID int64, day time.Time, sessionID string) (*entity.Session, error)
	Create(ctx context.Context, s *entity.Session) error
	// IncrementEntryCount bumps one day-row by its id; session identifiers
	// recur across days and must not address the row.
	IncrementEntryCount(ctx context.Context, id string, now time.Time) error
	HasOffensiveLoginOnDate(ctx context.Context, userID int64, day time.Time) (bool, error)
	FindSessionsInRange(ctx context.Context, userID int64, start, end time.Time) ([]entity.Session, error)
}

// RankStore is the persistence contract for monthly leaderboard totals.
type RankStore interface {
	// GetRankedList returns the month's entries ordered by total descending,
	// userId ascending on ties.
	GetRankedList(ctx context.Context, year, month int) ([]entity.RankEntry, error)
	// UpsertIncrement atomically adds 1 to the user's monthly total,
	// creating the row at 1 when absent.
	UpsertIncrement(ctx context.Context, userID int64, year, month int) error
	GetOne(ctx context.Context, userID int64, year, month int) (*entity.MonthlyRank, error)
	RecordPositionLossNotification(ctx context.Context, userID int64, year, month, rank int, notifiedAt time.Time) error
}

// Notifier delivers engagement events to a user's room, fire-and-forget.
// No connected client is a normal no-op, not an error.
type Notifier interface {
	Publish(ctx context.Context, userID int64, payload entity.NotificationPayload) error
}

// Service is the session/streak/presence/leaderboard engine.
type Service struct {
	sessions SessionStore
	ranks    RankStore
	notifier Notifier
	logger   *zap.SugaredLogger

	// injectable for tests
	now          func() time.Time
	newSessionID func() string
}

func NewService(sessions SessionStore, ranks RankStore, notifier Notifier, logger *zap.SugaredLogger) *Service {
	return &Service{
		sessions:     sessions,
		ranks:        ranks,
		notifier:     notifier,
		logger:       logger,
		now:          time.Now,
		newSessionID: utilities.NewSessionID,
	}
}

// RecordActivity folds one login/activity ping into the user's session row
// for today. It returns the effective session identifier, which the caller
// must hand back on future calls, and whether a new day-row was created.
//
// Lookup strictly precedes mutation within one call; there is no
// cross-request locking (accepted sub-minute race, see RegisterEntry).
func (s *Service) RecordActivity(ctx context.Context, userID int64, candidateSessionID string) (string, bool, error) {
	if userID <= 0 {
		return "", false, apperror.Validation("user id is required")
	}

	now := s.now()
	day := dayStart(now)

	existing, err := s.sessions.FindActiveSessionForDay(ctx, userID, day, candidateSessionID)
	if err != nil {
		return "", false, apperror.Internalize(err)
	}

	if existing != nil {
		if now.Sub(existing.LastEntryAt) < burstWindow {
			// burst suppression: repeated pings inside the window are no-ops
			return existing.SessionID, false, nil
		}
		if err := s.sessions.IncrementEntryCount(ctx, existing.ID, now); err != nil {
			return "", false, apperror.Internalize(err)
		}
		return existing.SessionID, false, nil
	}

	sessionID := candidateSessionID
	if sessionID == "" {
		sessionID = s.newSessionID()
	}
	session := &entity.Session{
		ID:          utilities.NewRowID(),
		UserID:      userID,
		SessionID:   sessionID,
		LoginAt:     now,
		LastEntryAt: now,
		EntryCount:  1,
		IsOffensive: now.Hour() < offensiveHourCutoff,
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return "", false, apperror.Internalize(err)
	}
	return sessionID, true, nil
}

// TrackLogin is the glue invoked by login and token-validation events: it
// records the activity and, only when a new day-row was created, feeds the
// leaderboard for the current month.
func (s *Service) TrackLogin(ctx context.Context, userID int64, candidateSessionID string) (string, error) {
	sessionID, created, err := s.RecordActivity(ctx, userID, candidateSessionID)
	if err != nil {
		return "", err
	}
	if created {
		if err := s.RegisterEntry(ctx, userID, s.now()); err != nil {
			return "", err
		}
	}
	return sessionID, nil
}

// dayStart normalizes t to local midnight.
func dayStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
