package engagement

import (
	"context"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/ProjetosBerg/Projeto-X-Backend-sub001/internal/engagement/entity"
)

// fakeSessionStore keeps session rows in memory and honors the same matching
// rules the SQL repository applies.
type fakeSessionStore struct {
	sessions []*entity.Session
	// queriedDays records every day handed to HasOffensiveLoginOnDate.
	queriedDays []time.Time
	// alwaysOffensive short-circuits HasOffensiveLoginOnDate to true.
	alwaysOffensive bool
}

func (f *fakeSessionStore) FindActiveSessionForDay(_ context.Context, userID int64, day time.Time, sessionID string) (*entity.Session, error) {
	var best *entity.Session
	for _, s := range f.sessions {
		if s.UserID != userID || !dayStart(s.LoginAt).Equal(day) {
			continue
		}
		if sessionID != "" && s.SessionID != sessionID {
			continue
		}
		if best == nil || s.LoginAt.After(best.LoginAt) {
			best = s
		}
	}
	return best, nil
}

func (f *fakeSessionStore) Create(_ context.Context, s *entity.Session) error {
	cp := *s
	f.sessions = append(f.sessions, &cp)
	return nil
}

func (f *fakeSessionStore) IncrementEntryCount(_ context.Context, id string, now time.Time) error {
	for _, s := range f.sessions {
		if s.ID == id {
			s.EntryCount++
			s.LastEntryAt = now
		}
	}
	return nil
}

func (f *fakeSessionStore) HasOffensiveLoginOnDate(_ context.Context, userID int64, day time.Time) (bool, error) {
	f.queriedDays = append(f.queriedDays, day)
	if f.alwaysOffensive {
		return true, nil
	}
	for _, s := range f.sessions {
		if s.UserID == userID && s.IsOffensive && dayStart(s.LoginAt).Equal(day) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeSessionStore) FindSessionsInRange(_ context.Context, userID int64, start, end time.Time) ([]entity.Session, error) {
	var out []entity.Session
	for _, s := range f.sessions {
		if s.UserID == userID && !s.LoginAt.Before(start) && s.LoginAt.Before(end) {
			out = append(out, *s)
		}
	}
	return out, nil
}

type rankKey struct {
	userID int64
	year   int
	month  int
}

// fakeRankStore mirrors the monthly_rank table: totals plus the
// last-notified bookkeeping columns.
type fakeRankStore struct {
	totals   map[rankKey]int64
	notified map[rankKey]*entity.MonthlyRank
}

func newFakeRankStore() *fakeRankStore {
	return &fakeRankStore{
		totals:   map[rankKey]int64{},
		notified: map[rankKey]*entity.MonthlyRank{},
	}
}

func (f *fakeRankStore) GetRankedList(_ context.Context, year, month int) ([]entity.RankEntry, error) {
	var list []entity.RankEntry
	for k, total := range f.totals {
		if k.year == year && k.month == month {
			list = append(list, entity.RankEntry{UserID: k.userID, TotalEntries: total})
		}
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].TotalEntries != list[j].TotalEntries {
			return list[i].TotalEntries > list[j].TotalEntries
		}
		return list[i].UserID < list[j].UserID
	})
	return list, nil
}

func (f *fakeRankStore) UpsertIncrement(_ context.Context, userID int64, year, month int) error {
	f.totals[rankKey{userID, year, month}]++
	return nil
}

func (f *fakeRankStore) GetOne(_ context.Context, userID int64, year, month int) (*entity.MonthlyRank, error) {
	return f.notified[rankKey{userID, year, month}], nil
}

func (f *fakeRankStore) RecordPositionLossNotification(_ context.Context, userID int64, year, month, rank int, notifiedAt time.Time) error {
	r := rank
	at := notifiedAt
	f.notified[rankKey{userID, year, month}] = &entity.MonthlyRank{
		UserID:                       userID,
		Year:                         year,
		Month:                        month,
		TotalEntries:                 f.totals[rankKey{userID, year, month}],
		LastPositionLossNotifiedAt:   &at,
		LastPositionLossNotifiedRank: &r,
	}
	return nil
}

type publishedNotification struct {
	userID  int64
	payload entity.NotificationPayload
}

type fakeNotifier struct {
	published []publishedNotification
	failFor   map[int64]error
}

func (f *fakeNotifier) Publish(_ context.Context, userID int64, payload entity.NotificationPayload) error {
	if err := f.failFor[userID]; err != nil {
		return err
	}
	f.published = append(f.published, publishedNotification{userID: userID, payload: payload})
	return nil
}

// newTestService wires a Service over the fakes with a fixed clock and
// deterministic session identifiers.
func newTestService(sessions *fakeSessionStore, ranks *fakeRankStore, notifier *fakeNotifier, now time.Time) *Service {
	svc := NewService(sessions, ranks, notifier, zap.NewNop().Sugar())
	svc.now = func() time.Time { return now }
	seq := 0
	svc.newSessionID = func() string {
		seq++
		return fmt.Sprintf("sess-%d", seq)
	}
	return svc
}
