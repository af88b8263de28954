package engagement

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ProjetosBerg/Projeto-X-Backend-sub001/internal/engagement/entity"
	"github.com/ProjetosBerg/Projeto-X-Backend-sub001/pkg/apperror"
	"github.com/ProjetosBerg/Projeto-X-Backend-sub001/pkg/utilities"
)

func TestRecordActivityCreatesSessionRow(t *testing.T) {
	now := time.Date(2026, 3, 2, 9, 30, 0, 0, time.Local)
	sessions := &fakeSessionStore{}
	svc := newTestService(sessions, newFakeRankStore(), &fakeNotifier{}, now)

	sessionID, created, err := svc.RecordActivity(context.Background(), 1, "")
	require.NoError(t, err)
	assert.True(t, created)
	assert.NotEmpty(t, sessionID)

	require.Len(t, sessions.sessions, 1)
	row := sessions.sessions[0]
	assert.Equal(t, int64(1), row.UserID)
	assert.Equal(t, 1, row.EntryCount)
	assert.True(t, row.IsOffensive, "9:30 login is before the morning cutoff")
}

func TestRecordActivityAfternoonLoginIsNotOffensive(t *testing.T) {
	now := time.Date(2026, 3, 2, 14, 0, 0, 0, time.Local)
	sessions := &fakeSessionStore{}
	svc := newTestService(sessions, newFakeRankStore(), &fakeNotifier{}, now)

	_, created, err := svc.RecordActivity(context.Background(), 1, "")
	require.NoError(t, err)
	assert.True(t, created)
	assert.False(t, sessions.sessions[0].IsOffensive)
}

func TestRecordActivityReusesCandidateSessionID(t *testing.T) {
	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.Local)
	sessions := &fakeSessionStore{}
	svc := newTestService(sessions, newFakeRankStore(), &fakeNotifier{}, now)

	sessionID, created, err := svc.RecordActivity(context.Background(), 1, "client-supplied")
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, "client-supplied", sessionID)
}

func TestRecordActivityBurstSuppression(t *testing.T) {
	now := time.Date(2026, 3, 2, 9, 30, 0, 0, time.Local)
	sessions := &fakeSessionStore{sessions: []*entity.Session{{
		ID:          utilities.NewRowID(),
		UserID:      1,
		SessionID:   "sess-1",
		LoginAt:     now.Add(-10 * time.Minute),
		LastEntryAt: now.Add(-30 * time.Second),
		EntryCount:  3,
	}}}
	svc := newTestService(sessions, newFakeRankStore(), &fakeNotifier{}, now)

	sessionID, created, err := svc.RecordActivity(context.Background(), 1, "sess-1")
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, "sess-1", sessionID)
	assert.Equal(t, 3, sessions.sessions[0].EntryCount, "ping inside the window must not count")
}

func TestRecordActivityIncrementsAfterBurstWindow(t *testing.T) {
	now := time.Date(2026, 3, 2, 9, 30, 0, 0, time.Local)
	sessions := &fakeSessionStore{sessions: []*entity.Session{{
		ID:          utilities.NewRowID(),
		UserID:      1,
		SessionID:   "sess-1",
		LoginAt:     now.Add(-10 * time.Minute),
		LastEntryAt: now.Add(-90 * time.Second),
		EntryCount:  3,
	}}}
	svc := newTestService(sessions, newFakeRankStore(), &fakeNotifier{}, now)

	_, created, err := svc.RecordActivity(context.Background(), 1, "sess-1")
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, 4, sessions.sessions[0].EntryCount)
	assert.Equal(t, now, sessions.sessions[0].LastEntryAt)
}

func TestRecordActivityNewDayKeepsSessionID(t *testing.T) {
	// yesterday's row carries the session id the client still holds
	yesterday := time.Date(2026, 3, 1, 9, 0, 0, 0, time.Local)
	sessions := &fakeSessionStore{sessions: []*entity.Session{{
		ID:          "row-day1",
		UserID:      1,
		SessionID:   "sess-1",
		LoginAt:     yesterday,
		LastEntryAt: yesterday,
		EntryCount:  5,
		IsOffensive: true,
	}}}
	now := yesterday.AddDate(0, 0, 1)
	svc := newTestService(sessions, newFakeRankStore(), &fakeNotifier{}, now)

	sessionID, created, err := svc.RecordActivity(context.Background(), 1, "sess-1")
	require.NoError(t, err)
	assert.True(t, created, "a new calendar day gets its own row")
	assert.Equal(t, "sess-1", sessionID)

	require.Len(t, sessions.sessions, 2)
	assert.Equal(t, "sess-1", sessions.sessions[1].SessionID, "the identifier carries over across days")

	// later activity must bump only today's row
	svc.now = func() time.Time { return now.Add(2 * time.Hour) }
	_, created, err = svc.RecordActivity(context.Background(), 1, "sess-1")
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, 5, sessions.sessions[0].EntryCount)
	assert.Equal(t, 2, sessions.sessions[1].EntryCount)
}

func TestRecordActivityRejectsMissingUser(t *testing.T) {
	svc := newTestService(&fakeSessionStore{}, newFakeRankStore(), &fakeNotifier{}, time.Now())

	_, _, err := svc.RecordActivity(context.Background(), 0, "")
	assert.True(t, apperror.Is(err, apperror.KindValidation))
}

func TestTrackLoginFeedsLeaderboardOnlyOnNewDayRow(t *testing.T) {
	now := time.Date(2026, 3, 2, 9, 30, 0, 0, time.Local)
	sessions := &fakeSessionStore{}
	ranks := newFakeRankStore()
	svc := newTestService(sessions, ranks, &fakeNotifier{}, now)

	sessionID, err := svc.TrackLogin(context.Background(), 1, "")
	require.NoError(t, err)
	require.NotEmpty(t, sessionID)
	assert.Equal(t, int64(1), ranks.totals[rankKey{1, 2026, 3}])

	// same calendar day, outside the burst window: no extra leaderboard entry
	svc.now = func() time.Time { return now.Add(2 * time.Hour) }
	again, err := svc.TrackLogin(context.Background(), 1, sessionID)
	require.NoError(t, err)
	assert.Equal(t, sessionID, again)
	assert.Equal(t, int64(1), ranks.totals[rankKey{1, 2026, 3}])
}
