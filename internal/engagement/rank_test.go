package engagement

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ProjetosBerg/Projeto-X-Backend-sub001/internal/engagement/entity"
	"github.com/ProjetosBerg/Projeto-X-Backend-sub001/pkg/apperror"
)

func seedTotals(ranks *fakeRankStore, year, month int, totals map[int64]int64) {
	for userID, total := range totals {
		ranks.totals[rankKey{userID, year, month}] = total
	}
}

func TestTotalsOrdersByTotalThenUserID(t *testing.T) {
	ranks := newFakeRankStore()
	seedTotals(ranks, 2026, 3, map[int64]int64{1: 20, 2: 20, 3: 15})
	svc := newTestService(&fakeSessionStore{}, ranks, &fakeNotifier{}, time.Now())

	ranked, err := svc.Totals(context.Background(), 2026, 3)
	require.NoError(t, err)
	require.Len(t, ranked, 3)

	assert.Equal(t, entity.RankedEntry{UserID: 1, TotalEntries: 20, Rank: 1}, ranked[0])
	assert.Equal(t, entity.RankedEntry{UserID: 2, TotalEntries: 20, Rank: 2}, ranked[1], "ties break on lower user id")
	assert.Equal(t, entity.RankedEntry{UserID: 3, TotalEntries: 15, Rank: 3}, ranked[2])
}

func TestTopNKeepsGlobalRanks(t *testing.T) {
	ranks := newFakeRankStore()
	seedTotals(ranks, 2026, 3, map[int64]int64{1: 50, 2: 40, 3: 30, 4: 20, 5: 10})
	svc := newTestService(&fakeSessionStore{}, ranks, &fakeNotifier{}, time.Now())

	page, err := svc.TopN(context.Background(), 2026, 3, 2, 2)
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, 3, page[0].Rank)
	assert.Equal(t, 4, page[1].Rank)

	empty, err := svc.TopN(context.Background(), 2026, 3, 2, 9)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

func TestRankOf(t *testing.T) {
	ranks := newFakeRankStore()
	seedTotals(ranks, 2026, 3, map[int64]int64{1: 20, 2: 20, 3: 15})
	svc := newTestService(&fakeSessionStore{}, ranks, &fakeNotifier{}, time.Now())

	rank, found, err := svc.RankOf(context.Background(), 3, 2026, 3)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, 3, rank)

	_, found, err = svc.RankOf(context.Background(), 99, 2026, 3)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestTotalsValidatesMonth(t *testing.T) {
	svc := newTestService(&fakeSessionStore{}, newFakeRankStore(), &fakeNotifier{}, time.Now())

	_, err := svc.Totals(context.Background(), 2026, 0)
	assert.True(t, apperror.Is(err, apperror.KindValidation))
}

func TestDetectLostPositions(t *testing.T) {
	pre := []entity.RankEntry{
		{UserID: 1, TotalEntries: 10},
		{UserID: 2, TotalEntries: 8},
		{UserID: 3, TotalEntries: 8},
	}
	post := []entity.RankEntry{
		{UserID: 1, TotalEntries: 10},
		{UserID: 3, TotalEntries: 9},
		{UserID: 2, TotalEntries: 8},
	}

	losses := detectLostPositions(pre, post, 3)
	require.Len(t, losses, 1)
	assert.Equal(t, entity.LostPosition{UserID: 2, PositionsLost: 1, CurrentPosition: 3}, losses[0])
}

func TestDetectLostPositionsIgnoresNewcomers(t *testing.T) {
	pre := []entity.RankEntry{{UserID: 1, TotalEntries: 5}}
	post := []entity.RankEntry{
		{UserID: 9, TotalEntries: 6},
		{UserID: 1, TotalEntries: 5},
	}

	// user 1 slipped because of the newcomer; the newcomer itself never held a rank
	losses := detectLostPositions(pre, post, 9)
	require.Len(t, losses, 1)
	assert.Equal(t, int64(1), losses[0].UserID)
}

func TestRegisterEntryNotifiesOvertakenUser(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.Local)
	ranks := newFakeRankStore()
	seedTotals(ranks, 2026, 3, map[int64]int64{1: 10, 2: 8, 3: 8})
	notifier := &fakeNotifier{}
	svc := newTestService(&fakeSessionStore{}, ranks, notifier, now)

	// user 3 moves from 8 to 9, overtaking user 2
	require.NoError(t, svc.RegisterEntry(context.Background(), 3, now))

	require.Len(t, notifier.published, 1)
	got := notifier.published[0]
	assert.Equal(t, int64(2), got.userID)
	assert.Equal(t, "position_loss", got.payload.TypeOfAction)
	assert.Equal(t, 1, got.payload.Payload["positionsLost"])
	assert.Equal(t, 3, got.payload.Payload["currentPosition"])

	record := ranks.notified[rankKey{2, 2026, 3}]
	require.NotNil(t, record)
	require.NotNil(t, record.LastPositionLossNotifiedRank)
	assert.Equal(t, 3, *record.LastPositionLossNotifiedRank)
}

func TestRegisterEntryDedupsRepeatedLoss(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.Local)
	ranks := newFakeRankStore()
	seedTotals(ranks, 2026, 3, map[int64]int64{1: 10, 2: 8, 3: 8})
	alreadyNotified := 3
	ranks.notified[rankKey{2, 2026, 3}] = &entity.MonthlyRank{
		UserID: 2, Year: 2026, Month: 3,
		LastPositionLossNotifiedRank: &alreadyNotified,
	}
	notifier := &fakeNotifier{}
	svc := newTestService(&fakeSessionStore{}, ranks, notifier, now)

	require.NoError(t, svc.RegisterEntry(context.Background(), 3, now))
	assert.Empty(t, notifier.published, "an unchanged loss is reported once")
}

func TestRegisterEntryNotifierFailureDoesNotAbort(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.Local)
	ranks := newFakeRankStore()
	// user 9 moves from 4 to 5 and passes both user 2 and user 3
	seedTotals(ranks, 2026, 3, map[int64]int64{1: 5, 2: 4, 3: 4, 9: 4})
	notifier := &fakeNotifier{failFor: map[int64]error{2: errors.New("room unavailable")}}
	svc := newTestService(&fakeSessionStore{}, ranks, notifier, now)

	require.NoError(t, svc.RegisterEntry(context.Background(), 9, now))

	require.Len(t, notifier.published, 1)
	assert.Equal(t, int64(3), notifier.published[0].userID)
	assert.Nil(t, ranks.notified[rankKey{2, 2026, 3}], "failed delivery must not be recorded as notified")
}
