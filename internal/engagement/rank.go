package engagement

import (
	"context"
	"strconv"
	"time"

	"github.com/ProjetosBerg/Projeto-X-Backend-sub001/internal/engagement/entity"
	"github.com/ProjetosBerg/Projeto-X-Backend-sub001/pkg/apperror"
)

// Totals returns the month's full ordering with 1-based ranks assigned.
// Ordering is total entries descending, userId ascending on ties, so it is
// stable across repeated calls on unchanged data.
func (s *Service) Totals(ctx context.Context, year, month int) ([]entity.RankedEntry, error) {
	if err := validateMonth(year, month); err != nil {
		return nil, err
	}
	list, err := s.ranks.GetRankedList(ctx, year, month)
	if err != nil {
		return nil, apperror.Internalize(err)
	}
	return rankEntries(list), nil
}

// TopN returns one page of the ordering. Ranks stay 1-based positions in the
// full ordering, not positions within the page. Page numbering starts at 1.
func (s *Service) TopN(ctx context.Context, year, month, n, page int) ([]entity.RankedEntry, error) {
	if n < 1 {
		return nil, apperror.Validation("page size must be positive")
	}
	if page < 1 {
		return nil, apperror.Validation("page must be positive")
	}
	ranked, err := s.Totals(ctx, year, month)
	if err != nil {
		return nil, err
	}
	offset := (page - 1) * n
	if offset >= len(ranked) {
		return []entity.RankedEntry{}, nil
	}
	end := offset + n
	if end > len(ranked) {
		end = len(ranked)
	}
	return ranked[offset:end], nil
}

// RankOf returns the user's 1-based position in the full ordering, or
// (0, false) when the user has no record for that month.
func (s *Service) RankOf(ctx context.Context, userID int64, year, month int) (int, bool, error) {
	if userID <= 0 {
		return 0, false, apperror.Validation("user id is required")
	}
	ranked, err := s.Totals(ctx, year, month)
	if err != nil {
		return 0, false, err
	}
	for _, entry := range ranked {
		if entry.UserID == userID {
			return entry.Rank, true, nil
		}
	}
	return 0, false, nil
}

// RegisterEntry runs the rank-update flow for one counted login:
// PRE-snapshot, atomic increment, POST-snapshot, diff, notify. The flow is
// terminal whether or not any loss occurred. The cross-user diff is
// best-effort under concurrent logins within the same month; only the
// increment itself is atomic.
func (s *Service) RegisterEntry(ctx context.Context, userID int64, now time.Time) error {
	if userID <= 0 {
		return apperror.Validation("user id is required")
	}
	year, month := now.Year(), int(now.Month())

	pre, err := s.ranks.GetRankedList(ctx, year, month)
	if err != nil {
		return apperror.Internalize(err)
	}
	if err := s.ranks.UpsertIncrement(ctx, userID, year, month); err != nil {
		return apperror.Internalize(err)
	}
	post, err := s.ranks.GetRankedList(ctx, year, month)
	if err != nil {
		return apperror.Internalize(err)
	}

	for _, loss := range detectLostPositions(pre, post, userID) {
		// Notifications are a non-critical enhancement: a failure for one
		// affected user is logged and must not abort the rest of the flow.
		if err := s.notifyPositionLoss(ctx, loss, year, month, now); err != nil {
			s.logger.Warnw("position loss notification failed",
				"user_id", loss.UserID, "rank", loss.CurrentPosition, "err", err)
		}
	}
	return nil
}

// detectLostPositions lists every user other than changedUserID whose rank
// worsened (numerically increased) between the two snapshots. Users absent
// from the PRE snapshot cannot lose a position they never held.
func detectLostPositions(pre, post []entity.RankEntry, changedUserID int64) []entity.LostPosition {
	preRank := make(map[int64]int, len(pre))
	for i, entry := range pre {
		preRank[entry.UserID] = i + 1
	}

	var losses []entity.LostPosition
	for i, entry := range post {
		if entry.UserID == changedUserID {
			continue
		}
		before, ok := preRank[entry.UserID]
		if !ok {
			continue
		}
		current := i + 1
		if current > before {
			losses = append(losses, entity.LostPosition{
				UserID:          entry.UserID,
				PositionsLost:   current - before,
				CurrentPosition: current,
			})
		}
	}
	return losses
}

func (s *Service) notifyPositionLoss(ctx context.Context, loss entity.LostPosition, year, month int, now time.Time) error {
	record, err := s.ranks.GetOne(ctx, loss.UserID, year, month)
	if err != nil {
		return err
	}
	// Dedup: an unchanged already-reported loss is not re-emitted.
	if record != nil && record.LastPositionLossNotifiedRank != nil &&
		*record.LastPositionLossNotifiedRank == loss.CurrentPosition {
		return nil
	}

	payload := entity.NotificationPayload{
		Title:        "Voce perdeu posicoes no ranking",
		Entity:       "monthly_rank",
		IDEntity:     strconv.FormatInt(loss.UserID, 10),
		Path:         "/ranking",
		TypeOfAction: "position_loss",
		Payload: map[string]any{
			"positionsLost":   loss.PositionsLost,
			"currentPosition": loss.CurrentPosition,
			"year":            year,
			"month":           month,
		},
		CreatedAt: now,
	}
	if err := s.notifier.Publish(ctx, loss.UserID, payload); err != nil {
		return err
	}
	return s.ranks.RecordPositionLossNotification(ctx, loss.UserID, year, month, loss.CurrentPosition, now)
}

// rankEntries assigns 1-based positions; the store already applies the
// deterministic ordering.
func rankEntries(list []entity.RankEntry) []entity.RankedEntry {
	ranked := make([]entity.RankedEntry, len(list))
	for i, entry := range list {
		ranked[i] = entity.RankedEntry{UserID: entry.UserID, TotalEntries: entry.TotalEntries, Rank: i + 1}
	}
	return ranked
}

func validateMonth(year, month int) error {
	if month < 1 || month > 12 {
		return apperror.Validation("month must be between 1 and 12")
	}
	if year < 1 {
		return apperror.Validation("year is required")
	}
	return nil
}
