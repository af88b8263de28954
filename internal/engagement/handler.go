package engagement

import (
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/ProjetosBerg/Projeto-X-Backend-sub001/internal/auth"
	"github.com/ProjetosBerg/Projeto-X-Backend-sub001/internal/engagement/entity"
	"github.com/ProjetosBerg/Projeto-X-Backend-sub001/pkg/apperror"
	"github.com/ProjetosBerg/Projeto-X-Backend-sub001/pkg/utilities"
)

// Handler exposes the engagement read endpoints and the activity ping.
type Handler struct {
	svc    *Service
	logger *zap.SugaredLogger
}

func NewHandler(svc *Service, logger *zap.SugaredLogger) *Handler {
	return &Handler{svc: svc, logger: logger}
}

// Activity records one activity ping for the authenticated user, reusing the
// session identifier carried by the access token.
func (h *Handler) Activity(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFrom(r.Context())
	if !ok {
		utilities.WriteJSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthenticated"})
		return
	}
	sessionID, err := h.svc.TrackLogin(r.Context(), claims.UserID, claims.SessionID)
	if err != nil {
		h.logger.Warnw("record activity failed", "user_id", claims.UserID, "err", err)
		utilities.WriteError(w, err)
		return
	}
	utilities.WriteJSON(w, http.StatusOK, map[string]string{"sessionId": sessionID})
}

// Streak returns the consecutive-day streak ending at asOf (default today).
func (h *Handler) Streak(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFrom(r.Context())
	if !ok {
		utilities.WriteJSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthenticated"})
		return
	}
	asOf, err := asOfParam(r)
	if err != nil {
		utilities.WriteError(w, err)
		return
	}
	streak, err := h.svc.Streak(r.Context(), claims.UserID, asOf)
	if err != nil {
		utilities.WriteError(w, err)
		return
	}
	utilities.WriteJSON(w, http.StatusOK, map[string]int{"streak": streak})
}

// WeekProgress returns the 7-day calendar of the week containing asOf.
func (h *Handler) WeekProgress(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFrom(r.Context())
	if !ok {
		utilities.WriteJSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthenticated"})
		return
	}
	asOf, err := asOfParam(r)
	if err != nil {
		utilities.WriteError(w, err)
		return
	}
	progress, err := h.svc.WeekProgress(r.Context(), claims.UserID, asOf)
	if err != nil {
		utilities.WriteError(w, err)
		return
	}
	utilities.WriteJSON(w, http.StatusOK, progress)
}

// Presence returns the monthly presence calendar.
func (h *Handler) Presence(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFrom(r.Context())
	if !ok {
		utilities.WriteJSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthenticated"})
		return
	}
	now := time.Now()
	month := intParam(r, "month", int(now.Month()))
	year := intParam(r, "year", now.Year())
	report, err := h.svc.Presence(r.Context(), claims.UserID, month, year)
	if err != nil {
		utilities.WriteError(w, err)
		return
	}
	utilities.WriteJSON(w, http.StatusOK, report)
}

// LeaderboardResponse is one leaderboard page plus the requester's own rank
// when they hold a record for the month.
type LeaderboardResponse struct {
	Entries []entity.RankedEntry `json:"entries"`
	MyRank  *int                 `json:"myRank,omitempty"`
}

// Leaderboard serves the top-N page and the caller's standalone rank.
func (h *Handler) Leaderboard(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFrom(r.Context())
	if !ok {
		utilities.WriteJSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthenticated"})
		return
	}
	now := time.Now()
	month := intParam(r, "month", int(now.Month()))
	year := intParam(r, "year", now.Year())
	limit := intParam(r, "limit", 10)
	page := intParam(r, "page", 1)

	entries, err := h.svc.TopN(r.Context(), year, month, limit, page)
	if err != nil {
		utilities.WriteError(w, err)
		return
	}
	resp := LeaderboardResponse{Entries: entries}
	rank, found, err := h.svc.RankOf(r.Context(), claims.UserID, year, month)
	if err != nil {
		utilities.WriteError(w, err)
		return
	}
	if found {
		resp.MyRank = &rank
	}
	utilities.WriteJSON(w, http.StatusOK, resp)
}

// asOfParam parses the optional asOf query parameter (YYYY-MM-DD),
// defaulting to now.
func asOfParam(r *http.Request) (time.Time, error) {
	raw := r.URL.Query().Get("asOf")
	if raw == "" {
		return time.Now(), nil
	}
	asOf, err := time.ParseInLocation("2006-01-02", raw, time.Local)
	if err != nil {
		return time.Time{}, apperror.Validation("asOf must be YYYY-MM-DD")
	}
	return asOf, nil
}

func intParam(r *http.Request, name string, fallback int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback
	}
	if v, err := strconv.Atoi(raw); err == nil {
		return v
	}
	return fallback
}
