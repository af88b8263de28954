package auth

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"encoding/base64"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jmoiron/sqlx"

	"github.com/ProjetosBerg/Projeto-X-Backend-sub001/internal/auth/repo"
	"github.com/ProjetosBerg/Projeto-X-Backend-sub001/pkg/apperror"
)

// Claims is what a validated access token resolves to. SessionID is the
// engagement session identifier issued at login; handing it back to the
// tracker keeps one session row per calendar day.
type Claims struct {
	UserID    int64
	SessionID string
}

// TokenService issues and validates the tokens that carry the session
// identifier through its lifecycle. Signing is RS256 with a per-process key;
// opaque refresh tokens are persisted.
type TokenService struct {
	key       *rsa.PrivateKey
	issuer    string
	accessTTL time.Duration

	refreshRepo *repo.RefreshRepo
}

func NewTokenService(db *sqlx.DB, issuer string, accessTTL time.Duration) (*TokenService, error) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		return nil, err
	}
	if accessTTL <= 0 {
		accessTTL = 15 * time.Minute
	}
	return &TokenService{
		key:         key,
		issuer:      issuer,
		accessTTL:   accessTTL,
		refreshRepo: repo.NewRefreshRepo(db),
	}, nil
}

// IssueTokens creates an access token bound to (user, session) plus an
// opaque refresh token persisted with the same binding.
func (s *TokenService) IssueTokens(ctx context.Context, userID int64, sessionID string) (access string, refresh string, err error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"iss": s.issuer,
		"sub": strconv.FormatInt(userID, 10),
		"sid": sessionID,
		"exp": now.Add(s.accessTTL).Unix(),
		"iat": now.Unix(),
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	access, err = tok.SignedString(s.key)
	if err != nil {
		return "", "", err
	}

	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return "", "", err
	}
	refresh = base64.RawURLEncoding.EncodeToString(raw)
	if err := s.refreshRepo.Save(ctx, refresh, userID, sessionID, now.Add(30*24*time.Hour)); err != nil {
		return "", "", apperror.Internalize(err)
	}
	return access, refresh, nil
}

// ValidateAccess parses and verifies an access token and returns its claims.
// Malformed tokens are validation failures; expired or otherwise stale
// tokens are business-rule failures so callers can branch.
func (s *TokenService) ValidateAccess(tokenStr string) (Claims, error) {
	if tokenStr == "" {
		return Claims{}, apperror.Validation("token is required")
	}
	parsed, err := jwt.Parse(tokenStr, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodRSA); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return &s.key.PublicKey, nil
	})
	if err != nil || !parsed.Valid {
		return Claims{}, apperror.BusinessRule("stale or invalid credential")
	}
	mapClaims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return Claims{}, apperror.BusinessRule("stale or invalid credential")
	}
	sub, _ := mapClaims["sub"].(string)
	userID, err := strconv.ParseInt(sub, 10, 64)
	if err != nil || userID <= 0 {
		return Claims{}, apperror.BusinessRule("stale or invalid credential")
	}
	sid, _ := mapClaims["sid"].(string)
	return Claims{UserID: userID, SessionID: sid}, nil
}

// ValidateRefresh checks an opaque refresh token and returns its binding.
func (s *TokenService) ValidateRefresh(ctx context.Context, token string) (Claims, error) {
	if token == "" {
		return Claims{}, apperror.Validation("refresh token is required")
	}
	userID, sessionID, expiresAt, err := s.refreshRepo.Get(ctx, token)
	if err != nil {
		return Claims{}, apperror.BusinessRule("stale or invalid credential")
	}
	if expiresAt.Before(time.Now()) {
		return Claims{}, apperror.BusinessRule("stale or invalid credential")
	}
	return Claims{UserID: userID, SessionID: sessionID}, nil
}

// RevokeRefresh removes a refresh token from the store.
func (s *TokenService) RevokeRefresh(ctx context.Context, token string) error {
	if err := s.refreshRepo.Delete(ctx, token); err != nil {
		return apperror.Internalize(err)
	}
	return nil
}
