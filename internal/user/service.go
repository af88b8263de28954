package user

import (
	"context"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/ProjetosBerg/Projeto-X-Backend-sub001/internal/auth"
	"github.com/ProjetosBerg/Projeto-X-Backend-sub001/internal/user/entity"
	"github.com/ProjetosBerg/Projeto-X-Backend-sub001/pkg/apperror"
)

// UserStore is the persistence contract for user accounts.
type UserStore interface {
	Create(ctx context.Context, u *entity.User) (int64, error)
	GetByLogin(ctx context.Context, login string) (*entity.User, error)
	GetByID(ctx context.Context, id int64) (*entity.User, error)
	ExistsByLoginOrEmail(ctx context.Context, login, email string) (bool, error)
}

// EngagementTracker feeds login events into the session/leaderboard engine.
type EngagementTracker interface {
	TrackLogin(ctx context.Context, userID int64, candidateSessionID string) (string, error)
}

// TokenIssuer binds access/refresh tokens to a (user, session) pair.
type TokenIssuer interface {
	IssueTokens(ctx context.Context, userID int64, sessionID string) (access string, refresh string, err error)
	ValidateRefresh(ctx context.Context, token string) (auth.Claims, error)
	RevokeRefresh(ctx context.Context, token string) error
}

// Service orchestrates signup, login and profile flows.
type Service struct {
	users      UserStore
	engagement EngagementTracker
	tokens     TokenIssuer
	logger     *zap.SugaredLogger
}

func NewService(users UserStore, engagement EngagementTracker, tokens TokenIssuer, logger *zap.SugaredLogger) *Service {
	return &Service{users: users, engagement: engagement, tokens: tokens, logger: logger}
}

// Signup creates a user with a bcrypt password hash.
func (s *Service) Signup(ctx context.Context, name, login, email, password string) (entity.Profile, error) {
	name = strings.TrimSpace(name)
	login = strings.TrimSpace(login)
	email = strings.ToLower(strings.TrimSpace(email))
	switch {
	case name == "":
		return entity.Profile{}, apperror.Validation("name is required")
	case login == "":
		return entity.Profile{}, apperror.Validation("login is required")
	case email == "" || !strings.Contains(email, "@"):
		return entity.Profile{}, apperror.Validation("a valid email is required")
	case len(password) < 6:
		return entity.Profile{}, apperror.Validation("password must have at least 6 characters")
	}

	taken, err := s.users.ExistsByLoginOrEmail(ctx, login, email)
	if err != nil {
		return entity.Profile{}, apperror.Internalize(err)
	}
	if taken {
		return entity.Profile{}, apperror.BusinessRule("login or email already registered")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return entity.Profile{}, apperror.Internalize(err)
	}
	u := &entity.User{Name: name, Login: login, Email: email, PasswordHash: string(hash)}
	if _, err := s.users.Create(ctx, u); err != nil {
		return entity.Profile{}, apperror.Internalize(err)
	}
	return u.Profile(), nil
}

// LoginResult is the outcome of a successful credential login.
type LoginResult struct {
	User         entity.Profile `json:"user"`
	SessionID    string         `json:"sessionId"`
	AccessToken  string         `json:"accessToken"`
	RefreshToken string         `json:"refreshToken"`
}

// Login verifies credentials, records the login with the engagement engine
// and issues tokens bound to the effective session identifier.
func (s *Service) Login(ctx context.Context, login, password string) (LoginResult, error) {
	login = strings.TrimSpace(login)
	if login == "" || password == "" {
		return LoginResult{}, apperror.Validation("login and password are required")
	}

	u, err := s.users.GetByLogin(ctx, login)
	if err != nil {
		return LoginResult{}, apperror.Internalize(err)
	}
	if u == nil || bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return LoginResult{}, apperror.BusinessRule("invalid credentials")
	}

	sessionID, err := s.engagement.TrackLogin(ctx, u.ID, "")
	if err != nil {
		return LoginResult{}, err
	}
	access, refresh, err := s.tokens.IssueTokens(ctx, u.ID, sessionID)
	if err != nil {
		return LoginResult{}, apperror.Internalize(err)
	}
	return LoginResult{User: u.Profile(), SessionID: sessionID, AccessToken: access, RefreshToken: refresh}, nil
}

// Refresh rotates a refresh token: the old token is revoked, the refresh
// event is folded into today's session row, and a fresh pair is issued.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (LoginResult, error) {
	claims, err := s.tokens.ValidateRefresh(ctx, refreshToken)
	if err != nil {
		return LoginResult{}, err
	}
	u, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		return LoginResult{}, apperror.Internalize(err)
	}
	if u == nil {
		return LoginResult{}, apperror.NotFound("user not found")
	}
	if err := s.tokens.RevokeRefresh(ctx, refreshToken); err != nil {
		return LoginResult{}, err
	}
	sessionID, err := s.engagement.TrackLogin(ctx, claims.UserID, claims.SessionID)
	if err != nil {
		return LoginResult{}, err
	}
	access, refresh, err := s.tokens.IssueTokens(ctx, claims.UserID, sessionID)
	if err != nil {
		return LoginResult{}, apperror.Internalize(err)
	}
	return LoginResult{User: u.Profile(), SessionID: sessionID, AccessToken: access, RefreshToken: refresh}, nil
}

// Logout revokes the refresh token; access tokens simply expire.
func (s *Service) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return apperror.Validation("refresh token is required")
	}
	return s.tokens.RevokeRefresh(ctx, refreshToken)
}

// ValidateSession handles a token-validation event: the user must still
// exist, and the activity is folded into today's session row.
func (s *Service) ValidateSession(ctx context.Context, userID int64, candidateSessionID string) (entity.Profile, string, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return entity.Profile{}, "", apperror.Internalize(err)
	}
	if u == nil {
		return entity.Profile{}, "", apperror.NotFound("user not found")
	}
	sessionID, err := s.engagement.TrackLogin(ctx, userID, candidateSessionID)
	if err != nil {
		return entity.Profile{}, "", err
	}
	return u.Profile(), sessionID, nil
}

// GetProfile returns the public projection for a user.
func (s *Service) GetProfile(ctx context.Context, userID int64) (entity.Profile, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return entity.Profile{}, apperror.Internalize(err)
	}
	if u == nil {
		return entity.Profile{}, apperror.NotFound("user not found")
	}
	return u.Profile(), nil
}
