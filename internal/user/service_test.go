package user

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/ProjetosBerg/Projeto-X-Backend-sub001/internal/auth"
	"github.com/ProjetosBerg/Projeto-X-Backend-sub001/internal/user/entity"
	"github.com/ProjetosBerg/Projeto-X-Backend-sub001/pkg/apperror"
)

type fakeUserStore struct {
	users  map[int64]*entity.User
	nextID int64
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: map[int64]*entity.User{}, nextID: 1}
}

func (f *fakeUserStore) Create(_ context.Context, u *entity.User) (int64, error) {
	u.ID = f.nextID
	f.nextID++
	cp := *u
	f.users[u.ID] = &cp
	return u.ID, nil
}

func (f *fakeUserStore) GetByLogin(_ context.Context, login string) (*entity.User, error) {
	for _, u := range f.users {
		if u.Login == login {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeUserStore) GetByID(_ context.Context, id int64) (*entity.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUserStore) ExistsByLoginOrEmail(_ context.Context, login, email string) (bool, error) {
	for _, u := range f.users {
		if u.Login == login || u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

type fakeTracker struct {
	calls      []string
	sessionID  string
	lastUserID int64
}

func (f *fakeTracker) TrackLogin(_ context.Context, userID int64, candidateSessionID string) (string, error) {
	f.calls = append(f.calls, candidateSessionID)
	f.lastUserID = userID
	if candidateSessionID != "" {
		return candidateSessionID, nil
	}
	return f.sessionID, nil
}

type fakeIssuer struct {
	lastSessionID string
	refreshTokens map[string]auth.Claims
}

func (f *fakeIssuer) IssueTokens(_ context.Context, userID int64, sessionID string) (string, string, error) {
	f.lastSessionID = sessionID
	if f.refreshTokens == nil {
		f.refreshTokens = map[string]auth.Claims{}
	}
	f.refreshTokens["refresh-token"] = auth.Claims{UserID: userID, SessionID: sessionID}
	return "access-token", "refresh-token", nil
}

func (f *fakeIssuer) ValidateRefresh(_ context.Context, token string) (auth.Claims, error) {
	claims, ok := f.refreshTokens[token]
	if !ok {
		return auth.Claims{}, apperror.BusinessRule("stale or invalid credential")
	}
	return claims, nil
}

func (f *fakeIssuer) RevokeRefresh(_ context.Context, token string) error {
	delete(f.refreshTokens, token)
	return nil
}

func seedUser(t *testing.T, store *fakeUserStore, login, password string) *entity.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	u := &entity.User{Name: "Berg", Login: login, Email: login + "@example.com", PasswordHash: string(hash)}
	_, err = store.Create(context.Background(), u)
	require.NoError(t, err)
	return u
}

func TestSignup(t *testing.T) {
	store := newFakeUserStore()
	svc := NewService(store, &fakeTracker{}, &fakeIssuer{}, zap.NewNop().Sugar())

	profile, err := svc.Signup(context.Background(), "Berg", "berg", "Berg@Example.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, "berg", profile.Login)
	assert.Equal(t, "berg@example.com", profile.Email, "email is normalized to lower case")

	stored, err := store.GetByLogin(context.Background(), "berg")
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.NotEqual(t, "secret1", stored.PasswordHash)
}

func TestSignupRejectsDuplicates(t *testing.T) {
	store := newFakeUserStore()
	seedUser(t, store, "berg", "secret1")
	svc := NewService(store, &fakeTracker{}, &fakeIssuer{}, zap.NewNop().Sugar())

	_, err := svc.Signup(context.Background(), "Other", "berg", "other@example.com", "secret1")
	assert.True(t, apperror.Is(err, apperror.KindBusinessRule))
}

func TestSignupValidation(t *testing.T) {
	svc := NewService(newFakeUserStore(), &fakeTracker{}, &fakeIssuer{}, zap.NewNop().Sugar())

	_, err := svc.Signup(context.Background(), "", "berg", "b@example.com", "secret1")
	assert.True(t, apperror.Is(err, apperror.KindValidation))

	_, err = svc.Signup(context.Background(), "Berg", "berg", "not-an-email", "secret1")
	assert.True(t, apperror.Is(err, apperror.KindValidation))

	_, err = svc.Signup(context.Background(), "Berg", "berg", "b@example.com", "short")
	assert.True(t, apperror.Is(err, apperror.KindValidation))
}

func TestLoginTracksSessionAndIssuesTokens(t *testing.T) {
	store := newFakeUserStore()
	u := seedUser(t, store, "berg", "secret1")
	tracker := &fakeTracker{sessionID: "sess-xyz"}
	issuer := &fakeIssuer{}
	svc := NewService(store, tracker, issuer, zap.NewNop().Sugar())

	result, err := svc.Login(context.Background(), "berg", "secret1")
	require.NoError(t, err)

	assert.Equal(t, u.ID, tracker.lastUserID)
	assert.Equal(t, "sess-xyz", result.SessionID)
	assert.Equal(t, "sess-xyz", issuer.lastSessionID, "tokens carry the effective session id")
	assert.Equal(t, "access-token", result.AccessToken)
	assert.Equal(t, "refresh-token", result.RefreshToken)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	store := newFakeUserStore()
	seedUser(t, store, "berg", "secret1")
	svc := NewService(store, &fakeTracker{}, &fakeIssuer{}, zap.NewNop().Sugar())

	_, err := svc.Login(context.Background(), "berg", "wrong")
	assert.True(t, apperror.Is(err, apperror.KindBusinessRule))

	_, err = svc.Login(context.Background(), "nobody", "secret1")
	assert.True(t, apperror.Is(err, apperror.KindBusinessRule))
}

func TestValidateSessionHandsBackCandidate(t *testing.T) {
	store := newFakeUserStore()
	u := seedUser(t, store, "berg", "secret1")
	tracker := &fakeTracker{sessionID: "fresh"}
	svc := NewService(store, tracker, &fakeIssuer{}, zap.NewNop().Sugar())

	profile, sessionID, err := svc.ValidateSession(context.Background(), u.ID, "sess-known")
	require.NoError(t, err)
	assert.Equal(t, u.Login, profile.Login)
	assert.Equal(t, "sess-known", sessionID)
	assert.Equal(t, []string{"sess-known"}, tracker.calls)
}

func TestRefreshRotatesToken(t *testing.T) {
	store := newFakeUserStore()
	seedUser(t, store, "berg", "secret1")
	tracker := &fakeTracker{sessionID: "sess-xyz"}
	issuer := &fakeIssuer{}
	svc := NewService(store, tracker, issuer, zap.NewNop().Sugar())

	first, err := svc.Login(context.Background(), "berg", "secret1")
	require.NoError(t, err)

	result, err := svc.Refresh(context.Background(), first.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, "sess-xyz", result.SessionID)
	assert.Equal(t, []string{"", "sess-xyz"}, tracker.calls, "refresh hands the bound session id back to the tracker")
}

func TestRefreshRejectsUnknownToken(t *testing.T) {
	store := newFakeUserStore()
	seedUser(t, store, "berg", "secret1")
	svc := NewService(store, &fakeTracker{}, &fakeIssuer{}, zap.NewNop().Sugar())

	_, err := svc.Refresh(context.Background(), "never-issued")
	assert.True(t, apperror.Is(err, apperror.KindBusinessRule))
}

func TestLogoutRevokesRefreshToken(t *testing.T) {
	store := newFakeUserStore()
	seedUser(t, store, "berg", "secret1")
	issuer := &fakeIssuer{}
	svc := NewService(store, &fakeTracker{sessionID: "s"}, issuer, zap.NewNop().Sugar())

	first, err := svc.Login(context.Background(), "berg", "secret1")
	require.NoError(t, err)

	require.NoError(t, svc.Logout(context.Background(), first.RefreshToken))
	_, err = svc.Refresh(context.Background(), first.RefreshToken)
	assert.True(t, apperror.Is(err, apperror.KindBusinessRule))
}

func TestValidateSessionUnknownUser(t *testing.T) {
	svc := NewService(newFakeUserStore(), &fakeTracker{}, &fakeIssuer{}, zap.NewNop().Sugar())

	_, _, err := svc.ValidateSession(context.Background(), 42, "")
	assert.True(t, apperror.Is(err, apperror.KindNotFound))
}
