package service

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sunrise-rp/admin-api/config"
	"github.com/sunrise-rp/admin-api/internal/adapters/memstore"
	domainauth "github.com/sunrise-rp/admin-api/internal/domain/auth"
	"github.com/sunrise-rp/admin-api/internal/domain/model"
	apperrors "github.com/sunrise-rp/admin-api/internal/errors"
	mocks "github.com/sunrise-rp/admin-api/internal/mocks/auth"
	"github.com/sunrise-rp/admin-api/internal/ports"
)

type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type authFixture struct {
	service *AuthService
	store   *memstore.Store
	players *mocks.MemoryPlayerDirectory
	clock   *testClock
}

func testAuthConfig() config.AuthConfig {
	return config.AuthConfig{
		AdminLevelThreshold: 7,
		PendingTTL:          5 * time.Minute,
		SessionTTL:          10 * time.Minute,
	}
}

func newAuthFixture(t *testing.T, players ...*model.Player) *authFixture {
	t.Helper()

	clock := &testClock{now: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	store := memstore.New(memstore.WithNowFunc(clock.Now))
	directory := mocks.NewMemoryPlayerDirectory(players...)

	service := NewAuthService(AuthServiceOptions{
		Players:  directory,
		Sessions: store,
		Config:   testAuthConfig(),
	})

	return &authFixture{
		service: service,
		store:   store,
		players: directory,
		clock:   clock,
	}
}

func adminPlayer() *model.Player {
	return &model.Player{Nickname: "alice", Password: "hunter2", AdminLevel: 9}
}

func TestAuthService_Login_Success(t *testing.T) {
	f := newAuthFixture(t, adminPlayer())
	ctx := context.Background()

	result, err := f.service.Login(ctx, LoginInput{Nickname: "alice", Password: "hunter2"})

	require.NoError(t, err)
	require.NotEmpty(t, result.Token)
	require.Len(t, result.ConfirmationCode, 6)
	code, convErr := strconv.Atoi(result.ConfirmationCode)
	require.NoError(t, convErr)
	assert.GreaterOrEqual(t, code, 100000)
	assert.LessOrEqual(t, code, 999999)

	sess, err := f.store.Get(ctx, result.Token)
	require.NoError(t, err)
	assert.True(t, sess.IsPending())
	assert.Equal(t, "alice", sess.Identity.Nickname)
	assert.Equal(t, 9, sess.Identity.AdminLevel)
}

func TestAuthService_Login_TrimsNickname(t *testing.T) {
	f := newAuthFixture(t, adminPlayer())

	result, err := f.service.Login(context.Background(),
		LoginInput{Nickname: "  alice  ", Password: "hunter2"})

	require.NoError(t, err)
	assert.NotEmpty(t, result.Token)
}

func TestAuthService_Login_Validation(t *testing.T) {
	f := newAuthFixture(t, adminPlayer())
	ctx := context.Background()

	tests := []struct {
		name  string
		input LoginInput
	}{
		{"empty nickname", LoginInput{Nickname: "", Password: "x"}},
		{"whitespace nickname", LoginInput{Nickname: "   ", Password: "x"}},
		{"nickname too long", LoginInput{Nickname: strings.Repeat("a", 51), Password: "x"}},
		{"empty password", LoginInput{Nickname: "alice", Password: ""}},
		{"password too long", LoginInput{Nickname: "alice", Password: strings.Repeat("p", 256)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := f.service.Login(ctx, tt.input)
			require.Error(t, err)
			assert.Nil(t, result)
			assert.True(t, apperrors.IsValidation(err))
		})
	}
}

func TestAuthService_Login_RejectionsAreIndistinguishable(t *testing.T) {
	f := newAuthFixture(t, adminPlayer())
	ctx := context.Background()

	_, unknownErr := f.service.Login(ctx, LoginInput{Nickname: "mallory", Password: "hunter2"})
	_, wrongPassErr := f.service.Login(ctx, LoginInput{Nickname: "alice", Password: "wrong"})

	require.Error(t, unknownErr)
	require.Error(t, wrongPassErr)
	assert.True(t, apperrors.IsRejected(unknownErr))
	assert.True(t, apperrors.IsRejected(wrongPassErr))
	// Same message for both so nickname existence cannot be probed.
	assert.Equal(t, unknownErr.Error(), wrongPassErr.Error())
}

func TestAuthService_Login_AdminLevelThreshold(t *testing.T) {
	f := newAuthFixture(t,
		&model.Player{Nickname: "bob", Password: "pw", AdminLevel: 7},
		&model.Player{Nickname: "carl", Password: "pw", AdminLevel: 8},
		&model.Player{Nickname: "dave", Password: "pw", AdminLevel: 0},
	)
	ctx := context.Background()

	// Exactly at the threshold is not enough.
	_, err := f.service.Login(ctx, LoginInput{Nickname: "bob", Password: "pw"})
	require.Error(t, err)
	assert.True(t, apperrors.IsRejected(err))
	assert.Contains(t, err.Error(), "insufficient privileges")

	_, err = f.service.Login(ctx, LoginInput{Nickname: "dave", Password: "pw"})
	require.Error(t, err)
	assert.True(t, apperrors.IsRejected(err))

	// One above the threshold passes.
	result, err := f.service.Login(ctx, LoginInput{Nickname: "carl", Password: "pw"})
	require.NoError(t, err)
	assert.NotEmpty(t, result.Token)
}

func TestAuthService_Login_DirectoryError(t *testing.T) {
	f := newAuthFixture(t, adminPlayer())
	f.players.Err = errors.New("connection refused")

	_, err := f.service.Login(context.Background(),
		LoginInput{Nickname: "alice", Password: "hunter2"})

	require.Error(t, err)
	assert.True(t, apperrors.IsInternal(err))
}

func TestAuthService_Confirm_PromotesSession(t *testing.T) {
	f := newAuthFixture(t, adminPlayer())
	ctx := context.Background()

	login, err := f.service.Login(ctx, LoginInput{Nickname: "alice", Password: "hunter2"})
	require.NoError(t, err)

	confirm, err := f.service.Confirm(ctx, ConfirmInput{
		Token: login.Token,
		Code:  login.ConfirmationCode,
	})
	require.NoError(t, err)
	assert.NotEqual(t, login.Token, confirm.Token)
	assert.Equal(t, "alice", confirm.Identity.Nickname)

	// The pending token died with the promotion.
	_, err = f.service.Verify(ctx, login.Token)
	require.Error(t, err)
	assert.True(t, apperrors.IsUnauthorized(err))

	sess, err := f.service.Verify(ctx, confirm.Token)
	require.NoError(t, err)
	assert.False(t, sess.IsPending())
}

func TestAuthService_Confirm_WrongCodeAllowsRetry(t *testing.T) {
	f := newAuthFixture(t, adminPlayer())
	ctx := context.Background()

	login, err := f.service.Login(ctx, LoginInput{Nickname: "alice", Password: "hunter2"})
	require.NoError(t, err)

	wrongCode := "000000"
	if wrongCode == login.ConfirmationCode {
		wrongCode = "000001"
	}

	_, err = f.service.Confirm(ctx, ConfirmInput{Token: login.Token, Code: wrongCode})
	require.Error(t, err)
	assert.True(t, apperrors.IsRejected(err))
	assert.Contains(t, err.Error(), "invalid code")

	// The pending session survives a wrong guess.
	confirm, err := f.service.Confirm(ctx, ConfirmInput{
		Token: login.Token,
		Code:  login.ConfirmationCode,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, confirm.Token)
}

func TestAuthService_Confirm_RejectsBadTokens(t *testing.T) {
	f := newAuthFixture(t, adminPlayer())
	ctx := context.Background()

	t.Run("unknown token", func(t *testing.T) {
		_, err := f.service.Confirm(ctx, ConfirmInput{Token: "no-such-token", Code: "123456"})
		require.Error(t, err)
		assert.True(t, apperrors.IsRejected(err))
		assert.Contains(t, err.Error(), "invalid or expired token")
	})

	t.Run("expired pending token", func(t *testing.T) {
		login, err := f.service.Login(ctx, LoginInput{Nickname: "alice", Password: "hunter2"})
		require.NoError(t, err)

		f.clock.Advance(5*time.Minute + time.Second)

		_, err = f.service.Confirm(ctx, ConfirmInput{
			Token: login.Token,
			Code:  login.ConfirmationCode,
		})
		require.Error(t, err)
		assert.True(t, apperrors.IsRejected(err))
	})

	t.Run("active token is not confirmable", func(t *testing.T) {
		login, err := f.service.Login(ctx, LoginInput{Nickname: "alice", Password: "hunter2"})
		require.NoError(t, err)
		confirm, err := f.service.Confirm(ctx, ConfirmInput{
			Token: login.Token,
			Code:  login.ConfirmationCode,
		})
		require.NoError(t, err)

		_, err = f.service.Confirm(ctx, ConfirmInput{Token: confirm.Token, Code: "123456"})
		require.Error(t, err)
		assert.True(t, apperrors.IsRejected(err))
	})

	t.Run("missing fields", func(t *testing.T) {
		_, err := f.service.Confirm(ctx, ConfirmInput{Token: "", Code: "123456"})
		assert.True(t, apperrors.IsValidation(err))
		_, err = f.service.Confirm(ctx, ConfirmInput{Token: "x", Code: ""})
		assert.True(t, apperrors.IsValidation(err))
	})
}

func TestAuthService_Verify_PendingNeverGrantsAccess(t *testing.T) {
	f := newAuthFixture(t, adminPlayer())
	ctx := context.Background()

	login, err := f.service.Login(ctx, LoginInput{Nickname: "alice", Password: "hunter2"})
	require.NoError(t, err)

	_, err = f.service.Verify(ctx, login.Token)
	require.Error(t, err)
	assert.True(t, apperrors.IsUnauthorized(err))
}

func TestAuthService_Verify_SlidingExpiration(t *testing.T) {
	f := newAuthFixture(t, adminPlayer())
	ctx := context.Background()

	login, err := f.service.Login(ctx, LoginInput{Nickname: "alice", Password: "hunter2"})
	require.NoError(t, err)
	confirm, err := f.service.Confirm(ctx, ConfirmInput{
		Token: login.Token,
		Code:  login.ConfirmationCode,
	})
	require.NoError(t, err)

	// Each verify lands just inside the window and pushes it forward, so
	// the session stays alive well past its original expiry.
	for range 3 {
		f.clock.Advance(10*time.Minute - time.Second)
		_, err = f.service.Verify(ctx, confirm.Token)
		require.NoError(t, err)
	}

	// Left untouched past the full TTL the session lapses.
	f.clock.Advance(10*time.Minute + time.Second)
	_, err = f.service.Verify(ctx, confirm.Token)
	require.Error(t, err)
	assert.True(t, apperrors.IsUnauthorized(err))
}

func TestAuthService_Verify_EmptyToken(t *testing.T) {
	f := newAuthFixture(t, adminPlayer())

	_, err := f.service.Verify(context.Background(), "")
	require.Error(t, err)
	assert.True(t, apperrors.IsUnauthorized(err))
}

func TestAuthService_Logout(t *testing.T) {
	f := newAuthFixture(t, adminPlayer())
	ctx := context.Background()

	login, err := f.service.Login(ctx, LoginInput{Nickname: "alice", Password: "hunter2"})
	require.NoError(t, err)
	confirm, err := f.service.Confirm(ctx, ConfirmInput{
		Token: login.Token,
		Code:  login.ConfirmationCode,
	})
	require.NoError(t, err)

	require.NoError(t, f.service.Logout(ctx, confirm.Token))

	_, err = f.service.Verify(ctx, confirm.Token)
	require.Error(t, err)
	assert.True(t, apperrors.IsUnauthorized(err))

	// Logging out again, or with garbage, still succeeds.
	require.NoError(t, f.service.Logout(ctx, confirm.Token))
	require.NoError(t, f.service.Logout(ctx, "never-existed"))
	require.NoError(t, f.service.Logout(ctx, ""))
}

func TestAuthService_CodeFuncInjection(t *testing.T) {
	clock := &testClock{now: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	store := memstore.New(memstore.WithNowFunc(clock.Now))
	service := NewAuthService(AuthServiceOptions{
		Players:  mocks.NewMemoryPlayerDirectory(adminPlayer()),
		Sessions: store,
		Config:   testAuthConfig(),
		CodeFunc: func() (string, error) { return "424242", nil },
	})

	result, err := service.Login(context.Background(),
		LoginInput{Nickname: "alice", Password: "hunter2"})

	require.NoError(t, err)
	assert.Equal(t, "424242", result.ConfirmationCode)
}

func TestGenerateConfirmationCode_Range(t *testing.T) {
	for range 200 {
		code, err := generateConfirmationCode()
		require.NoError(t, err)
		require.Len(t, code, 6)
		n, convErr := strconv.Atoi(code)
		require.NoError(t, convErr)
		assert.GreaterOrEqual(t, n, 100000)
		assert.LessOrEqual(t, n, 999999)
	}
}

// errorSessionStore fails every operation, for exercising internal error paths.
type errorSessionStore struct{ err error }

func (s *errorSessionStore) Create(context.Context, ports.CreateSessionParams) (string, error) {
	return "", s.err
}

func (s *errorSessionStore) Get(context.Context, string) (domainauth.Session, error) {
	return domainauth.Session{}, s.err
}

func (s *errorSessionStore) Extend(context.Context, string, time.Duration) error {
	return s.err
}

func (s *errorSessionStore) Promote(context.Context, string, time.Duration) (domainauth.Session, error) {
	return domainauth.Session{}, s.err
}

func (s *errorSessionStore) Delete(context.Context, string) error { return s.err }

func (s *errorSessionStore) SweepExpired(context.Context, time.Time) (int, error) {
	return 0, s.err
}

func TestAuthService_StoreErrorsAreInternal(t *testing.T) {
	service := NewAuthService(AuthServiceOptions{
		Players:  mocks.NewMemoryPlayerDirectory(adminPlayer()),
		Sessions: &errorSessionStore{err: errors.New("store down")},
		Config:   testAuthConfig(),
	})
	ctx := context.Background()

	_, err := service.Login(ctx, LoginInput{Nickname: "alice", Password: "hunter2"})
	require.Error(t, err)
	assert.True(t, apperrors.IsInternal(err))

	_, err = service.Verify(ctx, "some-token")
	require.Error(t, err)
	assert.True(t, apperrors.IsInternal(err))

	err = service.Logout(ctx, "some-token")
	require.Error(t, err)
	assert.True(t, apperrors.IsInternal(err))
}
