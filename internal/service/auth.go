package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"strings"

	"github.com/sunrise-rp/admin-api/config"
	domainauth "github.com/sunrise-rp/admin-api/internal/domain/auth"
	apperrors "github.com/sunrise-rp/admin-api/internal/errors"
	"github.com/sunrise-rp/admin-api/internal/ports"
)

const (
	maxNicknameLen = 50
	maxPasswordLen = 255

	// Credential and privilege rejections share one message so a caller
	// cannot probe which nicknames exist.
	msgInvalidCredentials     = "Invalid credentials"
	msgInsufficientPrivileges = "insufficient privileges"
	msgInvalidToken           = "invalid or expired token"
	msgInvalidCode            = "invalid code"
)

// AuthServiceOptions groups dependencies for AuthService.
type AuthServiceOptions struct {
	Players  ports.PlayerDirectory // Required: credential lookups
	Sessions ports.SessionStore    // Required: session persistence
	Config   config.AuthConfig     // Required: TTLs and admin threshold
	Logger   *slog.Logger          // Optional: structured logger

	// CodeFunc overrides confirmation code generation, useful for tests.
	CodeFunc func() (string, error)
}

// AuthService drives the two-step login flow: password check issues a
// pending session plus a confirmation code, the code check promotes it to
// an active one.
type AuthService struct {
	players  ports.PlayerDirectory
	sessions ports.SessionStore
	config   config.AuthConfig
	logger   *slog.Logger
	codeFunc func() (string, error)
}

// NewAuthService constructs a new AuthService.
func NewAuthService(opts AuthServiceOptions) *AuthService {
	codeFunc := opts.CodeFunc
	if codeFunc == nil {
		codeFunc = generateConfirmationCode
	}
	return &AuthService{
		players:  opts.Players,
		sessions: opts.Sessions,
		config:   opts.Config,
		logger:   opts.Logger,
		codeFunc: codeFunc,
	}
}

// LoginInput groups parameters for the first login step.
type LoginInput struct {
	Nickname string
	Password string
}

// LoginResult contains the pending session token and the confirmation code
// that must come back on the second step. Whether the code is sent to the
// client or only surfaced out of band is the transport layer's call.
type LoginResult struct {
	Token            string
	ConfirmationCode string
}

// Login validates credentials and privilege level, then opens a pending
// session awaiting confirmation. It never grants access by itself.
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*LoginResult, error) {
	nickname := strings.TrimSpace(input.Nickname)
	if nickname == "" {
		return nil, apperrors.Validation("nickname is required")
	}
	if len(nickname) > maxNicknameLen {
		return nil, apperrors.Validationf("nickname must be at most %d characters", maxNicknameLen)
	}
	if input.Password == "" {
		return nil, apperrors.Validation("password is required")
	}
	if len(input.Password) > maxPasswordLen {
		return nil, apperrors.Validationf("password must be at most %d characters", maxPasswordLen)
	}

	player, err := s.players.FindByNickname(ctx, nickname)
	if err != nil {
		if errors.Is(err, ports.ErrPlayerNotFound) {
			return nil, apperrors.Rejected(msgInvalidCredentials)
		}
		return nil, apperrors.Wrap(err, apperrors.ErrCodeInternal, "look up player")
	}

	if player.Password != input.Password {
		return nil, apperrors.Rejected(msgInvalidCredentials)
	}
	if player.AdminLevel <= s.config.AdminLevelThreshold {
		return nil, apperrors.Rejected(msgInsufficientPrivileges)
	}

	code, err := s.codeFunc()
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeInternal, "generate confirmation code")
	}

	token, err := s.sessions.Create(ctx, ports.CreateSessionParams{
		Identity: domainauth.Identity{
			Nickname:   player.Nickname,
			AdminLevel: player.AdminLevel,
		},
		Phase:            domainauth.PhasePending,
		TTL:              s.config.PendingTTL,
		ConfirmationCode: code,
	})
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeInternal, "create pending session")
	}

	if s.logger != nil {
		s.logger.InfoContext(ctx, "pending session opened",
			"nickname", player.Nickname,
			"pending_ttl", s.config.PendingTTL,
		)
	}

	return &LoginResult{Token: token, ConfirmationCode: code}, nil
}

// ConfirmInput groups parameters for the second login step.
type ConfirmInput struct {
	Token string
	Code  string
}

// ConfirmResult contains the active session issued on successful
// confirmation. The pending token it replaced is gone.
type ConfirmResult struct {
	Token    string
	Identity domainauth.Identity
}

// Confirm checks the confirmation code against the pending session and, on
// a match, promotes it to an active session under a fresh token. A wrong
// code leaves the pending session in place so the caller can retry until
// it expires.
func (s *AuthService) Confirm(ctx context.Context, input ConfirmInput) (*ConfirmResult, error) {
	if input.Token == "" || input.Code == "" {
		return nil, apperrors.Validation("token and code are required")
	}

	sess, err := s.sessions.Get(ctx, input.Token)
	if err != nil {
		if errors.Is(err, ports.ErrSessionNotFound) {
			return nil, apperrors.Rejected(msgInvalidToken)
		}
		return nil, apperrors.Wrap(err, apperrors.ErrCodeInternal, "get session")
	}

	// An already-active token has nothing to confirm.
	if !sess.IsPending() {
		return nil, apperrors.Rejected(msgInvalidToken)
	}
	if sess.ConfirmationCode != input.Code {
		return nil, apperrors.Rejected(msgInvalidCode)
	}

	active, err := s.sessions.Promote(ctx, input.Token, s.config.SessionTTL)
	if err != nil {
		if errors.Is(err, ports.ErrSessionNotFound) {
			// Lost a race with expiry or a concurrent confirm.
			return nil, apperrors.Rejected(msgInvalidToken)
		}
		return nil, apperrors.Wrap(err, apperrors.ErrCodeInternal, "promote session")
	}

	if s.logger != nil {
		s.logger.InfoContext(ctx, "session confirmed",
			"nickname", active.Identity.Nickname,
			"session_ttl", s.config.SessionTTL,
		)
	}

	return &ConfirmResult{Token: active.Token, Identity: active.Identity}, nil
}

// Logout removes the session for token. Unknown and already-expired tokens
// log out successfully; there is nothing useful to report about them.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	if err := s.sessions.Delete(ctx, token); err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeInternal, "delete session")
	}
	return nil
}

// Verify resolves token to an active session and slides its expiry forward
// by the full session TTL. Pending sessions never pass verification.
func (s *AuthService) Verify(ctx context.Context, token string) (*domainauth.Session, error) {
	if token == "" {
		return nil, apperrors.Unauthorized(msgInvalidToken)
	}

	sess, err := s.sessions.Get(ctx, token)
	if err != nil {
		if errors.Is(err, ports.ErrSessionNotFound) {
			return nil, apperrors.Unauthorized(msgInvalidToken)
		}
		return nil, apperrors.Wrap(err, apperrors.ErrCodeInternal, "get session")
	}
	if sess.IsPending() {
		return nil, apperrors.Unauthorized(msgInvalidToken)
	}

	if err := s.sessions.Extend(ctx, token, s.config.SessionTTL); err != nil {
		if errors.Is(err, ports.ErrSessionNotFound) {
			// Expired between the read and the extend.
			return nil, apperrors.Unauthorized(msgInvalidToken)
		}
		return nil, apperrors.Wrap(err, apperrors.ErrCodeInternal, "extend session")
	}

	return &sess, nil
}

// generateConfirmationCode draws a uniform 6-digit code from crypto/rand.
func generateConfirmationCode() (string, error) {
	const codeRange = 900000 // [100000, 999999]
	n, err := rand.Int(rand.Reader, big.NewInt(codeRange))
	if err != nil {
		return "", fmt.Errorf("read random: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}
