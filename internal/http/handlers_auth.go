package httpx

import (
	"context"
	"log/slog"
	"net/http"

	domainauth "github.com/sunrise-rp/admin-api/internal/domain/auth"
	apperrors "github.com/sunrise-rp/admin-api/internal/errors"
	"github.com/sunrise-rp/admin-api/internal/service"
)

// AuthServiceInterface defines the interface for auth service operations.
type AuthServiceInterface interface {
	Login(ctx context.Context, input service.LoginInput) (*service.LoginResult, error)
	Confirm(ctx context.Context, input service.ConfirmInput) (*service.ConfirmResult, error)
	Logout(ctx context.Context, token string) error
	Verify(ctx context.Context, token string) (*domainauth.Session, error)
}

// AuthHandlers provides HTTP handlers for the two-step login flow.
type AuthHandlers struct {
	Svc AuthServiceInterface
	// ExposeConfirmationCode puts the confirmation code in the login
	// response. Test environments only.
	ExposeConfirmationCode bool
	Logger                 *slog.Logger
}

func (h *AuthHandlers) logger() *slog.Logger {
	if h != nil && h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

// Login handles the first login step.
// POST /api/login with {"nickname": ..., "password": ...}.
func (h *AuthHandlers) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Nickname string `json:"nickname"`
		Password string `json:"password"`
	}
	if !DecodeJSON(w, r, &req) {
		return
	}

	result, err := h.Svc.Login(r.Context(), service.LoginInput{
		Nickname: req.Nickname,
		Password: req.Password,
	})
	if err != nil {
		WriteAppError(w, err)
		return
	}

	payload := map[string]any{
		"requireConfirmation": true,
		"tempToken":           result.Token,
	}
	if h.ExposeConfirmationCode {
		payload["code"] = result.ConfirmationCode
	} else {
		// Operators read the code from the server log and pass it to the
		// admin out of band.
		h.logger().InfoContext(r.Context(), "confirmation code issued",
			"code", result.ConfirmationCode)
	}
	WriteSuccess(w, payload)
}

// Confirm handles the second login step.
// POST /api/confirm with {"tempToken": ..., "code": ...}.
func (h *AuthHandlers) Confirm(w http.ResponseWriter, r *http.Request) {
	var req struct {
		TempToken string `json:"tempToken"`
		Code      string `json:"code"`
	}
	if !DecodeJSON(w, r, &req) {
		return
	}

	result, err := h.Svc.Confirm(r.Context(), service.ConfirmInput{
		Token: req.TempToken,
		Code:  req.Code,
	})
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteSuccess(w, map[string]any{
		"token": result.Token,
		"user":  result.Identity,
	})
}

// Logout invalidates the bearer session.
// POST /api/logout. Always succeeds, even for unknown tokens.
func (h *AuthHandlers) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.Svc.Logout(r.Context(), BearerToken(r)); err != nil {
		WriteAppError(w, err)
		return
	}
	WriteSuccess(w, nil)
}

// Verify reports whether the bearer session is active, sliding its expiry
// forward when it is.
// GET /api/verify. An invalid token is a valid answer, not an error.
func (h *AuthHandlers) Verify(w http.ResponseWriter, r *http.Request) {
	session, err := h.Svc.Verify(r.Context(), BearerToken(r))
	if err != nil {
		if apperrors.IsUnauthorized(err) {
			WriteJSON(w, http.StatusOK, map[string]any{
				"success": false,
				"valid":   false,
			})
			return
		}
		WriteAppError(w, err)
		return
	}

	WriteSuccess(w, map[string]any{
		"valid": true,
		"user":  session.Identity,
	})
}
