package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"stride/internal/ctxkeys"
	"stride/internal/service"
	"stride/internal/validation"
)

type AuthHandler struct {
	authService *service.AuthService
	userService *service.UserService
}

func NewAuthHandler(authService *service.AuthService, userService *service.UserService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		userService: userService,
	}
}

// writeAuthError maps auth errors to API status codes. Validation failures
// carry their message through; everything unknown becomes a generic 500.
func writeAuthError(w http.ResponseWriter, err error) {
	var vErr validation.Error
	switch {
	case errors.Is(err, service.ErrEmailAlreadyExists):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, service.ErrEmailNotVerified):
		writeError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, service.ErrInvalidToken):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrInvalidEmail), errors.As(err, &vErr):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	default:
		slog.Error("auth operation failed", "error", err)
		writeError(w, http.StatusInternalServerError, "something went wrong")
	}
}

func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email      string `json:"email"`
		Password   string `json:"password"`
		RedirectTo string `json:"redirectTo"`
	}
	err := decodeJSON(r, &req)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := h.authService.SignUp(req.Email, req.Password, req.RedirectTo)
	if err != nil {
		writeAuthError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"user":    user,
		"message": "check your email to verify your account",
	})
}

// VerifyEmail is the target of the link in the verification email. On
// success it logs the user in and redirects to the target captured at
// signup.
func (h *AuthHandler) VerifyEmail(w http.ResponseWriter, r *http.Request) {
	token := r.PathValue("token")

	user, redirectTo, err := h.authService.VerifyEmail(token)
	if err != nil {
		http.Redirect(w, r, "/auth?error=invalid_token", http.StatusSeeOther)
		return
	}

	jwtToken, err := h.authService.GenerateJWT(user)
	if err != nil {
		slog.Error("failed to generate jwt after verification", "error", err, "user_id", user.ID)
		http.Redirect(w, r, "/auth", http.StatusSeeOther)
		return
	}
	h.authService.SetJWTCookie(w, jwtToken, time.Now().Add(h.authService.JWTExpiry()))

	if redirectTo == "" {
		redirectTo = "/"
	}
	http.Redirect(w, r, redirectTo, http.StatusSeeOther)
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	err := decodeJSON(r, &req)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := h.authService.Login(req.Email, req.Password)
	if err != nil {
		writeAuthError(w, err)
		return
	}

	token, err := h.authService.GenerateJWT(user)
	if err != nil {
		slog.Error("failed to generate jwt", "error", err, "user_id", user.ID)
		writeError(w, http.StatusInternalServerError, "something went wrong")
		return
	}
	h.authService.SetJWTCookie(w, token, time.Now().Add(h.authService.JWTExpiry()))

	writeJSON(w, http.StatusOK, map[string]any{"user": user})
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.authService.ClearJWTCookie(w)
	writeJSON(w, http.StatusOK, map[string]string{"message": "logged out"})
}

// Me returns the authenticated user. Without a valid session cookie the
// route's auth guard answers 401; the client uses that at startup to decide
// between the app and the auth screen.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())
	writeJSON(w, http.StatusOK, map[string]any{"user": user})
}

func (h *AuthHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
	}
	err := decodeJSON(r, &req)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	err = h.authService.SendPasswordReset(req.Email)
	if err != nil {
		slog.Error("failed to send password reset", "error", err)
	}

	// Always the same answer so the endpoint can't be used to probe for
	// registered addresses.
	writeJSON(w, http.StatusOK, map[string]string{
		"message": "if that address has an account, a reset link is on its way",
	})
}

func (h *AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Token    string `json:"token"`
		Password string `json:"password"`
	}
	err := decodeJSON(r, &req)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := h.authService.ResetPassword(req.Token, req.Password)
	if err != nil {
		writeAuthError(w, err)
		return
	}

	token, err := h.authService.GenerateJWT(user)
	if err != nil {
		slog.Error("failed to generate jwt after reset", "error", err, "user_id", user.ID)
		writeError(w, http.StatusInternalServerError, "something went wrong")
		return
	}
	h.authService.SetJWTCookie(w, token, time.Now().Add(h.authService.JWTExpiry()))

	writeJSON(w, http.StatusOK, map[string]any{"user": user})
}

// DeleteAccount removes the user and, via foreign keys, all of their goals,
// steps, tokens and settings.
func (h *AuthHandler) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	err := h.userService.Delete(user.ID)
	if err != nil {
		slog.Error("failed to delete account", "error", err, "user_id", user.ID)
		writeError(w, http.StatusInternalServerError, "something went wrong")
		return
	}

	h.authService.ClearJWTCookie(w)
	w.WriteHeader(http.StatusNoContent)
}
