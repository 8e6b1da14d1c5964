package service

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"stride/internal/db"
	"stride/internal/model"
	"stride/internal/repository"
	"stride/internal/validation"
)

const testPassword = "correct-horse-battery"

func newAuthEnv(t *testing.T) (*AuthService, *sqlx.DB) {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "test.db") + "?_pragma=foreign_keys(1)"
	database, err := db.Init("sqlite", dsn)
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() { database.Close() })

	err = db.RunMigrations(database.DB, "sqlite")
	if err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	emailService := NewEmailService("", "test@example.com", "http://localhost:8090", "Stride", true)
	authService := NewAuthService(
		repository.NewUserRepository(database),
		repository.NewTokenRepository(database),
		emailService,
		"test-secret",
		false,
		time.Hour,
		24*time.Hour,
		time.Hour,
	)

	return authService, database
}

// verificationToken digs the raw token out of the database, standing in for
// the link the user would receive by email.
func verificationToken(t *testing.T, database *sqlx.DB, userID, tokenType string) string {
	t.Helper()
	var token string
	err := database.Get(&token, "SELECT token FROM tokens WHERE user_id = $1 AND type = $2", userID, tokenType)
	if err != nil {
		t.Fatalf("failed to load token: %v", err)
	}
	return token
}

func TestSignUpAndVerifyAndLogin(t *testing.T) {
	svc, database := newAuthEnv(t)

	user, err := svc.SignUp("Alice@Example.com", testPassword, "/app")
	if err != nil {
		t.Fatalf("SignUp: %v", err)
	}
	if user.Email != "alice@example.com" {
		t.Errorf("email = %q, want normalized %q", user.Email, "alice@example.com")
	}

	// Login before verification is refused.
	_, err = svc.Login("alice@example.com", testPassword)
	if !errors.Is(err, ErrEmailNotVerified) {
		t.Fatalf("err = %v, want ErrEmailNotVerified", err)
	}

	token := verificationToken(t, database, user.ID, model.TokenTypeEmailVerify)
	verified, redirectTo, err := svc.VerifyEmail(token)
	if err != nil {
		t.Fatalf("VerifyEmail: %v", err)
	}
	if verified.ID != user.ID {
		t.Errorf("verified user %q, want %q", verified.ID, user.ID)
	}
	if redirectTo != "/app" {
		t.Errorf("redirectTo = %q, want %q", redirectTo, "/app")
	}

	logged, err := svc.Login("alice@example.com", testPassword)
	if err != nil {
		t.Fatalf("Login after verification: %v", err)
	}
	if logged.ID != user.ID {
		t.Errorf("logged in as %q, want %q", logged.ID, user.ID)
	}
}

func TestVerifyEmailTokenIsSingleUse(t *testing.T) {
	svc, database := newAuthEnv(t)

	user, err := svc.SignUp("bob@example.com", testPassword, "")
	if err != nil {
		t.Fatal(err)
	}

	token := verificationToken(t, database, user.ID, model.TokenTypeEmailVerify)
	_, _, err = svc.VerifyEmail(token)
	if err != nil {
		t.Fatalf("first use: %v", err)
	}

	_, _, err = svc.VerifyEmail(token)
	if !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("second use: err = %v, want ErrInvalidToken", err)
	}
}

func TestSignUpRejectsDuplicatesAndWeakPasswords(t *testing.T) {
	svc, _ := newAuthEnv(t)

	_, err := svc.SignUp("carol@example.com", testPassword, "")
	if err != nil {
		t.Fatal(err)
	}

	_, err = svc.SignUp("carol@example.com", testPassword, "")
	if !errors.Is(err, ErrEmailAlreadyExists) {
		t.Fatalf("err = %v, want ErrEmailAlreadyExists", err)
	}

	var vErr validation.Error
	_, err = svc.SignUp("dave@example.com", "short", "")
	if !errors.As(err, &vErr) {
		t.Fatalf("err = %v, want validation.Error", err)
	}

	_, err = svc.SignUp("not-an-email", testPassword, "")
	if !errors.Is(err, ErrInvalidEmail) {
		t.Fatalf("err = %v, want ErrInvalidEmail", err)
	}
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	svc, database := newAuthEnv(t)

	user, err := svc.SignUp("erin@example.com", testPassword, "")
	if err != nil {
		t.Fatal(err)
	}
	token := verificationToken(t, database, user.ID, model.TokenTypeEmailVerify)
	if _, _, err := svc.VerifyEmail(token); err != nil {
		t.Fatal(err)
	}

	_, err = svc.Login("erin@example.com", "wrong-password-here")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("err = %v, want ErrInvalidCredentials", err)
	}

	_, err = svc.Login("nobody@example.com", testPassword)
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("unknown email: err = %v, want ErrInvalidCredentials", err)
	}
}

func TestResetPasswordImplicitlyVerifies(t *testing.T) {
	svc, database := newAuthEnv(t)

	user, err := svc.SignUp("frank@example.com", testPassword, "")
	if err != nil {
		t.Fatal(err)
	}

	err = svc.SendPasswordReset("frank@example.com")
	if err != nil {
		t.Fatalf("SendPasswordReset: %v", err)
	}

	token := verificationToken(t, database, user.ID, model.TokenTypePasswordReset)
	newPassword := "a-brand-new-secret"
	reset, err := svc.ResetPassword(token, newPassword)
	if err != nil {
		t.Fatalf("ResetPassword: %v", err)
	}
	if reset.EmailVerifiedAt == nil {
		t.Error("resetting via email link should mark the address verified")
	}

	// Old password is dead, new one works without separate verification.
	_, err = svc.Login("frank@example.com", testPassword)
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("old password: err = %v, want ErrInvalidCredentials", err)
	}
	if _, err := svc.Login("frank@example.com", newPassword); err != nil {
		t.Fatalf("new password: %v", err)
	}
}

func TestSendPasswordResetHidesUnknownAddresses(t *testing.T) {
	svc, _ := newAuthEnv(t)

	err := svc.SendPasswordReset("ghost@example.com")
	if err != nil {
		t.Fatalf("unknown address must not error: %v", err)
	}
}

func TestJWTRoundTrip(t *testing.T) {
	svc, _ := newAuthEnv(t)

	user := &model.User{ID: "u1", Email: "a@example.com"}
	token, err := svc.GenerateJWT(user)
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}

	claims, err := svc.VerifyJWT(token)
	if err != nil {
		t.Fatalf("VerifyJWT: %v", err)
	}
	if claims["user_id"] != "u1" {
		t.Errorf("user_id claim = %v, want u1", claims["user_id"])
	}

	_, err = svc.VerifyJWT(token + "tampered")
	if err == nil {
		t.Fatal("tampered token must not verify")
	}
}
