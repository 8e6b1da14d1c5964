package service

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"stride/internal/db"
	"stride/internal/model"
	"stride/internal/repository"
)

func newSettingsEnv(t *testing.T) (*SettingsService, string) {
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

	user := &model.User{
		ID:           uuid.New().String(),
		Email:        uuid.New().String() + "@example.com",
		PasswordHash: "x",
		CreatedAt:    time.Now(),
	}
	err = repository.NewUserRepository(database).Create(user)
	if err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}

	return NewSettingsService(repository.NewSettingsRepository(database)), user.ID
}

func TestSettingsDefaultsWhenUnset(t *testing.T) {
	svc, userID := newSettingsEnv(t)

	got, err := svc.ByUser(userID)
	if err != nil {
		t.Fatalf("ByUser: %v", err)
	}

	want := model.DefaultSettings(userID)
	if got.BgColor != want.BgColor || got.BarStyle != want.BarStyle || got.BarHigh != want.BarHigh {
		t.Fatalf("ByUser with no record = %+v, want defaults", got)
	}
}

func TestSettingsUpdateRoundTrip(t *testing.T) {
	svc, userID := newSettingsEnv(t)

	settings := model.DefaultSettings(userID)
	settings.BgColor = "#000000"
	settings.BarStyle = model.BarStyleStriped

	if _, err := svc.Update(userID, settings); err != nil {
		t.Fatalf("Update: %v", err)
	}

	got, err := svc.ByUser(userID)
	if err != nil {
		t.Fatalf("ByUser: %v", err)
	}
	if got.BgColor != "#000000" || got.BarStyle != model.BarStyleStriped {
		t.Fatalf("got %+v after update", got)
	}

	// A second update hits the upsert's conflict path.
	settings.BgColor = "#FFFFFF"
	if _, err := svc.Update(userID, settings); err != nil {
		t.Fatalf("second Update: %v", err)
	}
	got, err = svc.ByUser(userID)
	if err != nil {
		t.Fatal(err)
	}
	if got.BgColor != "#FFFFFF" {
		t.Fatalf("bgColor = %q after second update", got.BgColor)
	}
}

func TestSettingsRejectsUnknownBarStyle(t *testing.T) {
	svc, userID := newSettingsEnv(t)

	settings := model.DefaultSettings(userID)
	settings.BarStyle = "zigzag"

	_, err := svc.Update(userID, settings)
	if !errors.Is(err, ErrInvalidBarStyle) {
		t.Fatalf("err = %v, want ErrInvalidBarStyle", err)
	}
}

func TestSettingsReset(t *testing.T) {
	svc, userID := newSettingsEnv(t)

	settings := model.DefaultSettings(userID)
	settings.FontFamily = "monospace"
	if _, err := svc.Update(userID, settings); err != nil {
		t.Fatal(err)
	}

	got, err := svc.Reset(userID)
	if err != nil {
		t.Fatalf("Reset: %v", err)
	}
	if got.FontFamily != model.DefaultSettings(userID).FontFamily {
		t.Fatalf("fontFamily = %q after reset", got.FontFamily)
	}
}
