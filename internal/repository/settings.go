package repository

import (
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"stride/internal/model"
)

var (
	ErrSettingsNotFound = errors.New("settings not found")
)

type SettingsRepository interface {
	ByUser(userID string) (*model.Settings, error)
	Upsert(settings *model.Settings) error
}

type settingsRepository struct {
	db *sqlx.DB
}

func NewSettingsRepository(db *sqlx.DB) SettingsRepository {
	return &settingsRepository{db: db}
}

func (r *settingsRepository) ByUser(userID string) (*model.Settings, error) {
	settings := &model.Settings{}
	query := `SELECT * FROM settings WHERE user_id = $1`

	err := r.db.Get(settings, query, userID)
	if err == sql.ErrNoRows {
		return nil, ErrSettingsNotFound
	}

	return settings, err
}

func (r *settingsRepository) Upsert(settings *model.Settings) error {
	settings.UpdatedAt = time.Now()

	query := `
		INSERT INTO settings (user_id, bg_color, card_color, text_color, btn_color, btn_text_color,
		                      bar_low, bar_mid, bar_high, font_family, bar_style, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (user_id) DO UPDATE SET
		  bg_color = excluded.bg_color, card_color = excluded.card_color,
		  text_color = excluded.text_color, btn_color = excluded.btn_color,
		  btn_text_color = excluded.btn_text_color, bar_low = excluded.bar_low,
		  bar_mid = excluded.bar_mid, bar_high = excluded.bar_high,
		  font_family = excluded.font_family, bar_style = excluded.bar_style,
		  updated_at = excluded.updated_at
	`

	_, err := r.db.Exec(query,
		settings.UserID,
		settings.BgColor,
		settings.CardColor,
		settings.TextColor,
		settings.BtnColor,
		settings.BtnTextColor,
		settings.BarLow,
		settings.BarMid,
		settings.BarHigh,
		settings.FontFamily,
		settings.BarStyle,
		settings.UpdatedAt,
	)
	return err
}
