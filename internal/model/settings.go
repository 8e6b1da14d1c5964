package model

import (
	"time"
)

// Bar visual styles supported by the client progress bar.
const (
	BarStylePill     = "pill"
	BarStyleRect     = "rect"
	BarStyleRounded  = "rounded"
	BarStyleThin     = "thin"
	BarStyleThick    = "thick"
	BarStyleStriped  = "striped"
	BarStyleDashed   = "dashed"
	BarStyleTicks    = "ticks"
	BarStyleSteps    = "steps"
	BarStyleDiagonal = "diagonal"
)

var barStyles = map[string]bool{
	BarStylePill: true, BarStyleRect: true, BarStyleRounded: true,
	BarStyleThin: true, BarStyleThick: true, BarStyleStriped: true,
	BarStyleDashed: true, BarStyleTicks: true, BarStyleSteps: true,
	BarStyleDiagonal: true,
}

func ValidBarStyle(s string) bool {
	return barStyles[s]
}

// Settings is a user's flat UI configuration record: theme colors, the three
// progress-bar threshold colors, a CSS font-family descriptor and the bar
// style. Loaded once at client start, persisted on every change.
type Settings struct {
	UserID       string    `db:"user_id" json:"-"`
	BgColor      string    `db:"bg_color" json:"bgColor"`
	CardColor    string    `db:"card_color" json:"cardColor"`
	TextColor    string    `db:"text_color" json:"textColor"`
	BtnColor     string    `db:"btn_color" json:"btnColor"`
	BtnTextColor string    `db:"btn_text_color" json:"btnTextColor"`
	BarLow       string    `db:"bar_low" json:"barLow"`
	BarMid       string    `db:"bar_mid" json:"barMid"`
	BarHigh      string    `db:"bar_high" json:"barHigh"`
	FontFamily   string    `db:"font_family" json:"fontFamily"`
	BarStyle     string    `db:"bar_style" json:"barStyle"`
	UpdatedAt    time.Time `db:"updated_at" json:"-"`
}

// DefaultSettings matches the client's built-in theme.
func DefaultSettings(userID string) *Settings {
	return &Settings{
		UserID:       userID,
		BgColor:      "#F6F7FB",
		CardColor:    "#FFFFFF",
		TextColor:    "#111827",
		BtnColor:     "#111827",
		BtnTextColor: "#FFFFFF",
		BarLow:       "#F43F5E",
		BarMid:       "#F59E0B",
		BarHigh:      "#059669",
		FontFamily:   `ui-sans-serif, system-ui, -apple-system, "Segoe UI", Roboto, Arial, "Noto Sans", "Liberation Sans", sans-serif`,
		BarStyle:     BarStylePill,
	}
}
