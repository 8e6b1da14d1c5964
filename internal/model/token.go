package model

import (
	"time"
)

const (
	TokenTypeEmailVerify   = "email_verify"
	TokenTypePasswordReset = "password_reset"
)

// Token is a single-use, expiring credential delivered by email. RedirectTo
// carries the client-supplied destination for the post-verification redirect.
type Token struct {
	ID         string     `db:"id"`
	UserID     string     `db:"user_id"`
	Type       string     `db:"type"`
	Token      string     `db:"token"`
	RedirectTo string     `db:"redirect_to"`
	ExpiresAt  time.Time  `db:"expires_at"`
	UsedAt     *time.Time `db:"used_at"`
	CreatedAt  time.Time  `db:"created_at"`
}

func (t *Token) IsExpired() bool {
	return time.Now().After(t.ExpiresAt)
}

func (t *Token) IsUsed() bool {
	return t.UsedAt != nil
}

func (t *Token) IsValid() bool {
	return !t.IsExpired() && !t.IsUsed()
}
