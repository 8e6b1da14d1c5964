package model

import (
	"time"
)

type User struct {
	ID              string     `db:"id" json:"id"`
	Email           string     `db:"email" json:"email"`
	PasswordHash    string     `db:"password_hash" json:"-"`
	EmailVerifiedAt *time.Time `db:"email_verified_at" json:"emailVerifiedAt"`
	CreatedAt       time.Time  `db:"created_at" json:"createdAt"`
}

func (u *User) EmailVerified() bool {
	return u.EmailVerifiedAt != nil
}
