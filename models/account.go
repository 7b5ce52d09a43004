// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// Role is the staff or patient role of an [Account].
type Role string

const (
	RoleUser    Role = "user"
	RoleMidwife Role = "midwife"
	RoleManager Role = "manager"
	RoleAdmin   Role = "admin"
)

// Valid reports whether r belongs to the role vocabulary.
func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleMidwife, RoleManager, RoleAdmin:
		return true
	}
	return false
}

// AppType tells which application an account was registered from.
type AppType string

const (
	// AppUmay is the staff application for maternity wards.
	AppUmay AppType = "umay"
	// AppMama is the companion application for expecting mothers.
	AppMama AppType = "mama"
)

// Account represents a registered user of the system: ward staff
// (midwives, managers, administrators) or a mother using the Mama feed.
type Account struct {
	// ID is the internal unique identifier of the account.
	ID int64 `json:"id"`

	// FullName is the display name. For midwives it is also the value
	// denormalized into [BirthRecord.Midwife].
	FullName string `json:"full_name"`

	// Login is unique across all accounts.
	Login string `json:"login"`

	// Password carries the plain-text password on registration and login
	// requests only. It is never persisted or returned.
	Password string `json:"password,omitempty"`

	// PasswordConfirm is the repeated password sent on registration.
	PasswordConfirm string `json:"password_confirm,omitempty"`

	// PasswordHash is the bcrypt hash stored in the database.
	PasswordHash string `json:"-"`

	Role    Role    `json:"role"`
	AppType AppType `json:"app_type"`

	// Email is optional. When set it is unique and, if verification is
	// enabled, must be confirmed before the account can log in.
	Email         string `json:"email,omitempty"`
	EmailVerified bool   `json:"email_verified"`

	Phone       string `json:"phone,omitempty"`
	Position    string `json:"position,omitempty"`
	City        string `json:"city,omitempty"`
	Institution string `json:"institution,omitempty"`
	Department  string `json:"department,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the name of the database table
// associated with the Account model.
func (a Account) TableName() string {
	return "accounts"
}

// Public returns a copy of the account without credential fields.
func (a Account) Public() Account {
	a.Password = ""
	a.PasswordConfirm = ""
	a.PasswordHash = ""
	return a
}
