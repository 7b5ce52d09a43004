// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package policy holds the access rules applied before any record or
// content mutation reaches the store.
package policy

import (
	"errors"

	"github.com/MKhiriev/umay/models"
)

// ErrForbidden is returned when an account may not perform an action.
var ErrForbidden = errors.New("access denied")

// Rules evaluates ownership and role based permissions. The super-admin
// login is fixed at construction and bypasses every check.
type Rules struct {
	superAdminLogin string
}

// NewRules constructs Rules for the configured super-admin login.
func NewRules(superAdminLogin string) *Rules {
	return &Rules{superAdminLogin: superAdminLogin}
}

// IsSuperAdmin reports whether account is the configured super-admin.
func (p *Rules) IsSuperAdmin(account models.Account) bool {
	return p.superAdminLogin != "" && account.Login == p.superAdminLogin
}

// CanWrite reports whether account may edit or delete record.
//
// Admins and the super-admin may write any record. Everyone else may write
// only records they own. Rows without an owner id fall back to comparing
// the denormalized midwife name with the account's full name.
func (p *Rules) CanWrite(account models.Account, record models.BirthRecord) bool {
	if p.IsSuperAdmin(account) || account.Role == models.RoleAdmin {
		return true
	}

	if record.OwnerAccountID != 0 {
		return record.OwnerAccountID == account.ID
	}

	return account.FullName != "" && record.Midwife == account.FullName
}

// CanAccessClinicalFeatures reports whether account may enter patient data
// (create, edit, delete). Managers are limited to search, dashboards and
// reports unless they are the super-admin.
func (p *Rules) CanAccessClinicalFeatures(account models.Account) bool {
	if p.IsSuperAdmin(account) {
		return true
	}
	return account.Role != models.RoleManager
}

// CanViewRecords reports whether account may read birth records and the
// reports built from them. Mothers using the Mama feed may not.
func (p *Rules) CanViewRecords(account models.Account) bool {
	return p.IsSuperAdmin(account) || account.Role != models.RoleUser
}

// CanModerate reports whether account may manage and moderate content.
func (p *Rules) CanModerate(account models.Account) bool {
	return p.IsSuperAdmin(account) || account.Role == models.RoleAdmin
}

// AuthorizeWrite returns ErrForbidden unless account may write record.
func (p *Rules) AuthorizeWrite(account models.Account, record models.BirthRecord) error {
	if err := p.AuthorizeClinical(account); err != nil {
		return err
	}
	if !p.CanWrite(account, record) {
		return ErrForbidden
	}
	return nil
}

// AuthorizeClinical returns ErrForbidden unless account is staff allowed
// to enter patient data.
func (p *Rules) AuthorizeClinical(account models.Account) error {
	if !p.CanViewRecords(account) || !p.CanAccessClinicalFeatures(account) {
		return ErrForbidden
	}
	return nil
}

// AuthorizeRead returns ErrForbidden unless account may read records.
func (p *Rules) AuthorizeRead(account models.Account) error {
	if !p.CanViewRecords(account) {
		return ErrForbidden
	}
	return nil
}

// AuthorizeModeration returns ErrForbidden unless account may moderate content.
func (p *Rules) AuthorizeModeration(account models.Account) error {
	if !p.CanModerate(account) {
		return ErrForbidden
	}
	return nil
}
