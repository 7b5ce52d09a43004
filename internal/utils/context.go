package utils

import (
	"context"

	"github.com/MKhiriev/umay/models"
)

type contextKey string

func (c contextKey) String() string {
	return string(c)
}

var (
	AccountIDCtxKey = contextKey("accountID")
	AccountCtxKey   = contextKey("account")
)

// GetAccountIDFromContext returns the authenticated account id put into ctx
// by the auth middleware.
func GetAccountIDFromContext(ctx context.Context) (int64, bool) {
	accountID, ok := ctx.Value(AccountIDCtxKey).(int64)
	return accountID, ok
}

// GetAccountFromContext returns the authenticated account put into ctx
// by the auth middleware.
func GetAccountFromContext(ctx context.Context) (models.Account, bool) {
	account, ok := ctx.Value(AccountCtxKey).(models.Account)
	return account, ok
}

// WithAccount stores the authenticated account and its id in ctx.
func WithAccount(ctx context.Context, account models.Account) context.Context {
	ctx = context.WithValue(ctx, AccountIDCtxKey, account.ID)
	return context.WithValue(ctx, AccountCtxKey, account)
}
