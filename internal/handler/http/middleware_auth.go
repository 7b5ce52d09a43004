package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"github.com/MKhiriev/umay/internal/app"
	"github.com/MKhiriev/umay/internal/logger"
	"github.com/MKhiriev/umay/internal/store"
	"github.com/MKhiriev/umay/internal/utils"
	"github.com/MKhiriev/umay/models"
)

// auth is an HTTP middleware that enforces bearer token authentication.
//
// A valid token is resolved to the current account, which is stored in the
// request context with [utils.WithAccount] and added to the request logger
// as "account_id". Requests are rejected with 401 when the header is
// missing or malformed, the token does not verify, or the account it names
// no longer exists.
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			log.Warn().Err(ErrEmptyAuthorizationHeader).Send()
			utils.WriteError(w, ErrEmptyAuthorizationHeader.Error(), "", http.StatusUnauthorized)
			return
		}

		tokenString, err := getTokenFromAuthHeader(authHeader)
		if err != nil {
			log.Warn().Err(err).Send()
			utils.WriteError(w, err.Error(), "", http.StatusUnauthorized)
			return
		}

		ctx := r.Context()
		token, err := h.services.AuthService.ParseToken(ctx, tokenString)
		if err != nil {
			log.Warn().Err(err).Msg("error occurred during parsing token")
			utils.WriteError(w, app.MsgTokenIsExpiredOrInvalid, "", http.StatusUnauthorized)
			return
		}

		accountID, err := token.GetAccountID()
		if err != nil {
			log.Warn().Err(err).Msg("token has no account id")
			utils.WriteError(w, app.MsgTokenIsExpiredOrInvalid, "", http.StatusUnauthorized)
			return
		}

		account, err := h.services.AuthService.GetAccount(ctx, accountID)
		if errors.Is(err, store.ErrNoAccountWasFound) {
			log.Warn().Int64("account_id", accountID).Msg("token of a deleted account")
			utils.WriteError(w, app.MsgTokenIsExpiredOrInvalid, "", http.StatusUnauthorized)
			return
		}
		if err != nil {
			writeError(w, r, "*Handler.auth", err)
			return
		}

		log.UpdateContext(func(c zerolog.Context) zerolog.Context {
			return c.Int64("account_id", account.ID)
		})
		ctx = log.WithContext(ctx)

		next.ServeHTTP(w, r.WithContext(utils.WithAccount(ctx, account)))
	})
}

// getTokenFromAuthHeader extracts the token from "Bearer <token>".
func getTokenFromAuthHeader(authHeader string) (string, error) {
	parts := strings.Split(authHeader, " ")
	if len(parts) < 2 {
		return "", ErrInvalidAuthorizationHeader
	}

	tokenString := parts[1]
	if tokenString == "" {
		return "", ErrEmptyToken
	}

	return tokenString, nil
}

// currentAccount returns the account resolved by [Handler.auth].
func currentAccount(r *http.Request) (models.Account, bool) {
	return utils.GetAccountFromContext(r.Context())
}
