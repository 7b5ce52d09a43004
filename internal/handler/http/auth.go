package http

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/MKhiriev/umay/internal/app"
	"github.com/MKhiriev/umay/internal/logger"
	"github.com/MKhiriev/umay/internal/utils"
	"github.com/MKhiriev/umay/models"
)

type loginRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	var account models.Account
	if err := json.NewDecoder(r.Body).Decode(&account); err != nil {
		log.Err(err).Str("func", "*Handler.register").Msg("Invalid JSON was passed")
		utils.WriteError(w, app.MsgInvalidJSON, "", http.StatusBadRequest)
		return
	}

	registered, err := h.services.AuthService.Register(r.Context(), account)
	if err != nil {
		writeError(w, r, "*Handler.register", err)
		return
	}

	utils.WriteJSON(w, registered, http.StatusCreated)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Str("func", "*Handler.login").Msg("Invalid JSON was passed")
		utils.WriteError(w, app.MsgInvalidJSON, "", http.StatusBadRequest)
		return
	}

	account, err := h.services.AuthService.Login(ctx, req.Login, req.Password)
	if err != nil {
		writeError(w, r, "*Handler.login", err)
		return
	}

	token, err := h.services.AuthService.CreateToken(ctx, account)
	if err != nil {
		writeError(w, r, "*Handler.login", err)
		return
	}

	log.Debug().Int64("account_id", account.ID).Msg("account successfully logged in")

	w.Header().Set("Authorization", fmt.Sprintf("Bearer %s", token.SignedString))
	utils.WriteJSON(w, account, http.StatusOK)
}

func (h *Handler) verifyEmail(w http.ResponseWriter, r *http.Request) {
	account, err := h.services.AuthService.VerifyEmail(r.Context(), r.URL.Query().Get("token"))
	if err != nil {
		writeError(w, r, "*Handler.verifyEmail", err)
		return
	}

	utils.WriteJSON(w, account, http.StatusOK)
}

func (h *Handler) requestOTP(w http.ResponseWriter, r *http.Request) {
	var req models.OTPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.FromRequest(r).Err(err).Str("func", "*Handler.requestOTP").Msg("Invalid JSON was passed")
		utils.WriteError(w, app.MsgInvalidJSON, "", http.StatusBadRequest)
		return
	}

	resp, err := h.services.AuthService.RequestPasswordReset(r.Context(), req)
	if err != nil {
		writeError(w, r, "*Handler.requestOTP", err)
		return
	}

	utils.WriteJSON(w, resp, http.StatusOK)
}

func (h *Handler) resetPassword(w http.ResponseWriter, r *http.Request) {
	var req models.PasswordResetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.FromRequest(r).Err(err).Str("func", "*Handler.resetPassword").Msg("Invalid JSON was passed")
		utils.WriteError(w, app.MsgInvalidJSON, "", http.StatusBadRequest)
		return
	}

	if err := h.services.AuthService.ResetPassword(r.Context(), req); err != nil {
		writeError(w, r, "*Handler.resetPassword", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) me(w http.ResponseWriter, r *http.Request) {
	account, ok := currentAccount(r)
	if !ok {
		utils.WriteError(w, app.MsgTokenIsExpiredOrInvalid, "", http.StatusUnauthorized)
		return
	}

	utils.WriteJSON(w, account, http.StatusOK)
}
