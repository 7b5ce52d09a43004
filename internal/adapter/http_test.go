// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/umay/internal/config"
	"github.com/MKhiriev/umay/internal/logger"
	"github.com/MKhiriev/umay/internal/report"
	"github.com/MKhiriev/umay/internal/utils"
	"github.com/MKhiriev/umay/models"
)

func newTestAdapter(t *testing.T, serverURL string) *httpServerAdapter {
	t.Helper()
	a, err := NewHTTPServerAdapter(&config.ClientConfig{ServerURL: serverURL, RequestTimeout: 5 * time.Second}, logger.Nop())
	require.NoError(t, err)
	return a.(*httpServerAdapter)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// ── Login ───────────────────────────────────────────────────────────────────

func TestLogin_StoresToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/auth/login", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "aigul", body["login"])
		assert.Equal(t, "secret12", body["password"])

		w.Header().Set("Authorization", "Bearer signed.jwt.token")
		writeJSON(w, http.StatusOK, models.Account{ID: 4, Login: "aigul", Role: models.RoleMidwife})
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	account, err := a.Login(context.Background(), "aigul", "secret12")

	require.NoError(t, err)
	assert.Equal(t, int64(4), account.ID)
	assert.Equal(t, "signed.jwt.token", a.Token())
}

func TestLogin_WrongPassword(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusUnauthorized, utils.ErrorResponse{Error: "invalid login/password"})
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	_, err := a.Login(context.Background(), "aigul", "x")

	require.ErrorIs(t, err, ErrUnauthorized)
	assert.Contains(t, err.Error(), "invalid login/password")
	assert.Empty(t, a.Token())
}

func TestLogin_MissingHeader(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, models.Account{ID: 4})
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	_, err := a.Login(context.Background(), "aigul", "secret12")

	assert.Error(t, err)
}

// ── Authenticated calls ─────────────────────────────────────────────────────

func TestListRecords(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/records", r.URL.Path)
		assert.Equal(t, "Bearer tkn", r.Header.Get("Authorization"))
		assert.Equal(t, "Ахметова", r.URL.Query().Get("search"))

		writeJSON(w, http.StatusOK, models.RecordList{
			Records: []models.BirthRecord{{ID: 1, PatientName: "Ахметова Айжан"}},
			Length:  1,
		})
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	a.SetToken(" tkn ")

	list, err := a.ListRecords(context.Background(), " Ахметова ")

	require.NoError(t, err)
	assert.Equal(t, 1, list.Length)
	assert.Equal(t, "Ахметова Айжан", list.Records[0].PatientName)
}

func TestListRecords_NoSearchParam(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, ok := r.URL.Query()["search"]
		assert.False(t, ok)
		writeJSON(w, http.StatusOK, models.RecordList{Records: []models.BirthRecord{}})
	}))
	defer srv.Close()

	_, err := newTestAdapter(t, srv.URL).ListRecords(context.Background(), "")
	require.NoError(t, err)
}

func TestDashboard(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/dashboard", r.URL.Path)
		writeJSON(w, http.StatusOK, Dashboard{
			Stats:  report.Statistics{Total: 2, AvgBloodLoss: 350},
			Recent: []models.BirthRecord{{ID: 2}, {ID: 1}},
		})
	}))
	defer srv.Close()

	dashboard, err := newTestAdapter(t, srv.URL).Dashboard(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 2, dashboard.Stats.Total)
	assert.Equal(t, 350.0, dashboard.Stats.AvgBloodLoss)
	assert.Len(t, dashboard.Recent, 2)
}

func TestMe_Forbidden(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusForbidden, utils.ErrorResponse{Error: "access denied"})
	}))
	defer srv.Close()

	_, err := newTestAdapter(t, srv.URL).Me(context.Background())

	assert.ErrorIs(t, err, ErrForbidden)
}

func TestVersion(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("1.4.0\n"))
	}))
	defer srv.Close()

	version, err := newTestAdapter(t, srv.URL).Version(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "1.4.0", version)
}

// ── Helpers ─────────────────────────────────────────────────────────────────

func TestMapHTTPError(t *testing.T) {
	tests := []struct {
		status int
		want   error
	}{
		{http.StatusBadRequest, ErrBadRequest},
		{http.StatusUnprocessableEntity, ErrBadRequest},
		{http.StatusUnauthorized, ErrUnauthorized},
		{http.StatusForbidden, ErrForbidden},
		{http.StatusNotFound, ErrNotFound},
		{http.StatusConflict, ErrConflict},
		{http.StatusBadGateway, ErrBadGateway},
		{http.StatusInternalServerError, ErrInternalServerError},
	}

	for _, tc := range tests {
		t.Run(http.StatusText(tc.status), func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				writeJSON(w, tc.status, utils.ErrorResponse{Error: "message"})
			}))
			defer srv.Close()

			_, err := newTestAdapter(t, srv.URL).Me(context.Background())

			require.ErrorIs(t, err, tc.want)
			assert.Equal(t, tc.want.Error()+": message", err.Error())
		})
	}
}

func TestNormalizeBaseURL(t *testing.T) {
	got, err := normalizeBaseURL("localhost:8080/")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080", got)

	got, err = normalizeBaseURL("https://umay.kz")
	require.NoError(t, err)
	assert.Equal(t, "https://umay.kz", got)

	_, err = normalizeBaseURL("  ")
	assert.Error(t, err)
}
