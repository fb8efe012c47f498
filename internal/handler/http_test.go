package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/darts-ladder/internal/config"
	"github.com/darts-ladder/internal/domain"
	"github.com/darts-ladder/internal/ladder"
	"github.com/darts-ladder/internal/store"
	"github.com/darts-ladder/internal/websocket"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc, err := ladder.New(
		context.Background(),
		store.NewMemoryStore(),
		&config.LadderConfig{HistorySize: 5, ResetPassphrase: "bullseye"},
		logger,
	)
	require.NoError(t, err)
	return NewHandler(svc, websocket.NewHub(logger), logger).Router()
}

func postJSON(t *testing.T, router http.Handler, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func getJSON(t *testing.T, router http.Handler, path string) (*httptest.ResponseRecorder, APIResponse) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	var resp APIResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return rec, resp
}

func TestSubmitMatchAndStandings(t *testing.T) {
	router := newTestRouter(t)

	rec := postJSON(t, router, "/api/v1/matches", domain.MatchSubmission{
		PlayerName:   "Alice",
		OpponentName: "Bob",
		Winner:       domain.WinnerPlayer,
		Checkout:     80,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp APIResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.True(t, resp.Success)

	data, err := json.Marshal(resp.Data)
	require.NoError(t, err)
	var result domain.MatchResult
	require.NoError(t, json.Unmarshal(data, &result))
	assert.Equal(t, "Alice", result.Winner)
	assert.Equal(t, 1016, result.WinnerRating)
	assert.Equal(t, 984, result.LoserRating)

	rec2, standings := getJSON(t, router, "/api/v1/standings")
	require.Equal(t, http.StatusOK, rec2.Code)
	require.True(t, standings.Success)

	rows, ok := standings.Data.([]interface{})
	require.True(t, ok)
	require.Len(t, rows, 2)
}

func TestSubmitMatchValidationErrors(t *testing.T) {
	tests := []struct {
		name    string
		sub     domain.MatchSubmission
		wantMsg string
	}{{
		"empty names",
		domain.MatchSubmission{Winner: domain.WinnerPlayer},
		domain.ErrEmptyName.Error(),
	}, {
		"same player",
		domain.MatchSubmission{PlayerName: "Alice", OpponentName: "alice", Winner: domain.WinnerPlayer},
		domain.ErrSamePlayer.Error(),
	}, {
		"bad winner",
		domain.MatchSubmission{PlayerName: "Alice", OpponentName: "Bob", Winner: "both"},
		domain.ErrInvalidWinner.Error(),
	}, {
		"negative checkout",
		domain.MatchSubmission{PlayerName: "Alice", OpponentName: "Bob", Winner: domain.WinnerPlayer, Checkout: -3},
		domain.ErrInvalidCheckout.Error(),
	}}

	router := newTestRouter(t)
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			rec := postJSON(t, router, "/api/v1/matches", test.sub)
			assert.Equal(t, http.StatusBadRequest, rec.Code)

			var resp APIResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.False(t, resp.Success)
			assert.Equal(t, test.wantMsg, resp.Error)
		})
	}
}

func TestSubmitMatchMalformedBody(t *testing.T) {
	router := newTestRouter(t)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/matches", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestResetEndpoint(t *testing.T) {
	router := newTestRouter(t)

	rec := postJSON(t, router, "/api/v1/matches", domain.MatchSubmission{
		PlayerName:   "Alice",
		OpponentName: "Bob",
		Winner:       domain.WinnerPlayer,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	// Wrong passphrase is refused and nothing is lost.
	rec = postJSON(t, router, "/api/v1/reset", ResetRequest{Passphrase: "wrong"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	_, matches := getJSON(t, router, "/api/v1/matches")
	rows, ok := matches.Data.([]interface{})
	require.True(t, ok)
	assert.Len(t, rows, 1)

	rec = postJSON(t, router, "/api/v1/reset", ResetRequest{Passphrase: "bullseye"})
	assert.Equal(t, http.StatusOK, rec.Code)

	_, matches = getJSON(t, router, "/api/v1/matches")
	assert.Empty(t, matches.Data)
}

func TestIndexPage(t *testing.T) {
	router := newTestRouter(t)

	rec := postJSON(t, router, "/api/v1/matches", domain.MatchSubmission{
		PlayerName:   "Alice",
		OpponentName: "Bob",
		Winner:       domain.WinnerPlayer,
		Checkout:     100,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	page := httptest.NewRecorder()
	router.ServeHTTP(page, req)

	assert.Equal(t, http.StatusOK, page.Code)
	body := page.Body.String()
	assert.Contains(t, body, "Alice")
	assert.Contains(t, body, "1016")
	assert.Contains(t, body, "984")
}

func TestHealthEndpoints(t *testing.T) {
	router := newTestRouter(t)

	for _, path := range []string{"/health", "/ready", "/api/v1/ws/stats"} {
		rec, resp := getJSON(t, router, path)
		assert.Equal(t, http.StatusOK, rec.Code, path)
		assert.True(t, resp.Success, path)
	}
}
