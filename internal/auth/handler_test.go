// AngelaMos | 2026
// handler_test.go

package auth

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthRouter(t *testing.T) (*chi.Mux, *Service, *memAccounts) {
	t.Helper()

	svc, store := newTestService(t)
	r := chi.NewRouter()
	r.Route("/api", func(r chi.Router) {
		NewHandler(svc).RegisterRoutes(r, nil)
	})
	return r, svc, store
}

func postJSON(r http.Handler, path string, body any) *httptest.ResponseRecorder {
	payload, _ := json.Marshal(body) //nolint:errcheck // test input
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

var validRegistration = map[string]any{
	"garage_name": "Al Noor Auto",
	"owner_name":  "Sami",
	"email":       "owner@alnoor.test",
	"phone":       "0790000000",
	"password":    "secret123",
}

func TestRegisterHandler(t *testing.T) {
	r, _, _ := newAuthRouter(t)

	rec := postJSON(r, "/api/auth/register", validRegistration)
	require.Equal(t, http.StatusCreated, rec.Code)

	body := decodeBody(t, rec)
	assert.Equal(t, true, body["success"])
	account, ok := body["garage"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "owner@alnoor.test", account["email"])
	assert.NotContains(t, account, "password")

	rec = postJSON(r, "/api/auth/register", validRegistration)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, msgEmailExists, decodeBody(t, rec)["error"])
}

func TestRegisterHandlerValidation(t *testing.T) {
	r, _, _ := newAuthRouter(t)

	rec := postJSON(r, "/api/auth/register", map[string]any{
		"garage_name": "Al Noor Auto",
		"owner_name":  "Sami",
		"email":       "not-an-email",
		"phone":       "0790000000",
		"password":    "123",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var body struct {
		Errors []struct {
			Field   string `json:"field"`
			Message string `json:"message"`
		} `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	fields := make([]string, 0, len(body.Errors))
	for _, e := range body.Errors {
		fields = append(fields, e.Field)
	}
	assert.ElementsMatch(t, []string{"email", "password"}, fields)
}

func TestLoginHandler(t *testing.T) {
	r, svc, _ := newAuthRouter(t)
	require.Equal(t, http.StatusCreated,
		postJSON(r, "/api/auth/register", validRegistration).Code)

	creds := map[string]any{"email": "owner@alnoor.test", "password": "secret123"}

	t.Run("unknown account", func(t *testing.T) {
		rec := postJSON(r, "/api/auth/login",
			map[string]any{"email": "nobody@x.test", "password": "secret123"})
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, msgUnknownAccount, decodeBody(t, rec)["error"])
	})

	t.Run("wrong password", func(t *testing.T) {
		rec := postJSON(r, "/api/auth/login",
			map[string]any{"email": "owner@alnoor.test", "password": "nope-nope"})
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, msgInvalidCredentials, decodeBody(t, rec)["error"])
	})

	t.Run("first login", func(t *testing.T) {
		rec := postJSON(r, "/api/auth/login", creds)
		require.Equal(t, http.StatusOK, rec.Code)

		body := decodeBody(t, rec)
		assert.Equal(t, true, body["success"])
		assert.NotEmpty(t, body["token"])

		account, ok := body["garage"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "trial", account["subscription_status"])
		assert.Equal(t,
			day0.AddDate(0, 0, 30).Format(time.RFC3339),
			account["subscription_expiry"],
		)
	})

	t.Run("day 31", func(t *testing.T) {
		svc.now = func() time.Time { return day0.AddDate(0, 0, 31) }

		rec := postJSON(r, "/api/auth/login", creds)
		require.Equal(t, http.StatusForbidden, rec.Code)

		body := decodeBody(t, rec)
		assert.Equal(t, msgSubscriptionExpired, body["error"])
		assert.Equal(t, day0.AddDate(0, 0, 30).Format(time.RFC3339), body["expiredAt"])
	})
}

func TestLoginHandlerInactive(t *testing.T) {
	r, _, store := newAuthRouter(t)
	require.Equal(t, http.StatusCreated,
		postJSON(r, "/api/auth/register", validRegistration).Code)
	store.setActive(1, false)

	rec := postJSON(r, "/api/auth/login",
		map[string]any{"email": "owner@alnoor.test", "password": "wrong"})
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, msgAccountInactive, decodeBody(t, rec)["error"])
}

func TestLoginHandlerBadBody(t *testing.T) {
	r, _, _ := newAuthRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login",
		bytes.NewBufferString("{not json"))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
