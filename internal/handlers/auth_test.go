package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jobstack-io/apiserver/internal/token"
)

func TestRegisterAndLogin(t *testing.T) {
	env := newTestEnv()

	resp := env.do(t, http.MethodPost, "/api/user/register", "", RegisterRequest{
		Name:     "Alice",
		Email:    "a@x.com",
		Password: "pw",
		Mobile:   "12345",
	})
	if resp.Code != http.StatusOK {
		t.Fatalf("register: status %d, body %s", resp.Code, resp.Body.String())
	}

	resp = env.do(t, http.MethodPost, "/api/user/login", "", LoginRequest{Email: "a@x.com", Password: "pw"})
	if resp.Code != http.StatusOK {
		t.Fatalf("login: status %d, body %s", resp.Code, resp.Body.String())
	}

	var tokenResp TokenResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &tokenResp); err != nil {
		t.Fatalf("decode token: %v", err)
	}
	userID, err := env.tokens.Verify(tokenResp.Token)
	if err != nil {
		t.Fatalf("returned token does not verify: %v", err)
	}
	if userID != 1 {
		t.Fatalf("expected token subject 1, got %d", userID)
	}
}

func TestRegisterMissingFields(t *testing.T) {
	env := newTestEnv()

	resp := env.do(t, http.MethodPost, "/api/user/register", "", RegisterRequest{
		Name:  "Alice",
		Email: "a@x.com",
	})
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	env := newTestEnv()
	env.registerAndLogin(t, "Alice", "a@x.com")

	resp := env.do(t, http.MethodPost, "/api/user/register", "", RegisterRequest{
		Name:     "Alina",
		Email:    "a@x.com",
		Password: "other",
		Mobile:   "67890",
	})
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for duplicate email, got %d", resp.Code)
	}
}

func TestLoginWrongCredentialsSharesMessage(t *testing.T) {
	env := newTestEnv()
	env.registerAndLogin(t, "Alice", "a@x.com")

	wrongPassword := env.do(t, http.MethodPost, "/api/user/login", "", LoginRequest{Email: "a@x.com", Password: "nope"})
	unknownEmail := env.do(t, http.MethodPost, "/api/user/login", "", LoginRequest{Email: "nobody@x.com", Password: "pw"})

	if wrongPassword.Code != http.StatusBadRequest || unknownEmail.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for both, got %d and %d", wrongPassword.Code, unknownEmail.Code)
	}
	if wrongPassword.Body.String() != unknownEmail.Body.String() {
		t.Fatalf("responses reveal which credential was wrong: %q vs %q",
			wrongPassword.Body.String(), unknownEmail.Body.String())
	}
}

func TestLoginMissingFields(t *testing.T) {
	env := newTestEnv()

	resp := env.do(t, http.MethodPost, "/api/user/login", "", LoginRequest{Email: "a@x.com"})
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}

func TestRequireAuthRejectsBadTokens(t *testing.T) {
	tokens := token.NewService("test-secret", time.Hour)
	expired := token.NewService("test-secret", -time.Hour)
	otherSecret := token.NewService("another-secret", time.Hour)

	expiredToken, err := expired.Issue(1)
	if err != nil {
		t.Fatalf("issue expired: %v", err)
	}
	foreignToken, err := otherSecret.Issue(1)
	if err != nil {
		t.Fatalf("issue foreign: %v", err)
	}

	cases := map[string]string{
		"missing header":  "",
		"not bearer":      "Basic abc",
		"garbage token":   "Bearer not-a-token",
		"expired token":   "Bearer " + expiredToken,
		"wrong signature": "Bearer " + foreignToken,
	}

	protected := RequireAuth(tokens)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatalf("handler reached without valid token")
	}))

	for name, header := range cases {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		recorder := httptest.NewRecorder()
		protected.ServeHTTP(recorder, req)
		if recorder.Code != http.StatusUnauthorized {
			t.Fatalf("%s: expected 401, got %d", name, recorder.Code)
		}
	}
}

func TestRequireAuthInjectsUserID(t *testing.T) {
	tokens := token.NewService("test-secret", time.Hour)
	signed, err := tokens.Issue(42)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	var seen int
	protected := RequireAuth(tokens)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, err = userIDFromContext(r.Context())
		if err != nil {
			t.Fatalf("user id missing from context: %v", err)
		}
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	recorder := httptest.NewRecorder()
	protected.ServeHTTP(recorder, req)

	if recorder.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", recorder.Code)
	}
	if seen != 42 {
		t.Fatalf("expected user id 42, got %d", seen)
	}
}
