package httpx

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRegister_CreatesUserWithoutLeakingPassword(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodPost, "/auth/register", "", map[string]any{
		"email":    "jane@example.com",
		"password": "correct-horse",
		"name":     "Jane",
		"address":  "1 Main St",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp struct {
		User map[string]any `json:"user"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, "jane@example.com", resp.User["email"])
	require.Equal(t, "user", resp.User["role"])
	require.NotContains(t, resp.User, "password")
}

func TestRegister_DuplicateEmail(t *testing.T) {
	f := newFixture(t)
	body := map[string]any{
		"email":    "jane@example.com",
		"password": "correct-horse",
		"name":     "Jane",
	}

	rec := f.do(t, http.MethodPost, "/auth/register", "", body)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = f.do(t, http.MethodPost, "/auth/register", "", body)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp struct {
		Errors []fieldError `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, "email", resp.Errors[0].Path)
}

func TestRegister_RejectsBadBody(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodPost, "/auth/register", "", map[string]any{
		"email":    "not-an-email",
		"password": "short",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp struct {
		Errors []fieldError `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	paths := make([]string, 0, len(resp.Errors))
	for _, e := range resp.Errors {
		paths = append(paths, e.Path)
	}
	require.Contains(t, paths, "email")
	require.Contains(t, paths, "password")
	require.Contains(t, paths, "name")
}

func TestLogin_IssuesVerifiableToken(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodPost, "/auth/register", "", map[string]any{
		"email":    "jane@example.com",
		"password": "correct-horse",
		"name":     "Jane",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = f.do(t, http.MethodPost, "/auth/login", "", map[string]any{
		"email":    "jane@example.com",
		"password": "correct-horse",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Token string         `json:"token"`
		User  map[string]any `json:"user"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	require.NotContains(t, resp.User, "password")

	claims, err := f.maker.Verify(resp.Token)
	require.NoError(t, err)
	require.Equal(t, "user", claims.Role)
}

func TestLogin_WrongPasswordOrUnknownUser(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodPost, "/auth/register", "", map[string]any{
		"email":    "jane@example.com",
		"password": "correct-horse",
		"name":     "Jane",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	for name, body := range map[string]map[string]any{
		"wrong password": {"email": "jane@example.com", "password": "battery-staple"},
		"unknown user":   {"email": "nobody@example.com", "password": "whatever1"},
	} {
		t.Run(name, func(t *testing.T) {
			rec := f.do(t, http.MethodPost, "/auth/login", "", body)
			require.Equal(t, http.StatusUnauthorized, rec.Code)
			require.JSONEq(t, `{"message":"Authentication failed"}`, rec.Body.String())
		})
	}
}
