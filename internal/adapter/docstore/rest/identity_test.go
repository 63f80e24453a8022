package rest

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIdentity_SignIn(t *testing.T) {
	var gotPath string
	var gotBody map[string]string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"userDisplayName":"Ann","userEmail":"ann@example.com"}`))
	}))
	defer server.Close()

	identity := NewIdentity(NewClient(server.URL, "", nil))

	user, err := identity.SignIn(context.Background(), "ann@example.com", "secret")
	require.NoError(t, err)

	assert.Equal(t, "/auth/signin", gotPath)
	assert.Equal(t, "ann@example.com", gotBody["email"])
	assert.Equal(t, "secret", gotBody["password"])
	assert.Equal(t, "Ann", user.DisplayName)
	assert.True(t, user.Authenticated())
}

func TestIdentity_SignIn_Rejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "invalid credentials", http.StatusUnauthorized)
	}))
	defer server.Close()

	identity := NewIdentity(NewClient(server.URL, "", nil))

	_, err := identity.SignIn(context.Background(), "ann@example.com", "wrong")
	require.Error(t, err)
	assert.Equal(t, http.StatusUnauthorized, StatusCode(err))
}

func TestIdentity_SignUp(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/auth/signup", r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"userDisplayName":"Ben","userEmail":"ben@example.com"}`))
	}))
	defer server.Close()

	identity := NewIdentity(NewClient(server.URL, "", nil))

	user, err := identity.SignUp(context.Background(), "ben@example.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, "Ben", user.DisplayName)
}

func TestIdentity_SignOut(t *testing.T) {
	var called bool

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		require.Equal(t, "/auth/signout", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	identity := NewIdentity(NewClient(server.URL, "", nil))

	require.NoError(t, identity.SignOut(context.Background()))
	assert.True(t, called)
}
