package identity

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"joylist/config"
	"joylist/internal/domain/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) service.IdentityProvider {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient(&config.Config{
		Identity: &config.IdentityConfig{
			BaseURL:  server.URL,
			APIToken: "test-token",
			Timeout:  2 * time.Second,
		},
	})
	require.NoError(t, err)

	return client
}

func TestClient_GetUserList(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		assert.Equal(t, []string{"user_1", "user_2"}, r.URL.Query()["user_id"])

		json.NewEncoder(w).Encode([]map[string]string{
			{"id": "user_1", "username": "ada", "first_name": "Ada"},
			{"id": "user_2", "username": "grace", "first_name": "Grace"},
		})
	})

	profiles, err := client.GetUserList(context.Background(), []string{"user_1", "user_2"})
	require.NoError(t, err)
	require.Len(t, profiles, 2)
	assert.Equal(t, "ada", profiles[0].Username)
	assert.Equal(t, "user_2", profiles[1].ID)
}

func TestClient_GetUserList_EmptyInputSkipsCall(t *testing.T) {
	called := false
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	profiles, err := client.GetUserList(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, profiles)
	assert.False(t, called)
}

func TestClient_GetUserByUsername_NotFound(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]map[string]string{})
	})

	_, err := client.GetUserByUsername(context.Background(), "nobody")
	assert.ErrorIs(t, err, service.ErrProviderUserNotFound)
}

func TestClient_ProviderErrorPropagates(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream broken", http.StatusBadGateway)
	})

	_, err := client.SearchUsers(context.Background(), "ada")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}

func TestClient_MalformedResponse(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("{not json"))
	})

	_, err := client.SearchUsers(context.Background(), "ada")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "malformed")
}
