package recs_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tripweave/backend/internal/domain"
	"github.com/tripweave/backend/internal/recs"
)

// chatStub is a minimal OpenAI-compatible endpoint for tests. It captures the
// incoming request body and replies with a single canned message.
func chatStub(t *testing.T, status int, reply string, captured *map[string]any) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/v1/chat/completions", r.URL.Path)

		if captured != nil {
			require.NoError(t, json.NewDecoder(r.Body).Decode(captured))
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"role": "assistant", "content": reply}},
			},
		})
	}))
}

func TestClient_Recommend(t *testing.T) {
	var captured map[string]any
	srv := chatStub(t, http.StatusOK, "here are your trips", &captured)
	defer srv.Close()

	c := recs.NewClient(srv.URL, "test-key", "test-model")
	got, err := c.Recommend(context.Background(), "plan a trip")

	require.NoError(t, err)
	assert.Equal(t, "here are your trips", got)
	assert.Equal(t, "test-model", captured["model"])

	msgs, ok := captured["messages"].([]any)
	require.True(t, ok)
	require.Len(t, msgs, 1)
	msg := msgs[0].(map[string]any)
	assert.Equal(t, "user", msg["role"])
	assert.Equal(t, "plan a trip", msg["content"])
}

func TestClient_Recommend_UpstreamFailure(t *testing.T) {
	srv := chatStub(t, http.StatusInternalServerError, "", nil)
	defer srv.Close()

	c := recs.NewClient(srv.URL, "", "test-model")
	_, err := c.Recommend(context.Background(), "plan a trip")

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUpstream, "non-success statuses surface as the upstream sentinel")
}

func TestClient_Recommend_EmptyChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[]}`))
	}))
	defer srv.Close()

	c := recs.NewClient(srv.URL, "", "test-model")
	_, err := c.Recommend(context.Background(), "plan a trip")

	assert.ErrorIs(t, err, domain.ErrUpstream)
}

func TestClient_Recommend_ConnectionRefused(t *testing.T) {
	// A server that is already closed refuses connections; the transport
	// error must come back as the upstream sentinel, never a panic or retry.
	srv := chatStub(t, http.StatusOK, "", nil)
	srv.Close()

	c := recs.NewClient(srv.URL, "", "test-model")
	_, err := c.Recommend(context.Background(), "plan a trip")

	assert.ErrorIs(t, err, domain.ErrUpstream)
}
