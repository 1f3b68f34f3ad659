package ollama

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jaassure/proposal-intelligence/pkg/config"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient(&config.OllamaConfig{
		BaseURL:        server.URL,
		GenerateModel:  "llama3:8b",
		EmbedModel:     "nomic-embed-text",
		RequestTimeout: 5 * time.Second,
		RatePerMinute:  -1, // disable rate limiting in tests
	})
	require.NoError(t, err)
	return client
}

func TestGenerate_StripsCodeFences(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/generate", r.URL.Path)

		var req generateRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "llama3:8b", req.Model)
		assert.False(t, req.Stream)

		json.NewEncoder(w).Encode(generateResponse{
			Response: "```json\n{\"intent\": \"count\"}\n```",
			Done:     true,
		})
	})

	out, err := client.Generate(context.Background(), "parse this")
	require.NoError(t, err)
	assert.Equal(t, "{\"intent\": \"count\"}", out)
}

func TestGenerate_ErrorStatus(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := client.Generate(context.Background(), "hello")
	assert.Error(t, err)
}

func TestGenerate_EmptyPrompt(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {})
	_, err := client.Generate(context.Background(), "   ")
	assert.Error(t, err)
}

func TestEmbed(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/embeddings", r.URL.Path)

		var req embedRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "nomic-embed-text", req.Model)

		json.NewEncoder(w).Encode(embedResponse{Embedding: []float32{0.1, 0.2, 0.3}})
	})

	vec, err := client.Embed(context.Background(), "some chunk text")
	require.NoError(t, err)
	assert.Len(t, vec, 3)
}

func TestEmbedBatch_PreservesOrder(t *testing.T) {
	var calls int
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		json.NewEncoder(w).Encode(embedResponse{Embedding: []float32{float32(calls)}})
	})

	vectors, err := client.EmbedBatch(context.Background(), []string{"a", "b", "c"})
	require.NoError(t, err)
	require.Len(t, vectors, 3)
	assert.Equal(t, float32(1), vectors[0][0])
	assert.Equal(t, float32(3), vectors[2][0])
}
