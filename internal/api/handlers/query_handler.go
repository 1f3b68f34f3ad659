package handlers

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/jaassure/proposal-intelligence/internal/application/services"
	"github.com/jaassure/proposal-intelligence/internal/domain/providers"
)

const (
	queryRateLimit  = 30
	queryRateWindow = time.Minute
	maxQuestionLen  = 2000
)

// AnswerProvider is the engine side of the query endpoint.
type AnswerProvider interface {
	Answer(ctx context.Context, sessionID string, session *services.ContextManager, question string) (string, string)
}

// QueryHandler handles proposal questions.
type QueryHandler struct {
	engine   AnswerProvider
	sessions *services.SessionRegistry
	cache    providers.CacheProvider
	local    *localRateLimiter
}

// NewQueryHandler creates a new query handler.
func NewQueryHandler(engine AnswerProvider, sessions *services.SessionRegistry, cache providers.CacheProvider) *QueryHandler {
	return &QueryHandler{
		engine:   engine,
		sessions: sessions,
		cache:    cache,
		local:    newLocalRateLimiter(),
	}
}

type queryRequest struct {
	Question  string `json:"question"`
	SessionID string `json:"session_id"`
}

type queryResponse struct {
	Question  string `json:"question"`
	Answer    string `json:"answer"`
	SessionID string `json:"session_id"`
}

// HandleQuery handles POST /query
func (h *QueryHandler) HandleQuery(w http.ResponseWriter, r *http.Request) {
	if h.engine == nil {
		respondWithError(w, http.StatusServiceUnavailable, "engine not initialized")
		return
	}

	var payload queryRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	payload.Question = strings.TrimSpace(payload.Question)
	if payload.Question == "" {
		respondWithError(w, http.StatusBadRequest, "question must not be empty")
		return
	}
	if len(payload.Question) > maxQuestionLen {
		respondWithError(w, http.StatusBadRequest, "question is too long")
		return
	}

	key := "query:rate:" + clientIP(r)
	allowed, retryAfter := h.allowRequest(r.Context(), key)
	if !allowed {
		w.Header().Set("Retry-After", strconv.Itoa(int(retryAfter.Seconds())))
		respondWithError(w, http.StatusTooManyRequests, "rate limit exceeded")
		return
	}

	sessionID, session := h.sessions.Acquire(payload.SessionID)
	answer, _ := h.engine.Answer(r.Context(), sessionID, session, payload.Question)

	respondWithJSON(w, http.StatusOK, queryResponse{
		Question:  payload.Question,
		Answer:    answer,
		SessionID: sessionID,
	})
}

func (h *QueryHandler) allowRequest(ctx context.Context, key string) (bool, time.Duration) {
	if h.cache == nil {
		return h.local.allow(key, queryRateLimit, queryRateWindow)
	}

	state := rateLimitState{}
	if data, err := h.cache.Get(ctx, key); err == nil {
		_ = json.Unmarshal(data, &state)
	}

	if state.Count >= queryRateLimit {
		return false, queryRateWindow
	}

	state.Count++
	data, _ := json.Marshal(state)
	_ = h.cache.Set(ctx, key, data, int(queryRateWindow.Seconds()))
	return true, queryRateWindow
}

type rateLimitState struct {
	Count int `json:"count"`
}

type localRateLimiter struct {
	mu     sync.Mutex
	states map[string]*localRateState
}

type localRateState struct {
	count   int
	resetAt time.Time
}

func newLocalRateLimiter() *localRateLimiter {
	return &localRateLimiter{
		states: make(map[string]*localRateState),
	}
}

func (l *localRateLimiter) allow(key string, limit int, window time.Duration) (bool, time.Duration) {
	now := time.Now()

	l.mu.Lock()
	defer l.mu.Unlock()

	state, ok := l.states[key]
	if !ok || now.After(state.resetAt) {
		state = &localRateState{count: 0, resetAt: now.Add(window)}
		l.states[key] = state
	}

	if state.count >= limit {
		retryAfter := time.Until(state.resetAt)
		if retryAfter < 0 {
			retryAfter = window
		}
		return false, retryAfter
	}

	state.count++
	return true, window
}

func clientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		parts := strings.Split(forwarded, ",")
		return strings.TrimSpace(parts[0])
	}
	if realIP := r.Header.Get("X-Real-IP"); realIP != "" {
		return strings.TrimSpace(realIP)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err == nil {
		return host
	}
	return r.RemoteAddr
}

func respondWithJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(payload)
}

func respondWithError(w http.ResponseWriter, statusCode int, message string) {
	respondWithJSON(w, statusCode, map[string]string{"error": message})
}
