package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/jaassure/proposal-intelligence/internal/domain/repositories"
	apperrors "github.com/jaassure/proposal-intelligence/pkg/errors"
)

const maxSearchLimit = 50

// RecordHandler exposes the indexed proposal records for inspection.
type RecordHandler struct {
	chunks repositories.ChunkRepository
	search repositories.ChunkSearchRepository
}

// NewRecordHandler creates a new record handler. The keyword search
// repository is optional; without it the search endpoint returns 503.
func NewRecordHandler(chunks repositories.ChunkRepository, search repositories.ChunkSearchRepository) *RecordHandler {
	return &RecordHandler{chunks: chunks, search: search}
}

// ListRecords handles GET /api/records
func (h *RecordHandler) ListRecords(w http.ResponseWriter, r *http.Request) {
	ids, err := h.chunks.QuoteIDs(r.Context())
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "failed to list records")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"count":     len(ids),
		"quote_ids": ids,
	})
}

// GetRecord handles GET /api/records/{id}
func (h *RecordHandler) GetRecord(w http.ResponseWriter, r *http.Request) {
	quoteID := strings.ToUpper(strings.TrimSpace(r.PathValue("id")))
	if quoteID == "" {
		respondWithError(w, http.StatusBadRequest, "record id is required")
		return
	}

	chunks, err := h.chunks.ByQuoteID(r.Context(), quoteID)
	if err != nil {
		if apperrors.IsType(err, apperrors.ErrorTypeNotFound) {
			respondWithError(w, http.StatusNotFound, "record not found")
			return
		}
		respondWithError(w, http.StatusInternalServerError, "failed to load record")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"quote_id": quoteID,
		"sections": chunks,
	})
}

// SearchChunks handles GET /api/chunks/search
func (h *RecordHandler) SearchChunks(w http.ResponseWriter, r *http.Request) {
	if h.search == nil {
		respondWithError(w, http.StatusServiceUnavailable, "keyword search not configured")
		return
	}

	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if query == "" {
		respondWithError(w, http.StatusBadRequest, "query parameter 'q' is required")
		return
	}

	limit := 10
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			respondWithError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = parsed
	}
	if limit > maxSearchLimit {
		limit = maxSearchLimit
	}

	chunks, err := h.search.Search(r.Context(), query, limit)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "search failed")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"query":   query,
		"count":   len(chunks),
		"results": chunks,
	})
}
