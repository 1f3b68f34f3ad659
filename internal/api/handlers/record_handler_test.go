package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jaassure/proposal-intelligence/internal/adapters/store"
	"github.com/jaassure/proposal-intelligence/internal/api/handlers"
	"github.com/jaassure/proposal-intelligence/internal/domain/entities"
)

func recordStore() *store.SnapshotStore {
	return store.NewSnapshotStore([]entities.ProposalChunk{
		{ID: "MYJADEQT001:alarm", QuoteID: "MYJADEQT001", Section: "alarm"},
		{ID: "MYJADEQT001:cctv", QuoteID: "MYJADEQT001", Section: "cctv"},
		{ID: "MYJADEQT002:alarm", QuoteID: "MYJADEQT002", Section: "alarm"},
	}, 3)
}

func TestRecordHandler_ListRecords(t *testing.T) {
	handler := handlers.NewRecordHandler(recordStore(), nil)

	w := httptest.NewRecorder()
	handler.ListRecords(w, httptest.NewRequest("GET", "/api/records", nil))

	assert.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Count    int      `json:"count"`
		QuoteIDs []string `json:"quote_ids"`
	}
	assert.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	assert.Equal(t, 2, response.Count)
	assert.Equal(t, []string{"MYJADEQT001", "MYJADEQT002"}, response.QuoteIDs)
}

func TestRecordHandler_GetRecord(t *testing.T) {
	handler := handlers.NewRecordHandler(recordStore(), nil)

	req := httptest.NewRequest("GET", "/api/records/myjadeqt001", nil)
	req.SetPathValue("id", "myjadeqt001")
	w := httptest.NewRecorder()
	handler.GetRecord(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response struct {
		QuoteID  string                   `json:"quote_id"`
		Sections []entities.ProposalChunk `json:"sections"`
	}
	assert.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	assert.Equal(t, "MYJADEQT001", response.QuoteID)
	assert.Len(t, response.Sections, 2)
}

func TestRecordHandler_GetRecord_NotFound(t *testing.T) {
	handler := handlers.NewRecordHandler(recordStore(), nil)

	req := httptest.NewRequest("GET", "/api/records/MYJADEQT999", nil)
	req.SetPathValue("id", "MYJADEQT999")
	w := httptest.NewRecorder()
	handler.GetRecord(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRecordHandler_SearchWithoutBackend(t *testing.T) {
	handler := handlers.NewRecordHandler(recordStore(), nil)

	w := httptest.NewRecorder()
	handler.SearchChunks(w, httptest.NewRequest("GET", "/api/chunks/search?q=alarm", nil))

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
