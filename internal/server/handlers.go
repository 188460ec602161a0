// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/pdiddy/recall-engine/internal/blocks"
)

type handler struct {
	store *blocks.Store
	log   *slog.Logger
}

// createRequest is the POST /blocks payload. Tags may be a JSON array of
// strings, a single comma-delimited string, or absent.
type createRequest struct {
	Question string          `json:"question"`
	Answer   string          `json:"answer"`
	Tags     json.RawMessage `json:"tags"`
}

func (h *handler) createBlock(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	tags, err := decodeTags(req.Tags)
	if err != nil {
		writeError(w, http.StatusBadRequest, "tags must be a string or an array of strings")
		return
	}

	block, err := h.store.CreateBlock(r.Context(), req.Question, req.Answer, tags)
	if err != nil {
		var verr blocks.ValidationError
		if errors.As(err, &verr) {
			writeError(w, http.StatusBadRequest, verr.Error())
			return
		}
		h.internalError(w, r, "create block", err)
		return
	}

	writeJSON(w, http.StatusCreated, block)
}

func (h *handler) listBlocks(w http.ResponseWriter, r *http.Request) {
	all, err := h.store.ListBlocks(r.Context())
	if err != nil {
		h.internalError(w, r, "list blocks", err)
		return
	}
	writeJSON(w, http.StatusOK, all)
}

func (h *handler) listTags(w http.ResponseWriter, r *http.Request) {
	names, err := h.store.ListTagNames(r.Context())
	if err != nil {
		h.internalError(w, r, "list tags", err)
		return
	}
	writeJSON(w, http.StatusOK, names)
}

// queryBlocks accepts the selection as repeated tags params, comma
// forms, or both: /blocks/query?tags=a,b&tags=c. An empty selection is a
// valid request with an empty result.
func (h *handler) queryBlocks(w http.ResponseWriter, r *http.Request) {
	var selection []string
	for _, v := range r.URL.Query()["tags"] {
		selection = append(selection, strings.Split(v, ",")...)
	}

	matches, err := h.store.FindByAllTags(r.Context(), selection)
	if err != nil {
		h.internalError(w, r, "query blocks", err)
		return
	}
	writeJSON(w, http.StatusOK, matches)
}

func (h *handler) deleteBlock(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusNotFound, "block not found")
		return
	}

	deleted, err := h.store.DeleteBlock(r.Context(), id)
	if err != nil {
		h.internalError(w, r, "delete block", err)
		return
	}
	if !deleted {
		writeError(w, http.StatusNotFound, "block not found")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// decodeTags accepts either JSON form of the tags field: a comma-
// delimited string or an array of raw tokens. Array tokens are
// normalized by the store.
func decodeTags(raw json.RawMessage) ([]string, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}

	var single string
	if err := json.Unmarshal(raw, &single); err == nil {
		return blocks.ParseTagList(single), nil
	}

	var list []string
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// internalError logs the cause and returns a generic body; storage
// failure details are not leaked to callers.
func (h *handler) internalError(w http.ResponseWriter, r *http.Request, op string, err error) {
	h.log.Error("storage failure", "op", op, "path", r.URL.Path, "error", err)
	writeError(w, http.StatusInternalServerError, "internal error")
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
