// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package server

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/recall-engine/internal/blocks"
	"github.com/pdiddy/recall-engine/pkg/types"
)

func testServer(t *testing.T) http.Handler {
	t.Helper()
	store, err := blocks.Open(types.StoreConfig{DataDir: t.TempDir()})
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(types.ServerConfig{}, store, log)
}

func doJSON(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeBlocks(t *testing.T, rec *httptest.ResponseRecorder) []types.Block {
	t.Helper()
	var out []types.Block
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func TestHealth(t *testing.T) {
	h := testServer(t)
	rec := doJSON(t, h, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}

func TestCreateBlock(t *testing.T) {
	h := testServer(t)

	rec := doJSON(t, h, http.MethodPost, "/blocks",
		`{"question":"What is WAL?","answer":"Write-ahead logging.","tags":["sqlite","durability"]}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	var b types.Block
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &b))
	assert.NotZero(t, b.ID)
	assert.Equal(t, "What is WAL?", b.Question)
	assert.Equal(t, []string{"durability", "sqlite"}, b.Tags)
}

func TestCreateBlockTagsAsString(t *testing.T) {
	h := testServer(t)

	rec := doJSON(t, h, http.MethodPost, "/blocks",
		`{"question":"q","answer":"a","tags":"math, physics"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	var b types.Block
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &b))
	assert.Equal(t, []string{"math", "physics"}, b.Tags)
}

func TestCreateBlockValidation(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"empty question", `{"question":"","answer":"x"}`},
		{"empty answer", `{"question":"x","answer":""}`},
		{"whitespace only", `{"question":"  ","answer":"  "}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := testServer(t)
			rec := doJSON(t, h, http.MethodPost, "/blocks", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, rec.Body.String(), "error")
		})
	}
}

func TestCreateBlockMalformedBody(t *testing.T) {
	h := testServer(t)

	rec := doJSON(t, h, http.MethodPost, "/blocks", `{not json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, h, http.MethodPost, "/blocks", `{"question":"q","answer":"a","tags":42}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListBlocks(t *testing.T) {
	h := testServer(t)

	doJSON(t, h, http.MethodPost, "/blocks", `{"question":"first","answer":"a"}`)
	doJSON(t, h, http.MethodPost, "/blocks", `{"question":"second","answer":"a"}`)

	rec := doJSON(t, h, http.MethodGet, "/blocks", "")
	require.Equal(t, http.StatusOK, rec.Code)

	all := decodeBlocks(t, rec)
	require.Len(t, all, 2)
	assert.Equal(t, "second", all[0].Question)
	assert.Equal(t, "first", all[1].Question)
}

func TestListTags(t *testing.T) {
	h := testServer(t)
	doJSON(t, h, http.MethodPost, "/blocks", `{"question":"q","answer":"a","tags":["beta","alpha"]}`)

	rec := doJSON(t, h, http.MethodGet, "/tags", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var names []string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &names))
	assert.Equal(t, []string{"beta", "alpha"}, names)
}

func TestQueryBlocks(t *testing.T) {
	h := testServer(t)
	doJSON(t, h, http.MethodPost, "/blocks", `{"question":"both","answer":"x","tags":["a","b"]}`)
	doJSON(t, h, http.MethodPost, "/blocks", `{"question":"only a","answer":"x","tags":["a"]}`)

	tests := []struct {
		name string
		path string
		want int
	}{
		{"comma form", "/blocks/query?tags=a,b", 1},
		{"repeated params", "/blocks/query?tags=a&tags=b", 1},
		{"case-insensitive", "/blocks/query?tags=A,B", 1},
		{"single tag", "/blocks/query?tags=a", 2},
		{"no selection", "/blocks/query", 0},
		{"blank selection", "/blocks/query?tags=", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doJSON(t, h, http.MethodGet, tt.path, "")
			require.Equal(t, http.StatusOK, rec.Code)
			assert.Len(t, decodeBlocks(t, rec), tt.want)
		})
	}
}

func TestDeleteBlock(t *testing.T) {
	h := testServer(t)

	rec := doJSON(t, h, http.MethodPost, "/blocks", `{"question":"q","answer":"a"}`)
	var b types.Block
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &b))

	rec = doJSON(t, h, http.MethodDelete, fmt.Sprintf("/blocks/%d", b.ID), "")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(t, h, http.MethodGet, "/blocks", "")
	assert.Len(t, decodeBlocks(t, rec), 0)
}

func TestDeleteBlockNotFound(t *testing.T) {
	h := testServer(t)

	rec := doJSON(t, h, http.MethodDelete, "/blocks/42", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(t, h, http.MethodDelete, "/blocks/not-a-number", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCORSHeaders(t *testing.T) {
	store, err := blocks.Open(types.StoreConfig{DataDir: t.TempDir()})
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	h := New(types.ServerConfig{
		CORSAllowedOrigins: []string{"http://localhost:5173"},
	}, store, log)

	req := httptest.NewRequest(http.MethodOptions, "/blocks", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", "POST")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, "http://localhost:5173", rec.Header().Get("Access-Control-Allow-Origin"))
}
