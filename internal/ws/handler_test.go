package ws

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"langsync/internal/fetcher"
	"langsync/internal/store"
)

func newTestHandler() (*Handler, *store.Store) {
	s := store.NewInMemory(nil)
	return NewHandler(s, fetcher.New(s, "http://localhost:8123")), s
}

func TestHandler_Dispatch_StoreMetadata(t *testing.T) {
	h, s := newTestHandler()

	resp := h.dispatch(context.Background(), []byte(
		`{"id": 1, "type": "frontend_translations/store_metadata", "metadata": {"en": {"hash": "abc", "nativeName": "English"}}}`))

	assert.Equal(t, 1, resp.ID)
	assert.Equal(t, "result", resp.Type)
	assert.True(t, resp.Success)
	assert.Equal(t, map[string]interface{}{"success": true}, resp.Result)

	entry, ok := s.Language("en")
	require.True(t, ok)
	assert.Equal(t, "abc", entry.Hash())
}

func TestHandler_Dispatch_StoreMetadata_Unchanged(t *testing.T) {
	h, _ := newTestHandler()
	msg := []byte(`{"id": 1, "type": "frontend_translations/store_metadata", "metadata": {"en": {"hash": "abc"}}}`)

	resp := h.dispatch(context.Background(), msg)
	require.True(t, resp.Success)

	resp = h.dispatch(context.Background(), msg)
	assert.True(t, resp.Success)
	assert.Equal(t, map[string]interface{}{"success": true, "unchanged": true}, resp.Result)
}

func TestHandler_Dispatch_StoreMetadata_MissingMetadata(t *testing.T) {
	h, _ := newTestHandler()

	resp := h.dispatch(context.Background(), []byte(
		`{"id": 3, "type": "frontend_translations/store_metadata"}`))

	assert.False(t, resp.Success)
	require.NotNil(t, resp.Error)
	assert.Equal(t, ErrInvalidFormat, resp.Error.Code)
}

func TestHandler_Dispatch_GetAllMetadata_Empty(t *testing.T) {
	h, _ := newTestHandler()

	resp := h.dispatch(context.Background(), []byte(
		`{"id": 2, "type": "frontend_translations/get_all_metadata"}`))

	require.True(t, resp.Success)
	result, ok := resp.Result.(map[string]interface{})
	require.True(t, ok)
	assert.Empty(t, result["languages"])
}

func TestHandler_Dispatch_GetAllMetadata_Normalizes(t *testing.T) {
	h, s := newTestHandler()
	_, err := s.Replace(store.Blob{
		"ar": store.LanguageEntry{"nativeName": "العربية", "isRTL": true, "hash": "h1", "extra": "dropped"},
		"xx": store.LanguageEntry{},
	})
	require.NoError(t, err)

	resp := h.dispatch(context.Background(), []byte(
		`{"id": 4, "type": "frontend_translations/get_all_metadata"}`))

	require.True(t, resp.Success)
	result := resp.Result.(map[string]interface{})
	languages := result["languages"].(map[string]map[string]interface{})

	assert.Equal(t, map[string]interface{}{
		"nativeName": "العربية",
		"isRTL":      true,
		"hash":       "h1",
	}, languages["ar"])

	// Sparse entries get defaults
	assert.Equal(t, map[string]interface{}{
		"nativeName": "xx",
		"isRTL":      false,
		"hash":       "",
	}, languages["xx"])
}

func TestHandler_Dispatch_GetLanguage_NotFound(t *testing.T) {
	h, _ := newTestHandler()

	resp := h.dispatch(context.Background(), []byte(
		`{"id": 5, "type": "frontend_translations/get_language", "language": "fr"}`))

	require.True(t, resp.Success)
	result := resp.Result.(fetcher.Result)
	assert.Equal(t, false, result["success"])
	assert.Equal(t, "Language fr not found", result["error"])
}

func TestHandler_Dispatch_GetLanguage_MissingLanguage(t *testing.T) {
	h, _ := newTestHandler()

	resp := h.dispatch(context.Background(), []byte(
		`{"id": 6, "type": "frontend_translations/get_language"}`))

	assert.False(t, resp.Success)
	require.NotNil(t, resp.Error)
	assert.Equal(t, ErrInvalidFormat, resp.Error.Code)
}

func TestHandler_Dispatch_UnknownCommand(t *testing.T) {
	h, _ := newTestHandler()

	resp := h.dispatch(context.Background(), []byte(`{"id": 7, "type": "bogus/command"}`))

	assert.False(t, resp.Success)
	require.NotNil(t, resp.Error)
	assert.Equal(t, ErrUnknownCommand, resp.Error.Code)
}

func TestHandler_Dispatch_InvalidJSON(t *testing.T) {
	h, _ := newTestHandler()

	resp := h.dispatch(context.Background(), []byte(`{not json`))

	assert.False(t, resp.Success)
	require.NotNil(t, resp.Error)
	assert.Equal(t, ErrInvalidFormat, resp.Error.Code)
}

func TestHandler_Serve_EndToEnd(t *testing.T) {
	h, _ := newTestHandler()

	e := echo.New()
	e.GET("/api/websocket", h.Serve)
	srv := httptest.NewServer(e)
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/websocket"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()

	// Push a blob
	err = conn.WriteJSON(CommandMessage{
		ID:       1,
		Type:     CmdStoreMetadata,
		Metadata: store.Blob{"en": store.LanguageEntry{"nativeName": "English", "hash": "abc"}},
	})
	require.NoError(t, err)

	var resp ResultMessage
	require.NoError(t, conn.ReadJSON(&resp))
	assert.Equal(t, 1, resp.ID)
	assert.True(t, resp.Success)

	// Read it back
	err = conn.WriteJSON(CommandMessage{ID: 2, Type: CmdGetAllMetadata})
	require.NoError(t, err)

	require.NoError(t, conn.ReadJSON(&resp))
	assert.Equal(t, 2, resp.ID)
	require.True(t, resp.Success)

	result := resp.Result.(map[string]interface{})
	languages := result["languages"].(map[string]interface{})
	require.Contains(t, languages, "en")
	en := languages["en"].(map[string]interface{})
	assert.Equal(t, "English", en["nativeName"])
	assert.Equal(t, "abc", en["hash"])

	// Lookup miss stays a successful command with a failure result
	err = conn.WriteJSON(CommandMessage{ID: 3, Type: CmdGetLanguage, Language: "fr"})
	require.NoError(t, err)

	require.NoError(t, conn.ReadJSON(&resp))
	assert.Equal(t, 3, resp.ID)
	require.True(t, resp.Success)

	lookup := resp.Result.(map[string]interface{})
	assert.Equal(t, false, lookup["success"])
}
