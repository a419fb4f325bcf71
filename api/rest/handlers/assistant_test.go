package handlers_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"talent-track/core/assistant"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChatEndpoint_UnavailableWithoutModel(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodPost, "/v1/assistant/chat",
		map[string]string{"message": "How is hiring going?"}, nil)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestChatEndpoint_RequiresMessage(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodPost, "/v1/assistant/chat", map[string]string{}, nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHistoryEndpoints(t *testing.T) {
	s := newTestServer(t)
	history := assistant.NewHistory(s.store)
	require.NoError(t, history.Append(assistant.Message{Role: assistant.RoleUser, Content: "hello"}))

	rec := s.do(t, http.MethodGet, "/v1/assistant/history", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Items []assistant.Message `json:"items"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Items, 1)
	assert.Equal(t, "hello", resp.Items[0].Content)

	rec = s.do(t, http.MethodDelete, "/v1/assistant/history", nil, nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	messages, err := history.Load()
	require.NoError(t, err)
	assert.Empty(t, messages)
}
