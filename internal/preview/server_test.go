package preview

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dial(t *testing.T, s *Server) *websocket.Conn {
	t.Helper()
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func roundTrip(t *testing.T, conn *websocket.Conn, kind int, msg string) Response {
	t.Helper()
	require.NoError(t, conn.WriteMessage(kind, []byte(msg)))
	var resp Response
	require.NoError(t, conn.ReadJSON(&resp))
	return resp
}

func TestPreviewWebSocket(t *testing.T) {
	conn := dial(t, New())

	t.Run("answers each source message", func(t *testing.T) {
		resp := roundTrip(t, conn, websocket.TextMessage, "export type Id = number | string;\n")
		assert.Empty(t, resp.Error)
		assert.Equal(t, []string{"DoubleOrString"}, resp.Enums)
		assert.Empty(t, resp.Aliases)
		assert.Contains(t, resp.Code, "pub(all) typealias Id = DoubleOrString\n")
	})

	t.Run("state does not leak between messages", func(t *testing.T) {
		resp := roundTrip(t, conn, websocket.TextMessage, "type Other = boolean;\n")
		assert.Empty(t, resp.Enums)
		assert.Equal(t, "typealias Other = Bool\n", resp.Code)
	})

	t.Run("syntax errors still return code", func(t *testing.T) {
		resp := roundTrip(t, conn, websocket.TextMessage, "}}}\ntype Ok = string;\n")
		assert.NotEmpty(t, resp.Error)
		assert.Contains(t, resp.Code, "typealias Ok = String\n")
	})

	t.Run("binary messages are rejected", func(t *testing.T) {
		resp := roundTrip(t, conn, websocket.BinaryMessage, "type A = string;")
		assert.Contains(t, resp.Error, "text message")
		assert.Empty(t, resp.Code)
	})
}

func TestPreviewRejectsForeignOrigin(t *testing.T) {
	ts := httptest.NewServer(New().Handler())
	defer ts.Close()
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"

	_, resp, err := websocket.DefaultDialer.Dial(url, http.Header{"Origin": {"https://evil.example"}})
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestTranspileEmptySource(t *testing.T) {
	resp := New().Transpile(context.Background(), nil)
	assert.Equal(t, Response{Enums: []string{}, Aliases: []string{}}, resp)
}

func TestWithLoggerIgnoresNil(t *testing.T) {
	s := New(WithLogger(nil))
	require.NotNil(t, s.log)
	assert.NotPanics(t, func() { s.Transpile(context.Background(), []byte("}}}\n")) })
}
