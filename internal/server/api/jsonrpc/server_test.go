package jsonrpc

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mintforge/goMintd/internal/core/ledger/service"
	_ "github.com/mintforge/goMintd/internal/core/tx/all"
	"github.com/mintforge/goMintd/internal/events"
)

const testAccount = "aa11223344556677889900aabbccddeeff001122"

func newTestServer(t *testing.T) (*httptest.Server, *events.SubscriptionManager) {
	t.Helper()

	manager := events.NewSubscriptionManager()

	cfg := service.DefaultConfig()
	cfg.Publisher = manager

	svc, err := service.New(cfg)
	require.NoError(t, err)
	require.NoError(t, svc.Start())

	handler := NewHandler(svc, nil)
	ws := NewWebSocketServer(manager, time.Second)
	server := NewServer("127.0.0.1:0", handler, ws)

	ts := httptest.NewServer(server.httpServer.Handler)
	t.Cleanup(ts.Close)
	return ts, manager
}

func call(t *testing.T, ts *httptest.Server, method string, params interface{}) Response {
	t.Helper()

	req := map[string]interface{}{
		"jsonrpc": "2.0",
		"method":  method,
		"id":      1,
	}
	if params != nil {
		req["params"] = params
	}
	body, err := json.Marshal(req)
	require.NoError(t, err)

	resp, err := http.Post(ts.URL, "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()

	var out Response
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func TestServerSubmitAndQuery(t *testing.T) {
	ts, _ := newTestServer(t)

	resp := call(t, ts, "submit", map[string]interface{}{
		"OperationType": "Prepare",
		"Account":       testAccount,
		"Descriptor":    "ipfs://meta/1",
	})
	require.Nil(t, resp.Error)

	result := resp.Result.(map[string]interface{})
	assert.Equal(t, "tesSUCCESS", result["engine_result"])
	assert.Equal(t, true, result["applied"])

	resp = call(t, ts, "token_info", map[string]interface{}{"token_id": 1})
	require.Nil(t, resp.Error)
	info := resp.Result.(map[string]interface{})
	assert.Equal(t, testAccount, info["creator"])
	assert.Equal(t, "ipfs://meta/1", info["descriptor"])

	resp = call(t, ts, "current_token_id", map[string]interface{}{})
	require.Nil(t, resp.Error)
	current := resp.Result.(map[string]interface{})
	assert.Equal(t, float64(1), current["current_token_id"])
}

func TestServerSubmitFailureCode(t *testing.T) {
	ts, _ := newTestServer(t)

	resp := call(t, ts, "submit", map[string]interface{}{
		"OperationType": "Transfer",
		"Account":       testAccount,
		"TokenID":       42,
		"Destination":   strings.Repeat("bb", 20),
	})
	require.Nil(t, resp.Error)

	result := resp.Result.(map[string]interface{})
	assert.Equal(t, "tecUNKNOWN_TOKEN", result["engine_result"])
	assert.Equal(t, false, result["applied"])
}

func TestServerMethodNotFound(t *testing.T) {
	ts, _ := newTestServer(t)

	resp := call(t, ts, "no_such_method", map[string]interface{}{})
	require.NotNil(t, resp.Error)
	assert.Equal(t, CodeMethodNotFound, resp.Error.Code)
}

func TestServerHistoryDisabled(t *testing.T) {
	ts, _ := newTestServer(t)

	resp := call(t, ts, "account_history", map[string]interface{}{"account": testAccount})
	require.NotNil(t, resp.Error)
	assert.Contains(t, resp.Error.Message, "history")
}

func TestServerRejectsGet(t *testing.T) {
	ts, _ := newTestServer(t)

	resp, err := http.Get(ts.URL)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

func TestWebSocketSubscribe(t *testing.T) {
	ts, manager := newTestServer(t)

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.NoError(t, conn.WriteJSON(map[string]interface{}{
		"command": "subscribe",
		"streams": []string{"prepared"},
	}))

	var reply wsReply
	require.NoError(t, conn.ReadJSON(&reply))
	assert.Equal(t, "success", reply.Status)

	// An event published on the stream reaches the client.
	manager.Publish(events.NewPrepared(1, testAccount, "ipfs://meta/1"))

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var ev map[string]interface{}
	require.NoError(t, conn.ReadJSON(&ev))
	assert.Equal(t, "prepared", ev["type"])
	assert.Equal(t, float64(1), ev["token_id"])
}

func TestWebSocketUnknownStream(t *testing.T) {
	ts, _ := newTestServer(t)

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.NoError(t, conn.WriteJSON(map[string]interface{}{
		"command": "subscribe",
		"streams": []string{"bogus"},
	}))

	var reply wsReply
	require.NoError(t, conn.ReadJSON(&reply))
	assert.Equal(t, "error", reply.Status)
}
