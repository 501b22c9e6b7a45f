package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dataset_assistant/internal/clients/prefstore"
	"dataset_assistant/internal/config"
	"dataset_assistant/internal/models"
	"dataset_assistant/internal/services"
)

func newTestRouter(svc models.DialogService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	RegisterRoutes(r)
	NewDialogHandler(svc, config.Default().WebSocket, nil).RegisterRoutes(r)
	return r
}

func newTestDialogService() *services.DialogService {
	return services.NewDialogService(config.Default(), prefstore.NewMemoryStore(), services.Instant(), nil)
}

func postChat(t *testing.T, r http.Handler, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/chat", bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	r := newTestRouter(newTestDialogService())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestHandleChat(t *testing.T) {
	r := newTestRouter(newTestDialogService())

	w := postChat(t, r, models.ChatRequest{SessionID: "s1", Text: "how should I price my dataset?"})
	require.Equal(t, http.StatusOK, w.Code)

	var resp models.ChatResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "s1", resp.SessionID)
	require.NotNil(t, resp.Reply)
	assert.Equal(t, models.RoleAssistant, resp.Reply.Role)
	assert.Contains(t, strings.ToLower(resp.Reply.Text), "pricing is an art")
}

func TestHandleChat_Personalized(t *testing.T) {
	r := newTestRouter(newTestDialogService())

	tests := []struct {
		name     string
		req      models.ChatRequest
		wantName bool
	}{
		{"已登录", models.ChatRequest{SessionID: "a", Text: "hello", Email: "grace@example.com", Authenticated: true}, true},
		{"未登录", models.ChatRequest{SessionID: "b", Text: "hello", Email: "grace@example.com"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := postChat(t, r, tt.req)
			require.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, tt.wantName, strings.Contains(w.Body.String(), "grace"))
		})
	}
}

func TestHandleChat_BadRequest(t *testing.T) {
	r := newTestRouter(newTestDialogService())

	w := postChat(t, r, models.ChatRequest{Text: "hello"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader("{not json"))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleHistoryAndClear(t *testing.T) {
	r := newTestRouter(newTestDialogService())
	require.Equal(t, http.StatusOK, postChat(t, r, models.ChatRequest{SessionID: "s1", Text: "hi"}).Code)

	var body struct {
		SessionID string           `json:"session_id"`
		Messages  []models.Message `json:"messages"`
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/chat/s1/history", nil))
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "s1", body.SessionID)
	assert.Len(t, body.Messages, 2)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/chat/s1", nil))
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/chat/s1/history", nil))
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Empty(t, body.Messages)
}

func wsURL(server *httptest.Server, sessionID string) string {
	return "ws" + strings.TrimPrefix(server.URL, "http") + "/ws/chat?session_id=" + sessionID
}

func TestHandleClear_CancelsPendingReply(t *testing.T) {
	svc := services.NewDialogService(config.Default(), prefstore.NewMemoryStore(), services.NewPacer(time.Hour, time.Hour), nil)
	r := newTestRouter(svc)

	errCh := make(chan error, 1)
	go func() {
		_, err := svc.ProcessMessage(context.Background(), models.Turn{SessionID: "s1", Text: "hello"})
		errCh <- err
	}()

	// 会话可能还没创建，重复删除直到等待中的回复结束
	deadline := time.After(5 * time.Second)
	for {
		start := time.Now()
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/chat/s1", nil))
		require.Equal(t, http.StatusNoContent, w.Code)
		require.Less(t, int64(time.Since(start)), int64(time.Second), "删除会话不应等待思考延迟")

		select {
		case err := <-errCh:
			assert.ErrorIs(t, err, services.ErrConversationClosed)
			assert.Empty(t, svc.GetHistory("s1"))
			return
		case <-deadline:
			t.Fatal("删除会话后回复没有被取消")
		case <-time.After(20 * time.Millisecond):
		}
	}
}

func dialWS(t *testing.T, server *httptest.Server, sessionID string) *websocket.Conn {
	t.Helper()
	conn, _, err := websocket.DefaultDialer.Dial(wsURL(server, sessionID), nil)
	require.NoError(t, err)
	return conn
}

func readFrame(t *testing.T, conn *websocket.Conn) models.ChatFrame {
	t.Helper()
	var frame models.ChatFrame
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	require.NoError(t, conn.ReadJSON(&frame))
	return frame
}

func TestHandleWebSocket(t *testing.T) {
	server := httptest.NewServer(newTestRouter(newTestDialogService()))
	defer server.Close()

	conn := dialWS(t, server, "ws1")
	defer conn.Close()

	require.NoError(t, conn.WriteJSON(models.ChatRequest{Text: "what are bounties?"}))

	frame := readFrame(t, conn)
	assert.Equal(t, models.FrameTyping, frame.Type)
	assert.Equal(t, "ws1", frame.SessionID)

	frame = readFrame(t, conn)
	assert.Equal(t, models.FrameReply, frame.Type)
	require.NotNil(t, frame.Reply)
	assert.Contains(t, frame.Reply.Text, "bounties are basically job postings")

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("{oops")))
	frame = readFrame(t, conn)
	assert.Equal(t, models.FrameError, frame.Type)
}

func TestHandleWebSocket_DuplicateSession(t *testing.T) {
	server := httptest.NewServer(newTestRouter(newTestDialogService()))
	defer server.Close()

	first := dialWS(t, server, "dup")

	_, resp, err := websocket.DefaultDialer.Dial(wsURL(server, "dup"), nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	// 被拒绝的连接不影响已有会话
	require.NoError(t, first.WriteJSON(models.ChatRequest{Text: "hi"}))
	assert.Equal(t, models.FrameTyping, readFrame(t, first).Type)
	assert.Equal(t, models.FrameReply, readFrame(t, first).Type)

	// 原连接关闭后可以重新连接
	require.NoError(t, first.Close())
	assert.Eventually(t, func() bool {
		conn, _, err := websocket.DefaultDialer.Dial(wsURL(server, "dup"), nil)
		if err != nil {
			return false
		}
		conn.Close()
		return true
	}, 5*time.Second, 20*time.Millisecond)
}

// blockingDialog 在ctx取消前一直"思考"
type blockingDialog struct {
	started   chan struct{}
	cancelled chan error
	closed    chan string
	once      sync.Once
}

func (d *blockingDialog) ProcessMessage(ctx context.Context, _ models.Turn) (*models.Message, error) {
	d.once.Do(func() { close(d.started) })
	<-ctx.Done()
	d.cancelled <- ctx.Err()
	return nil, ctx.Err()
}

func (d *blockingDialog) GetHistory(string) []models.Message { return nil }
func (d *blockingDialog) ClearHistory(string)                {}
func (d *blockingDialog) CloseSession(id string)             { d.closed <- id }

func TestHandleWebSocket_DisconnectCancelsReply(t *testing.T) {
	dialog := &blockingDialog{
		started:   make(chan struct{}),
		cancelled: make(chan error, 1),
		closed:    make(chan string, 1),
	}
	server := httptest.NewServer(newTestRouter(dialog))
	defer server.Close()

	conn := dialWS(t, server, "ws2")
	require.NoError(t, conn.WriteJSON(models.ChatRequest{Text: "hello"}))
	assert.Equal(t, models.FrameTyping, readFrame(t, conn).Type)

	<-dialog.started
	require.NoError(t, conn.Close())

	select {
	case err := <-dialog.cancelled:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(5 * time.Second):
		t.Fatal("断开连接后回复没有被取消")
	}

	select {
	case id := <-dialog.closed:
		assert.Equal(t, "ws2", id)
	case <-time.After(5 * time.Second):
		t.Fatal("断开连接后会话没有关闭")
	}
}

func TestToTurn(t *testing.T) {
	turn := toTurn(models.ChatRequest{
		SessionID:     "s1",
		Text:          "hi",
		Email:         " Grace.H@Example.com ",
		Authenticated: true,
		LocationPath:  "/bounties",
	})
	assert.Equal(t, "grace.h@example.com", turn.UserKey)
	assert.Equal(t, "Grace.H", turn.User.DisplayNameFragment)
	assert.Equal(t, "/bounties", turn.User.LocationPath)
	assert.True(t, turn.User.IsAuthenticated)

	turn = toTurn(models.ChatRequest{SessionID: "s1", Email: "grace@example.com"})
	assert.Empty(t, turn.UserKey)
	assert.Empty(t, turn.User.DisplayNameFragment)
}
