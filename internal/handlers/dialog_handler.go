package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"dataset_assistant/internal/assistant"
	"dataset_assistant/internal/config"
	"dataset_assistant/internal/models"
)

// DialogHandler 对话处理器
type DialogHandler struct {
	dialogSvc models.DialogService
	upgrader  websocket.Upgrader
	wsConfig  config.WebSocketConfig
	logger    *zap.Logger

	// live 已有连接的会话ID，同一会话只允许一个连接
	live   map[string]struct{}
	liveMu sync.Mutex
}

// NewDialogHandler 创建对话处理器
func NewDialogHandler(dialogSvc models.DialogService, wsConfig config.WebSocketConfig, logger *zap.Logger) *DialogHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DialogHandler{
		dialogSvc: dialogSvc,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  wsConfig.ReadBufferSize,
			WriteBufferSize: wsConfig.WriteBufferSize,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
		wsConfig: wsConfig,
		logger:   logger,
		live:     make(map[string]struct{}),
	}
}

// claim 占用会话ID，已被其他连接占用时返回 false
func (h *DialogHandler) claim(sessionID string) bool {
	h.liveMu.Lock()
	defer h.liveMu.Unlock()

	if _, ok := h.live[sessionID]; ok {
		return false
	}
	h.live[sessionID] = struct{}{}
	return true
}

func (h *DialogHandler) release(sessionID string) {
	h.liveMu.Lock()
	defer h.liveMu.Unlock()

	delete(h.live, sessionID)
}

// RegisterRoutes 注册对话相关路由
func (h *DialogHandler) RegisterRoutes(r *gin.Engine) {
	api := r.Group("/api/chat")
	api.POST("", h.HandleChat)
	api.GET("/:session_id/history", h.HandleHistory)
	api.DELETE("/:session_id", h.HandleClear)

	r.GET("/ws/chat", h.HandleWebSocket)
}

// toTurn 把请求转换为一轮对话输入，身份信息只在登录时使用
func toTurn(req models.ChatRequest) models.Turn {
	turn := models.Turn{
		SessionID: req.SessionID,
		Text:      req.Text,
		User: models.UserContext{
			LocationPath:    req.LocationPath,
			IsAuthenticated: req.Authenticated,
		},
	}
	email := strings.TrimSpace(req.Email)
	if req.Authenticated && email != "" {
		turn.UserKey = strings.ToLower(email)
		turn.User.DisplayNameFragment = assistant.NameFragmentFromEmail(email)
	}
	return turn
}

// HandleChat 处理一轮HTTP对话
func (h *DialogHandler) HandleChat(c *gin.Context) {
	var req models.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请求格式错误"})
		return
	}
	if strings.TrimSpace(req.SessionID) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "session_id不能为空"})
		return
	}

	reply, err := h.dialogSvc.ProcessMessage(c.Request.Context(), toTurn(req))
	if err != nil {
		h.logger.Warn("处理消息失败", zap.String("session_id", req.SessionID), zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "会话已关闭或请求已取消"})
		return
	}

	c.JSON(http.StatusOK, models.ChatResponse{
		SessionID: req.SessionID,
		Reply:     reply,
	})
}

// HandleHistory 返回会话历史
func (h *DialogHandler) HandleHistory(c *gin.Context) {
	sessionID := c.Param("session_id")
	c.JSON(http.StatusOK, gin.H{
		"session_id": sessionID,
		"messages":   h.dialogSvc.GetHistory(sessionID),
	})
}

// HandleClear 关闭会话，历史随会话一起丢弃，等待中的回复不再送达。
// 不调用 ClearHistory：它会等待正在思考的回复结束。
func (h *DialogHandler) HandleClear(c *gin.Context) {
	h.dialogSvc.CloseSession(c.Param("session_id"))
	c.Status(http.StatusNoContent)
}

// wsConn 串行化写操作的WebSocket连接
type wsConn struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (w *wsConn) writeJSON(v interface{}) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.conn.WriteJSON(v)
}

func (w *wsConn) ping(deadline time.Time) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.conn.WriteControl(websocket.PingMessage, nil, deadline)
}

// HandleWebSocket 处理WebSocket聊天连接。
// 同一会话ID同时只允许一个连接，重复连接返回409。
// 连接断开时关闭会话，等待中的回复不会再发送。
func (h *DialogHandler) HandleWebSocket(c *gin.Context) {
	sessionID := c.Query("session_id")
	if sessionID == "" {
		sessionID = uuid.NewString()
	}
	if !h.claim(sessionID) {
		c.JSON(http.StatusConflict, gin.H{"error": "会话已有连接"})
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.release(sessionID)
		h.logger.Warn("升级WebSocket连接失败", zap.Error(err))
		return
	}

	log := h.logger.With(zap.String("session_id", sessionID))
	ws := &wsConn{conn: conn}

	ctx, cancel := context.WithCancel(context.Background())
	defer func() {
		cancel()
		h.dialogSvc.CloseSession(sessionID)
		conn.Close()
		h.release(sessionID)
		log.Debug("WebSocket连接已关闭")
	}()

	conn.SetReadLimit(64 * 1024)
	if h.wsConfig.PongWait > 0 {
		conn.SetReadDeadline(time.Now().Add(h.wsConfig.PongWait))
		conn.SetPongHandler(func(string) error {
			conn.SetReadDeadline(time.Now().Add(h.wsConfig.PongWait))
			return nil
		})
	}

	requests := make(chan models.ChatRequest)
	go h.readLoop(ctx, cancel, ws, sessionID, requests, log)
	go h.pingLoop(ctx, ws)

	for {
		select {
		case <-ctx.Done():
			return
		case req := <-requests:
			if err := ws.writeJSON(models.ChatFrame{Type: models.FrameTyping, SessionID: sessionID}); err != nil {
				return
			}

			reply, err := h.dialogSvc.ProcessMessage(ctx, toTurn(req))
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				ws.writeJSON(models.ChatFrame{Type: models.FrameError, SessionID: sessionID, Error: err.Error()})
				continue
			}

			if err := ws.writeJSON(models.ChatFrame{Type: models.FrameReply, SessionID: sessionID, Reply: reply}); err != nil {
				log.Warn("发送回复失败", zap.Error(err))
				return
			}
		}
	}
}

// readLoop 读取客户端消息，读取失败时取消连接上下文
func (h *DialogHandler) readLoop(ctx context.Context, cancel context.CancelFunc, ws *wsConn,
	sessionID string, requests chan<- models.ChatRequest, log *zap.Logger) {
	defer cancel()

	for {
		_, data, err := ws.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Warn("读取WebSocket消息失败", zap.Error(err))
			}
			return
		}

		var req models.ChatRequest
		if err := json.Unmarshal(data, &req); err != nil {
			ws.writeJSON(models.ChatFrame{Type: models.FrameError, SessionID: sessionID, Error: "消息格式错误"})
			continue
		}
		req.SessionID = sessionID

		select {
		case requests <- req:
		case <-ctx.Done():
			return
		}
	}
}

// pingLoop 定期发送心跳
func (h *DialogHandler) pingLoop(ctx context.Context, ws *wsConn) {
	if h.wsConfig.PingPeriod <= 0 {
		return
	}
	ticker := time.NewTicker(h.wsConfig.PingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := ws.ping(time.Now().Add(10 * time.Second)); err != nil {
				return
			}
		}
	}
}
