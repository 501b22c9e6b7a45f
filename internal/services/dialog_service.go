package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"dataset_assistant/internal/assistant"
	"dataset_assistant/internal/config"
	"dataset_assistant/internal/models"
)

// storeTimeout 偏好存储的读写上限，超时不阻塞回复
const storeTimeout = 500 * time.Millisecond

// ErrConversationClosed 会话在回复送达前被关闭
var ErrConversationClosed = errors.New("conversation closed")

// DialogContext 对话上下文
type DialogContext struct {
	SessionID    string
	History      []models.Message
	LastActivity time.Time

	preference  *assistant.Preference
	personalize bool
	loaded      bool

	// done 在会话关闭时取消，用于中断等待中的回复
	done   context.Context
	cancel context.CancelFunc

	// mu 保证同一会话同一时间只有一次应答
	mu sync.Mutex
}

// DialogService 处理对话服务
type DialogService struct {
	store      assistant.PreferenceStore
	keyPrefix  string
	maxHistory int
	pacer      *Pacer
	logger     *zap.Logger
	now        func() time.Time

	sessions map[string]*DialogContext
	mu       sync.RWMutex
}

// NewDialogService 创建新的对话服务
func NewDialogService(cfg *config.Config, store assistant.PreferenceStore, pacer *Pacer, logger *zap.Logger) *DialogService {
	if pacer == nil {
		pacer = NewPacer(cfg.Assistant.ThinkingMin, cfg.Assistant.ThinkingMax)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DialogService{
		store:      store,
		keyPrefix:  cfg.Preference.KeyPrefix,
		maxHistory: cfg.Assistant.MaxHistory,
		pacer:      pacer,
		logger:     logger,
		now:        time.Now,
		sessions:   make(map[string]*DialogContext),
	}
}

// getOrCreateSession 获取或创建会话
func (s *DialogService) getOrCreateSession(sessionID, userKey string) *DialogContext {
	s.mu.Lock()
	defer s.mu.Unlock()

	if dc, exists := s.sessions[sessionID]; exists {
		dc.LastActivity = s.now()
		return dc
	}

	if userKey == "" {
		userKey = sessionID
	}
	done, cancel := context.WithCancel(context.Background())
	dc := &DialogContext{
		SessionID:    sessionID,
		History:      make([]models.Message, 0),
		LastActivity: s.now(),
		preference:   assistant.NewPreference(s.store, s.keyPrefix+userKey),
		done:         done,
		cancel:       cancel,
	}
	s.sessions[sessionID] = dc
	return dc
}

// ProcessMessage 处理用户消息
func (s *DialogService) ProcessMessage(ctx context.Context, turn models.Turn) (*models.Message, error) {
	dc := s.getOrCreateSession(turn.SessionID, turn.UserKey)
	dc.mu.Lock()
	defer dc.mu.Unlock()

	log := s.logger.With(zap.String("session_id", dc.SessionID))

	if dc.done.Err() != nil {
		return nil, ErrConversationClosed
	}

	s.loadPreference(ctx, dc, log)

	// 本条消息之前的历史
	history := make([]models.Message, len(dc.History))
	copy(history, dc.History)

	s.appendMessage(dc, models.Message{
		ID:        uuid.NewString(),
		Role:      models.RoleUser,
		Text:      turn.Text,
		Timestamp: s.now(),
	})

	// 开关指令先在内存生效，写入失败也不回滚
	if v, ok := assistant.DetectPreferenceToggle(turn.Text); ok {
		dc.personalize = v
		log.Info("个性化偏好已切换", zap.Bool("personalize", v))
		s.savePreference(ctx, dc, v, log)
	}

	result := assistant.Run(turn.Text, turn.User, history, dc.personalize)
	log.Debug("意图分类完成", zap.String("intent", string(result.Intent)))

	waitCtx, stop := context.WithCancel(ctx)
	defer stop()
	unregister := context.AfterFunc(dc.done, stop)
	defer unregister()

	if err := s.pacer.Wait(waitCtx); err != nil {
		if dc.done.Err() != nil {
			err = ErrConversationClosed
		}
		log.Info("回复被取消", zap.Error(err))
		return nil, err
	}

	reply := models.Message{
		ID:        uuid.NewString(),
		Role:      models.RoleAssistant,
		Text:      result.Text,
		Timestamp: s.now(),
	}
	s.appendMessage(dc, reply)

	return &reply, nil
}

// loadPreference 每个会话只读取一次偏好，失败时使用默认值
func (s *DialogService) loadPreference(ctx context.Context, dc *DialogContext, log *zap.Logger) {
	if dc.loaded {
		return
	}
	loadCtx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	v, err := dc.preference.Load(loadCtx)
	if err != nil {
		log.Warn("读取个性化偏好失败，使用默认值", zap.Error(err))
	}
	dc.personalize = v
	dc.loaded = true
}

func (s *DialogService) savePreference(ctx context.Context, dc *DialogContext, v bool, log *zap.Logger) {
	saveCtx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	if err := dc.preference.Save(saveCtx, v); err != nil {
		log.Warn("保存个性化偏好失败", zap.String("key", dc.preference.Key()), zap.Error(err))
	}
}

// appendMessage 追加消息并按上限丢弃最旧的记录
func (s *DialogService) appendMessage(dc *DialogContext, msg models.Message) {
	dc.History = append(dc.History, msg)
	if s.maxHistory > 0 && len(dc.History) > s.maxHistory {
		dc.History = append([]models.Message(nil), dc.History[len(dc.History)-s.maxHistory:]...)
	}
}

// GetHistory 获取对话历史
func (s *DialogService) GetHistory(sessionID string) []models.Message {
	s.mu.RLock()
	dc, ok := s.sessions[sessionID]
	s.mu.RUnlock()
	if !ok {
		return []models.Message{}
	}

	dc.mu.Lock()
	defer dc.mu.Unlock()

	history := make([]models.Message, len(dc.History))
	copy(history, dc.History)
	return history
}

// ClearHistory 清除对话历史，保留已加载的偏好
func (s *DialogService) ClearHistory(sessionID string) {
	s.mu.RLock()
	dc, ok := s.sessions[sessionID]
	s.mu.RUnlock()
	if !ok {
		return
	}

	dc.mu.Lock()
	defer dc.mu.Unlock()

	dc.History = make([]models.Message, 0)
}

// CloseSession 关闭会话，等待中的回复不会再送达
func (s *DialogService) CloseSession(sessionID string) {
	s.mu.Lock()
	dc, ok := s.sessions[sessionID]
	delete(s.sessions, sessionID)
	s.mu.Unlock()

	if ok {
		dc.cancel()
		s.logger.Debug("会话已关闭", zap.String("session_id", sessionID))
	}
}

var _ models.DialogService = (*DialogService)(nil)
