package config

import "errors"

// 配置相关错误
var (
	ErrInvalidPort         = errors.New("服务器端口必须在1到65535之间")
	ErrInvalidThinkingTime = errors.New("思考延迟不能为负，且最小值不能大于最大值")
	ErrInvalidMaxHistory   = errors.New("历史记录上限不能为负")
	ErrUnknownBackend      = errors.New("未知的偏好存储后端")
	ErrEmptyDSN            = errors.New("sqlite后端需要设置dsn")
	ErrInvalidPongWait     = errors.New("pong_wait必须大于ping_period")
	ErrInvalidLogLevel     = errors.New("无效的日志级别")
)
