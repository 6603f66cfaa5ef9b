package _const

import "time"

// 时间相关常量
const (
	// CPU 使用率需要两次采样之间的稳定等待时间
	DefaultSettleWait = 300 * time.Millisecond
	MinSettleWait     = 200 * time.Millisecond
	MaxSettleWait     = 500 * time.Millisecond

	// WebSocket 推送采集间隔
	DefaultStreamInterval = 3 * time.Second
	MinStreamInterval     = 1 * time.Second

	// 优雅关闭等待时间
	ShutdownTimeout = 5 * time.Second

	// WebSocket 心跳配置
	PingInterval = 30 * time.Second
	PongWait     = 60 * time.Second
	WriteWait    = 10 * time.Second
)
