package _const

// 服务器相关常量
const (
	// HTTP 服务默认配置
	DefaultListenHost = "0.0.0.0"
	DefaultListenPort = 8080

	// 认证相关常量
	DefaultTokenExpireHours = 24       // Token 有效期（小时）
	TokenType               = "Bearer" // Token 类型
	DefaultUsername         = "admin"
	DefaultPassword         = "admin123"

	// 采集相关常量
	TopProcessCount    = 10   // 进程排行数量
	TopGPUProcessCount = 5    // GPU 进程排行数量
	AMDFanMaxRPM       = 3000 // AMD 风扇估算的最大转速

	// 缓冲区大小常量
	ReadBufferSize  = 4 * 1024 // WebSocket 读取缓冲区大小
	WriteBufferSize = 4 * 1024 // WebSocket 写入缓冲区大小
)
