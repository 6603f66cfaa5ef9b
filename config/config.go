package config

import (
	"embed"
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	_const "sysmon_pro/internal/const"
	"sysmon_pro/internal/logger"
)

//go:embed config.json
var embeddedConfig embed.FS

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host string `json:"host"` // 监听地址
	Port int    `json:"port"` // 监听端口
}

// AuthConfig holds dashboard authentication configuration
type AuthConfig struct {
	Username         string `json:"username"`           // 登录用户名
	Password         string `json:"password"`           // 登录密码（启动时进行 bcrypt 哈希）
	JWTSecret        string `json:"jwt_secret"`         // Token 签名密钥
	TokenExpireHours int    `json:"token_expire_hours"` // Token 有效期（小时）
}

// MonitorConfig holds telemetry collection configuration
type MonitorConfig struct {
	SettleWaitMs      int    `json:"settle_wait_ms"`      // CPU 采样稳定等待时间（毫秒）
	StreamIntervalSec int    `json:"stream_interval_sec"` // WebSocket 推送间隔（秒）
	SensorFirstMatch  bool   `json:"sensor_first_match"`  // 传感器是否首个匹配即停止（默认保留覆盖行为）
	HwmonPath         string `json:"hwmon_path,omitempty"`
	ThermalZonePath   string `json:"thermal_zone_path,omitempty"`
	AMDDevicePath     string `json:"amd_device_path,omitempty"`
	IntelCardPath     string `json:"intel_card_path,omitempty"`
}

// Config holds the configuration for the monitor agent
type Config struct {
	Server   ServerConfig  `json:"server"`
	Auth     AuthConfig    `json:"auth"`
	Monitor  MonitorConfig `json:"monitor"`
	LogLevel string        `json:"log_level"`
}

// Load loads configuration from embedded config or external file
func Load(filename string) (*Config, error) {
	// 首先尝试读取外部文件，其次回退到嵌入的配置
	var err error
	var data []byte
	if data, err = os.ReadFile(filename); err != nil {
		if data, err = embeddedConfig.ReadFile("config.json"); err != nil {
			return nil, err
		}
	}

	var cfg Config
	if err = json.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	cfg.applyDefaults()
	return &cfg, nil
}

// Save saves configuration to a JSON file
func (c *Config) Save(filename string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(filename, data, 0644)
}

func (c *Config) applyDefaults() {
	if c.Server.Host == "" {
		c.Server.Host = _const.DefaultListenHost
	}
	if c.Server.Port == 0 {
		c.Server.Port = _const.DefaultListenPort
	}
	if c.Auth.Username == "" {
		c.Auth.Username = _const.DefaultUsername
	}
	if c.Auth.Password == "" {
		c.Auth.Password = _const.DefaultPassword
	}
	if c.Auth.TokenExpireHours <= 0 {
		c.Auth.TokenExpireHours = _const.DefaultTokenExpireHours
	}
}

// SettleWait returns the CPU sampling settle wait, clamped to a sane window.
func (c *Config) SettleWait() time.Duration {
	d := time.Duration(c.Monitor.SettleWaitMs) * time.Millisecond
	if d <= 0 {
		return _const.DefaultSettleWait
	}
	if d < _const.MinSettleWait {
		return _const.MinSettleWait
	}
	if d > _const.MaxSettleWait {
		return _const.MaxSettleWait
	}
	return d
}

// StreamInterval returns the snapshot broadcast interval.
func (c *Config) StreamInterval() time.Duration {
	d := time.Duration(c.Monitor.StreamIntervalSec) * time.Second
	if d <= 0 {
		return _const.DefaultStreamInterval
	}
	if d < _const.MinStreamInterval {
		return _const.MinStreamInterval
	}
	return d
}

// Watch reloads the configuration whenever the file changes and delivers the
// new configuration to onChange. It returns a stop function.
func Watch(filename string, log *logger.Logger, onChange func(*Config)) (func(), error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	// 监听配置文件所在目录，编辑器保存时通常是 rename+create
	dir := filepath.Dir(filename)
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return nil, err
	}

	go func() {
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != filepath.Clean(filename) {
					continue
				}
				if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
					continue
				}
				cfg, err := Load(filename)
				if err != nil {
					log.Warn("Failed to reload config %s: %v", filename, err)
					continue
				}
				log.Info("Config reloaded from %s", filename)
				onChange(cfg)
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				log.Warn("Config watcher error: %v", err)
			}
		}
	}()

	return func() { watcher.Close() }, nil
}
