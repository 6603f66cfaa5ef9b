package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"sysmon_pro/config"
	"sysmon_pro/internal/auth"
	"sysmon_pro/internal/collector"
	"sysmon_pro/internal/console"
	_const "sysmon_pro/internal/const"
	"sysmon_pro/internal/logger"
	"sysmon_pro/internal/netinfo"
	"sysmon_pro/internal/server"
)

func main() {
	var (
		configFile = flag.String("config", "config.json", "Configuration file path")
		port       = flag.Int("port", 0, "HTTP listen port (overrides config)")
		host       = flag.String("host", "", "HTTP listen address (overrides config)")
		username   = flag.String("user", "", "Dashboard username (overrides config)")
		password   = flag.String("pass", "", "Dashboard password (overrides config)")
	)
	flag.Parse()

	// Initialize logger
	logger := logger.New()

	// Load configuration
	cfg, err := config.Load(*configFile)

	// 如果默认配置文件加载失败，尝试查找同目录下的配置文件
	if err != nil && *configFile == "config.json" {
		logger.Info("Default config file not found, searching for packaged config...")

		exePath, err2 := os.Executable()
		if err2 == nil {
			exeDir := filepath.Dir(exePath)
			exeName := strings.TrimSuffix(filepath.Base(exePath), filepath.Ext(exePath))

			possibleConfigs := []string{
				filepath.Join(exeDir, exeName+"_config.json"),
				filepath.Join(exeDir, "config.json"),
			}

			for _, configPath := range possibleConfigs {
				if _, err2 := os.Stat(configPath); err2 == nil {
					logger.Info("Found config file: %s", configPath)
					cfg, err = config.Load(configPath)
					if err == nil {
						break
					}
				}
			}
		}
	}

	if err != nil {
		logger.Error("Failed to load config: %v", err)
		os.Exit(1)
	}
	logger.SetLevel(cfg.LogLevel)

	// Override config with command line arguments
	if *port != 0 {
		cfg.Server.Port = *port
	}
	if *host != "" {
		cfg.Server.Host = *host
	}
	if *username != "" {
		cfg.Auth.Username = *username
	}
	if *password != "" {
		cfg.Auth.Password = *password
	}

	authMgr, err := auth.New(
		cfg.Auth.Username,
		cfg.Auth.Password,
		cfg.Auth.JWTSecret,
		time.Duration(cfg.Auth.TokenExpireHours)*time.Hour,
	)
	if err != nil {
		logger.Error("Failed to initialize auth: %v", err)
		os.Exit(1)
	}

	col := collector.New(logger, cfg)
	srv := server.New(logger, col, authMgr, cfg)

	// 启动面板：访问地址、默认凭据
	lanInterfaces := netinfo.LANInterfaces()
	fmt.Print(console.Banner())
	fmt.Print(console.ServerPanel(cfg.Server.Port, lanInterfaces))
	fmt.Print(console.AuthPanel(cfg.Auth.Username, cfg.Auth.Password, cfg.Auth.TokenExpireHours))

	// 配置热更新：采集参数与推送间隔即时生效
	stopWatch, err := config.Watch(*configFile, logger, func(newCfg *config.Config) {
		logger.SetLevel(newCfg.LogLevel)
		col.ApplyConfig(newCfg)
		srv.ApplyConfig(newCfg)
	})
	if err != nil {
		logger.Warn("Config hot reload disabled: %v", err)
	} else {
		defer stopWatch()
	}

	// Setup graceful shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	select {
	case sig := <-c:
		logger.Info("Received signal %v, shutting down gracefully...", sig)
		ctx, cancel := context.WithTimeout(context.Background(), _const.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			logger.Error("Shutdown error: %v", err)
			os.Exit(1)
		}
	case err := <-errCh:
		if err != nil {
			logger.Error("Server error: %v", err)
			os.Exit(1)
		}
	}
}
