package main

import (
	"log"
	"os"
	"path/filepath"
	"strconv"
	"syscall"

	"github.com/chess10kp/xpdesk/internal/config"
	"github.com/chess10kp/xpdesk/internal/core"
)

const (
	pidFile           = "/tmp/xpdesk.pid"
	defaultConfigPath = "~/.config/xpdesk/config.toml"
)

func ensureSingleInstance() error {
	if data, err := os.ReadFile(pidFile); err == nil {
		if pid, err := strconv.Atoi(string(data)); err == nil && pid != os.Getpid() {
			process, err := os.FindProcess(pid)
			if err == nil {
				if err := process.Signal(syscall.Signal(0)); err == nil {
					process.Signal(syscall.SIGTERM)
					process.Wait()
				}
			}
		}
	}
	return os.WriteFile(pidFile, []byte(strconv.Itoa(os.Getpid())), 0644)
}

func cleanup() {
	os.Remove(pidFile)
}

func main() {
	configPath := defaultConfigPath
	if p := os.Getenv("XPDESK_CONFIG"); p != "" {
		configPath = p
	}

	cfg, err := config.LoadAndValidateConfig(configPath)
	if err != nil {
		log.Printf("Failed to load config: %v", err)
		def := config.DefaultConfig
		cfg = &def
	}

	if cfg.LogFile != "" {
		logPath := cfg.LogFile
		if !filepath.IsAbs(logPath) {
			logPath = filepath.Join(os.TempDir(), logPath)
		}
		logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
		if err == nil {
			log.SetOutput(logFile)
			defer logFile.Close()
		}
	}

	if err := ensureSingleInstance(); err != nil {
		log.Fatalf("Failed to ensure single instance: %v", err)
	}
	defer cleanup()

	app, err := core.NewApp(cfg)
	if err != nil {
		log.Fatalf("Failed to create application: %v", err)
	}

	if err := app.Run(); err != nil {
		log.Printf("Application error: %v", err)
		cleanup()
		os.Exit(1)
	}
}
