package main

import (
	"fmt"
	"os"

	"github.com/hashicorp/go-multierror"

	"github.com/chess10kp/xpdesk/internal/config"
)

func main() {
	configPath := "~/.config/xpdesk/config.toml"
	if len(os.Args) > 1 {
		configPath = os.Args[1]
	}

	fmt.Printf("Validating config: %s\n", configPath)

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		fmt.Printf("❌ Failed to load config: %v\n", err)
		os.Exit(1)
	}

	if err := cfg.Validate(); err != nil {
		fmt.Println("❌ Config validation failed:")
		if merr, ok := err.(*multierror.Error); ok {
			for _, e := range merr.Errors {
				fmt.Printf("  - %v\n", e)
			}
		} else {
			fmt.Printf("  - %v\n", err)
		}
		os.Exit(1)
	}

	fmt.Printf("✅ Config is valid! (backend=%s, socket=%s)\n", cfg.Backend, cfg.SocketPath)
}
