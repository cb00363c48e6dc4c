// Package config loads the server's YAML configuration with viper and
// keeps it live-reloaded via fsnotify, the same pattern the rest of the
// codebase uses for its per-service configs.
package config

import (
	"fmt"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"

	"github.com/lamyinia/mahjong-room-server/internal/logging"
)

// Config is the single process-wide configuration for the room server.
type Config struct {
	AppName string    `mapstructure:"appName"`
	Log     LogConf   `mapstructure:"log"`
	Http    HttpConf  `mapstructure:"http"`
	Jwt     JwtConf   `mapstructure:"jwt"`
	Room    RoomConf  `mapstructure:"room"`
}

type LogConf struct {
	Level string `mapstructure:"level"`
}

type HttpConf struct {
	Port int `mapstructure:"port"`
}

type JwtConf struct {
	Secret string        `mapstructure:"secret"`
	Expiry time.Duration `mapstructure:"expiry"`
}

// RoomConf carries a room's tunable timing constants: claim-window
// timeout, bot pacing delay, and disconnect grace period.
type RoomConf struct {
	ClaimWindowTimeout time.Duration `mapstructure:"claimWindowTimeout"`
	BotActionDelay     time.Duration `mapstructure:"botActionDelay"`
	DisconnectGrace    time.Duration `mapstructure:"disconnectGrace"`
}

// Default returns the configuration used when no file is supplied or a
// key is left unset.
func Default() *Config {
	return &Config{
		AppName: "mahjong-room-server",
		Log:     LogConf{Level: "info"},
		Http:    HttpConf{Port: 8080},
		Jwt:     JwtConf{Secret: "dev-secret-change-me", Expiry: 10 * time.Minute},
		Room: RoomConf{
			ClaimWindowTimeout: 15 * time.Second,
			BotActionDelay:     800 * time.Millisecond,
			DisconnectGrace:    60 * time.Second,
		},
	}
}

// Load reads configFile (if non-empty) over the defaults and watches it
// for changes, invoking onChange whenever a reload succeeds.
func Load(configFile string, onChange func(*Config)) (*Config, error) {
	cfg := Default()
	if configFile == "" {
		return cfg, nil
	}

	v := viper.New()
	v.SetConfigFile(configFile)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading config %s: %w", configFile, err)
	}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", configFile, err)
	}

	v.WatchConfig()
	v.OnConfigChange(func(_ fsnotify.Event) {
		reloaded := Default()
		if err := v.Unmarshal(reloaded); err != nil {
			logging.Error("config reload failed: %v", err)
			return
		}
		if onChange != nil {
			onChange(reloaded)
		}
	})

	return cfg, nil
}
