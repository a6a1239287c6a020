package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Duration is a time.Duration that decodes from YAML strings like
// "30m" or "10s".
type Duration time.Duration

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

// AsDuration converts back to the standard type.
func (d Duration) AsDuration() time.Duration {
	return time.Duration(d)
}

// Config holds everything the bot needs: the Telegram credential and
// destination chat, wait defaults, the update delivery mode, and the
// optional history database.
type Config struct {
	Telegram struct {
		Token  string `yaml:"token"`
		ChatID int64  `yaml:"chat_id"`
	} `yaml:"telegram"`

	// Mode is "polling" or "webhook".
	Mode         string   `yaml:"mode"`
	WebhookURL   string   `yaml:"webhook_url"`
	ListenAddr   string   `yaml:"listen_addr"`
	PollInterval Duration `yaml:"poll_interval"`

	// DefaultTimeout bounds blocking calls that do not name their own.
	DefaultTimeout Duration `yaml:"default_timeout"`

	Database struct {
		URL string `yaml:"url"`
	} `yaml:"database"`

	Debug bool `yaml:"debug"`
}

// Load reads the optional YAML file at path, then applies environment
// overrides (a .env file is honored if present). Missing token or chat
// ID is a fatal configuration error: no question can be dispatched
// without a destination.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := defaults()

	if path != "" {
		f, err := os.Open(path)
		switch {
		case err == nil:
			defer f.Close()
			if err := yaml.NewDecoder(f).Decode(cfg); err != nil {
				return nil, fmt.Errorf("parse config %s: %w", path, err)
			}
		case !os.IsNotExist(err):
			return nil, fmt.Errorf("open config %s: %w", path, err)
		}
	}

	cfg.applyEnvOverrides()

	if cfg.Telegram.Token == "" {
		return nil, fmt.Errorf("telegram bot token is not set (TELEGRAM_BOT_TOKEN)")
	}
	if cfg.Telegram.ChatID == 0 {
		return nil, fmt.Errorf("telegram chat id is not set (TELEGRAM_CHAT_ID)")
	}
	if cfg.Mode == "webhook" && cfg.WebhookURL == "" {
		return nil, fmt.Errorf("webhook mode requires WEBHOOK_URL")
	}
	return cfg, nil
}

func defaults() *Config {
	cfg := &Config{}
	cfg.Mode = "polling"
	cfg.ListenAddr = ":8443"
	cfg.PollInterval = Duration(10 * time.Second)
	cfg.DefaultTimeout = Duration(30 * time.Minute)
	return cfg
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		c.Telegram.Token = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		if id, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Telegram.ChatID = id
		}
	}
	if v := os.Getenv("BOT_MODE"); v != "" {
		c.Mode = v
	}
	if v := os.Getenv("WEBHOOK_URL"); v != "" {
		c.WebhookURL = v
	}
	if v := os.Getenv("LISTEN_ADDR"); v != "" {
		c.ListenAddr = v
	}
	if v := os.Getenv("POLL_INTERVAL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.PollInterval = Duration(d)
		}
	}
	if v := os.Getenv("CONSULT_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.DefaultTimeout = Duration(d)
		}
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		c.Database.URL = v
	}
	if v := os.Getenv("DEBUG"); v == "true" || v == "1" {
		c.Debug = true
	}
}
