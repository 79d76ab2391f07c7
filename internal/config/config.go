package config

import (
	"errors"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

type Config struct {
	DiscordToken    string           `yaml:"discord_token"`
	GuildConfigPath string           `yaml:"guild_config_path"`
	LogLevel        string           `yaml:"log_level"`
	Health          HealthConfig     `yaml:"health"`
	Status          StatusConfig     `yaml:"status"`
	Ticket          TicketConfig     `yaml:"ticket"`
	Tebex           TebexConfig      `yaml:"tebex"`
	RoleAssign      RoleAssignConfig `yaml:"role_assign"`
	Notifications   NotifyConfig     `yaml:"notifications"`
}

type HealthConfig struct {
	Enabled bool   `yaml:"enabled"`
	Addr    string `yaml:"addr"`
}

type StatusConfig struct {
	URL             string `yaml:"url"`
	IntervalMinutes int    `yaml:"interval_minutes"`
}

type TicketConfig struct {
	CloseDelaySeconds int `yaml:"close_delay_seconds"`
	PingDeleteSeconds int `yaml:"ping_delete_seconds"`
}

type TebexConfig struct {
	Endpoint  string `yaml:"endpoint"`
	Secret    string `yaml:"secret"`
	StoreName string `yaml:"store_name"`
}

type RoleAssignConfig struct {
	BatchSize    int `yaml:"batch_size"`
	PauseSeconds int `yaml:"pause_seconds"`
}

type NotifyConfig struct {
	AdminUserID  string      `yaml:"admin_user_id"`
	EmailEnabled bool        `yaml:"email_enabled"`
	EmailFrom    string      `yaml:"email_from"`
	EmailTo      string      `yaml:"email_to"`
	SMTPAddr     string      `yaml:"smtp_addr"`
	EmbedColors  EmbedColors `yaml:"embed_colors"`
}

type EmbedColors struct {
	Success int `yaml:"success"`
	Error   int `yaml:"error"`
	Warning int `yaml:"warning"`
	Info    int `yaml:"info"`
	Primary int `yaml:"primary"`
}

func DefaultConfig() Config {
	return Config{
		GuildConfigPath: "config.json",
		LogLevel:        "info",
		Health:          HealthConfig{Enabled: false, Addr: ":8080"},
		Status:          StatusConfig{URL: "https://status.cfx.re", IntervalMinutes: 5},
		Ticket:          TicketConfig{CloseDelaySeconds: 5, PingDeleteSeconds: 10},
		Tebex:           TebexConfig{Endpoint: "https://plugin.tebex.io/payments", StoreName: "kingmaps.net"},
		RoleAssign:      RoleAssignConfig{BatchSize: 5, PauseSeconds: 1},
		Notifications: NotifyConfig{
			EmbedColors: EmbedColors{
				Success: 0x00FF00,
				Error:   0xFF0000,
				Warning: 0xFFAA00,
				Info:    0x3498DB,
				Primary: 0x5865F2,
			},
		},
	}
}

func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := DefaultConfig()

	path := os.Getenv("CONFIG_PATH")
	if path == "" {
		path = "config.yaml"
	}
	if data, err := os.ReadFile(path); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, err
		}
	}

	applyEnv(&cfg)
	if cfg.DiscordToken == "" {
		return Config{}, errors.New("DISCORD_TOKEN is required")
	}
	if cfg.Status.IntervalMinutes <= 0 {
		cfg.Status.IntervalMinutes = 5
	}
	if cfg.Ticket.CloseDelaySeconds <= 0 {
		cfg.Ticket.CloseDelaySeconds = 5
	}
	if cfg.Ticket.PingDeleteSeconds <= 0 {
		cfg.Ticket.PingDeleteSeconds = 10
	}

	return cfg, nil
}

func applyEnv(cfg *Config) {
	cfg.DiscordToken = envString("DISCORD_TOKEN", cfg.DiscordToken)
	cfg.GuildConfigPath = envString("GUILD_CONFIG_PATH", cfg.GuildConfigPath)
	cfg.LogLevel = envString("LOG_LEVEL", cfg.LogLevel)
	cfg.Health.Enabled = envBool("HEALTH_ENABLED", cfg.Health.Enabled)
	cfg.Health.Addr = envString("HEALTH_ADDR", cfg.Health.Addr)
	cfg.Status.URL = envString("STATUS_URL", cfg.Status.URL)
	cfg.Status.IntervalMinutes = envInt("STATUS_INTERVAL_MINUTES", cfg.Status.IntervalMinutes)
	cfg.Ticket.CloseDelaySeconds = envInt("TICKET_CLOSE_DELAY_SECONDS", cfg.Ticket.CloseDelaySeconds)
	cfg.Ticket.PingDeleteSeconds = envInt("TICKET_PING_DELETE_SECONDS", cfg.Ticket.PingDeleteSeconds)
	cfg.Tebex.Endpoint = envString("TEBEX_ENDPOINT", cfg.Tebex.Endpoint)
	cfg.Tebex.Secret = envString("TEBEX_SECRET", cfg.Tebex.Secret)
	cfg.Tebex.StoreName = envString("TEBEX_STORE_NAME", cfg.Tebex.StoreName)
	cfg.Notifications.AdminUserID = envString("ADMIN_USER_ID", cfg.Notifications.AdminUserID)
	cfg.Notifications.EmailEnabled = envBool("SHUTDOWN_EMAIL_ENABLED", cfg.Notifications.EmailEnabled)
	cfg.Notifications.EmailFrom = envString("SHUTDOWN_EMAIL_FROM", cfg.Notifications.EmailFrom)
	cfg.Notifications.EmailTo = envString("SHUTDOWN_EMAIL_TO", cfg.Notifications.EmailTo)
	cfg.Notifications.SMTPAddr = envString("SHUTDOWN_SMTP_ADDR", cfg.Notifications.SMTPAddr)
}

func BuildLogger(level string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Encoding = "json"
	cfg.EncoderConfig.TimeKey = "time"
	cfg.EncoderConfig.MessageKey = "message"
	cfg.EncoderConfig.LevelKey = "level"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	lvl := strings.ToLower(level)
	switch lvl {
	case "debug", "info", "warn", "error":
		cfg.Level = zap.NewAtomicLevelAt(parseLevel(lvl))
	default:
		cfg.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	}

	return cfg.Build()
}

func parseLevel(level string) zapcore.Level {
	switch level {
	case "debug":
		return zapcore.DebugLevel
	case "warn":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

func envString(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if value := os.Getenv(key); value != "" {
		lower := strings.ToLower(value)
		return lower == "1" || lower == "true" || lower == "yes"
	}
	return fallback
}
