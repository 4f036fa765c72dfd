package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/idilsaglam/foodie/internal/auth"
	"github.com/idilsaglam/foodie/internal/ui"
)

type Config struct {
	API      APIConfig
	Price    ui.PriceFormatter
	Favorite FavoriteConfig
	Log      LogConfig
	Backend  BackendConfig
}

type APIConfig struct {
	BaseURL string
	Timeout time.Duration
}

type FavoriteConfig struct {
	Rollback bool // revert the local flag when the remote call fails
}

type LogConfig struct {
	File  string
	Level string
}

type BackendConfig struct {
	Addr   string
	DBPath string
}

// Load reads envFile if present (missing is fine), then the environment.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("load %s: %w", envFile, err)
		}
	} else {
		_ = godotenv.Load()
	}

	timeout, err := time.ParseDuration(getEnv("FOODIE_TIMEOUT", "10s"))
	if err != nil {
		return nil, fmt.Errorf("FOODIE_TIMEOUT: %w", err)
	}
	rollback, err := strconv.ParseBool(getEnv("FOODIE_FAVORITE_ROLLBACK", "false"))
	if err != nil {
		return nil, fmt.Errorf("FOODIE_FAVORITE_ROLLBACK: %w", err)
	}

	logFile := getEnv("FOODIE_LOG_FILE", "")
	if logFile == "" {
		dir, err := auth.Dir()
		if err != nil {
			return nil, err
		}
		logFile = filepath.Join(dir, "foodie.log")
	}

	def := ui.DefaultPriceFormatter()
	return &Config{
		API: APIConfig{
			BaseURL: getEnv("FOODIE_API_URL", "http://localhost:3333"),
			Timeout: timeout,
		},
		Price: ui.PriceFormatter{
			Symbol:       getEnv("FOODIE_CURRENCY", def.Symbol),
			DecimalSep:   getEnv("FOODIE_DECIMAL_SEP", def.DecimalSep),
			ThousandsSep: getEnv("FOODIE_THOUSANDS_SEP", def.ThousandsSep),
		},
		Favorite: FavoriteConfig{Rollback: rollback},
		Log: LogConfig{
			File:  logFile,
			Level: getEnv("FOODIE_LOG_LEVEL", "info"),
		},
		Backend: BackendConfig{
			Addr:   getEnv("FOODIE_ADDR", ":3333"),
			DBPath: getEnv("FOODIE_DB", "db.json"),
		},
	}, nil
}

// NewLogger builds a JSON logger. With toFile the output goes to
// c.Log.File (the interactive screen owns stdout); otherwise to stderr.
func (c *Config) NewLogger(toFile bool) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(c.Log.Level)
	if err != nil {
		return nil, fmt.Errorf("FOODIE_LOG_LEVEL: %w", err)
	}
	zc := zap.NewProductionConfig()
	zc.Level = zap.NewAtomicLevelAt(level)
	zc.EncoderConfig.TimeKey = "ts"
	zc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	if toFile {
		if err := os.MkdirAll(filepath.Dir(c.Log.File), 0o700); err != nil {
			return nil, fmt.Errorf("log dir: %w", err)
		}
		zc.OutputPaths = []string{c.Log.File}
		zc.ErrorOutputPaths = []string{c.Log.File}
	}
	return zc.Build()
}

func getEnv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}
