package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Telegram  TelegramConfig  `mapstructure:"telegram"`
	Model     ModelConfig     `mapstructure:"model"`
	Segmenter SegmenterConfig `mapstructure:"segmenter"`
	Storage   StorageConfig   `mapstructure:"storage"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Labels    LabelsConfig    `mapstructure:"labels"`
	Metrics   MetricsConfig   `mapstructure:"metrics"`
}

type ServerConfig struct {
	Mode string `mapstructure:"mode"`
}

type TelegramConfig struct {
	Token string `mapstructure:"token"`
}

// ModelConfig описывает рабочее разрешение модели сегментации.
type ModelConfig struct {
	KeepInputSize bool    `mapstructure:"keep_input_size"`
	MaxSize       float64 `mapstructure:"max_size"`
	Type          string  `mapstructure:"type"`
}

type SegmenterConfig struct {
	Backend           string        `mapstructure:"backend"` // sam, grabcut
	URL               string        `mapstructure:"url"`
	Timeout           time.Duration `mapstructure:"timeout"`
	GrabCutIterations int           `mapstructure:"grabcut_iterations"`
	ClickRadius       int           `mapstructure:"click_radius"`
}

type StorageConfig struct {
	Backend   string `mapstructure:"backend"` // file, redis, memory
	OutputDir string `mapstructure:"output_dir"`
}

type RedisConfig struct {
	Addr     string        `mapstructure:"addr"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	TTL      time.Duration `mapstructure:"ttl"`
}

// LabelsConfig настройки меток: файл категорий и режим запроса метки ("Class On/Off").
type LabelsConfig struct {
	CategoryFile   string `mapstructure:"category_file"`
	ClassOn        bool   `mapstructure:"class_on"`
	SortCategories bool   `mapstructure:"sort_categories"`
}

type MetricsConfig struct {
	Addr string `mapstructure:"addr"`
}

var modelTypes = []string{"vit_b", "vit_l", "vit_h", "tiny", "small", "base-plus", "large"}

// Load читает .env, необязательный YAML-файл и переменные окружения поверх значений по умолчанию.
func Load(configPath string) (*Config, error) {
	// Загружаем .env файл (игнорируем ошибку если файла нет)
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// Исторические имена переменных окружения.
	_ = v.BindEnv("telegram.token", "TELEGRAM_TOKEN")
	_ = v.BindEnv("segmenter.url", "SAM_URL")

	if configPath != "" {
		v.SetConfigFile(configPath)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.mode", "debug")

	v.SetDefault("telegram.token", "")

	v.SetDefault("model.keep_input_size", true)
	v.SetDefault("model.max_size", 1080.0)
	v.SetDefault("model.type", "vit_b")

	v.SetDefault("segmenter.backend", "sam")
	v.SetDefault("segmenter.url", "http://localhost:8000")
	v.SetDefault("segmenter.timeout", 2*time.Minute)
	v.SetDefault("segmenter.grabcut_iterations", 5)
	v.SetDefault("segmenter.click_radius", 5)

	v.SetDefault("storage.backend", "file")
	v.SetDefault("storage.output_dir", "output")

	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.ttl", 24*time.Hour)

	v.SetDefault("labels.category_file", "")
	v.SetDefault("labels.class_on", false)
	v.SetDefault("labels.sort_categories", true)

	v.SetDefault("metrics.addr", ":9090")
}

// Validate проверяет согласованность настроек.
func (c *Config) Validate() error {
	if !c.Model.KeepInputSize && c.Model.MaxSize <= 0 {
		return fmt.Errorf("model.max_size must be positive")
	}

	validType := false
	for _, t := range modelTypes {
		if c.Model.Type == t {
			validType = true
			break
		}
	}
	if !validType {
		return fmt.Errorf("model.type must be one of %s", strings.Join(modelTypes, ", "))
	}

	switch c.Segmenter.Backend {
	case "sam":
		if c.Segmenter.URL == "" {
			return fmt.Errorf("segmenter.url is required for the sam backend")
		}
	case "grabcut":
		if c.Segmenter.GrabCutIterations < 1 {
			return fmt.Errorf("segmenter.grabcut_iterations must be positive")
		}
	default:
		return fmt.Errorf("unknown segmenter.backend %q", c.Segmenter.Backend)
	}

	switch c.Storage.Backend {
	case "file":
		if c.Storage.OutputDir == "" {
			return fmt.Errorf("storage.output_dir cannot be empty")
		}
	case "redis", "memory":
	default:
		return fmt.Errorf("unknown storage.backend %q", c.Storage.Backend)
	}

	return nil
}

// SAMVersion возвращает поколение модели SAM по её типу.
func (m ModelConfig) SAMVersion() int {
	switch m.Type {
	case "tiny", "small", "base-plus", "large":
		return 2
	default:
		return 1
	}
}
