package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	App         AppConfig
	Server      ServerConfig
	Data        DataConfig
	Store       StoreConfig
	Aggregation AggregationConfig
	Render      RenderConfig
}

type AppConfig struct {
	Name     string `mapstructure:"name"`
	Env      string `mapstructure:"env"`
	LogLevel string `mapstructure:"log_level"`
}

type ServerConfig struct {
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	EnableSwagger   bool          `mapstructure:"enable_swagger"`
}

type DataConfig struct {
	Path string `mapstructure:"path"` // local file or http(s) URL
}

type StoreConfig struct {
	Path string `mapstructure:"path"` // empty disables run history
}

type AggregationConfig struct {
	Years        []int `mapstructure:"years"` // empty means every observed year
	ZeroFillGaps bool  `mapstructure:"zero_fill_gaps"`
}

type RenderConfig struct {
	Format     string `mapstructure:"format"` // png or svg
	OutputDir  string `mapstructure:"output_dir"`
	BarWidth   int    `mapstructure:"bar_width"`
	BarHeight  int    `mapstructure:"bar_height"`
	LineWidth  int    `mapstructure:"line_width"`
	LineHeight int    `mapstructure:"line_height"`
}

// Load reads config.yaml (optional), .env (optional) and the environment.
func Load() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/bike-dashboard/")

	return load(v)
}

// LoadFile reads configuration from an explicit file path, then .env
// (optional) and the environment.
func LoadFile(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetConfigFile(path)
	return load(v)
}

func load(v *viper.Viper) (*Config, error) {
	// a missing .env is the normal case outside local development
	_ = godotenv.Load()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if err := overrideFromEnv(v); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "bike-dashboard")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.log_level", "info")

	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "30s")
	v.SetDefault("server.shutdown_timeout", "10s")
	v.SetDefault("server.enable_swagger", true)

	v.SetDefault("data.path", "main_data.csv")

	v.SetDefault("store.path", "dashboard.db")

	v.SetDefault("aggregation.years", []int{})
	v.SetDefault("aggregation.zero_fill_gaps", true)

	v.SetDefault("render.format", "png")
	v.SetDefault("render.output_dir", "outputs")
	v.SetDefault("render.bar_width", 1200)
	v.SetDefault("render.bar_height", 600)
	v.SetDefault("render.line_width", 1200)
	v.SetDefault("render.line_height", 600)
}

func overrideFromEnv(v *viper.Viper) error {
	if path := os.Getenv("DATA_PATH"); path != "" {
		v.Set("data.path", path)
	}
	if path, ok := os.LookupEnv("STORE_PATH"); ok {
		v.Set("store.path", path)
	}
	if dir := os.Getenv("OUTPUT_DIR"); dir != "" {
		v.Set("render.output_dir", dir)
	}
	if port := os.Getenv("PORT"); port != "" {
		p, err := strconv.Atoi(port)
		if err != nil {
			return fmt.Errorf("invalid PORT %q: %w", port, err)
		}
		v.Set("server.port", p)
	}
	if years := os.Getenv("DASHBOARD_YEARS"); years != "" {
		var list []int
		for _, y := range strings.Split(years, ",") {
			n, err := strconv.Atoi(strings.TrimSpace(y))
			if err != nil {
				return fmt.Errorf("invalid DASHBOARD_YEARS entry %q: %w", y, err)
			}
			list = append(list, n)
		}
		v.Set("aggregation.years", list)
	}

	if env := os.Getenv("APP_ENV"); env != "" {
		v.Set("app.env", env)
	}
	if logLevel := os.Getenv("LOG_LEVEL"); logLevel != "" {
		v.Set("app.log_level", logLevel)
	}
	return nil
}

func validateConfig(cfg *Config) error {
	if cfg.Data.Path == "" {
		return fmt.Errorf("data path must not be empty")
	}
	if cfg.Server.Port <= 0 || cfg.Server.Port > 65535 {
		return fmt.Errorf("server port %d out of range", cfg.Server.Port)
	}
	switch cfg.Render.Format {
	case "png", "svg":
	default:
		return fmt.Errorf("render format must be png or svg, got %q", cfg.Render.Format)
	}
	if cfg.Render.BarWidth <= 0 || cfg.Render.BarHeight <= 0 ||
		cfg.Render.LineWidth <= 0 || cfg.Render.LineHeight <= 0 {
		return fmt.Errorf("chart dimensions must be positive")
	}
	for _, y := range cfg.Aggregation.Years {
		if y < 1 || y > 9999 {
			return fmt.Errorf("aggregation year %d out of range", y)
		}
	}
	return nil
}
