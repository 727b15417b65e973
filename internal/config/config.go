package config

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/joho/godotenv"
	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/sells-group/bikelane-cli/internal/model"
	"github.com/sells-group/bikelane-cli/internal/view"
)

// Config holds the full application configuration.
type Config struct {
	Sources SourcesConfig `yaml:"sources" mapstructure:"sources"`
	View    ViewConfig    `yaml:"view" mapstructure:"view"`
	Server  ServerConfig  `yaml:"server" mapstructure:"server"`
	Log     LogConfig     `yaml:"log" mapstructure:"log"`
}

// SourcesConfig locates the three district datasets.
type SourcesConfig struct {
	Population string `yaml:"population" mapstructure:"population"`
	Area       string `yaml:"area" mapstructure:"area"`
	BikeLane   string `yaml:"bike_lane" mapstructure:"bike_lane"`
	Encoding   string `yaml:"encoding" mapstructure:"encoding"`
	Delimiter  string `yaml:"delimiter" mapstructure:"delimiter"` // one character, or "tab"
	Sheet      string `yaml:"sheet" mapstructure:"sheet"`         // workbook sheet for .xlsx sources
}

// Separator returns the CSV field separator named by Delimiter.
func (s SourcesConfig) Separator() (rune, error) {
	switch strings.ToLower(s.Delimiter) {
	case "":
		return ',', nil
	case "tab", `\t`, "\t":
		return '\t', nil
	}
	r := []rune(s.Delimiter)
	if len(r) != 1 || r[0] == '"' || r[0] == '\r' || r[0] == '\n' || r[0] == utf8.RuneError {
		return 0, eris.Errorf("config: invalid delimiter %q", s.Delimiter)
	}
	return r[0], nil
}

// ViewConfig holds the default selection for ranked views.
type ViewConfig struct {
	Indicator string `yaml:"indicator" mapstructure:"indicator"`
	TopN      int    `yaml:"top_n" mapstructure:"top_n"`
}

// ServerConfig configures the dashboard API server.
type ServerConfig struct {
	Port        int      `yaml:"port" mapstructure:"port"`
	RateLimit   float64  `yaml:"rate_limit" mapstructure:"rate_limit"` // requests per second
	RateBurst   int      `yaml:"rate_burst" mapstructure:"rate_burst"`
	CORSOrigins []string `yaml:"cors_origins" mapstructure:"cors_origins"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment. A .env file in the
// working directory is loaded first; variables already set win.
func Load() (*Config, error) {
	_ = godotenv.Load(".env")

	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("BIKELANE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("sources.population", "data/population.csv")
	v.SetDefault("sources.area", "data/area.csv")
	v.SetDefault("sources.bike_lane", "data/bike_lane.csv")
	v.SetDefault("sources.encoding", "utf-8")
	v.SetDefault("sources.delimiter", ",")
	v.SetDefault("sources.sheet", "")
	v.SetDefault("view.indicator", string(model.IndicatorImbalanceIndex))
	v.SetDefault("view.top_n", view.DefaultTopN)
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.rate_limit", 20)
	v.SetDefault("server.rate_burst", 40)
	v.SetDefault("server.cors_origins", []string{"*"})
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// Validate checks the settings a command needs. mode is "load" for commands
// that read the sources and "serve" for the API server.
func (c *Config) Validate(mode string) error {
	var problems []string

	if c.Sources.Population == "" {
		problems = append(problems, "sources.population is required")
	}
	if c.Sources.Area == "" {
		problems = append(problems, "sources.area is required")
	}
	if c.Sources.BikeLane == "" {
		problems = append(problems, "sources.bike_lane is required")
	}
	if _, err := c.Sources.Separator(); err != nil {
		problems = append(problems, "sources.delimiter must be a single character or \"tab\"")
	}
	if _, err := model.ParseIndicator(c.View.Indicator); err != nil {
		problems = append(problems, "view.indicator must be one of the known indicators")
	}
	if c.View.TopN < view.MinTopN || c.View.TopN > view.MaxTopN {
		problems = append(problems, fmt.Sprintf("view.top_n must be between %d and %d", view.MinTopN, view.MaxTopN))
	}

	if mode == "serve" {
		if c.Server.Port <= 0 || c.Server.Port > 65535 {
			problems = append(problems, "server.port must be between 1 and 65535")
		}
		if c.Server.RateLimit <= 0 {
			problems = append(problems, "server.rate_limit must be positive")
		}
		if c.Server.RateBurst <= 0 {
			problems = append(problems, "server.rate_burst must be positive")
		}
	}

	if len(problems) > 0 {
		return eris.Errorf("config: %s", strings.Join(problems, "; "))
	}
	return nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
