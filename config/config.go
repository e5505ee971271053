package config

import (
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type Config struct {
	Server       Server
	Backend      Backend
	Gemini       Gemini
	LogLevel     string
	Env          string
	AllowOrigins []string
}

type Server struct {
	Port string
}

// Backend points at the PDF-to-exam generation service.
type Backend struct {
	BaseURL string
	Timeout time.Duration
}

type Gemini struct {
	ApiKey string
	Model  string
}

func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Env, "production")
}

func NewConfig() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")

	viper.AutomaticEnv()

	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("BACKEND_BASE_URL", "http://localhost:8088")
	viper.SetDefault("BACKEND_TIMEOUT_SECONDS", 120)
	viper.SetDefault("GEMINI_MODEL", "gemini-1.5-flash")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("CORS_ALLOW_ORIGINS", "*")

	if err := viper.ReadInConfig(); err != nil {
		log.Warn().Err(err).Msg("Error reading config file")
	}

	var config Config

	config.Server.Port = viper.GetString("SERVER_PORT")
	config.Backend.BaseURL = strings.TrimRight(viper.GetString("BACKEND_BASE_URL"), "/")
	config.Backend.Timeout = time.Duration(viper.GetInt("BACKEND_TIMEOUT_SECONDS")) * time.Second

	config.Gemini.ApiKey = viper.GetString("GEMINI_API_KEY")
	config.Gemini.Model = viper.GetString("GEMINI_MODEL")

	config.LogLevel = viper.GetString("LOG_LEVEL")
	config.Env = viper.GetString("APP_ENV")
	config.AllowOrigins = splitOrigins(viper.GetString("CORS_ALLOW_ORIGINS"))

	log.Info().
		Str("port", config.Server.Port).
		Str("backend", config.Backend.BaseURL).
		Dur("backend_timeout", config.Backend.Timeout).
		Bool("gemini_enabled", config.Gemini.ApiKey != "").
		Str("env", config.Env).
		Msg("Config loaded")
	return &config, nil
}

func splitOrigins(raw string) []string {
	var origins []string
	for _, o := range strings.Split(raw, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}
