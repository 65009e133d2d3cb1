package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	Env               string `mapstructure:"ENV"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Language model provider: "openai" or "gemini".
	LLMProvider  string `mapstructure:"LLM_PROVIDER"`
	OpenAIModel  string `mapstructure:"OPENAI_MODEL"`
	GeminiModel  string `mapstructure:"GEMINI_MODEL"`
	OpenAIAPIKey string `mapstructure:"OPENAI_API_KEY"`
	GeminiAPIKey string `mapstructure:"GEMINI_API_KEY"`
	SerperAPIKey string `mapstructure:"SERPER_API_KEY"`

	// Agent pipeline.
	SearchResults       int `mapstructure:"SEARCH_RESULTS"`
	AgentMaxIterations  int `mapstructure:"AGENT_MAX_ITERATIONS"`
	AgentTimeoutSeconds int `mapstructure:"AGENT_TIMEOUT_SECONDS"`

	// Redis configuration.
	RedisEnabled          bool   `mapstructure:"REDIS_ENABLED"`
	RedisAddr             string `mapstructure:"REDIS_ADDR"`
	RedisPassword         string `mapstructure:"REDIS_PASSWORD"`
	RedisCacheDB          int    `mapstructure:"REDIS_CACHE_DB"`
	RedisSessionDB        int    `mapstructure:"REDIS_SESSION_DB"`
	SessionTTLMinutes     int    `mapstructure:"SESSION_TTL_MINUTES"`
	SearchCacheTTLMinutes int    `mapstructure:"SEARCH_CACHE_TTL_MINUTES"`

	// Itinerary archive.
	ArchiveEnabled bool   `mapstructure:"ARCHIVE_ENABLED"`
	DatabaseURL    string `mapstructure:"DATABASE_URL"`
	DatabaseName   string `mapstructure:"DATABASE_NAME"`
}

var AppConfig Config

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_PORT", "8080")
	v.SetDefault("ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	v.SetDefault("LLM_PROVIDER", "openai")
	v.SetDefault("OPENAI_MODEL", "gpt-4o-mini")
	v.SetDefault("GEMINI_MODEL", "gemini-1.5-pro")
	v.SetDefault("OPENAI_API_KEY", "")
	v.SetDefault("GEMINI_API_KEY", "")
	v.SetDefault("SERPER_API_KEY", "")
	v.SetDefault("SEARCH_RESULTS", 10)
	v.SetDefault("AGENT_MAX_ITERATIONS", 6)
	v.SetDefault("AGENT_TIMEOUT_SECONDS", 300)
	v.SetDefault("REDIS_ENABLED", false)
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_CACHE_DB", 0)
	v.SetDefault("REDIS_SESSION_DB", 1)
	v.SetDefault("SESSION_TTL_MINUTES", 60)
	v.SetDefault("SEARCH_CACHE_TTL_MINUTES", 360)
	v.SetDefault("ARCHIVE_ENABLED", false)
	v.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	v.SetDefault("DATABASE_NAME", "tripplanner")
}

// Load reads configuration from v. A missing config file is not an error.
func Load(v *viper.Viper) (Config, error) {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return Config{}, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadConfig populates AppConfig from .env, config.yaml and the environment.
func LoadConfig() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables only")
	}

	cfg, err := Load(viper.GetViper())
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	AppConfig = cfg
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}

// AgentTimeout bounds one full research-then-plan run.
func (c Config) AgentTimeout() time.Duration {
	if c.AgentTimeoutSeconds <= 0 {
		return 5 * time.Minute
	}
	return time.Duration(c.AgentTimeoutSeconds) * time.Second
}

func (c Config) SessionTTL() time.Duration {
	return time.Duration(c.SessionTTLMinutes) * time.Minute
}

func (c Config) SearchCacheTTL() time.Duration {
	return time.Duration(c.SearchCacheTTLMinutes) * time.Minute
}
