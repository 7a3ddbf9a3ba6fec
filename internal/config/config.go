package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	Cache     CacheConfig
	City      CityConfig
	Upstream  UpstreamConfig
	Predictor PredictorConfig
	Refresh   RefreshConfig
	Log       LogConfig
	DemoMode  bool
}

type ServerConfig struct {
	Host string
	Port int
	Env  string
}

type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MaxConns        int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type CacheConfig struct {
	TTL time.Duration
}

// CityConfig anchors mock data and upstream queries to one city.
type CityConfig struct {
	Name string
	Lat  float64
	Lon  float64
	BBox string
}

type UpstreamConfig struct {
	TrafficProvider string // "here" or "tomtom"
	HereAPIKey      string
	TomTomAPIKey    string
	OpenWeatherKey  string
	OpenAQBaseURL   string
	RequestTimeout  time.Duration
}

type PredictorConfig struct {
	ServiceURL     string
	RequestTimeout time.Duration
}

type RefreshConfig struct {
	Enabled  bool
	Interval time.Duration
}

type LogConfig struct {
	Level string
}

func Load() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")
	viper.AutomaticEnv()

	// Missing .env is fine, environment variables still apply.
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok && !strings.Contains(err.Error(), "no such file") {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	cfg := &Config{
		Server: ServerConfig{
			Host: viper.GetString("API_HOST"),
			Port: viper.GetInt("API_PORT"),
			Env:  viper.GetString("API_ENV"),
		},
		Database: DatabaseConfig{
			Host:            viper.GetString("DB_HOST"),
			Port:            viper.GetInt("DB_PORT"),
			User:            viper.GetString("DB_USER"),
			Password:        viper.GetString("DB_PASSWORD"),
			DBName:          viper.GetString("DB_NAME"),
			SSLMode:         viper.GetString("DB_SSLMODE"),
			MaxConns:        viper.GetInt("DB_MAX_CONNS"),
			MaxIdleConns:    viper.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: time.Duration(viper.GetInt("DB_CONN_MAX_LIFETIME")) * time.Second,
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetInt("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		Cache: CacheConfig{
			TTL: time.Duration(viper.GetInt("CACHE_TTL")) * time.Second,
		},
		City: CityConfig{
			Name: viper.GetString("CITY_NAME"),
			Lat:  viper.GetFloat64("CITY_LAT"),
			Lon:  viper.GetFloat64("CITY_LON"),
			BBox: viper.GetString("CITY_BBOX"),
		},
		Upstream: UpstreamConfig{
			TrafficProvider: strings.ToLower(viper.GetString("TRAFFIC_PROVIDER")),
			HereAPIKey:      viper.GetString("HERE_API_KEY"),
			TomTomAPIKey:    viper.GetString("TOMTOM_API_KEY"),
			OpenWeatherKey:  viper.GetString("OPENWEATHER_API_KEY"),
			OpenAQBaseURL:   viper.GetString("OPENAQ_BASE_URL"),
			RequestTimeout:  time.Duration(viper.GetInt("UPSTREAM_TIMEOUT")) * time.Second,
		},
		Predictor: PredictorConfig{
			ServiceURL:     viper.GetString("ML_SERVICE_URL"),
			RequestTimeout: time.Duration(viper.GetInt("ML_SERVICE_TIMEOUT")) * time.Second,
		},
		Refresh: RefreshConfig{
			Enabled:  viper.GetBool("REFRESH_ENABLED"),
			Interval: time.Duration(viper.GetInt("REFRESH_INTERVAL")) * time.Second,
		},
		Log: LogConfig{
			Level: viper.GetString("LOG_LEVEL"),
		},
		DemoMode: viper.GetBool("DEMO_MODE"),
	}

	applyDefaults(cfg)

	return cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Cache.TTL == 0 {
		cfg.Cache.TTL = 300 * time.Second
	}
	if cfg.City.Name == "" {
		cfg.City.Name = "Delhi"
		cfg.City.Lat = 28.6139
		cfg.City.Lon = 77.2090
	}
	if cfg.City.BBox == "" {
		cfg.City.BBox = "28.4,77.0,28.7,77.3"
	}
	if cfg.Upstream.TrafficProvider == "" {
		cfg.Upstream.TrafficProvider = "here"
	}
	if cfg.Upstream.OpenAQBaseURL == "" {
		cfg.Upstream.OpenAQBaseURL = "https://api.openaq.org/v2"
	}
	if cfg.Upstream.RequestTimeout == 0 {
		cfg.Upstream.RequestTimeout = 10 * time.Second
	}
	if cfg.Predictor.RequestTimeout == 0 {
		cfg.Predictor.RequestTimeout = 10 * time.Second
	}
	if cfg.Refresh.Interval == 0 {
		cfg.Refresh.Interval = 300 * time.Second
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Database.MaxConns == 0 {
		cfg.Database.MaxConns = 10
	}
	if cfg.Database.MaxIdleConns == 0 {
		cfg.Database.MaxIdleConns = 5
	}
	if cfg.Database.ConnMaxLifetime == 0 {
		cfg.Database.ConnMaxLifetime = 30 * time.Minute
	}
}

// DatabaseConfigured reports whether persistence should be attempted at all.
func (c *Config) DatabaseConfigured() bool {
	return !c.DemoMode && c.Database.Host != ""
}

// RedisConfigured reports whether the Redis-backed cache should be used.
func (c *Config) RedisConfigured() bool {
	return !c.DemoMode && c.Redis.Host != ""
}

func (c *Config) GetServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host,
		c.Port,
		c.User,
		c.Password,
		c.DBName,
		c.SSLMode,
	)
}

func (c *RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
