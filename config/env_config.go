package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type EnvConfig struct {
	Database struct {
		Driver string
	}
	Postgres struct {
		HOST     string
		Database string
		Username string
		Password string
		Port     string
	}
	MySQL struct {
		Host     string
		Database string
		Username string
		Password string
		Port     string
	}
	SQLite struct {
		Path string
	}
	JWT struct {
		SecretKey     string
		Algorithm     string
		AccessExpire  int // seconds
		RefreshExpire int // seconds
	}
	Session struct {
		TTL int // seconds
	}
	CORS struct {
		AllowDomains string
	}
	Redis struct {
		Password  string
		Database  int
		RedisHost string
		RedisPort string
	}
	RabbitMQ struct {
		Enabled  bool
		Host     string
		Port     string
		Username string
		Password string
	}
	Weather struct {
		APIURL     string
		Timeout    time.Duration
		DefaultLat string
		DefaultLon string
	}
	Grafana struct {
		OTLPEndpoint string
		ServiceName  string
	}
	Environment struct {
		Mode  string
		Group string
	}
	HTTPAddr string
	PageSize int
}

func LoadEnvConfig() *EnvConfig {
	var config EnvConfig

	config.Database.Driver = strings.ToLower(os.Getenv("DB_DRIVER"))
	if config.Database.Driver == "" {
		config.Database.Driver = "postgres"
	}

	// Postgres
	config.Postgres.HOST = os.Getenv("PGPOOL_HOST")
	config.Postgres.Database = os.Getenv("PGPOOL_DB")
	config.Postgres.Username = os.Getenv("PGPOOL_USER")
	config.Postgres.Password = os.Getenv("PGPOOL_PASSWORD")
	config.Postgres.Port = os.Getenv("PGPOOL_PORT")
	if config.Postgres.Port == "" {
		config.Postgres.Port = "5432"
	}

	// MariaDB / MySQL
	config.MySQL.Host = envOrDefault("MYSQL_HOST", "localhost")
	config.MySQL.Port = envOrDefault("MYSQL_PORT", "3306")
	config.MySQL.Database = envOrDefault("MYSQL_DB", "sequia_db")
	config.MySQL.Username = envOrDefault("MYSQL_USER", "sequia_user")
	config.MySQL.Password = os.Getenv("MYSQL_PASSWORD")

	config.SQLite.Path = envOrDefault("SQLITE_PATH", "sequia.db")

	// JWT
	config.JWT.SecretKey = os.Getenv("JWT_SECRET_KEY")
	config.JWT.Algorithm = envOrDefault("JWT_ALGORITHM", "HS256")
	config.JWT.AccessExpire = envInt("JWT_ACCESS_EXPIRE", 3600)
	config.JWT.RefreshExpire = envInt("JWT_REFRESH_EXPIRE", 3600*24*7)

	config.Session.TTL = envInt("SESSION_TTL", 1800)

	config.CORS.AllowDomains = envOrDefault("ALLOWED_DOMAINS", "*")

	config.Redis.Password = os.Getenv("REDIS_PASSWORD")
	config.Redis.Database, _ = strconv.Atoi(os.Getenv("REDIS_DB"))
	config.Redis.RedisHost = envOrDefault("REDIS_HOST", "localhost")
	config.Redis.RedisPort = envOrDefault("REDIS_PORT", "6379")

	// RabbitMQ
	config.RabbitMQ.Enabled = os.Getenv("RABBITMQ_ENABLED") != "false"
	config.RabbitMQ.Host = envOrDefault("RABBITMQ_HOST", "localhost")
	config.RabbitMQ.Port = envOrDefault("RABBITMQ_PORT", "5672")
	config.RabbitMQ.Username = envOrDefault("RABBITMQ_USER", "guest")
	config.RabbitMQ.Password = envOrDefault("RABBITMQ_PASSWORD", "guest")

	// Weather
	config.Weather.APIURL = envOrDefault("WEATHER_API_URL", "https://api.open-meteo.com/v1/forecast")
	config.Weather.Timeout = 5 * time.Second
	if val := os.Getenv("WEATHER_TIMEOUT"); val != "" {
		if d, err := time.ParseDuration(val); err == nil && d > 0 {
			config.Weather.Timeout = d
		}
	}
	config.Weather.DefaultLat = envOrDefault("WEATHER_DEFAULT_LAT", "-33.45")
	config.Weather.DefaultLon = envOrDefault("WEATHER_DEFAULT_LON", "-70.66")

	// Grafana/OpenTelemetry
	grafanaEndpoint := os.Getenv("GRAFANA_OTLP_ENDPOINT")
	// Remove protocol for OpenTelemetry client to avoid duplicate protocols
	if strings.HasPrefix(grafanaEndpoint, "https://") {
		config.Grafana.OTLPEndpoint = strings.TrimPrefix(grafanaEndpoint, "https://")
	} else if strings.HasPrefix(grafanaEndpoint, "http://") {
		config.Grafana.OTLPEndpoint = strings.TrimPrefix(grafanaEndpoint, "http://")
	} else {
		config.Grafana.OTLPEndpoint = grafanaEndpoint
	}
	config.Grafana.ServiceName = envOrDefault("SERVICE_NAME", "gau-sequia-service")

	config.Environment.Mode = envOrDefault("DEPLOY_ENV", "development")
	config.Environment.Group = envOrDefault("GROUP_NAME", "local")

	config.HTTPAddr = envOrDefault("HTTP_ADDR", ":8080")
	config.PageSize = envInt("PAGE_SIZE", 10)

	return &config
}

// Validate reports settings that make the service unusable.
func (c *EnvConfig) Validate() error {
	switch c.Database.Driver {
	case "postgres":
		if c.Postgres.HOST == "" || c.Postgres.Database == "" {
			return fmt.Errorf("PGPOOL_HOST and PGPOOL_DB are required for the postgres driver")
		}
	case "mysql", "sqlite":
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.Database.Driver)
	}

	if c.JWT.SecretKey == "" && c.IsProduction() {
		return fmt.Errorf("JWT_SECRET_KEY is required in production")
	}
	if c.JWT.AccessExpire <= 0 || c.JWT.RefreshExpire <= 0 {
		return fmt.Errorf("JWT_ACCESS_EXPIRE and JWT_REFRESH_EXPIRE must be positive")
	}
	if c.PageSize <= 0 {
		return fmt.Errorf("PAGE_SIZE must be positive")
	}
	return nil
}

func (c *EnvConfig) IsProduction() bool {
	return c.Environment.Mode == "production"
}

func envOrDefault(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			return n
		}
	}
	return fallback
}
