package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server struct {
		Port               int      `mapstructure:"port"`
		MonitoringPort     int      `mapstructure:"monitoring_port"`
		CorsAllowedOrigins []string `mapstructure:"cors_allowed_origins"`
		CorsAllowedMethods []string `mapstructure:"cors_allowed_methods"`
		CorsAllowedHeaders []string `mapstructure:"cors_allowed_headers"`
	} `mapstructure:"server"`

	Database struct {
		Host     string `mapstructure:"host"`
		Port     int    `mapstructure:"port"`
		User     string `mapstructure:"user"`
		Password string `mapstructure:"password"`
		Name     string `mapstructure:"name"`
	} `mapstructure:"database"`

	JWT struct {
		Secret          string `mapstructure:"secret"`
		ExpirationHours int    `mapstructure:"expiration_hours"`
		Issuer          string `mapstructure:"issuer"`
	} `mapstructure:"jwt"`

	Backup struct {
		Enabled   bool   `mapstructure:"enabled"`
		Endpoint  string `mapstructure:"endpoint"`
		Region    string `mapstructure:"region"`
		Bucket    string `mapstructure:"bucket"`
		AccessKey string `mapstructure:"access_key"`
		SecretKey string `mapstructure:"secret_key"`
		IntervalH int    `mapstructure:"interval_hours"`
	} `mapstructure:"backup"`
}

func Load() *Config {
	// Load .env file if exists (ignore error in production)
	godotenv.Load()

	v := viper.New()
	v.SetConfigType("yaml")
	v.SetConfigFile("configs/config.yaml")

	// Auto bind environment variables
	v.AutomaticEnv()

	// Set sensible defaults (binary works without config file)
	v.SetDefault("server.port", 5000)
	v.SetDefault("server.monitoring_port", 9090)
	v.SetDefault("jwt.expiration_hours", 24)
	v.SetDefault("jwt.issuer", "pharma-backend")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.name", "pharma_db")
	v.SetDefault("backup.region", "auto")
	v.SetDefault("backup.interval_hours", 24)

	// Config file is optional
	if err := v.ReadInConfig(); err != nil {
		log.Printf("[Config] No config file found, using defaults")
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		log.Fatalf("config unmarshal error: %v", err)
	}

	// Override database settings from DB_* environment variables
	if host := os.Getenv("DB_HOST"); host != "" {
		cfg.Database.Host = host
	}
	if port := os.Getenv("DB_PORT"); port != "" {
		if n, err := strconv.Atoi(port); err == nil && n > 0 {
			cfg.Database.Port = n
		}
	}
	if user := os.Getenv("DB_USER"); user != "" {
		cfg.Database.User = user
	}
	if pass := os.Getenv("DB_PASSWORD"); pass != "" {
		cfg.Database.Password = pass
	}
	if name := os.Getenv("DB_NAME"); name != "" {
		cfg.Database.Name = name
	}

	// Override JWT secret from environment if not set
	if cfg.JWT.Secret == "" || cfg.JWT.Secret == "${JWT_SECRET}" {
		cfg.JWT.Secret = os.Getenv("JWT_SECRET")
		if cfg.JWT.Secret == "" {
			log.Fatal("JWT_SECRET not set in environment or config file")
		}
	}

	// Backup credentials come from environment only
	if key := os.Getenv("BACKUP_ACCESS_KEY"); key != "" {
		cfg.Backup.AccessKey = key
	}
	if key := os.Getenv("BACKUP_SECRET_KEY"); key != "" {
		cfg.Backup.SecretKey = key
	}
	if endpoint := os.Getenv("BACKUP_ENDPOINT"); endpoint != "" {
		cfg.Backup.Endpoint = endpoint
	}
	if bucket := os.Getenv("BACKUP_BUCKET"); bucket != "" {
		cfg.Backup.Bucket = bucket
	}
	if cfg.Backup.Enabled && (cfg.Backup.AccessKey == "" || cfg.Backup.Bucket == "") {
		log.Printf("[Config] Backup enabled but credentials missing, disabling backups")
		cfg.Backup.Enabled = false
	}

	return &cfg
}
