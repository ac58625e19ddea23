package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"fpm-inspections-core/internal/infrastructure/database/mongodb"
	"fpm-inspections-core/internal/infrastructure/database/postgres"
	"fpm-inspections-core/internal/infrastructure/database/redis"
	"fpm-inspections-core/internal/infrastructure/logger"

	"github.com/joho/godotenv"
)

// Variables d'environnement, .env optionnel, surcharges YAML pour les rapports

// Config structure unifiée
type Config struct {
	Environment string
	Server      ServerConfig
	Database    DatabaseConfig
	Redis       RedisConfig
	MongoDB     MongoConfig
	Logging     LoggingConfig
	CORS        CORSConfig
	Reports     ReportsConfig
}

// ServerConfig configuration serveur HTTP
type ServerConfig struct {
	Host         string        `env:"SERVER_HOST"`
	Port         int           `env:"SERVER_PORT"`
	ReadTimeout  time.Duration `env:"SERVER_READ_TIMEOUT"`
	WriteTimeout time.Duration `env:"SERVER_WRITE_TIMEOUT"`
}

// DatabaseConfig configuration PostgreSQL (base de production en lecture)
type DatabaseConfig struct {
	Host           string        `env:"DB_HOST"`
	Port           int           `env:"DB_PORT"`
	Database       string        `env:"DB_NAME"`
	Username       string        `env:"DB_USERNAME"`
	Password       string        `env:"DB_PASSWORD"`
	MaxConnections int           `env:"DB_MAX_CONNECTIONS"`
	ConnectionTTL  time.Duration `env:"DB_CONNECTION_TTL"`
	QueryTimeout   time.Duration `env:"DB_QUERY_TIMEOUT"`
	SSLMode        string        `env:"DB_SSL_MODE"`
}

// RedisConfig configuration Redis
type RedisConfig struct {
	Host        string        `env:"REDIS_HOST"`
	Port        int           `env:"REDIS_PORT"`
	Password    string        `env:"REDIS_PASSWORD"`
	Database    int           `env:"REDIS_DATABASE"`
	MaxRetries  int           `env:"REDIS_MAX_RETRIES"`
	PoolSize    int           `env:"REDIS_POOL_SIZE"`
	PoolTimeout time.Duration `env:"REDIS_POOL_TIMEOUT"`
}

// MongoConfig configuration MongoDB (historique des analyses)
type MongoConfig struct {
	URI            string        `env:"MONGODB_URI"`
	Database       string        `env:"MONGODB_DATABASE"`
	ConnectTimeout time.Duration `env:"MONGODB_CONNECT_TIMEOUT"`
	MaxPoolSize    int           `env:"MONGODB_MAX_POOL_SIZE"`
}

// LoggingConfig configuration logging
type LoggingConfig struct {
	Level  string `env:"LOG_LEVEL"`
	Format string `env:"LOG_FORMAT"`
}

// CORSConfig configuration CORS
type CORSConfig struct {
	AllowedOrigins   []string `env:"CORS_ALLOWED_ORIGINS"`
	AllowedMethods   []string `env:"CORS_ALLOWED_METHODS"`
	AllowedHeaders   []string `env:"CORS_ALLOWED_HEADERS"`
	AllowCredentials bool     `env:"CORS_ALLOW_CREDENTIALS"`
	MaxAge           int      `env:"CORS_MAX_AGE"`
}

// ReportsConfig limites et options des rapports
type ReportsConfig struct {
	PageSizeDefault       int           `env:"REPORTS_PAGE_SIZE_DEFAULT"`
	PageSizeMax           int           `env:"REPORTS_PAGE_SIZE_MAX"`
	ExportPageSizeDefault int           `env:"REPORTS_EXPORT_PAGE_SIZE_DEFAULT"`
	ExportPageSizeMax     int           `env:"REPORTS_EXPORT_PAGE_SIZE_MAX"`
	ParallelReads         bool          `env:"CONSOLIDATION_PARALLEL_READS"`
	DetailCacheTTL        time.Duration `env:"REPORTS_DETAIL_CACHE_TTL"`
	TaskTTL               time.Duration `env:"REPORTS_TASK_TTL"`
	TaskTimeout           time.Duration `env:"REPORTS_TASK_TIMEOUT"`
	LabelsFile            string        `env:"REPORTS_LABELS_FILE"`
	SeedDemo              bool          `env:"REPORTS_SEED_DEMO"`

	// Renseigné depuis LabelsFile
	Overrides ReportOverrides
}

// NewConfig charge la configuration depuis les variables d'environnement
func NewConfig() (*Config, error) {
	// Charger le fichier .env (optionnel)
	_ = godotenv.Load(".env")

	config := &Config{}

	config.Environment = getEnv("APP_ENV", "development")

	config.Server = ServerConfig{
		Host:         getEnv("SERVER_HOST", "localhost"),
		Port:         getEnvInt("SERVER_PORT", 4000),
		ReadTimeout:  getEnvDuration("SERVER_READ_TIMEOUT", 30) * time.Second,
		WriteTimeout: getEnvDuration("SERVER_WRITE_TIMEOUT", 300) * time.Second,
	}

	config.Database = DatabaseConfig{
		Host:           getEnv("DB_HOST", "localhost"),
		Port:           getEnvInt("DB_PORT", 5432),
		Database:       getEnv("DB_NAME", "fpm_production"),
		Username:       getEnv("DB_USERNAME", "postgres"),
		Password:       getEnv("DB_PASSWORD", ""),
		MaxConnections: getEnvInt("DB_MAX_CONNECTIONS", 20),
		ConnectionTTL:  getEnvDuration("DB_CONNECTION_TTL", 300) * time.Second,
		QueryTimeout:   getEnvDuration("DB_QUERY_TIMEOUT", 120) * time.Second,
		SSLMode:        getEnv("DB_SSL_MODE", "disable"),
	}

	config.Redis = RedisConfig{
		Host:        getEnv("REDIS_HOST", "localhost"),
		Port:        getEnvInt("REDIS_PORT", 6379),
		Password:    getEnv("REDIS_PASSWORD", ""),
		Database:    getEnvInt("REDIS_DATABASE", 0),
		MaxRetries:  getEnvInt("REDIS_MAX_RETRIES", 3),
		PoolSize:    getEnvInt("REDIS_POOL_SIZE", 10),
		PoolTimeout: getEnvDuration("REDIS_POOL_TIMEOUT", 30) * time.Second,
	}

	defaultMongoURI := ""
	if config.Environment == "development" {
		defaultMongoURI = "mongodb://localhost:27017"
	}

	config.MongoDB = MongoConfig{
		URI:            getEnv("MONGODB_URI", defaultMongoURI),
		Database:       getEnv("MONGODB_DATABASE", "fpm_inspections"),
		ConnectTimeout: getEnvDuration("MONGODB_CONNECT_TIMEOUT", 10) * time.Second,
		MaxPoolSize:    getEnvInt("MONGODB_MAX_POOL_SIZE", 50),
	}

	config.Logging = LoggingConfig{
		Level:  getEnv("LOG_LEVEL", "debug"),
		Format: getEnv("LOG_FORMAT", ""),
	}

	config.CORS = CORSConfig{
		AllowedOrigins:   getEnvStringSlice("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000"}),
		AllowedMethods:   getEnvStringSlice("CORS_ALLOWED_METHODS", []string{"GET", "POST", "OPTIONS"}),
		AllowedHeaders:   getEnvStringSlice("CORS_ALLOWED_HEADERS", []string{"Content-Type", "Authorization"}),
		AllowCredentials: getEnvBool("CORS_ALLOW_CREDENTIALS", true),
		MaxAge:           getEnvInt("CORS_MAX_AGE", 3600),
	}

	config.Reports = ReportsConfig{
		PageSizeDefault:       getEnvInt("REPORTS_PAGE_SIZE_DEFAULT", 50),
		PageSizeMax:           getEnvInt("REPORTS_PAGE_SIZE_MAX", 500),
		ExportPageSizeDefault: getEnvInt("REPORTS_EXPORT_PAGE_SIZE_DEFAULT", 5000),
		ExportPageSizeMax:     getEnvInt("REPORTS_EXPORT_PAGE_SIZE_MAX", 50000),
		ParallelReads:         getEnvBool("CONSOLIDATION_PARALLEL_READS", true),
		DetailCacheTTL:        getEnvDuration("REPORTS_DETAIL_CACHE_TTL", 300) * time.Second,
		TaskTTL:               getEnvDuration("REPORTS_TASK_TTL", 3600) * time.Second,
		TaskTimeout:           getEnvDuration("REPORTS_TASK_TIMEOUT", 900) * time.Second,
		LabelsFile:            getEnv("REPORTS_LABELS_FILE", ""),
		SeedDemo:              getEnvBool("REPORTS_SEED_DEMO", false),
	}

	if config.Reports.LabelsFile != "" {
		overrides, err := LoadReportOverrides(config.Reports.LabelsFile)
		if err != nil {
			return nil, err
		}
		config.Reports.Overrides = *overrides
		config.Reports.applyOverrides()
	}

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("validation configuration échouée: %w", err)
	}

	return config, nil
}

func (c *Config) GetDatabase() DatabaseConfig { return c.Database }
func (c *Config) GetRedis() RedisConfig       { return c.Redis }
func (c *Config) GetMongoDB() MongoConfig     { return c.MongoDB }
func (c *Config) GetServer() ServerConfig     { return c.Server }
func (c *Config) GetLogging() LoggingConfig   { return c.Logging }
func (c *Config) GetCORS() CORSConfig         { return c.CORS }
func (c *Config) GetReports() ReportsConfig   { return c.Reports }

// Convertisseurs vers configurations infrastructure

func NewPostgresConfig(config *Config) *postgres.DatabaseConfig {
	return &postgres.DatabaseConfig{
		Host:           config.Database.Host,
		Port:           config.Database.Port,
		Database:       config.Database.Database,
		Username:       config.Database.Username,
		Password:       config.Database.Password,
		SSLMode:        config.Database.SSLMode,
		MaxConnections: config.Database.MaxConnections,
		ConnectionTTL:  config.Database.ConnectionTTL,
		QueryTimeout:   config.Database.QueryTimeout,
	}
}

func NewRedisConfig(config *Config) *redis.RedisConfig {
	return &redis.RedisConfig{
		Host:        config.Redis.Host,
		Port:        config.Redis.Port,
		Password:    config.Redis.Password,
		Database:    config.Redis.Database,
		MaxRetries:  config.Redis.MaxRetries,
		PoolSize:    config.Redis.PoolSize,
		PoolTimeout: config.Redis.PoolTimeout,
	}
}

func NewRedisKeyTTLs(config *Config) redis.KeyTTLs {
	return redis.KeyTTLs{
		ClaimDetail: config.Reports.DetailCacheTTL,
		Task:        config.Reports.TaskTTL,
	}
}

func NewMongoConfig(config *Config) *mongodb.MongoConfig {
	return &mongodb.MongoConfig{
		URI:            config.MongoDB.URI,
		Database:       config.MongoDB.Database,
		ConnectTimeout: config.MongoDB.ConnectTimeout,
		MaxPoolSize:    config.MongoDB.MaxPoolSize,
	}
}

func NewLoggerConfig(config *Config) logger.Config {
	return logger.Config{
		Level:       config.Logging.Level,
		Format:      config.Logging.Format,
		Environment: config.Environment,
	}
}

// Helpers pour parsing variables d'environnement
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultSeconds int) time.Duration {
	return time.Duration(getEnvInt(key, defaultSeconds))
}

func getEnvStringSlice(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		parts := strings.Split(value, ",")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		return parts
	}
	return defaultValue
}

// validateConfig valide la configuration selon l'environnement
func validateConfig(config *Config) error {
	env := config.Environment

	if env != "development" && env != "docker" {
		return fmt.Errorf("environnement non supporté: %s (utilisez 'development' ou 'docker')", env)
	}

	r := config.Reports
	if r.PageSizeDefault < 1 || r.PageSizeMax < r.PageSizeDefault {
		return fmt.Errorf("limites de pagination invalides: défaut=%d max=%d", r.PageSizeDefault, r.PageSizeMax)
	}
	if r.ExportPageSizeDefault < 1 || r.ExportPageSizeMax < r.ExportPageSizeDefault {
		return fmt.Errorf("limites d'export invalides: défaut=%d max=%d", r.ExportPageSizeDefault, r.ExportPageSizeMax)
	}

	missingVars := []string{}

	// Variables critiques en mode docker (production/staging)
	if env == "docker" {
		if config.Database.Password == "" {
			missingVars = append(missingVars, "DB_PASSWORD")
		}
		if config.MongoDB.URI == "" {
			missingVars = append(missingVars, "MONGODB_URI")
		}
		if r.SeedDemo {
			return fmt.Errorf("REPORTS_SEED_DEMO interdit en environnement docker")
		}
	}

	if len(missingVars) > 0 {
		return fmt.Errorf("variables critiques manquantes pour environnement docker: %v", missingVars)
	}

	return nil
}
