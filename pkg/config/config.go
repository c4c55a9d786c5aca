package config

import (
	"errors"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct {
	Env       string
	Port      int
	APIPrefix string

	Database DatabaseConfig
	Redis    RedisConfig
	Auth     AuthConfig
	CORS     CORSConfig
	Log      LogConfig
	Solver   SolverConfig
	Cache    CacheConfig
	Jobs     JobsConfig
	Storage  StorageConfig
	Docs     DocsConfig
}

type DatabaseConfig struct {
	Host         string
	Port         int
	User         string
	Password     string
	Name         string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// AuthConfig holds the single admin credential pair plus JWT settings.
// AdminPasswordHash is a bcrypt hash; there is no user table.
type AuthConfig struct {
	Enabled           bool
	AdminUsername     string
	AdminPasswordHash string
	JWTSecret         string
	JWTExpiration     time.Duration
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

// SolverConfig sets the generation defaults applied when a request does not
// override them.
type SolverConfig struct {
	Generations    int
	PopulationSize int
	CrossoverRate  float64
	GeneSwapRate   float64
	MutationRate   float64
	TournamentSize int
	Parallelism    int
	HeavySubjects  []string
}

// CacheConfig governs the Redis-backed schedule cache.
type CacheConfig struct {
	Enabled bool
	TTL     time.Duration
}

// JobsConfig configures asynchronous schedule generation.
type JobsConfig struct {
	Enabled   bool
	Workers   int
	QueueSize int
	ResultTTL time.Duration
}

// StorageConfig gates the Postgres-backed schedule store.
type StorageConfig struct {
	Enabled bool
}

// DocsConfig toggles the swagger endpoint.
type DocsConfig struct {
	Enabled bool
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.Port = v.GetInt("PORT")
	cfg.APIPrefix = v.GetString("API_PREFIX")

	cfg.Database = DatabaseConfig{
		Host:         v.GetString("DB_HOST"),
		Port:         v.GetInt("DB_PORT"),
		User:         v.GetString("DB_USER"),
		Password:     v.GetString("DB_PASSWORD"),
		Name:         v.GetString("DB_NAME"),
		SSLMode:      v.GetString("DB_SSL_MODE"),
		MaxOpenConns: v.GetInt("DB_MAX_OPEN_CONNS"),
		MaxIdleConns: v.GetInt("DB_MAX_IDLE_CONNS"),
	}

	cfg.Redis = RedisConfig{
		Host:     v.GetString("REDIS_HOST"),
		Port:     v.GetInt("REDIS_PORT"),
		Password: v.GetString("REDIS_PASSWORD"),
		DB:       v.GetInt("REDIS_DB"),
	}

	cfg.Auth = AuthConfig{
		Enabled:           v.GetBool("ENABLE_AUTH"),
		AdminUsername:     v.GetString("ADMIN_USERNAME"),
		AdminPasswordHash: v.GetString("ADMIN_PASSWORD_HASH"),
		JWTSecret:         v.GetString("JWT_SECRET"),
		JWTExpiration:     parseDuration(v.GetString("JWT_EXPIRATION"), 24*time.Hour),
	}

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	cfg.Solver = SolverConfig{
		Generations:    v.GetInt("SOLVER_GENERATIONS"),
		PopulationSize: v.GetInt("SOLVER_POPULATION_SIZE"),
		CrossoverRate:  v.GetFloat64("SOLVER_CROSSOVER_RATE"),
		GeneSwapRate:   v.GetFloat64("SOLVER_GENE_SWAP_RATE"),
		MutationRate:   v.GetFloat64("SOLVER_MUTATION_RATE"),
		TournamentSize: v.GetInt("SOLVER_TOURNAMENT_SIZE"),
		Parallelism:    v.GetInt("SOLVER_PARALLELISM"),
		HeavySubjects:  splitAndTrim(v.GetString("SOLVER_HEAVY_SUBJECTS")),
	}

	cfg.Cache = CacheConfig{
		Enabled: v.GetBool("ENABLE_CACHE"),
		TTL:     parseDuration(v.GetString("CACHE_TTL"), 10*time.Minute),
	}

	cfg.Jobs = JobsConfig{
		Enabled:   v.GetBool("ENABLE_ASYNC_JOBS"),
		Workers:   v.GetInt("JOBS_WORKERS"),
		QueueSize: v.GetInt("JOBS_QUEUE_SIZE"),
		ResultTTL: parseDuration(v.GetString("JOBS_RESULT_TTL"), 30*time.Minute),
	}

	cfg.Storage = StorageConfig{
		Enabled: v.GetBool("ENABLE_STORAGE"),
	}

	cfg.Docs = DocsConfig{
		Enabled: v.GetBool("ENABLE_DOCS"),
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 8080)
	v.SetDefault("API_PREFIX", "/api/v1")

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "timetable")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_MAX_OPEN_CONNS", 10)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("ENABLE_AUTH", false)
	v.SetDefault("ADMIN_USERNAME", "admin")
	v.SetDefault("ADMIN_PASSWORD_HASH", "")
	v.SetDefault("JWT_SECRET", "dev_secret")
	v.SetDefault("JWT_EXPIRATION", "24h")

	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("SOLVER_GENERATIONS", 50)
	v.SetDefault("SOLVER_POPULATION_SIZE", 30)
	v.SetDefault("SOLVER_CROSSOVER_RATE", 0.7)
	v.SetDefault("SOLVER_GENE_SWAP_RATE", 0.3)
	v.SetDefault("SOLVER_MUTATION_RATE", 0.2)
	v.SetDefault("SOLVER_TOURNAMENT_SIZE", 3)
	v.SetDefault("SOLVER_PARALLELISM", 1)
	v.SetDefault("SOLVER_HEAVY_SUBJECTS", "")

	v.SetDefault("ENABLE_CACHE", false)
	v.SetDefault("CACHE_TTL", "10m")

	v.SetDefault("ENABLE_ASYNC_JOBS", false)
	v.SetDefault("JOBS_WORKERS", 2)
	v.SetDefault("JOBS_QUEUE_SIZE", 16)
	v.SetDefault("JOBS_RESULT_TTL", "30m")

	v.SetDefault("ENABLE_STORAGE", false)
	v.SetDefault("ENABLE_DOCS", false)
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return d
}

func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}
