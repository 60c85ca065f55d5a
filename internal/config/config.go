package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type HTTPServer struct {
	Host string
	Port string
}

type RedisCache struct {
	Host     string
	Port     string
	Password string
}

type Postgres struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type TMDB struct {
	APIKey        string
	BaseURL       string
	GenreLanguage string
	Timeout       time.Duration
}

const (
	StoragePostgres = "postgres"
	StorageMemory   = "memory"

	BrokerRedis = "redis"
	BrokerLocal = "local"
)

type Storage struct {
	Backend string
}

type Broker struct {
	Backend string
}

type Session struct {
	IdleTimeout time.Duration
}

type Party struct {
	// Empty means "derive from the request".
	PublicOrigin string
}

type CORS struct {
	AllowOrigins []string
}

type Log struct {
	Level string
}

type Config struct {
	HTTP     HTTPServer
	Redis    RedisCache
	Postgres Postgres
	TMDB     TMDB
	Storage  Storage
	Broker   Broker
	Session  Session
	Party    Party
	CORS     CORS
	Log      Log
}

const logtag = "[config]"

// Load reads env from path (or .env when path is empty) and builds the config.
func Load(path string) *Config {
	if path != "" {
		if err := godotenv.Load(path); err != nil {
			log.Fatalf("%s err loading env from file : %v", logtag, err)
		}
		log.Printf("%s using env from : %s", logtag, path)
	} else {
		log.Printf("%s using env from .env", logtag)
		_ = godotenv.Load()
	}

	cfg := &Config{
		HTTP:     *newHTTP(),
		Redis:    *newRedis(),
		Postgres: *newPostgres(),
		TMDB:     *newTMDB(),
		Storage:  Storage{Backend: getenv("STORAGE_BACKEND", StorageMemory)},
		Broker:   Broker{Backend: getenv("BROKER_BACKEND", BrokerLocal)},
		Session:  Session{IdleTimeout: getduration("SESSION_IDLE_TIMEOUT", 30*time.Minute)},
		Party:    Party{PublicOrigin: strings.TrimRight(getenv("PUBLIC_ORIGIN", ""), "/")},
		CORS:     CORS{AllowOrigins: splitList(getenv("CORS_ALLOW_ORIGINS", "http://localhost:3000"))},
		Log:      Log{Level: getenv("LOG_LEVEL", "info")},
	}

	if err := cfg.Validate(); err != nil {
		log.Fatalf("%s %v", logtag, err)
	}

	return cfg
}

func (c *Config) Validate() error {
	switch c.Storage.Backend {
	case StoragePostgres, StorageMemory:
	default:
		return fmt.Errorf("unknown STORAGE_BACKEND %q", c.Storage.Backend)
	}
	switch c.Broker.Backend {
	case BrokerRedis, BrokerLocal:
	default:
		return fmt.Errorf("unknown BROKER_BACKEND %q", c.Broker.Backend)
	}
	if c.Broker.Backend == BrokerLocal && c.Storage.Backend == StoragePostgres {
		log.Printf("%s local broker with shared storage: other instances will not see live updates", logtag)
	}
	if c.TMDB.APIKey == "" {
		return fmt.Errorf("TMDB_API_KEY is required")
	}
	return nil
}

func newHTTP() *HTTPServer {
	return &HTTPServer{
		Port: getenv("HTTP_PORT", "8080"),
		Host: getenv("HTTP_HOST", "localhost"),
	}
}

func newRedis() *RedisCache {
	return &RedisCache{
		Port:     getenv("REDIS_PORT", "6379"),
		Host:     getenv("REDIS_HOST", "redis"),
		Password: getsecret("REDIS_PASSWORD", ""),
	}
}

func newPostgres() *Postgres {
	return &Postgres{
		Host:     getenv("DB_HOST", "localhost"),
		Port:     getenv("DB_PORT", "5432"),
		User:     getenv("DB_USER", "movieparty"),
		Password: getsecret("DB_PASSWORD", ""),
		DBName:   getenv("DB_NAME", "movieparty"),
		SSLMode:  getenv("DB_SSLMODE", "disable"),
	}
}

func newTMDB() *TMDB {
	return &TMDB{
		APIKey:        getsecret("TMDB_API_KEY", ""),
		BaseURL:       strings.TrimRight(getenv("TMDB_BASE_URL", "https://api.themoviedb.org/3"), "/"),
		GenreLanguage: getenv("TMDB_GENRE_LANGUAGE", "en-US"),
		Timeout:       getduration("TMDB_TIMEOUT", 10*time.Second),
	}
}

func getenv(key, defaultValue string) string {
	val := os.Getenv(key)
	if val == "" {
		fmt.Printf("%s %s undefined. Using default value %s\n", logtag, key, defaultValue)
		return defaultValue
	}
	fmt.Printf("%s %s = %s\n", logtag, key, val)
	return val
}

// getsecret is getenv that never prints the value.
func getsecret(key, defaultValue string) string {
	val := os.Getenv(key)
	if val == "" {
		fmt.Printf("%s %s undefined\n", logtag, key)
		return defaultValue
	}
	fmt.Printf("%s %s is set\n", logtag, key)
	return val
}

// getduration accepts Go durations ("90s") or plain seconds ("90").
func getduration(key string, defaultValue time.Duration) time.Duration {
	raw := getenv(key, defaultValue.String())
	if d, err := time.ParseDuration(raw); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(raw); err == nil {
		return time.Duration(secs) * time.Second
	}
	log.Printf("%s %s = %q is not a duration. Using default value %s", logtag, key, raw, defaultValue)
	return defaultValue
}

func splitList(raw string) []string {
	var out []string
	for _, s := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(s); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
