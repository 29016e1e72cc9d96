package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DriverMongo  = "mongo"
	DriverMemory = "memory"
)

type Config struct {
	Port     string
	MongoURI string
	MongoDB  string

	// StoreDriver selects the repository implementation: "mongo" or "memory".
	StoreDriver  string
	StoreTimeout time.Duration

	StaticDir       string
	FrontendOrigins string

	// JWTSecret enables access tokens on login when non-empty.
	JWTSecret string
	JWTTTL    time.Duration

	MaskProfanity  bool
	ProfanityWords []string
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists && strings.TrimSpace(value) != "" {
		return strings.TrimSpace(value)
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	raw := getEnv(key, "")
	if raw == "" {
		return fallback
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		log.Printf("config: invalid %s=%q, using %s", key, raw, fallback)
		return fallback
	}
	return d
}

func getBool(key string, fallback bool) bool {
	raw := getEnv(key, "")
	if raw == "" {
		return fallback
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		log.Printf("config: invalid %s=%q, using %t", key, raw, fallback)
		return fallback
	}
	return b
}

func splitCSV(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if item := strings.TrimSpace(part); item != "" {
			out = append(out, item)
		}
	}
	return out
}

func LoadConfig() Config {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	cfg := Config{
		Port:            getEnv("PORT", "3000"),
		MongoURI:        getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:         getEnv("MONGO_DB", "blog"),
		StoreDriver:     strings.ToLower(getEnv("STORE_DRIVER", DriverMongo)),
		StoreTimeout:    getDuration("STORE_TIMEOUT", 5*time.Second),
		StaticDir:       getEnv("STATIC_DIR", "web"),
		FrontendOrigins: getEnv("FRONTEND_ORIGINS", "*"),
		JWTSecret:       getEnv("JWT_SECRET", ""),
		JWTTTL:          getDuration("JWT_TTL", 72*time.Hour),
		MaskProfanity:   getBool("MASK_PROFANITY", false),
		ProfanityWords:  splitCSV(getEnv("PROFANITY_WORDS", "")),
	}

	if cfg.StoreDriver != DriverMongo && cfg.StoreDriver != DriverMemory {
		log.Printf("config: unknown STORE_DRIVER=%q, using %s", cfg.StoreDriver, DriverMongo)
		cfg.StoreDriver = DriverMongo
	}
	return cfg
}
