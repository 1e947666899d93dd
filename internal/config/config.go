package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	// Database
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// All stored timestamps and leaderboard windows use this zone.
	Timezone string

	// Uploads
	UploadDir     string
	MaxUploadSize int

	// Server
	Port        string
	CORSOrigins string
}

func Load() *Config {
	// Best-effort .env autoload; real env vars always win.
	_ = godotenv.Load()

	return &Config{
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBName:     getEnv("DB_NAME", "nmixx_streaming"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		Timezone: getEnv("APP_TIMEZONE", "Asia/Seoul"),

		UploadDir:     getEnv("UPLOAD_DIR", "uploads"),
		MaxUploadSize: parseInt(getEnv("MAX_UPLOAD_SIZE", ""), 10*1024*1024),

		Port:        getEnv("PORT", "8080"),
		CORSOrigins: getEnv("CORS_ORIGINS", "http://localhost:3000"),
	}
}

func (c *Config) DSN() string {
	return "host=" + c.DBHost +
		" user=" + c.DBUser +
		" password=" + c.DBPassword +
		" dbname=" + c.DBName +
		" port=" + c.DBPort +
		" sslmode=" + c.DBSSLMode +
		" TimeZone=" + c.Timezone
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func parseInt(s string, fallback int) int {
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}
