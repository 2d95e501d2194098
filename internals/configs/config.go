package configs

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

var (
	JWTSecret string
	AppPort   string
)

// =======================
// ENV LOADER
// =======================
func LoadEnv() {
	if os.Getenv("RAILWAY_ENVIRONMENT") == "" {
		if err := godotenv.Load(); err != nil {
			log.Println("⚠️ No se encontró archivo .env, usando ENV del sistema")
		} else {
			log.Println("✅ Archivo .env cargado")
		}
	} else {
		log.Println("🚀 Running in Railway, usando ENV del sistema")
	}

	JWTSecret = GetEnv("JWT_SECRET")
	AppPort = GetEnv("PORT", "3000")

	if JWTSecret == "" {
		log.Println("❌ JWT_SECRET no está definido!")
	} else {
		log.Println("✅ JWT_SECRET cargado.")
	}
}

func GetEnv(key string, defaultValue ...string) string {
	value, exists := os.LookupEnv(key)
	if !exists && len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return value
}
