package config

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config agrupa la configuración de runtime leída de variables de entorno.
type Config struct {
	Port          string
	DataDir       string
	DatabaseDSN   string
	LogLevel      string
	LogFormat     string
	LocalTimezone *time.Location
}

// Load lee la configuración y aplica defaults donde corresponde.
// Un .env presente en el working directory se carga primero.
func Load() *Config {
	_ = godotenv.Load()

	timezoneName := getenvDefault("LOCAL_TIMEZONE", "Local")
	location, err := time.LoadLocation(timezoneName)
	if err != nil {
		log.Printf("config: invalid LOCAL_TIMEZONE %q, defaulting to system local: %v", timezoneName, err)
		location = time.Local
	}

	return &Config{
		Port:          getenvDefault("PORT", "8080"),
		DataDir:       getenvDefault("DATA_DIR", DefaultDataDir),
		DatabaseDSN:   os.Getenv("DB_DSN"),
		LogLevel:      os.Getenv("LOG_LEVEL"),
		LogFormat:     os.Getenv("LOG_FORMAT"),
		LocalTimezone: location,
	}
}

// DefaultDataDir es el directorio privado de datos por defecto;
// jsonfile.Open expande el ~.
const DefaultDataDir = "~/.local/share/pet-care-log"

func getenvDefault(key, def string) string {
	value := os.Getenv(key)
	if value == "" {
		return def
	}
	return value
}
