package config

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type Config struct {
	Server       Server
	Database     Database
	Storage      Storage
	GeminiApiKey string
	GeminiModel  string
}

type Server struct {
	Port    string
	GinMode string
}

type Database struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

// Configured reports whether enough is set to attempt a remote connection.
func (d Database) Configured() bool {
	return d.Host != "" && d.User != "" && d.Name != ""
}

type Storage struct {
	LocalDir string
}

const localEnvFile = ".env.local"

func NewConfig() (*Config, error) {
	// .env.local overrides nothing already exported in the environment
	if _, err := os.Stat(localEnvFile); err == nil {
		if err := godotenv.Load(localEnvFile); err != nil {
			log.Warn().Err(err).Str("file", localEnvFile).Msg("Error loading local env file")
		}
	}

	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")

	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("GIN_MODE", "debug")
	viper.SetDefault("DATABASE_PORT", "5432")
	viper.SetDefault("DATABASE_SSLMODE", "disable")
	viper.SetDefault("STORAGE_LOCAL_DIR", "./data")
	viper.SetDefault("GEMINI_MODEL", "gemini-1.5-flash")

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		log.Warn().Err(err).Msg("Error reading config file")
	}

	var config Config

	config.Server.Port = viper.GetString("SERVER_PORT")
	config.Server.GinMode = viper.GetString("GIN_MODE")
	config.Database.Host = viper.GetString("DATABASE_HOST")
	config.Database.Port = viper.GetString("DATABASE_PORT")
	config.Database.User = viper.GetString("DATABASE_USER")
	config.Database.Password = viper.GetString("DATABASE_PASSWORD")
	config.Database.Name = viper.GetString("DATABASE_NAME")
	config.Database.SSLMode = viper.GetString("DATABASE_SSLMODE")
	config.Storage.LocalDir = viper.GetString("STORAGE_LOCAL_DIR")

	config.GeminiApiKey = viper.GetString("GEMINI_API_KEY")
	config.GeminiModel = viper.GetString("GEMINI_MODEL")

	log.Info().
		Str("port", config.Server.Port).
		Str("databaseHost", config.Database.Host).
		Str("localDir", config.Storage.LocalDir).
		Bool("geminiConfigured", config.GeminiApiKey != "").
		Msg("Config loaded")
	return &config, nil
}
