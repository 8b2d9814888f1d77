package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort    string
	BaseURL       string
	DatabaseDSN   string
	AccessSecret  string
	KafkaBroker   string
	KafkaTopic    string
	KafkaUsername string
	KafkaPassword string
	CloudinaryUrl string

	// Bootstrap superadmin. Password may be left empty, in which case a
	// random one is generated and logged once at startup.
	BootstrapUsername string
	BootstrapPassword string
	BootstrapName     string
}

func LoadConfig() Config {
	if os.Getenv("ENV") != "prod" {
		if err := godotenv.Overload(); err != nil {
			log.Println("Warning: env file not found or could not be loaded:", err)
		}
	}

	cfg := Config{
		ServerPort:        os.Getenv("SERVER_PORT"),
		BaseURL:           os.Getenv("BASE_URL"),
		DatabaseDSN:       os.Getenv("DATABASE_DSN"),
		AccessSecret:      os.Getenv("ACCESS_SECRET"),
		KafkaBroker:       os.Getenv("KAFKA_BROKER"),
		KafkaTopic:        os.Getenv("KAFKA_TOPIC"),
		KafkaUsername:     os.Getenv("KAFKA_USERNAME"),
		KafkaPassword:     os.Getenv("KAFKA_PASSWORD"),
		CloudinaryUrl:     os.Getenv("CLOUDINARY_URL"),
		BootstrapUsername: os.Getenv("BOOTSTRAP_ADMIN_USERNAME"),
		BootstrapPassword: os.Getenv("BOOTSTRAP_ADMIN_PASSWORD"),
		BootstrapName:     os.Getenv("BOOTSTRAP_ADMIN_NAME"),
	}

	if cfg.ServerPort == "" {
		cfg.ServerPort = ":8080"
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "*"
	}
	if cfg.BootstrapUsername == "" {
		cfg.BootstrapUsername = "superadmin"
	}
	if cfg.BootstrapName == "" {
		cfg.BootstrapName = "Super Administrator"
	}

	return cfg
}
