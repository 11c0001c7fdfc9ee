package config

import (
	"log"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

type DealConfig struct {
	Env          string `yaml:"env"`
	HTTPServer   `yaml:"http_server"`
	DealDB       `yaml:"deal_db"`
	LogConfig    `yaml:"log_config"`
	KafkaService `yaml:"kafka-service"`
	Migrations   `yaml:"migrations"`
}

type HTTPServer struct {
	Host string `yaml:"host"`
	Port string `yaml:"port"`
}

type DealDB struct {
	Dsn string `yaml:"dsn"`
}

type LogConfig struct {
	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`
}

type KafkaService struct {
	Host string `yaml:"host"`
	Port string `yaml:"port"`
}

type Migrations struct {
	Path string `yaml:"path"`
}

func MustLoad() *DealConfig {
	configPath := os.Getenv("DEAL_CONFIG_PATH")
	if configPath == "" {
		log.Fatalf("DEAL_CONFIG_PATH was not found\n")
	}

	if _, err := os.Stat(configPath); err != nil {
		log.Fatalf("failed to find config file: %v\n", err)
	}

	var cfg DealConfig
	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		log.Fatalf("failed to read config file: %v", err)
	}

	return &cfg
}
