package main

import (
	"flag"
	"log"
	"os"
	"time"

	"github.com/dd0wney/cluso-segmenter/pkg/api"
	"github.com/dd0wney/cluso-segmenter/pkg/logging"
	"github.com/dd0wney/cluso-segmenter/pkg/metrics"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

type serverConfig struct {
	Port               int    `yaml:"port" validate:"required,min=1,max=65535"`
	ReadTimeoutSec     int    `yaml:"readTimeoutSec" validate:"min=0,max=300"`
	WriteTimeoutSec    int    `yaml:"writeTimeoutSec" validate:"min=0,max=300"`
	IdleTimeoutSec     int    `yaml:"idleTimeoutSec" validate:"min=0,max=600"`
	MinimumSegmentSize int    `yaml:"minimumSegmentSize" validate:"min=1"`
	APIKeyHash         string `yaml:"apiKeyHash"`
}

func defaultConfig() serverConfig {
	return serverConfig{
		Port:               8080,
		ReadTimeoutSec:     15,
		WriteTimeoutSec:    30,
		IdleTimeoutSec:     60,
		MinimumSegmentSize: 2,
	}
}

func loadConfig(path string) (serverConfig, error) {
	cfg := defaultConfig()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, err
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, err
		}
	}
	if err := validator.New().Struct(&cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func main() {
	configPath := flag.String("config", "", "Path to YAML config file")
	port := flag.Int("port", 0, "Server port (overrides config)")
	minSize := flag.Int("min-size", 0, "Default minimum segment size (overrides config)")
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *port != 0 {
		cfg.Port = *port
	}
	if *minSize != 0 {
		cfg.MinimumSegmentSize = *minSize
	}

	log.Printf("🚀 Cluso Segmenter Server starting...")
	log.Printf("📊 Default minimum segment size: %d", cfg.MinimumSegmentSize)
	if cfg.APIKeyHash != "" {
		log.Printf("🔒 API key authentication enabled")
	}

	logger := logging.DefaultLogger().With(logging.Component("server"))
	server := api.NewServer(api.Config{
		Port:                      cfg.Port,
		ReadTimeout:               time.Duration(cfg.ReadTimeoutSec) * time.Second,
		WriteTimeout:              time.Duration(cfg.WriteTimeoutSec) * time.Second,
		IdleTimeout:               time.Duration(cfg.IdleTimeoutSec) * time.Second,
		DefaultMinimumSegmentSize: cfg.MinimumSegmentSize,
		APIKeyHash:                cfg.APIKeyHash,
	}, logger, metrics.DefaultRegistry())

	log.Printf("✅ Server listening on :%d", cfg.Port)
	log.Printf("📊 Health check: http://localhost:%d/health", cfg.Port)

	if err := server.Start(); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
