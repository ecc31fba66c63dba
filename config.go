package main

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Addr           string
	BackendURL     string
	AllowedOrigins []string
}

func loadConfig() Config {
	_ = godotenv.Load()

	cfg := Config{
		Addr:           os.Getenv("PUREBITE_ADDR"),
		BackendURL:     os.Getenv("PUREBITE_BACKEND_URL"),
		AllowedOrigins: splitList(os.Getenv("PUREBITE_ALLOWED_ORIGINS")),
	}
	if cfg.Addr == "" {
		cfg.Addr = ":8080"
	}
	if cfg.BackendURL == "" {
		cfg.BackendURL = "http://localhost:8001"
	}
	if len(cfg.AllowedOrigins) == 0 {
		cfg.AllowedOrigins = []string{"*"}
	}
	return cfg
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
