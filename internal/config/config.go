package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
)

const (
	SourceDir      = "dir"
	SourcePostgres = "postgres"
)

type Config struct {
	Port           string
	GinMode        string
	ArtifactSource string
	ArtifactDir    string
	ManifestPath   string
	DatabaseURL    string
	EnableDB       bool
	LogLevel       string
	LogFormat      string
}

// Load reads .env when present, then the environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:           getEnv("PORT", "8080"),
		GinMode:        getEnv("GIN_MODE", "release"),
		ArtifactSource: strings.ToLower(getEnv("ARTIFACT_SOURCE", SourceDir)),
		ArtifactDir:    os.Getenv("ARTIFACT_DIR"),
		ManifestPath:   os.Getenv("MANIFEST_PATH"),
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		EnableDB:       strings.EqualFold(getEnv("ENABLE_DB", "false"), "true"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		LogFormat:      getEnv("LOG_FORMAT", "text"),
	}

	if cfg.ArtifactDir == "" {
		cfg.ArtifactDir = detectArtifactDir()
	}
	if cfg.ManifestPath == "" {
		cfg.ManifestPath = filepath.Join(cfg.ArtifactDir, "models.yaml")
	}

	switch cfg.ArtifactSource {
	case SourceDir, SourcePostgres:
	default:
		return nil, fmt.Errorf("ARTIFACT_SOURCE must be %q or %q, got %q", SourceDir, SourcePostgres, cfg.ArtifactSource)
	}

	if cfg.EnableDB && cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required when ENABLE_DB=true")
	}
	if cfg.ArtifactSource == SourcePostgres && cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required when ARTIFACT_SOURCE=postgres")
	}

	return cfg, nil
}

// NeedsDB reports whether a Postgres pool must be opened at startup.
func (c *Config) NeedsDB() bool {
	return c.EnableDB || c.ArtifactSource == SourcePostgres
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

// detectArtifactDir finds the models directory from the working directory or
// one of its two parents, so the binary runs from the repo root or cmd/server.
func detectArtifactDir() string {
	startDir, err := os.Getwd()
	if err != nil {
		return "models"
	}

	candidates := []string{
		startDir,
		filepath.Dir(startDir),
		filepath.Dir(filepath.Dir(startDir)),
	}

	for _, dir := range candidates {
		models := filepath.Join(dir, "models")
		if fileExists(filepath.Join(models, "models.yaml")) {
			return models
		}
	}

	return filepath.Join(startDir, "models")
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
