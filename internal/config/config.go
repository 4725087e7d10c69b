package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	RepoURL     string
	GitHubToken string

	OpenAIAPIKey  string
	OpenAIBaseURL string
	OpenAIModel   string

	TitleOverride string
}

func Load() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		RepoURL:     os.Getenv("REPO_URL"),
		GitHubToken: os.Getenv("GITHUB_TOKEN"),

		OpenAIAPIKey:  os.Getenv("OPENAI_API_KEY"),
		OpenAIBaseURL: os.Getenv("OPENAI_API_BASE"),
		OpenAIModel:   os.Getenv("OPENAI_MODEL"),

		TitleOverride: os.Getenv("ARTICLE_TITLE"),
	}

	cfg.OpenAIBaseURL = strings.TrimSuffix(cfg.OpenAIBaseURL, "/")

	if cfg.OpenAIBaseURL == "" {
		cfg.OpenAIBaseURL = "https://api.openai.com/v1"
	}
	if cfg.OpenAIModel == "" {
		cfg.OpenAIModel = "gpt-4-turbo-preview"
	}

	return cfg
}
