package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type AppConfig struct {
	Port     string
	Timezone string
	DBPath   string

	LLMEndpoint string
	LLMAPIKey   string
	LLMModel    string

	EmbEndpoint string
	EmbAPIKey   string
	EmbModel    string

	KBAllowedDomains string
	KBMaxBytes       int

	YieldCoefficientsCSV string
	RateTiersCSV         string
	RulesOverrideXLSX    string
}

func Load() AppConfig {
	if err := godotenv.Load(); err != nil {
		log.Printf("[cfg] No .env file found or error loading: %v", err)
	}

	get := func(k, def string) string {
		if v := os.Getenv(k); v != "" {
			return v
		}
		return def
	}
	cfg := AppConfig{
		Port:     get("PORT", "8080"),
		Timezone: get("TZ", "UTC"),
		DBPath:   get("DB_PATH", "agrocredit.db"),

		LLMEndpoint: get("LLM_ENDPOINT", ""),
		LLMAPIKey:   get("LLM_API_KEY", ""),
		LLMModel:    get("LLM_MODEL", "gpt-4o-mini"),

		EmbEndpoint: get("EMB_ENDPOINT", ""),
		EmbAPIKey:   get("EMB_API_KEY", ""),
		EmbModel:    get("EMB_MODEL", "text-embedding-3-small"),

		KBAllowedDomains: get("KB_ALLOWED_DOMAINS", ""),
		KBMaxBytes:       1500000,

		YieldCoefficientsCSV: get("YIELD_COEFFICIENTS_CSV", "./YieldCoefficients.csv"),
		RateTiersCSV:         get("RATE_TIERS_CSV", "./RateTiers.csv"),
		RulesOverrideXLSX:    get("RULES_OVERRIDE_XLSX", "./ScoringOverrides.xlsx"),
	}
	log.Printf("[cfg] port=%s db=%s llm=%v emb=%v", cfg.Port, cfg.DBPath, cfg.LLMEndpoint != "", cfg.EmbEndpoint != "")
	return cfg
}
