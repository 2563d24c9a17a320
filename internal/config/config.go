package config

import (
	"os"
	"strings"
)

// DefaultComponents is the cost-category set used when COMPONENT_COLUMNS
// is unset. Order matters: it fixes the ledger column layout.
var DefaultComponents = []string{"Rent", "Maintenance", "Water", "Electricity", "Parking"}

type Config struct {
	Addr          string
	StaticDir     string
	GelfAddr      string
	GoogleToken   string
	SpreadsheetID string
	LedgerRange   string
	RootFolder    string
	Components    []string
}

func Load() *Config {
	return &Config{
		Addr:          getEnv("INVOICE_ADDR", ":5000"),
		StaticDir:     getEnv("STATIC_DIR", "public"),
		GelfAddr:      os.Getenv("GELF_ADDR"),
		GoogleToken:   os.Getenv("GOOGLE_TOKEN"),
		SpreadsheetID: os.Getenv("SPREADSHEET_ID"),
		LedgerRange:   getEnv("LEDGER_RANGE", "SUBMISSION"),
		RootFolder:    getEnv("ROOT_FOLDER", "Re_Landlord_Invoice"),
		Components:    getEnvList("COMPONENT_COLUMNS", DefaultComponents),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvList(key string, fallback []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
