package config

import (
	"reflect"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("COMPONENT_COLUMNS", "")
	t.Setenv("LEDGER_RANGE", "")
	t.Setenv("ROOT_FOLDER", "")

	cfg := Load()
	if !reflect.DeepEqual(cfg.Components, DefaultComponents) {
		t.Fatalf("components = %v, want defaults", cfg.Components)
	}
	if cfg.LedgerRange != "SUBMISSION" {
		t.Fatalf("ledger range = %q, want SUBMISSION", cfg.LedgerRange)
	}
	if cfg.RootFolder != "Re_Landlord_Invoice" {
		t.Fatalf("root folder = %q", cfg.RootFolder)
	}
}

func TestLoadComponentList(t *testing.T) {
	t.Setenv("COMPONENT_COLUMNS", "Rent, Internet ,Gas,")

	cfg := Load()
	want := []string{"Rent", "Internet", "Gas"}
	if !reflect.DeepEqual(cfg.Components, want) {
		t.Fatalf("components = %v, want %v", cfg.Components, want)
	}
}
