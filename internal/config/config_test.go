package config

import (
	"path/filepath"
	"testing"
)

func TestLoad_DefaultsWhenMissing(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	if Exists() {
		t.Fatal("Exists() = true for empty config dir")
	}
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Appearance.Theme != "flexoki-dark" {
		t.Errorf("Theme = %q, want flexoki-dark", cfg.Appearance.Theme)
	}
	if cfg.General.CurrencySymbol != "$" {
		t.Errorf("CurrencySymbol = %q, want $", cfg.General.CurrencySymbol)
	}
	if cfg.Server.EventsBuffer != 200 {
		t.Errorf("EventsBuffer = %d, want 200", cfg.Server.EventsBuffer)
	}
}

func TestSaveThenLoad(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg := DefaultConfig()
	cfg.General.DefaultTier = "Saver"
	cfg.General.DefaultMonths = 24
	cfg.Appearance.Theme = "tokyo-night"
	cfg.Journal.Enabled = true

	if err := Save(cfg); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if !Exists() {
		t.Fatal("Exists() = false after Save")
	}

	got, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got != cfg {
		t.Fatalf("Load = %+v, want %+v", got, cfg)
	}
}

func TestEnvOverrides(t *testing.T) {
	cfg := DefaultConfig()

	t.Setenv("PAYPLAN_THEME", "terminal")
	if got := Theme(cfg); got != "terminal" {
		t.Errorf("Theme = %q, want terminal", got)
	}

	t.Setenv("PAYPLAN_ADDR", ":9999")
	if got := ServerAddr(cfg); got != ":9999" {
		t.Errorf("ServerAddr = %q, want :9999", got)
	}

	t.Setenv("PAYPLAN_JOURNAL", "yes")
	if !JournalEnabled(cfg) {
		t.Error("JournalEnabled = false with PAYPLAN_JOURNAL=yes")
	}
	cfg.Journal.Enabled = true
	t.Setenv("PAYPLAN_JOURNAL", "0")
	if JournalEnabled(cfg) {
		t.Error("JournalEnabled = true with PAYPLAN_JOURNAL=0")
	}
}

func TestJournalPath(t *testing.T) {
	cache := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", cache)

	cfg := DefaultConfig()
	if got, want := JournalPath(cfg), filepath.Join(cache, "payplan", "journal.db"); got != want {
		t.Errorf("JournalPath = %q, want %q", got, want)
	}
	cfg.Journal.Path = "/tmp/custom.db"
	if got := JournalPath(cfg); got != "/tmp/custom.db" {
		t.Errorf("JournalPath = %q, want /tmp/custom.db", got)
	}
}
