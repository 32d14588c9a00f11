package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	c, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.City != "Kitchener-Cambridge-Waterloo" {
		t.Fatalf("city = %q", c.City)
	}
	opt := c.SeriesOptions()
	if opt.MinYear != 2001 || opt.MaxYear != 2011 {
		t.Fatalf("bounds = %+v", opt)
	}
	if c.OutputFormat != "markdown" || c.HTTPTimeoutSec != 30 {
		t.Fatalf("unexpected defaults: %+v", c)
	}
	if err := c.Validate(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
}

func TestLoadEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	path := filepath.Join(dir, "custom.yaml")
	if err := os.WriteFile(path, []byte("city: Toronto\nmin_year: 1990\nmax_year: 2000\noutput_format: JSON\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	t.Setenv("CITYPOP_MAX_YEAR", "2020")

	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.City != "Toronto" || c.MinYear != 1990 || c.MaxYear != 2020 {
		t.Fatalf("unexpected config: %+v", c)
	}
	if c.OutputFormat != "json" {
		t.Fatalf("format not normalized: %q", c.OutputFormat)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	c, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	c.City = "Guelph"
	c.MinYear = 1996
	if err := Save(c, ""); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, ".citypop", "config.yaml")); err != nil {
		t.Fatalf("config not written: %v", err)
	}
	again, err := Load("")
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if again.City != "Guelph" || again.MinYear != 1996 {
		t.Fatalf("saved values not reloaded: %+v", again)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		cfg  Global
		ok   bool
	}{
		{"ok", Global{MinYear: 2001, MaxYear: 2011, OutputFormat: "yaml"}, true},
		{"inverted", Global{MinYear: 2012, MaxYear: 2011, OutputFormat: "json"}, false},
		{"format", Global{MinYear: 2001, MaxYear: 2011, OutputFormat: "xml"}, false},
		{"timeout", Global{MinYear: 2001, MaxYear: 2011, OutputFormat: "json", HTTPTimeoutSec: -1}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err == nil) != tt.ok {
				t.Fatalf("Validate() = %v, want ok=%v", err, tt.ok)
			}
		})
	}
}

func TestLoadStoredIgnoresEnv(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("CITYPOP_CITY", "Atlantis")

	c, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.City != "Atlantis" {
		t.Fatalf("env not applied by Load: %q", c.City)
	}
	stored, err := LoadStored("")
	if err != nil {
		t.Fatalf("LoadStored: %v", err)
	}
	if stored.City != "Kitchener-Cambridge-Waterloo" {
		t.Fatalf("LoadStored picked up env: %q", stored.City)
	}
}
