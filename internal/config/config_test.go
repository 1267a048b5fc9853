package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"pgregory.net/rapid"
)

// Feature: timetrack, Property 5: Config merge precedence
func TestConfigMergePrecedence(t *testing.T) {
	// Generator for a non-empty string field value.
	nonEmptyString := rapid.StringMatching(`[a-zA-Z0-9/_.-]{1,20}`)

	// Each field is independently either unset or set.
	configGen := rapid.Custom(func(t *rapid.T) *Config {
		cfg := &Config{}
		if rapid.Bool().Draw(t, "hasRefresh") {
			cfg.RefreshInterval = nonEmptyString.Draw(t, "refresh")
		}
		if rapid.Bool().Draw(t, "hasDefaultFormat") {
			cfg.DefaultFormat = nonEmptyString.Draw(t, "defaultFormat")
		}
		if rapid.Bool().Draw(t, "hasDataDir") {
			cfg.DataDir = nonEmptyString.Draw(t, "dataDir")
		}
		if rapid.Bool().Draw(t, "hasLogLevel") {
			cfg.LogLevel = nonEmptyString.Draw(t, "logLevel")
		}
		if rapid.Bool().Draw(t, "hasDefaultActive") {
			cfg.DefaultActive = boolPtr(rapid.Bool().Draw(t, "defaultActive"))
		}
		return cfg
	})

	rapid.Check(t, func(t *rapid.T) {
		global := configGen.Draw(t, "global")
		project := configGen.Draw(t, "project")

		merged := Merge(global, project)
		defaults := Defaults()

		checkStringField(t, "RefreshInterval",
			global.RefreshInterval, project.RefreshInterval, defaults.RefreshInterval,
			merged.RefreshInterval)
		checkStringField(t, "DefaultFormat",
			global.DefaultFormat, project.DefaultFormat, defaults.DefaultFormat,
			merged.DefaultFormat)
		checkStringField(t, "DataDir",
			global.DataDir, project.DataDir, defaults.DataDir,
			merged.DataDir)
		checkStringField(t, "LogLevel",
			global.LogLevel, project.LogLevel, defaults.LogLevel,
			merged.LogLevel)

		want := true
		switch {
		case project.DefaultActive != nil:
			want = *project.DefaultActive
		case global.DefaultActive != nil:
			want = *global.DefaultActive
		}
		if merged.StartActive() != want {
			t.Fatalf("DefaultActive: want %t, got %t", want, merged.StartActive())
		}
	})
}

// checkStringField asserts the merge precedence rule for a single string field:
//   - project non-empty  → merged == project
//   - project empty, global non-empty → merged == global
//   - both empty → merged == defaultVal
func checkStringField(t *rapid.T, name, globalVal, projectVal, defaultVal, mergedVal string) {
	t.Helper()
	switch {
	case projectVal != "":
		if mergedVal != projectVal {
			t.Fatalf("%s: both set: expected project value %q, got %q", name, projectVal, mergedVal)
		}
	case globalVal != "":
		if mergedVal != globalVal {
			t.Fatalf("%s: only global set: expected global value %q, got %q", name, globalVal, mergedVal)
		}
	default:
		if mergedVal != defaultVal {
			t.Fatalf("%s: neither set: expected default %q, got %q", name, defaultVal, mergedVal)
		}
	}
}

func TestDefaultsValues(t *testing.T) {
	d := Defaults()
	if d.RefreshInterval != "1s" {
		t.Errorf("RefreshInterval: want %q, got %q", "1s", d.RefreshInterval)
	}
	if !d.StartActive() {
		t.Error("DefaultActive: want true")
	}
	if d.Seconds() {
		t.Error("ShowSeconds: want false")
	}
	if d.DefaultFormat != "text" {
		t.Errorf("DefaultFormat: want %q, got %q", "text", d.DefaultFormat)
	}
	if err := d.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestRefreshRejectsBadValues(t *testing.T) {
	for _, v := range []string{"soon", "0s", "-1s"} {
		cfg := Config{RefreshInterval: v}
		if _, err := cfg.Refresh(); err == nil {
			t.Errorf("Refresh(%q): expected error", v)
		}
	}
	cfg := Config{RefreshInterval: "30s"}
	d, err := cfg.Refresh()
	if err != nil || d != 30*time.Second {
		t.Errorf("Refresh(30s) = %v, %v", d, err)
	}
}

func TestLoadGlobalMissingFileReturnsDefaults(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv("HOME", tmp)

	cfg, err := LoadGlobal()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg == nil {
		t.Fatal("expected non-nil config, got nil")
	}
	defaults := Defaults()
	if cfg.RefreshInterval != defaults.RefreshInterval {
		t.Errorf("RefreshInterval: want %q, got %q", defaults.RefreshInterval, cfg.RefreshInterval)
	}
	if cfg.DefaultFormat != defaults.DefaultFormat {
		t.Errorf("DefaultFormat: want %q, got %q", defaults.DefaultFormat, cfg.DefaultFormat)
	}
}

func TestLoadGlobalYAML(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv("HOME", tmp)

	cfgDir := filepath.Join(tmp, ".config", "timetrack")
	if err := os.MkdirAll(cfgDir, 0o755); err != nil {
		t.Fatal(err)
	}
	yamlData := "refresh_interval: 30s\ndefault_active: false\nshow_seconds: true\n"
	if err := os.WriteFile(filepath.Join(cfgDir, "config.yaml"), []byte(yamlData), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadGlobal()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	merged := Merge(cfg, nil)
	if merged.RefreshInterval != "30s" {
		t.Errorf("RefreshInterval: want 30s, got %q", merged.RefreshInterval)
	}
	if merged.StartActive() {
		t.Error("DefaultActive: want false from yaml")
	}
	if !merged.Seconds() {
		t.Error("ShowSeconds: want true from yaml")
	}
}

func TestLoadProjectMissingFileReturnsNil(t *testing.T) {
	tmp := t.TempDir()
	orig, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(tmp); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Chdir(orig) })

	cfg, err := LoadProject()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg != nil {
		t.Errorf("expected nil config, got %+v", cfg)
	}
}

func TestLoadProjectPrefersJSON(t *testing.T) {
	tmp := t.TempDir()
	orig, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(tmp); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Chdir(orig) })

	if err := os.WriteFile(".timetrack.json", []byte(`{"default_format":"json"}`), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(".timetrack.yaml", []byte("default_format: yaml\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadProject()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg == nil || cfg.DefaultFormat != "json" {
		t.Errorf("expected json project config, got %+v", cfg)
	}
}

func TestLoadGlobalParseError(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv("HOME", tmp)

	// Write an invalid JSON file where LoadGlobal expects it.
	cfgDir := tmp + "/.config/timetrack"
	if err := os.MkdirAll(cfgDir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(cfgDir+"/config.json", []byte("{invalid json"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := LoadGlobal()
	if err == nil {
		t.Fatal("expected an error for invalid JSON, got nil")
	}
	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Errorf("expected *ParseError, got %T: %v", err, err)
	}
}

func TestApplyEnvOverrides(t *testing.T) {
	t.Setenv("TIMETRACK_REFRESH_INTERVAL", "5s")
	t.Setenv("TIMETRACK_DATA_DIR", "/tmp/tt")
	t.Setenv("TIMETRACK_LOG_LEVEL", "")

	cfg := ApplyEnv(Defaults())
	if cfg.RefreshInterval != "5s" {
		t.Errorf("RefreshInterval: want 5s, got %q", cfg.RefreshInterval)
	}
	if cfg.DataDir != "/tmp/tt" {
		t.Errorf("DataDir: want /tmp/tt, got %q", cfg.DataDir)
	}
	if cfg.LogLevel != "warn" {
		t.Errorf("LogLevel: empty env should keep %q, got %q", "warn", cfg.LogLevel)
	}
}

func TestWriteGlobalRoundTrip(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv("HOME", tmp)

	want := Defaults()
	want.RefreshInterval = "5s"
	want.ShowSeconds = boolPtr(true)
	path, err := WriteGlobal(want, false)
	if err != nil {
		t.Fatalf("WriteGlobal: %v", err)
	}
	if filepath.Base(path) != "config.yaml" {
		t.Errorf("path = %s, want config.yaml", path)
	}

	got, err := LoadGlobal()
	if err != nil {
		t.Fatalf("LoadGlobal: %v", err)
	}
	if got.RefreshInterval != "5s" || !got.Seconds() {
		t.Errorf("round trip lost values: %+v", got)
	}

	if _, err := WriteGlobal(want, false); err == nil {
		t.Error("expected refusal to overwrite existing config")
	}
	if _, err := WriteGlobal(want, true); err != nil {
		t.Errorf("overwrite: %v", err)
	}
}
