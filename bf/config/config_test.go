package config_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/tripwire/bf/bf/config"
)

func TestNewDefaults(t *testing.T) {
	c := config.New()
	if c.EndOfInputAction != config.StoreZero {
		t.Errorf("EndOfInputAction = %v, want StoreZero", c.EndOfInputAction)
	}
	if c.DebugEnabled {
		t.Error("DebugEnabled = true, want false")
	}
}

func TestSetEndOfInputActionRejectsInvalid(t *testing.T) {
	c := config.New()
	if err := c.SetEndOfInputAction(EndOfInputAction(99)); err == nil {
		t.Fatal("expected error for invalid action")
	}
}

// EndOfInputAction is aliased locally only to keep the invalid-value test
// readable without importing the package twice.
type EndOfInputAction = config.EndOfInputAction

func writeTemp(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "bf-config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write temp file: %v", err)
	}
	return path
}

func TestLoadConfigValid(t *testing.T) {
	path := writeTemp(t, "end_of_input_action: store_eof\ndebug_enabled: true\n")
	c, err := config.LoadConfig(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.EndOfInputAction != config.StoreEof {
		t.Errorf("EndOfInputAction = %v, want StoreEof", c.EndOfInputAction)
	}
	if !c.DebugEnabled {
		t.Error("DebugEnabled = false, want true")
	}
}

func TestLoadConfigDefaultsAction(t *testing.T) {
	path := writeTemp(t, "debug_enabled: false\n")
	c, err := config.LoadConfig(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.EndOfInputAction != config.StoreZero {
		t.Errorf("EndOfInputAction = %v, want StoreZero default", c.EndOfInputAction)
	}
}

func TestLoadConfigInvalidAction(t *testing.T) {
	path := writeTemp(t, "end_of_input_action: nonsense\n")
	if _, err := config.LoadConfig(path); err == nil {
		t.Fatal("expected error for invalid end_of_input_action")
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := config.LoadConfig(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestWriteYAMLRoundTrip(t *testing.T) {
	c := config.New()
	c.DebugEnabled = true
	_ = c.SetEndOfInputAction(config.StoreEof)

	var buf bytes.Buffer
	if err := c.WriteYAML(&buf); err != nil {
		t.Fatalf("WriteYAML: %v", err)
	}

	path := writeTemp(t, buf.String())
	loaded, err := config.LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig after WriteYAML: %v", err)
	}
	if loaded.EndOfInputAction != c.EndOfInputAction || loaded.DebugEnabled != c.DebugEnabled {
		t.Errorf("round trip mismatch: got %+v, want %+v", loaded, c)
	}
}
