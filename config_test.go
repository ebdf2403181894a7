package console

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("CONSOLE_TEST_BUCKET", "history-bucket")

	files := map[string]string{
		"console.toml": `
prompt = "dev> "
store_history = true

[log]
level = "debug"

[history]
backend = "s3"
bucket = "${CONSOLE_TEST_BUCKET}"
`,
		"console.yaml": `
prompt: "dev> "
store_history: true
log:
  level: debug
history:
  backend: s3
  bucket: ${CONSOLE_TEST_BUCKET}
`,
	}

	for name, content := range files {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
				t.Fatalf("WriteFile failed: %v", err)
			}

			cfg, err := LoadConfig(path)
			if err != nil {
				t.Fatalf("LoadConfig failed: %v", err)
			}

			if cfg.Prompt != "dev> " || !cfg.StoreHistory {
				t.Errorf("Expected file values, got %+v", cfg)
			}
			if cfg.Log.Level != "debug" || cfg.History.Backend != "s3" || cfg.History.Bucket != "history-bucket" {
				t.Errorf("Expected nested values, got %+v", cfg)
			}
			if !cfg.RegisterHelp || cfg.HistoryMaxLen != 100 || cfg.Banner != DefaultBanner {
				t.Errorf("Expected defaults to be kept, got %+v", cfg)
			}
		})
	}
}

func TestLoadConfig_Errors(t *testing.T) {
	dir := t.TempDir()

	if _, err := LoadConfig(filepath.Join(dir, "missing.toml")); err == nil {
		t.Error("Expected error for missing file")
	}

	ini := filepath.Join(dir, "console.ini")
	os.WriteFile(ini, []byte("prompt=x"), 0o644)
	if _, err := LoadConfig(ini); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("Expected ErrInvalidArgument for unknown format, got %v", err)
	}

	bad := filepath.Join(dir, "console.toml")
	os.WriteFile(bad, []byte("max_line_length = 0"), 0o644)
	if _, err := LoadConfig(bad); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("Expected ErrInvalidArgument for invalid limits, got %v", err)
	}
}
