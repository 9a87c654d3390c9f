package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/sethvargo/go-envconfig"
)

func TestLoadConfigFromFile(t *testing.T) {
	dir := t.TempDir()

	t.Run("missing file", func(t *testing.T) {
		config, err := LoadConfigFromFile(filepath.Join(dir, "missing.toml"))
		if err != nil {
			t.Fatalf("LoadConfigFromFile failed: %v", err)
		}
		if diff := cmp.Diff(NewDefaultConfig(), config); diff != "" {
			t.Errorf("config mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("partial file keeps defaults", func(t *testing.T) {
		path := filepath.Join(dir, "partial.toml")
		content := "shell = \"bash\"\n\n[log]\nlevel = \"debug\"\n"
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}

		config, err := LoadConfigFromFile(path)
		if err != nil {
			t.Fatalf("LoadConfigFromFile failed: %v", err)
		}
		want := NewDefaultConfig()
		want.Shell = "bash"
		want.Log.Level = "debug"
		if diff := cmp.Diff(want, config); diff != "" {
			t.Errorf("config mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("malformed file", func(t *testing.T) {
		path := filepath.Join(dir, "bad.toml")
		if err := os.WriteFile(path, []byte("shell = [\n"), 0o644); err != nil {
			t.Fatal(err)
		}
		if _, err := LoadConfigFromFile(path); err == nil {
			t.Error("expected a decode error")
		}
	})
}

func TestLoadConfigEnvironment(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := "template = \"{cwd} > \"\nshell = \"bash\"\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		env  map[string]string
		want *Config
	}{
		{
			name: "no overrides",
			env:  map[string]string{"SHELL": "/bin/zsh"},
			want: &Config{Template: "{cwd} > ", Shell: "bash", Log: LogConfig{Level: "warn"}},
		},
		{
			name: "all overrides",
			env: map[string]string{
				"PROMPTLINE_TEMPLATE": "{user} $ ",
				"PROMPTLINE_SHELL":    "zsh",
				"PROMPTLINE_LOG":      "error",
			},
			want: &Config{Template: "{user} $ ", Shell: "zsh", Log: LogConfig{Level: "error"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config, err := LoadConfig(context.Background(), path, envconfig.MapLookuper(tt.env))
			if err != nil {
				t.Fatalf("LoadConfig failed: %v", err)
			}
			if diff := cmp.Diff(tt.want, config); diff != "" {
				t.Errorf("config mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
