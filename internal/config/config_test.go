package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestGlobalPath(t *testing.T) {
	tests := []struct {
		name      string
		xdgConfig string
		want      string
	}{
		{
			name:      "with XDG_CONFIG_HOME set",
			xdgConfig: "/custom/config",
			want:      "/custom/config/bookwright/bookwright.yml",
		},
		{
			name:      "without XDG_CONFIG_HOME",
			xdgConfig: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.xdgConfig != "" {
				t.Setenv("XDG_CONFIG_HOME", tt.xdgConfig)
			} else {
				t.Setenv("XDG_CONFIG_HOME", "")
				os.Unsetenv("XDG_CONFIG_HOME")
			}

			got := GlobalPath()
			if tt.xdgConfig != "" {
				if got != tt.want {
					t.Errorf("GlobalPath() = %v, want %v", got, tt.want)
				}
			} else {
				if !filepath.IsAbs(got) {
					t.Errorf("GlobalPath() should return absolute path, got %v", got)
				}
				if filepath.Base(got) != "bookwright.yml" {
					t.Errorf("GlobalPath() should end with bookwright.yml, got %v", got)
				}
			}
		})
	}
}

func TestLoadDefaults(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.ServerURL != "http://localhost:8055" {
		t.Errorf("expected default server_url, got %q", cfg.ServerURL)
	}
	if cfg.ListenAddr != ":8055" {
		t.Errorf("expected default listen_addr, got %q", cfg.ListenAddr)
	}
	if cfg.DataDir != ".bookwright" {
		t.Errorf("expected default data_dir, got %q", cfg.DataDir)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("expected default log_level info, got %q", cfg.LogLevel)
	}
	if cfg.Store != "nats" {
		t.Errorf("expected default store nats, got %q", cfg.Store)
	}
	if cfg.MCP {
		t.Error("expected mcp to default to false")
	}
}

func TestLoadEnvOverride(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("BOOKWRIGHT_SERVER_URL", "http://wizard.example:9000")
	t.Setenv("BOOKWRIGHT_STORE", "memory")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.ServerURL != "http://wizard.example:9000" {
		t.Errorf("env override ignored, got %q", cfg.ServerURL)
	}
	if cfg.Store != "memory" {
		t.Errorf("env override ignored, got %q", cfg.Store)
	}
}

func TestLoadProjectConfig(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))

	yml := "server_url: http://project.local:7000\nllm_model: llama3.1\n"
	if err := os.WriteFile("bookwright.yml", []byte(yml), 0644); err != nil {
		t.Fatalf("writing project config: %v", err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.ServerURL != "http://project.local:7000" {
		t.Errorf("project config ignored, got %q", cfg.ServerURL)
	}
	if cfg.LLMModel != "llama3.1" {
		t.Errorf("project config ignored, got %q", cfg.LLMModel)
	}
	// Untouched keys keep defaults
	if cfg.ListenAddr != ":8055" {
		t.Errorf("expected default listen_addr, got %q", cfg.ListenAddr)
	}
}

func TestWriteAndExists(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))

	if Exists() {
		t.Fatal("Exists() should be false in fresh dir")
	}

	cfg := &Config{ServerURL: "http://localhost:8055", Store: "memory"}
	if err := WriteProject(cfg); err != nil {
		t.Fatalf("WriteProject failed: %v", err)
	}

	if !Exists() {
		t.Error("Exists() should be true after WriteProject")
	}
}
