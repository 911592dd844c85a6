package confloader

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

type testConfig struct {
	Server struct {
		HTTP struct {
			Address string `koanf:"address"`
			Enabled bool   `koanf:"enabled"`
		} `koanf:"http"`
	} `koanf:"server"`
	Grid struct {
		Cells   int    `koanf:"cells"`
		Message string `koanf:"message"`
	} `koanf:"grid"`
	Stream struct {
		Interval time.Duration `koanf:"interval"`
	} `koanf:"stream"`
	Limits struct {
		MaxConnections int `koanf:"max_connections"`
	} `koanf:"limits"`
}

func TestNewLoader(t *testing.T) {
	l := NewLoader()
	if l == nil {
		t.Fatal("NewLoader() returned nil")
	}
	if l.envPrefix != DefaultEnvPrefix {
		t.Errorf("envPrefix = %q, want %q", l.envPrefix, DefaultEnvPrefix)
	}
}

func TestNewLoader_WithOptions(t *testing.T) {
	l := NewLoader(
		WithEnvPrefix("TEST_"),
		WithConfigFile("/path/to/config.yaml"),
	)

	if l.envPrefix != "TEST_" {
		t.Errorf("envPrefix = %q, want %q", l.envPrefix, "TEST_")
	}
	if l.filePath != "/path/to/config.yaml" {
		t.Errorf("filePath = %q, want %q", l.filePath, "/path/to/config.yaml")
	}
}

func TestLoader_LoadFile(t *testing.T) {
	// Create temp config file
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	content := `
server:
  http:
    address: "0.0.0.0:3000"
    enabled: true
grid:
  cells: 42
stream:
  interval: "250ms"
`
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	l := NewLoader()
	if err := l.LoadFile(configPath); err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}

	// Verify values were loaded
	if addr := l.GetString("server.http.address"); addr != "0.0.0.0:3000" {
		t.Errorf("server.http.address = %q, want %q", addr, "0.0.0.0:3000")
	}

	if !l.GetBool("server.http.enabled") {
		t.Error("server.http.enabled should be true")
	}
}

func TestLoader_LoadFile_NotFound(t *testing.T) {
	l := NewLoader()
	err := l.LoadFile("/nonexistent/config.yaml")
	if err == nil {
		t.Error("LoadFile() should return error for nonexistent file")
	}
}

func TestLoader_LoadFile_Empty(t *testing.T) {
	l := NewLoader()
	// Empty path should not error
	if err := l.LoadFile(""); err != nil {
		t.Errorf("LoadFile(\"\") should not error, got: %v", err)
	}
}

func TestLoader_LoadEnv(t *testing.T) {
	// Set environment variables
	t.Setenv("CHECKGRID_SERVER_HTTP_ADDRESS", "127.0.0.1:8080")
	t.Setenv("CHECKGRID_SERVER_HTTP_ENABLED", "true")

	l := NewLoader()
	if err := l.LoadEnv(); err != nil {
		t.Fatalf("LoadEnv() error = %v", err)
	}

	// Verify values were loaded
	if addr := l.GetString("server.http.address"); addr != "127.0.0.1:8080" {
		t.Errorf("server.http.address = %q, want %q", addr, "127.0.0.1:8080")
	}
}

func TestLoader_LoadEnv_CustomPrefix(t *testing.T) {
	t.Setenv("MYAPP_SERVER_PORT", "9090")

	l := NewLoader(WithEnvPrefix("MYAPP_"))
	if err := l.LoadEnv(); err != nil {
		t.Fatalf("LoadEnv() error = %v", err)
	}

	if port := l.GetString("server.port"); port != "9090" {
		t.Errorf("server.port = %q, want %q", port, "9090")
	}
}

func TestLoader_LoadMap(t *testing.T) {
	l := NewLoader()

	data := map[string]any{
		"server.http.address": "localhost:3000",
		"debug":               true,
	}

	if err := l.LoadMap(data); err != nil {
		t.Fatalf("LoadMap() error = %v", err)
	}

	if addr := l.GetString("server.http.address"); addr != "localhost:3000" {
		t.Errorf("server.http.address = %q, want %q", addr, "localhost:3000")
	}

	if !l.GetBool("debug") {
		t.Error("debug should be true")
	}
}

func TestLoader_Load_Priority(t *testing.T) {
	// Create temp config file with low priority value
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	content := `
server:
  http:
    address: "from-file:3000"
`
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	// Set environment variable with high priority value
	t.Setenv("CHECKGRID_SERVER_HTTP_ADDRESS", "from-env:8080")

	l := NewLoader(WithConfigFile(configPath))

	var cfg testConfig
	if err := l.Load(&cfg); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	// Environment should override file
	if cfg.Server.HTTP.Address != "from-env:8080" {
		t.Errorf("Address = %q, want %q (env should override file)",
			cfg.Server.HTTP.Address, "from-env:8080")
	}
}

func TestLoader_Load_OverridesWin(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	content := `
server:
  http:
    address: "from-file:3000"
grid:
  cells: 5
  message: "from file"
`
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}
	t.Setenv("CHECKGRID_GRID_CELLS", "10")

	l := NewLoader(
		WithConfigFile(configPath),
		WithOverrides(map[string]any{
			"server.http.address": "from-flag:9000",
			"grid.cells":          20,
		}),
	)

	var cfg testConfig
	if err := l.Load(&cfg); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	tests := []struct {
		name string
		got  any
		want any
	}{
		{"flag over file", cfg.Server.HTTP.Address, "from-flag:9000"},
		{"flag over env", cfg.Grid.Cells, 20},
		{"file kept without override", cfg.Grid.Message, "from file"},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s: got %v, want %v", tt.name, tt.got, tt.want)
		}
	}
}

func TestLoader_LoadMap_Nested(t *testing.T) {
	l := NewLoader()

	if err := l.LoadMap(map[string]any{
		"server": map[string]any{"http": map[string]any{"address": "nested:1"}},
		"grid.cells": 7,
	}); err != nil {
		t.Fatalf("LoadMap() error = %v", err)
	}

	var cfg testConfig
	if err := l.Unmarshal(&cfg); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if cfg.Server.HTTP.Address != "nested:1" {
		t.Errorf("Address = %q, want nested:1", cfg.Server.HTTP.Address)
	}
	if cfg.Grid.Cells != 7 {
		t.Errorf("Cells = %d, want 7", cfg.Grid.Cells)
	}
}

func TestLoader_Unmarshal(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	content := `
server:
  http:
    address: "0.0.0.0:3000"
    enabled: true
grid:
  cells: 42
stream:
  interval: "250ms"
`
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	l := NewLoader(WithConfigFile(configPath))

	var cfg testConfig
	if err := l.Load(&cfg); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.HTTP.Address != "0.0.0.0:3000" {
		t.Errorf("Address = %q, want %q", cfg.Server.HTTP.Address, "0.0.0.0:3000")
	}
	if !cfg.Server.HTTP.Enabled {
		t.Error("Enabled should be true")
	}
	if cfg.Grid.Cells != 42 {
		t.Errorf("Cells = %d, want 42", cfg.Grid.Cells)
	}
	if cfg.Stream.Interval != 250*time.Millisecond {
		t.Errorf("Interval = %v, want 250ms", cfg.Stream.Interval)
	}
}

func TestLoader_IsLoaded(t *testing.T) {
	l := NewLoader()

	if l.IsLoaded() {
		t.Error("IsLoaded() should be false before Load()")
	}

	var cfg testConfig
	if err := l.Load(&cfg); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if !l.IsLoaded() {
		t.Error("IsLoaded() should be true after Load()")
	}
}

func TestLoader_All(t *testing.T) {
	l := NewLoader()
	l.LoadMap(map[string]any{
		"key1": "value1",
		"key2": "value2",
	})

	all := l.All()
	if len(all) < 2 {
		t.Errorf("All() returned %d keys, want at least 2", len(all))
	}
}

func TestLoader_Keys(t *testing.T) {
	l := NewLoader()
	l.LoadMap(map[string]any{
		"key1": "value1",
		"key2": "value2",
	})

	keys := l.Keys()
	if len(keys) < 2 {
		t.Errorf("Keys() returned %d keys, want at least 2", len(keys))
	}
}

func TestLoader_GetInt(t *testing.T) {
	l := NewLoader()
	l.LoadMap(map[string]any{
		"port": 8080,
	})

	if port := l.GetInt("port"); port != 8080 {
		t.Errorf("GetInt(port) = %d, want %d", port, 8080)
	}
}

func TestLoader_LoadEnv_UnderscoreKeys(t *testing.T) {
	t.Setenv("CHECKGRID_LIMITS_MAX_CONNECTIONS", "64")
	t.Setenv("CHECKGRID_GRID_CELLS", "10")

	l := NewLoader(WithKeys("limits.max_connections", "grid.cells"))

	var cfg testConfig
	if err := l.Load(&cfg); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Limits.MaxConnections != 64 {
		t.Errorf("MaxConnections = %d, want 64", cfg.Limits.MaxConnections)
	}
	if cfg.Grid.Cells != 10 {
		t.Errorf("Cells = %d, want 10", cfg.Grid.Cells)
	}
}

func TestLoader_LoadEnv_IgnoresUnknownKeys(t *testing.T) {
	// CHECKGRID_SERVER is the CLI's variable and must not clobber server.*.
	t.Setenv("CHECKGRID_SERVER", "localhost:3000")
	t.Setenv("CHECKGRID_SERVER_ADDR", ":9000")

	l := NewLoader(WithKeys("server.addr"))
	if err := l.LoadEnv(); err != nil {
		t.Fatalf("LoadEnv() error = %v", err)
	}

	if got := l.GetString("server.addr"); got != ":9000" {
		t.Errorf("server.addr = %q, want %q", got, ":9000")
	}
	for _, k := range l.Keys() {
		if k == "server" {
			t.Error("unregistered CHECKGRID_SERVER should be ignored")
		}
	}
}

func TestLoader_Load_KeepsDefaults(t *testing.T) {
	t.Setenv("CHECKGRID_GRID_CELLS", "7")

	cfg := testConfig{}
	cfg.Grid.Message = "default message"
	cfg.Stream.Interval = time.Second

	l := NewLoader(WithKeys("grid.cells"))
	if err := l.Load(&cfg); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Grid.Cells != 7 {
		t.Errorf("Cells = %d, want 7", cfg.Grid.Cells)
	}
	if cfg.Grid.Message != "default message" {
		t.Errorf("Message = %q, want default to survive", cfg.Grid.Message)
	}
	if cfg.Stream.Interval != time.Second {
		t.Errorf("Interval = %v, want default to survive", cfg.Stream.Interval)
	}
}
