package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestServiceConfigApplyDefaults(t *testing.T) {
	t.Run("empty environment defaults to development", func(t *testing.T) {
		cfg := ServiceConfig{Name: "svc"}
		cfg.ApplyDefaults()
		if cfg.Environment != "development" {
			t.Errorf("expected 'development', got %q", cfg.Environment)
		}
		if !cfg.Debug || !cfg.Server.Debug {
			t.Error("expected debug=true for development")
		}
		if cfg.Logging.ServiceName != "svc" {
			t.Errorf("expected logging service name, got %q", cfg.Logging.ServiceName)
		}
		if cfg.Exceptions.NestedKeySeparator != "__" || cfg.Server.Port != 8080 {
			t.Errorf("nested defaults not applied: %+v", cfg)
		}
	})

	t.Run("production environment keeps debug false", func(t *testing.T) {
		cfg := ServiceConfig{Name: "svc", Environment: "production"}
		cfg.ApplyDefaults()
		if cfg.Debug || cfg.Server.Debug {
			t.Error("expected debug=false for production")
		}
	})
}

func TestServiceConfigValidate(t *testing.T) {
	valid := func(env string) ServiceConfig {
		c := ServiceConfig{Name: "svc", Environment: env}
		c.ApplyDefaults()
		return c
	}
	badPort := valid("production")
	badPort.Server.Port = 70000

	tests := []struct {
		name    string
		cfg     ServiceConfig
		wantErr bool
		errMsg  string
	}{
		{"valid development", valid("development"), false, ""},
		{"valid staging", valid("staging"), false, ""},
		{"valid production", valid("production"), false, ""},
		{"missing name", ServiceConfig{Environment: "production"}, true, "config.name is required"},
		{"invalid environment", ServiceConfig{Name: "svc", Environment: "invalid"}, true, "config.environment must be one of"},
		{"invalid server", badPort, true, "config.server"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			if tc.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				if !strings.Contains(err.Error(), tc.errMsg) {
					t.Errorf("expected error containing %q, got %q", tc.errMsg, err.Error())
				}
			} else if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestLoadConfigWithYAML(t *testing.T) {
	path := writeConfig(t, `
name: test-service
environment: staging
version: "1.0.0"
server:
  port: 9090
exceptions:
  EXCEPTION_REPORTING: log
  SUPPORT_MULTIPLE_EXCEPTIONS: true
`)

	var cfg ServiceConfig
	if err := LoadConfig("test-service", &cfg, WithConfigFile(path), WithDefaults(ServiceDefaults())); err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.Name != "test-service" || cfg.Environment != "staging" {
		t.Errorf("unexpected base fields %+v", cfg)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("expected port 9090, got %d", cfg.Server.Port)
	}
	if cfg.Exceptions.ExceptionReporting != "log" {
		t.Errorf("upper-case keys should match, got %q", cfg.Exceptions.ExceptionReporting)
	}
	if !cfg.Exceptions.SupportMultipleExceptions {
		t.Error("expected multiple exceptions enabled")
	}
	if !cfg.Exceptions.FarsiException {
		t.Error("expected farsi_exception to default to true")
	}
	if cfg.Exceptions.NestedKeySeparator != "__" {
		t.Errorf("expected default separator, got %q", cfg.Exceptions.NestedKeySeparator)
	}
}

func TestLoadConfigOverridesDefault(t *testing.T) {
	path := writeConfig(t, `
name: test-service
exceptions:
  farsi_exception: false
`)
	var cfg ServiceConfig
	if err := LoadConfig("test-service", &cfg, WithConfigFile(path), WithDefaults(ServiceDefaults())); err != nil {
		t.Fatal(err)
	}
	if cfg.Exceptions.FarsiException {
		t.Error("file value should win over the default")
	}
}

func TestLoadConfigEnvOverride(t *testing.T) {
	path := writeConfig(t, "name: test-service\n")
	t.Setenv("EXCEPTIONS_NESTED_KEY_SEPARATOR", ".")

	var cfg ServiceConfig
	if err := LoadConfig("test-service", &cfg, WithConfigFile(path), WithDefaults(ServiceDefaults())); err != nil {
		t.Fatal(err)
	}
	if cfg.Exceptions.NestedKeySeparator != "." {
		t.Errorf("expected env override, got %q", cfg.Exceptions.NestedKeySeparator)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	var cfg ServiceConfig
	// With no config file found, LoadConfig should still succeed (defaults only)
	err := LoadConfig("nonexistent-service", &cfg, WithConfigFile("/nonexistent/path.yml"), WithDefaults(ServiceDefaults()))
	if err != nil {
		t.Fatalf("expected LoadConfig to succeed with missing file, got %v", err)
	}
	if !cfg.Exceptions.FarsiException {
		t.Error("expected defaults without a file")
	}
}

func TestLoadConfigEnvWithoutFileEntry(t *testing.T) {
	type appConfig struct {
		ServiceConfig `yaml:",inline" mapstructure:",squash"`
		Region        string `yaml:"region" mapstructure:"region"`
	}
	path := writeConfig(t, "name: test-service\n")
	t.Setenv("SERVER_JWT_SECRET", "s3cret")
	t.Setenv("REGION", "eu")

	var cfg appConfig
	if err := LoadConfig("test-service", &cfg, WithConfigFile(path)); err != nil {
		t.Fatal(err)
	}
	if cfg.Server.JWTSecret != "s3cret" {
		t.Errorf("expected server.jwt_secret from env, got %q", cfg.Server.JWTSecret)
	}
	if cfg.Region != "eu" || cfg.Name != "test-service" {
		t.Errorf("unexpected config %+v", cfg)
	}
}

func TestConfigKeys(t *testing.T) {
	keys := configKeys(reflect.TypeFor[*ServiceConfig](), "")
	for _, want := range []string{"name", "debug", "logging.level", "server.port", "server.auth_skip_paths", "exceptions.farsi_exception"} {
		if !keys[want] {
			t.Errorf("missing key %q", want)
		}
	}
	if keys["server"] || keys["exceptions"] {
		t.Error("sections are not leaf keys")
	}
}

func TestResolverWithMockFS(t *testing.T) {
	fs := &mockFS{files: map[string]bool{
		"./cmd/my-svc/config.yml": true,
		"./.env":                  true,
	}}
	resolver := &Resolver{FileSystem: fs}
	files := resolver.ResolveFiles("my-svc", LoaderConfig{})
	if files.ConfigFile != "./cmd/my-svc/config.yml" {
		t.Errorf("expected config file at ./cmd/my-svc/config.yml, got %q", files.ConfigFile)
	}
	if files.EnvFile != "./.env" {
		t.Errorf("expected env file at ./.env, got %q", files.EnvFile)
	}
}

func TestResolverSearchOrder(t *testing.T) {
	tests := []struct {
		name    string
		files   []string
		wantCfg string
		wantEnv string
	}{
		{
			name:    "short name under cmd",
			files:   []string{"../cmd/svc/config.yml", "../.env"},
			wantCfg: "../cmd/svc/config.yml",
			wantEnv: "../.env",
		},
		{
			name:    "service env file wins at the same location",
			files:   []string{"./config/config.yml", "./config/.env", "./config/.env.my-svc"},
			wantCfg: "./config/config.yml",
			wantEnv: "./config/.env.my-svc",
		},
		{
			name:    "more specific directory wins",
			files:   []string{"./config.yml", "./cmd/my-svc/config.yml", "./.env.my-svc", "./cmd/my-svc/.env"},
			wantCfg: "./cmd/my-svc/config.yml",
			wantEnv: "./cmd/my-svc/.env",
		},
		{
			name: "nothing found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := &mockFS{files: map[string]bool{}}
			for _, f := range tt.files {
				fs.files[f] = true
			}
			files := (&Resolver{FileSystem: fs}).ResolveFiles("my-svc", LoaderConfig{})
			if files.ConfigFile != tt.wantCfg {
				t.Errorf("config file = %q, want %q", files.ConfigFile, tt.wantCfg)
			}
			if files.EnvFile != tt.wantEnv {
				t.Errorf("env file = %q, want %q", files.EnvFile, tt.wantEnv)
			}
		})
	}
}

func TestSearchPaths_NoDoubleSlash(t *testing.T) {
	for _, p := range searchPaths("my-svc", ".env") {
		if strings.Contains(p, "//") {
			t.Errorf("malformed search path %q", p)
		}
	}
}

type mockFS struct {
	files map[string]bool
}

func (m *mockFS) Exists(path string) bool { return m.files[path] }
func (m *mockFS) LoadEnv(path string) error { return nil }
func (m *mockFS) Getwd() (string, error) { return "/mock", nil }

func TestGenerateEnvKeyVariants(t *testing.T) {
	variants := generateEnvKeyVariants("EXCEPTIONS_FARSI_EXCEPTION")
	want := "exceptions.farsi_exception"
	found := false
	for _, v := range variants {
		if v == want {
			found = true
		}
	}
	if !found {
		t.Errorf("expected %q among %v", want, variants)
	}
}

func TestLoaderOptions(t *testing.T) {
	var lc LoaderConfig
	fs := &mockFS{}
	WithFileSystem(fs)(&lc)
	WithConfigFile("/path/to/config.yml")(&lc)
	WithEnvFile("/path/to/.env")(&lc)
	WithDefaults(map[string]any{"a": 1})(&lc)
	WithDefaults(map[string]any{"b": 2})(&lc)

	if lc.FileSystem == nil {
		t.Error("expected FileSystem to be set")
	}
	if lc.ConfigFile != "/path/to/config.yml" || lc.EnvFile != "/path/to/.env" {
		t.Errorf("unexpected paths %+v", lc)
	}
	if lc.Defaults["a"] != 1 || lc.Defaults["b"] != 2 {
		t.Errorf("defaults should accumulate, got %v", lc.Defaults)
	}
}
