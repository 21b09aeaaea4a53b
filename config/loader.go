package config

import (
	"fmt"
	"maps"
	"os"
	"reflect"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/kbukum/errkit/logger"
)

// FileSystem interface for file operations (useful for testing).
type FileSystem interface {
	Exists(path string) bool
	LoadEnv(path string) error
	Getwd() (string, error)
}

// RealFileSystem implements FileSystem using actual file operations.
type RealFileSystem struct{}

func (rfs *RealFileSystem) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func (rfs *RealFileSystem) LoadEnv(path string) error {
	return godotenv.Load(path)
}

func (rfs *RealFileSystem) Getwd() (string, error) {
	return os.Getwd()
}

// Resolver handles finding and resolving config and env files.
type Resolver struct {
	FileSystem FileSystem
}

// ResolvedFiles contains the resolved config and env file paths.
type ResolvedFiles struct {
	ConfigFile string
	EnvFile    string
}

// ResolveFiles finds config and env files for a service.
// Returns explicit paths if provided, otherwise searches for them.
func (cr *Resolver) ResolveFiles(serviceName string, opts LoaderConfig) ResolvedFiles {
	resolved := ResolvedFiles{
		ConfigFile: opts.ConfigFile,
		EnvFile:    opts.EnvFile,
	}

	if resolved.ConfigFile == "" {
		resolved.ConfigFile = cr.findConfigFile(serviceName)
	}
	if resolved.EnvFile == "" {
		resolved.EnvFile = cr.findEnvFile(serviceName)
	}

	return resolved
}

// findConfigFile returns the first config.yml found near the working directory.
func (cr *Resolver) findConfigFile(serviceName string) string {
	return cr.firstExisting(searchPaths(serviceName, "config.yml"))
}

// findEnvFile prefers a service-specific .env.<service> over a plain .env at
// every location.
func (cr *Resolver) findEnvFile(serviceName string) string {
	specific := searchPaths(serviceName, ".env."+serviceName)
	plain := searchPaths(serviceName, ".env")
	candidates := make([]string, 0, len(specific)+len(plain))
	for i := range specific {
		candidates = append(candidates, specific[i], plain[i])
	}
	return cr.firstExisting(candidates)
}

func (cr *Resolver) firstExisting(paths []string) string {
	for _, p := range paths {
		if cr.FileSystem.Exists(p) {
			return p
		}
	}
	return ""
}

// LoaderConfig holds dependencies and optional file overrides.
type LoaderConfig struct {
	FileSystem FileSystem
	ConfigFile string         // Direct config file path (optional)
	EnvFile    string         // Direct env file path (optional)
	Defaults   map[string]any // Values used when no file or env var sets a key
}

// LoaderOption is a functional option for LoadConfig.
type LoaderOption func(*LoaderConfig)

// WithFileSystem sets a custom filesystem for the loader.
func WithFileSystem(fs FileSystem) LoaderOption {
	return func(lc *LoaderConfig) { lc.FileSystem = fs }
}

// WithConfigFile sets an explicit config file path.
func WithConfigFile(path string) LoaderOption {
	return func(lc *LoaderConfig) { lc.ConfigFile = path }
}

// WithEnvFile sets an explicit .env file path.
func WithEnvFile(path string) LoaderOption {
	return func(lc *LoaderConfig) { lc.EnvFile = path }
}

// WithDefaults seeds default values by dotted key, e.g. "exceptions.farsi_exception".
// Later calls add to earlier ones.
func WithDefaults(defaults map[string]any) LoaderOption {
	return func(lc *LoaderConfig) {
		if lc.Defaults == nil {
			lc.Defaults = make(map[string]any, len(defaults))
		}
		for k, v := range defaults {
			lc.Defaults[k] = v
		}
	}
}

// LoadConfig loads configuration for a service into the provided cfg struct.
// It searches for config.yml and .env files in standard locations, binds
// environment variables, and unmarshals the result into cfg.
func LoadConfig(serviceName string, cfg interface{}, opts ...LoaderOption) error {
	var lc LoaderConfig
	for _, opt := range opts {
		opt(&lc)
	}
	if lc.FileSystem == nil {
		lc.FileSystem = &RealFileSystem{}
	}

	resolver := &Resolver{FileSystem: lc.FileSystem}
	files := resolver.ResolveFiles(serviceName, lc)

	return loadFromResolvedFiles(serviceName, cfg, files, lc)
}

// loadFromResolvedFiles layers defaults, the YAML file and the environment
// (including the .env file) and unmarshals the result into cfg.
func loadFromResolvedFiles(serviceName string, cfg interface{}, files ResolvedFiles, lc LoaderConfig) error {
	fs := lc.FileSystem
	v := viper.New()

	for key, value := range lc.Defaults {
		v.SetDefault(key, value)
	}

	if files.ConfigFile != "" && fs.Exists(files.ConfigFile) {
		v.SetConfigFile(files.ConfigFile)
		if err := v.ReadInConfig(); err != nil {
			logger.Warn("Failed to load config file", map[string]interface{}{
				"file":  files.ConfigFile,
				"error": err.Error(),
			})
		}
	}

	// godotenv never overrides variables already set in the process.
	if files.EnvFile != "" && fs.Exists(files.EnvFile) {
		if err := fs.LoadEnv(files.EnvFile); err != nil {
			logger.Warn("Failed to load .env file", map[string]interface{}{
				"file":  files.EnvFile,
				"error": err.Error(),
			})
		}
	}
	bindEnvVars(v, configKeys(reflect.TypeOf(cfg), ""))

	if err := v.Unmarshal(cfg); err != nil {
		return fmt.Errorf("failed to unmarshal config for service %s: %w", serviceName, err)
	}
	return nil
}

// configKeys lists the dotted keys of a config struct from its mapstructure
// tags. Squashed embeds contribute their keys at the parent level.
func configKeys(t reflect.Type, prefix string) map[string]bool {
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	keys := make(map[string]bool)
	if t == nil || t.Kind() != reflect.Struct {
		return keys
	}

	for i := range t.NumField() {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		name, opts, _ := strings.Cut(f.Tag.Get("mapstructure"), ",")
		if name == "-" {
			continue
		}
		ft := f.Type
		for ft.Kind() == reflect.Pointer {
			ft = ft.Elem()
		}
		if strings.Contains(opts, "squash") {
			maps.Copy(keys, configKeys(ft, prefix))
			continue
		}
		if name == "" {
			name = strings.ToLower(f.Name)
		}
		if prefix != "" {
			name = prefix + "." + name
		}
		if ft.Kind() == reflect.Struct && ft != reflect.TypeFor[time.Time]() {
			maps.Copy(keys, configKeys(ft, name))
			continue
		}
		keys[name] = true
	}
	return keys
}

// searchPaths lists where fileName may live for a service, most specific
// first: cmd/<service>, cmd/<short name>, config/<service>, config and the
// directory itself, each tried from ".", ".." and "../..". The short name is
// the part after the last dash ("errkit-demo" -> "demo").
func searchPaths(serviceName, fileName string) []string {
	shortName := serviceName
	if idx := strings.LastIndex(serviceName, "-"); idx != -1 {
		shortName = serviceName[idx+1:]
	}
	dirs := removeDuplicates([]string{
		"cmd/" + serviceName,
		"cmd/" + shortName,
		"config/" + serviceName,
		"config",
		"",
	})

	paths := make([]string, 0, len(dirs)*3)
	for _, dir := range dirs {
		for _, up := range []string{"./", "../", "../../"} {
			if dir == "" {
				paths = append(paths, up+fileName)
				continue
			}
			paths = append(paths, up+dir+"/"+fileName)
		}
	}
	return paths
}

// bindEnvVars sets every config key addressed by an environment variable,
// e.g. SERVER_JWT_SECRET -> server.jwt_secret. With no known keys (cfg is
// not a struct) every variant is bound.
func bindEnvVars(v *viper.Viper, keys map[string]bool) {
	for _, env := range os.Environ() {
		name, value, ok := strings.Cut(env, "=")
		if !ok {
			continue
		}
		for _, key := range generateEnvKeyVariants(name) {
			if len(keys) == 0 || keys[key] {
				v.Set(key, value)
			}
		}
	}
}

// generateEnvKeyVariants returns the config keys an environment variable may
// address: the lowercased name, the fully dotted form, and every split into a
// dotted section prefix and an underscored leaf.
//
//	EXCEPTIONS_FARSI_EXCEPTION -> [exceptions_farsi_exception, exceptions.farsi.exception, exceptions.farsi_exception]
func generateEnvKeyVariants(envKey string) []string {
	lowerKey := strings.ToLower(envKey)
	parts := strings.Split(lowerKey, "_")
	if len(parts) <= 1 {
		return []string{lowerKey}
	}

	variants := []string{lowerKey, strings.Join(parts, ".")}
	for i := 1; i < len(parts); i++ {
		variants = append(variants, strings.Join(parts[:i], ".")+"."+strings.Join(parts[i:], "_"))
	}
	return removeDuplicates(variants)
}

// removeDuplicates removes duplicate strings from a slice.
func removeDuplicates(items []string) []string {
	seen := make(map[string]bool, len(items))
	result := make([]string, 0, len(items))

	for _, item := range items {
		if !seen[item] {
			seen[item] = true
			result = append(result, item)
		}
	}

	return result
}
