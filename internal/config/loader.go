// internal/config/loader.go
//
// Configuration loader.
//
/*
Context
--------
`Load()` builds one immutable `Config` struct from three layers (highest
precedence last):

  1. Optional `.env` file at `<root>/conf/.env`.
  2. `conf/global.yaml`.
  3. Environment variables prefixed `FOLIO_`, where `__` maps to “.”
     (e.g., `FOLIO_HTTP__LISTEN_ADDR → http.listen_addr`).

Between merging and unmarshalling, every string value of the form
`vault:<path>#<key>` is swapped for the secret it names.  The tree is
then unmarshalled into typed structs, defaulted, validated, enriched with
the runtime root path, and cached in an `atomic.Pointer`.

Instrumentation
---------------
  • DEBUG: root discovery, YAML read, each resolved secret key.
  • ERROR: YAML parse, env overlay, secret resolution, unmarshal, and
    validation failures.
  • INFO:  final “config loaded” with key highlights.
  • Uses the global sugared logger so early boot issues surface before the
    file logger is installed.
*/
package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	koanf "github.com/knadh/koanf/v2"
	"go.uber.org/zap"
)

// EnvPrefix is the prefix of configuration overrides in the environment.
const EnvPrefix = "FOLIO_"

const secretPrefix = "vault:"

// Resolver turns a `vault:` reference into its secret value.
type Resolver interface {
	Resolve(ctx context.Context, ref string) (string, error)
}

var current atomic.Pointer[Config]

/*──────────────────────────── root discovery ───────────────────────────────*/

// RootDir resolves FOLIO_ROOT or climbs directories until conf/global.yaml
// is found.  Falls back to the executable layout used in production.
func RootDir() string {
	if r := os.Getenv(EnvPrefix + "ROOT"); r != "" {
		return r
	}

	wd, _ := os.Getwd()
	for dir := wd; ; {
		if _, err := os.Stat(filepath.Join(dir, "conf", "global.yaml")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	exe, _ := os.Executable()
	if filepath.Base(filepath.Dir(exe)) == "bin" {
		return filepath.Dir(filepath.Dir(exe))
	}
	return wd
}

/*─────────────────────────────── loader ───────────────────────────────────*/

// Load reads configuration without secret resolution.  A `vault:` value
// makes it fail.
func Load() (*Config, error) {
	return LoadWith(context.Background(), nil)
}

// LoadWith reads .env, YAML, env overrides, resolves secrets through r,
// validates, and caches the Config.
func LoadWith(ctx context.Context, r Resolver) (*Config, error) {
	root := RootDir()
	zap.S().Debugw("config root resolved", "root", root)

	_ = godotenv.Load(filepath.Join(root, "conf", ".env"))

	k := koanf.New(".")

	yamlPath := filepath.Join(root, "conf", "global.yaml")
	if err := k.Load(file.Provider(yamlPath), yaml.Parser()); err != nil {
		zap.S().Errorw("config yaml load failed", "file", yamlPath, "err", err)
		return nil, fmt.Errorf("load %s: %w", yamlPath, err)
	}
	zap.S().Debugw("config yaml loaded", "file", yamlPath)

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		zap.S().Errorw("config env overlay failed", "err", err)
		return nil, fmt.Errorf("env overlay: %w", err)
	}

	if err := resolveSecrets(ctx, k, r); err != nil {
		zap.S().Errorw("config secret resolution failed", "err", err)
		return nil, err
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		zap.S().Errorw("config unmarshal failed", "err", err)
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	cfg.Paths.Root = root
	cfg.withDefaults()
	if err := validateStruct(&cfg); err != nil {
		zap.S().Errorw("config validation failed", "err", err)
		return nil, err
	}

	current.Store(&cfg)
	zap.S().Infow("config loaded",
		"listen_addr", cfg.HTTP.ListenAddr,
		"force_https", cfg.HTTP.ForceHTTPS,
		"site", cfg.Site.Title,
		"root", cfg.Paths.Root,
	)
	return &cfg, nil
}

// envKey maps FOLIO_HTTP__LISTEN_ADDR to http.listen_addr.
func envKey(s string) string {
	return strings.ToLower(strings.ReplaceAll(strings.TrimPrefix(s, EnvPrefix), "__", "."))
}

// resolveSecrets replaces every `vault:` string in k.
func resolveSecrets(ctx context.Context, k *koanf.Koanf, r Resolver) error {
	for key, val := range k.All() {
		s, ok := val.(string)
		if !ok || !strings.HasPrefix(s, secretPrefix) {
			continue
		}
		if r == nil {
			return fmt.Errorf("config key %s references a secret but no resolver is configured", key)
		}
		secret, err := r.Resolve(ctx, s)
		if err != nil {
			return fmt.Errorf("resolve %s: %w", key, err)
		}
		if err := k.Set(key, secret); err != nil {
			return fmt.Errorf("set %s: %w", key, err)
		}
		zap.S().Debugw("config secret resolved", "key", key)
	}
	return nil
}

/*──────────────────────────── helpers ─────────────────────────────────────*/

// Get returns the most recently loaded Config, or nil.
func Get() *Config { return current.Load() }
