// internal/config/model.go
//
// Typed configuration model for Folio.
//
// Context
// -------
// These structs define the shape of the configuration tree that
// `internal/config/loader.go` builds from three overlay layers:
//
//   • optional `conf/.env`                    – dotenv values,
//   • `conf/global.yaml`                      – primary static file,
//   • `FOLIO_`-prefixed environment overrides – highest precedence.
//
// Any string value beginning with `vault:` is resolved through the Vault
// client before unmarshalling, so the model only ever holds plain strings.
//
// Notes
// -----
//   • Struct tags use `koanf:"…"`; Koanf ignores `yaml` tags.
//   • The `Paths` block is filled at runtime; YAML must not set it.

package config

import "time"

//
// HTTP section
//

// HTTP holds web-server tunables.
type HTTP struct {
	ListenAddr      string        `koanf:"listen_addr"      validate:"required,hostname_port"`
	ForceHTTPS      bool          `koanf:"force_https"`
	ReadTimeout     time.Duration `koanf:"read_timeout"`
	WriteTimeout    time.Duration `koanf:"write_timeout"`
	IdleTimeout     time.Duration `koanf:"idle_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

//
// Database section
//

// Database holds the projects DSN and its secret.
//
// The DSN (host, schema, flags) lives in YAML.  The password is usually a
// `vault:` reference and is spliced into the DSN at connect time, keeping
// credentials out of flat files and git history.
type Database struct {
	DSN      string `koanf:"dsn"      validate:"required"`
	Password string `koanf:"password"`
	MaxOpen  int    `koanf:"max_open" validate:"gte=0"`
	MaxIdle  int    `koanf:"max_idle" validate:"gte=0"`
}

//
// Site section
//

// Site holds what the pages and forms need to know about the owner.
type Site struct {
	Title       string        `koanf:"title"        validate:"required"`
	Owner       string        `koanf:"owner"        validate:"required"`
	ConfirmPath string        `koanf:"confirm_path" validate:"required,startswith=/"`
	NotifyEmail string        `koanf:"notify_email" validate:"omitempty,email"`
	CSRFKey     string        `koanf:"csrf_key"     validate:"omitempty,min=32"`
	CSRFMaxAge  time.Duration `koanf:"csrf_max_age"`
}

//
// Log and GeoIP sections
//

// Log holds logger tunables.
type Log struct {
	Level string `koanf:"level" validate:"omitempty,oneof=debug info warn error"`
}

// GeoIP points at an optional MaxMind City database.
type GeoIP struct {
	CityDB string `koanf:"city_db"`
}

//
// Paths section (runtime only)
//

// Paths is resolved at runtime, never from YAML or env.
type Paths struct {
	Root string // FOLIO_ROOT or discovered parent
}

//
// Root aggregate
//

// Config is the immutable aggregate returned by Load() and cached in an
// atomic.Pointer for lock-free reads.
type Config struct {
	HTTP     HTTP     `koanf:"http"`
	Database Database `koanf:"database"`
	Site     Site     `koanf:"site"`
	Log      Log      `koanf:"log"`
	GeoIP    GeoIP    `koanf:"geoip"`
	Paths    Paths    `koanf:"-"`
}

// withDefaults fills zero-valued tunables.
func (c *Config) withDefaults() {
	if c.HTTP.ReadTimeout == 0 {
		c.HTTP.ReadTimeout = 10 * time.Second
	}
	if c.HTTP.WriteTimeout == 0 {
		c.HTTP.WriteTimeout = 15 * time.Second
	}
	if c.HTTP.IdleTimeout == 0 {
		c.HTTP.IdleTimeout = 60 * time.Second
	}
	if c.HTTP.ShutdownTimeout == 0 {
		c.HTTP.ShutdownTimeout = 10 * time.Second
	}
	if c.Database.MaxOpen == 0 {
		c.Database.MaxOpen = 15
	}
	if c.Database.MaxIdle == 0 {
		c.Database.MaxIdle = 5
	}
	if c.Site.CSRFMaxAge == 0 {
		c.Site.CSRFMaxAge = 2 * time.Hour
	}
}
