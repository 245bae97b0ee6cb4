// cmd/web/main.go
//
// Folio – HTTP entry point.
//
// Start-up
// --------
//
//  1. Bootstrap a console logger so config loading can report problems.
//
//  2. Connect to Vault when VAULT_ADDR is set, then load conf/global.yaml
//     with env overrides and `vault:` references resolved.
//
//  3. Start the rotating file logger (tees to console when running in a
//     TTY) and the optional GeoIP reader.
//
//  4. Open the projects database and run component migrations.
//
//  5. Build the router: recoverer → request logger → request info →
//     security headers → HTTPS redirect, then /metrics and every
//     registered component.
//
//  6. Serve until SIGINT/SIGTERM, then drain within the shutdown timeout.
//
// Large comment blocks are framed by blank “//” lines; inline comments use
// a single “//”.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/yanizio/folio/internal/component"
	"github.com/yanizio/folio/internal/config"
	"github.com/yanizio/folio/internal/database"
	"github.com/yanizio/folio/internal/form"
	"github.com/yanizio/folio/internal/logger"
	"github.com/yanizio/folio/internal/message"
	"github.com/yanizio/folio/internal/middleware"
	"github.com/yanizio/folio/internal/requestinfo"
	"github.com/yanizio/folio/internal/server"
	"github.com/yanizio/folio/internal/theme"
	"github.com/yanizio/folio/internal/vault"
	"github.com/yanizio/folio/internal/view"

	_ "github.com/yanizio/folio/components/contact"
	_ "github.com/yanizio/folio/components/projects"
	_ "github.com/yanizio/folio/components/site"
)

// runningInTTY returns true when stdout is a character device.
func runningInTTY() bool {
	fi, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}

func main() {
	boot, err := zap.NewDevelopment()
	if err != nil {
		log.Fatalf("bootstrap logger: %v", err)
	}
	zap.ReplaceGlobals(boot)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		zap.S().Fatalw("folio exited", "err", err)
	}
}

func run(ctx context.Context) error {
	//
	// ── 1.  Configuration ───────────────────────────────────────────────
	//
	var resolver config.Resolver
	if os.Getenv("VAULT_ADDR") != "" {
		vc, err := vault.New(ctx, zap.S())
		if err != nil {
			return err
		}
		resolver = vc
	}
	cfg, err := config.LoadWith(ctx, resolver)
	if err != nil {
		return err
	}

	//
	// ── 2.  Logging and request enrichment ──────────────────────────────
	//
	lg, err := logger.New(cfg.Paths.Root, logger.Options{Tee: runningInTTY(), Level: cfg.Log.Level})
	if err != nil {
		return err
	}
	defer func() { _ = lg.Sync() }()

	if err := requestinfo.InitGeo(cfg.GeoIP.CityDB); err != nil {
		lg.Warnw("geoip disabled", "db", cfg.GeoIP.CityDB, "err", err)
	}
	defer func() { _ = requestinfo.CloseGeo() }()

	//
	// ── 3.  Database ────────────────────────────────────────────────────
	//
	db, err := database.Open(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close()
	lg.Infow("database online", "max_open", cfg.Database.MaxOpen)

	comps := component.All()
	if err := component.Migrate(ctx, db, comps); err != nil {
		return err
	}

	//
	// ── 4.  Rendering and forms ─────────────────────────────────────────
	//
	th, err := theme.Default()
	if err != nil {
		return err
	}
	csrf, err := form.NewCSRF([]byte(cfg.Site.CSRFKey), cfg.Site.CSRFMaxAge)
	if err != nil {
		return err
	}
	if cfg.Site.CSRFKey == "" {
		lg.Warnw("site.csrf_key not set; tokens will not survive a restart")
	}

	deps := component.Deps{
		DB:     db,
		Config: cfg,
		View:   view.New(th, cfg.Site),
		CSRF:   csrf,
		Log:    lg,
		Outbox: message.LogOutbox{Log: lg},
	}

	//
	// ── 5.  Router ──────────────────────────────────────────────────────
	//
	r := chi.NewRouter()
	r.Use(chimw.Recoverer)
	r.Use(logger.Middleware)
	r.Use(requestinfo.Enrich)
	r.Use(middleware.Security)
	r.Use(middleware.ForceHTTPS(cfg.HTTP.ForceHTTPS))

	r.Handle("/metrics", promhttp.Handler())
	if err := component.Mount(r, deps, comps); err != nil {
		return err
	}

	//
	// ── 6.  Serve ───────────────────────────────────────────────────────
	//
	srv := server.New(cfg.HTTP, r)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return server.Run(gctx, srv, cfg.HTTP) })
	return g.Wait()
}
