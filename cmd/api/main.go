// cmd/api/main.go
package main

import (
	"context"
	"html/template"
	"net/http"
	"os"
	"time"

	scs "github.com/alexedwards/scs/v2"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"

	"github.com/briangreenhill/paceperfect/internal/config"
	"github.com/briangreenhill/paceperfect/internal/genai"
	"github.com/briangreenhill/paceperfect/internal/http/routes"
	"github.com/briangreenhill/paceperfect/internal/plan"
	"github.com/briangreenhill/paceperfect/internal/planner"
	"github.com/briangreenhill/paceperfect/internal/store"
)

func main() {
	// Logger
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("configuration error")
	}
	logger.Info().Str("port", cfg.Port).Msg("starting paceperfect")

	// Generation service client
	gen, err := genai.New(cfg.Gemini.APIKey, genai.WithModel(cfg.Gemini.Model))
	if err != nil {
		logger.Fatal().Err(err).Msg("gemini client error")
	}

	// Snapshot store: Postgres when configured, plain files otherwise
	var snapshots store.Snapshots
	if cfg.UsePostgres() {
		pg, err := store.NewPGStore(context.Background(), cfg.DatabaseURL, logger)
		if err != nil {
			logger.Fatal().Err(err).Msg("db error")
		}
		defer pg.Close()
		snapshots = pg
	} else {
		fs, err := store.NewFileStore(cfg.DataDir, logger)
		if err != nil {
			logger.Fatal().Err(err).Msg("data dir error")
		}
		snapshots = fs
	}

	// Restore any saved session; corruption reads as "nothing saved"
	session := plan.NewSession()
	if p, startDate, ok := snapshots.Load(context.Background()); ok {
		session.ReplacePlan(p, startDate)
		logger.Info().Str("plan_id", p.ID.String()).Msg("restored saved plan")
	}

	// Sessions (flash messages only)
	sess := scs.New()
	sess.Lifetime = 12 * time.Hour
	sess.Cookie.HttpOnly = true
	sess.Cookie.SameSite = http.SameSiteLaxMode
	sess.Cookie.Secure = false

	// Templates
	tmpl := template.Must(template.New("").ParseGlob("web/templates/*.tmpl"))

	// Router / server
	s := routes.New(routes.ServerOptions{
		Sess:    sess,
		Tmpl:    tmpl,
		Planner: planner.New(gen, logger),
		Store:   snapshots,
		Log:     logger,
		Session: session,
	})
	h := hlog.NewHandler(logger)(s.Router)

	srv := &http.Server{Addr: ":" + cfg.Port, Handler: sess.LoadAndSave(h)}
	if err := srv.ListenAndServe(); err != nil {
		logger.Fatal().Err(err).Msg("server stopped")
	}
}
