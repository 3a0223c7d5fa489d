// Package routes wires the HTTP surface: the goal form, the rendered plan
// with per-day log controls, and per-week feedback requests. The server
// owns the single live session and guards it with a mutex; Go handlers run
// concurrently even though user actions are logically sequential.
package routes

import (
	"html/template"
	"net/http"
	"sync"
	"time"

	scs "github.com/alexedwards/scs/v2"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/briangreenhill/paceperfect/internal/plan"
	"github.com/briangreenhill/paceperfect/internal/planner"
	"github.com/briangreenhill/paceperfect/internal/store"
)

// flash keys for the two separate, dismissible error channels.
const (
	flashPlanError     = "plan_error"
	flashFeedbackError = "feedback_error"
)

type Server struct {
	Router  *chi.Mux
	Sess    *scs.SessionManager
	Tmpl    *template.Template
	Planner *planner.Planner
	Store   store.Snapshots
	Log     zerolog.Logger

	mu      sync.Mutex
	session *plan.Session

	// now is swapped out in tests.
	now func() time.Time
}

type ServerOptions struct {
	Sess    *scs.SessionManager
	Tmpl    *template.Template
	Planner *planner.Planner
	Store   store.Snapshots
	Log     zerolog.Logger
	Session *plan.Session // optional pre-loaded session (from a stored snapshot)
}

func New(opts ServerOptions) *Server {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)

	sess := opts.Session
	if sess == nil {
		sess = plan.NewSession()
	}

	s := &Server{
		Router:  r,
		Sess:    opts.Sess,
		Tmpl:    opts.Tmpl,
		Planner: opts.Planner,
		Store:   opts.Store,
		Log:     opts.Log,
		session: sess,
		now:     time.Now,
	}

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if _, err := w.Write([]byte("ok")); err != nil {
			s.Log.Error().Err(err).Msg("write health check response")
		}
	})

	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.Dir("web/static"))))

	r.Get("/", s.handleHome)
	r.Post("/plan", s.handleGeneratePlan)
	r.Post("/plan/reset", s.handleResetPlan)
	r.Post("/plan/{planID}/weeks/{week}/days/{day}/log", s.handleLogDay)
	r.Post("/plan/{planID}/weeks/{week}/days/{day}/clear", s.handleClearDay)
	r.Post("/plan/{planID}/weeks/{week}/feedback", s.handleFeedback)

	return s
}

func (s *Server) render(w http.ResponseWriter, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.Tmpl.ExecuteTemplate(w, name, data); err != nil {
		s.Log.Error().Err(err).Str("template", name).Msg("render failed")
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}
