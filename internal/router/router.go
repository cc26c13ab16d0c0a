// Package router assembles the API's chi router.
package router

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"go.uber.org/zap"

	"github.com/SergeyParamoshkin/newsboard/internal/article"
	"github.com/SergeyParamoshkin/newsboard/internal/comment"
	"github.com/SergeyParamoshkin/newsboard/internal/endpoints"
	"github.com/SergeyParamoshkin/newsboard/internal/errresponse"
	"github.com/SergeyParamoshkin/newsboard/internal/logging"
	"github.com/SergeyParamoshkin/newsboard/internal/metrics"
	"github.com/SergeyParamoshkin/newsboard/internal/topic"
)

// Store is everything the API routes read and write. Ping backs /ping.
type Store interface {
	article.Store
	comment.Store
	topic.Store
	Ping(ctx context.Context) error
}

type Options struct {
	Store   Store
	Logger  *zap.SugaredLogger
	Metrics *metrics.Metrics // optional
}

// New returns the API router. Unmatched routes and methods answer
// 404 {"msg": "Not found"}.
func New(opts Options) chi.Router {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}

	r := chi.NewRouter()

	// set before mounting so sub-routers inherit them
	r.NotFound(errresponse.NotFound)
	r.MethodNotAllowed(errresponse.NotFound)

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(logging.Middleware(logger))
	r.Use(errresponse.Recoverer)

	if opts.Metrics != nil {
		r.Use(opts.Metrics.Middleware)
	}

	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Get("/ping", errresponse.Handle(func(w http.ResponseWriter, r *http.Request) error {
		if err := opts.Store.Ping(r.Context()); err != nil {
			return fmt.Errorf("ping store: %w", err)
		}

		w.Header().Set("Content-Type", "text/plain; charset=utf-8")

		if _, err := w.Write([]byte("pong")); err != nil {
			logging.FromContext(r.Context()).Errorw(err.Error())
		}

		return nil
	}))

	r.Route("/api", func(r chi.Router) {
		r.Get("/", endpoints.Handler) // GET /api

		r.Mount("/topics", topic.NewAPI(opts.Store).Routes())
		r.Mount("/articles", article.NewAPI(opts.Store).Routes())
		r.Mount("/comments", comment.NewAPI(opts.Store).Routes())
	})

	return r
}

// Diagnostics returns the router served on the diagnostics listener.
func Diagnostics(m *metrics.Metrics) chi.Router {
	r := chi.NewRouter()
	r.Get("/metrics", m.ServeHTTP)

	return r
}
