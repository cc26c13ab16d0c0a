//
// NEWSBOARD
// =========
// A HTTP REST web service over topics, articles and comments, backed by
// SQLite. GET /api describes every endpoint.
//
// Also pass the -routes flag to print the generated route docs:
// `go run . -routes`
//
// Boot the server with the fixture data:
// --------------------------------------
// $ go run . -seed
//
// Client requests:
// ----------------
// $ curl http://localhost:3333/api/topics
// {"topics":[{"slug":"cats","description":"Not dogs"},...]}
//
// $ curl 'http://localhost:3333/api/articles?topic=cats&sort_by=votes&order=asc'
// {"articles":[{"article_id":5,"title":"UNCOVERED: catspiracy to bring down democracy",...,"comment_count":2}]}
//
// $ curl http://localhost:3333/api/articles/hello
// {"msg":"Bad request"}
//
// $ curl -X PATCH -d '{"inc_votes":-1}' http://localhost:3333/api/articles/1
// {"article":{"article_id":1,...,"votes":99,...}}
//
// $ curl -X POST -d '{"username":"lurker","body":"first"}' http://localhost:3333/api/articles/2/comments
// {"comment":{"comment_id":19,"article_id":2,"author":"lurker","body":"first","votes":0,...}}
//
// $ curl -X DELETE http://localhost:3333/api/comments/19
//
// Metrics are served on the diagnostics port:
// $ curl http://localhost:9999/metrics
//
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/docgen"
	"go.opentelemetry.io/otel/metric/global"
	"go.uber.org/zap"

	"github.com/SergeyParamoshkin/newsboard/internal/config"
	"github.com/SergeyParamoshkin/newsboard/internal/logging"
	"github.com/SergeyParamoshkin/newsboard/internal/metrics"
	"github.com/SergeyParamoshkin/newsboard/internal/router"
	"github.com/SergeyParamoshkin/newsboard/internal/seed"
	"github.com/SergeyParamoshkin/newsboard/internal/store"
)

type App struct {
	sugarLogger *zap.SugaredLogger
	config      *config.Config
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	var (
		routes   = flag.Bool("routes", false, "Generate router documentation")
		addr     = flag.String("addr", cfg.Addr, "application port")
		diagAddr = flag.String("diag_addr", cfg.DiagAddr, "diag port")
		dsn      = flag.String("db", cfg.DB, "sqlite database path or DSN")
		doSeed   = flag.Bool("seed", cfg.Seed, "reset the database to the fixture data on start")
	)

	flag.Parse()

	cfg.Addr, cfg.DiagAddr, cfg.DB, cfg.Seed = *addr, *diagAddr, *dsn, *doSeed

	logger, err := logging.New(cfg.Env)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer logger.Sync() // nolint: flushes buffer, if any

	a := App{
		sugarLogger: logger.Sugar(),
		config:      cfg,
	}

	if err := a.run(*routes); err != nil {
		a.sugarLogger.Errorw("exiting", "error", err)
		_ = logger.Sync()

		os.Exit(1)
	}
}

func (a *App) run(printRoutes bool) error {
	m, err := metrics.New(config.ServiceName)
	if err != nil {
		return fmt.Errorf("failed to initialize prometheus exporter: %w", err)
	}

	global.SetMeterProvider(m.MeterProvider())

	st, err := store.Open(a.config.DB)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	r := router.New(router.Options{
		Store:   st,
		Logger:  a.sugarLogger,
		Metrics: m,
	})

	// Passing -routes to the program will generate docs for the above
	// router definition.
	if printRoutes {
		fmt.Println(docgen.MarkdownRoutesDoc(r, docgen.MarkdownOpts{
			ProjectPath: "github.com/SergeyParamoshkin/newsboard",
			Intro:       "Generated route docs for the newsboard API.",
		}))

		return nil
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if a.config.Seed {
		if err := st.Seed(ctx, seed.Test()); err != nil {
			return fmt.Errorf("seed: %w", err)
		}

		a.sugarLogger.Infow("database seeded", "db", a.config.DB)
	}

	api := &http.Server{Addr: a.config.Addr, Handler: r}
	diag := &http.Server{Addr: a.config.DiagAddr, Handler: router.Diagnostics(m)}

	errc := make(chan error, 2)

	for _, srv := range []*http.Server{api, diag} {
		srv := srv

		go func() {
			a.sugarLogger.Infow("listening", "addr", srv.Addr)

			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errc <- err
			}
		}()
	}

	select {
	case <-ctx.Done():
		a.sugarLogger.Infow("shutting down")
	case err = <-errc:
		a.sugarLogger.Errorw(err.Error())
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.config.ShutdownTimeout)
	defer cancel()

	for _, srv := range []*http.Server{api, diag} {
		if serr := srv.Shutdown(shutdownCtx); serr != nil {
			a.sugarLogger.Errorw("shutdown", "addr", srv.Addr, "error", serr)
		}
	}

	return err
}
