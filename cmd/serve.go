package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/sells-group/bikelane-cli/internal/cache"
	"github.com/sells-group/bikelane-cli/internal/config"
	"github.com/sells-group/bikelane-cli/internal/geo"
	"github.com/sells-group/bikelane-cli/internal/model"
	"github.com/sells-group/bikelane-cli/internal/pipeline"
	"github.com/sells-group/bikelane-cli/internal/view"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the dashboard API server",
	Long:  "Serves the indicator table, ranked views and chart payloads over HTTP. Sources are re-read per request and rebuilt only when their content changes.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if servePort != 0 {
			cfg.Server.Port = servePort
		}
		if err := cfg.Validate("serve"); err != nil {
			return err
		}

		d := newDashboard(cfg, cache.New())
		srv := &http.Server{
			Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
			Handler:           buildRouter(d, cfg.Server),
			ReadHeaderTimeout: 10 * time.Second,
		}

		// Graceful shutdown
		go func() {
			<-ctx.Done()
			zap.L().Info("shutting down server")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			srv.Shutdown(shutdownCtx) //nolint:errcheck
		}()

		zap.L().Info("starting server", zap.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return eris.Wrap(err, "server listen")
		}

		return nil
	},
}

// dashboard serves the API handlers over one table cache.
type dashboard struct {
	sources config.SourcesConfig
	view    config.ViewConfig
	cache   *cache.Cache
}

func newDashboard(c *config.Config, tc *cache.Cache) *dashboard {
	return &dashboard{sources: c.Sources, view: c.View, cache: tc}
}

func buildRouter(d *dashboard, sc config.ServerConfig) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: sc.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSONResponse(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(r chi.Router) {
		r.Use(rateLimit(rate.NewLimiter(rate.Limit(sc.RateLimit), sc.RateBurst)))
		r.Get("/controls", d.handleControls)
		r.Get("/districts", d.handleDistricts)
		r.Get("/top", d.handleTop)
		r.Get("/charts/{kind}", d.handleChart)
		r.Post("/cache/invalidate", d.handleInvalidate)
	})

	return r
}

func (d *dashboard) table(r *http.Request) (*model.Table, error) {
	return loadTable(r.Context(), d.sources, d.cache)
}

// tableMeta describes which load produced a response.
type tableMeta struct {
	LoadID    string                   `json:"load_id"`
	SourceKey string                   `json:"source_key"`
	BuiltAt   time.Time                `json:"built_at"`
	Sources   []model.SourceProvenance `json:"sources,omitempty"`
	Dropped   []string                 `json:"dropped,omitempty"`
	Missing   []string                 `json:"missing,omitempty"`
}

func metaOf(t *model.Table) tableMeta {
	return tableMeta{
		LoadID:    t.LoadID.String(),
		SourceKey: t.SourceKey,
		BuiltAt:   t.BuiltAt,
		Sources:   t.Sources,
		Dropped:   t.Dropped(),
		Missing:   t.Missing(geo.Seoul().Known()),
	}
}

func (d *dashboard) handleControls(w http.ResponseWriter, r *http.Request) {
	t, err := d.table(r)
	if err != nil {
		writeError(w, err)
		return
	}
	ind, _ := model.ParseIndicator(d.view.Indicator)
	writeJSONResponse(w, http.StatusOK, view.NewControls(t, ind, d.view.TopN))
}

func (d *dashboard) handleDistricts(w http.ResponseWriter, r *http.Request) {
	t, err := d.table(r)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSONResponse(w, http.StatusOK, struct {
		tableMeta
		Districts []model.DistrictRecord `json:"districts"`
	}{metaOf(t), t.Rows()})
}

func (d *dashboard) handleTop(w http.ResponseWriter, r *http.Request) {
	t, q, ok := d.tableAndQuery(w, r)
	if !ok {
		return
	}
	writeJSONResponse(w, http.StatusOK, struct {
		tableMeta
		Query     view.Query             `json:"query"`
		Districts []model.DistrictRecord `json:"districts"`
	}{metaOf(t), q, view.Apply(t, q)})
}

func (d *dashboard) handleChart(w http.ResponseWriter, r *http.Request) {
	kind := view.ChartKind(chi.URLParam(r, "kind"))
	switch kind {
	case view.ChartBar, view.ChartScatter, view.ChartMap:
	default:
		writeJSONResponse(w, http.StatusNotFound, map[string]string{"error": fmt.Sprintf("unknown chart %q", kind)})
		return
	}

	t, q, ok := d.tableAndQuery(w, r)
	if !ok {
		return
	}
	payload, err := view.Render(kind, t, q)
	if err != nil {
		writeError(w, err)
		return
	}
	if kind == view.ChartMap {
		w.Header().Set("Content-Type", "application/geo+json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(payload) //nolint:errcheck
		return
	}
	writeJSONResponse(w, http.StatusOK, payload)
}

// handleInvalidate drops the table for the source_key given in the key
// parameter, or every table when no key is given.
func (d *dashboard) handleInvalidate(w http.ResponseWriter, r *http.Request) {
	n := 0
	if key := r.URL.Query().Get("key"); key != "" {
		if d.cache.Invalidate(cache.Key(key)) {
			n = 1
		}
	} else {
		n = d.cache.Purge()
	}
	zap.L().Info("indicator cache purged", zap.Int("entries", n))
	writeJSONResponse(w, http.StatusOK, map[string]int{"purged": n})
}

// tableAndQuery loads the table and parses indicator, top and district
// parameters. It writes the error response itself when ok is false.
func (d *dashboard) tableAndQuery(w http.ResponseWriter, r *http.Request) (*model.Table, view.Query, bool) {
	q, err := parseQuery(r, d.view)
	if err != nil {
		writeJSONResponse(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return nil, view.Query{}, false
	}
	t, err := d.table(r)
	if err != nil {
		writeError(w, err)
		return nil, view.Query{}, false
	}
	if err := q.Validate(t.Districts()); err != nil {
		writeJSONResponse(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return nil, view.Query{}, false
	}
	return t, q, true
}

func parseQuery(r *http.Request, vc config.ViewConfig) (view.Query, error) {
	values := r.URL.Query()
	n := 0
	if s := values.Get("top"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil {
			return view.Query{}, eris.Errorf("top must be an integer, got %q", s)
		}
		n = v
	}
	return queryFromFlags(vc, values.Get("indicator"), n, values["district"])
}

// writeError maps pipeline data errors to 422 and everything else to 500.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	if pipeline.IsDataError(err) {
		status = http.StatusUnprocessableEntity
	}
	if errors.Is(err, context.Canceled) {
		status = 499
	}
	zap.L().Warn("request failed", zap.Int("status", status), zap.Error(err))
	writeJSONResponse(w, status, map[string]string{"error": err.Error()})
}

func writeJSONResponse(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

func rateLimit(l *rate.Limiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !l.Allow() {
				writeJSONResponse(w, http.StatusTooManyRequests, map[string]string{"error": "rate limit exceeded"})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		zap.L().Info("http request",
			zap.String("request_id", middleware.GetReqID(r.Context())),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Duration("duration", time.Since(start)),
		)
	})
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}
