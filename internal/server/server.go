// Package server exposes workspace graphs over HTTP.
//
// Routes:
//
//	GET /healthz                 liveness, build info and request counters
//	GET /packages                workspace packages as JSON
//	GET /graph.{format}          graph in dot, json, svg, png, jpg or pdf
//
// /graph accepts the query parameters root, depth, dev, peer, detailed and
// rankdir, mirroring the CLI flags. The workspace is discovered on every
// request, so edits to manifests show up without a restart.
package server

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/wsgraph/pkg/buildinfo"
	errs "github.com/matzehuels/wsgraph/pkg/errors"
	"github.com/matzehuels/wsgraph/pkg/observability"
	"github.com/matzehuels/wsgraph/pkg/pipeline"
	"github.com/matzehuels/wsgraph/pkg/render"
	"github.com/matzehuels/wsgraph/pkg/workspace"
)

// Options configures a [Server].
type Options struct {
	// Dir is the workspace root.
	Dir string
	// Defaults seed every graph request before query parameters apply.
	Defaults pipeline.Options
	Runner   *pipeline.Runner
	Logger   *log.Logger
	// Stats, when set, is reported by /healthz.
	Stats *observability.Counters
}

// Server serves graphs of a single workspace.
type Server struct {
	dir      string
	defaults pipeline.Options
	runner   *pipeline.Runner
	logger   *log.Logger
	stats    *observability.Counters
	router   chi.Router
}

// New creates a server.
func New(opts Options) *Server {
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	if opts.Runner == nil {
		opts.Runner = pipeline.NewRunner(nil, opts.Logger)
	}
	s := &Server{
		dir:      opts.Dir,
		defaults: opts.Defaults,
		runner:   opts.Runner,
		logger:   opts.Logger,
		stats:    opts.Stats,
	}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(s.accessLog)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Get("/packages", s.handlePackages)
	r.Get("/graph.{format}", s.handleGraph)
	return r
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", "addr", addr, "workspace", s.dir)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		s.logger.Info("server stopping")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	body := map[string]any{
		"status": "ok",
		"build":  buildinfo.Get(),
	}
	if s.stats != nil {
		body["stats"] = s.stats.Snapshot()
	}
	writeJSON(w, http.StatusOK, body)
}

// packageView is the /packages representation of a workspace package.
type packageView struct {
	Name         string   `json:"name"`
	Version      string   `json:"version,omitempty"`
	Dir          string   `json:"dir"`
	Private      bool     `json:"private,omitempty"`
	Dependencies []string `json:"dependencies"`
}

func (s *Server) handlePackages(w http.ResponseWriter, r *http.Request) {
	ws, err := s.discover(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	kinds, err := s.kinds(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	names := make(map[string]bool, len(ws.Packages))
	for _, p := range ws.Packages {
		names[p.Name] = true
	}

	out := make([]packageView, 0, len(ws.Packages))
	for _, p := range ws.Packages {
		deps := []string{}
		for _, d := range p.Record(kinds).Dependencies {
			if names[d] {
				deps = append(deps, d)
			}
		}
		out = append(out, packageView{
			Name:         p.Name,
			Version:      p.Version,
			Dir:          p.Dir,
			Private:      p.Private,
			Dependencies: deps,
		})
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"root":     ws.Root,
		"kind":     ws.Kind,
		"packages": out,
	})
}

func (s *Server) handleGraph(w http.ResponseWriter, r *http.Request) {
	opts, err := s.graphOptions(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	ws, err := s.discover(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	res, err := s.runner.Execute(r.Context(), ws, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", res.Format.ContentType())
	w.Header().Set("X-Graph-Nodes", strconv.Itoa(res.Stats.NodeCount))
	w.Header().Set("X-Graph-Edges", strconv.Itoa(res.Stats.EdgeCount))
	if res.Format.NeedsLayout() {
		w.Header().Set("X-Cache", cacheStatus(res.Stats.CacheHit))
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(res.Output)
}

// graphOptions merges the query parameters of r over the server defaults.
func (s *Server) graphOptions(r *http.Request) (pipeline.Options, error) {
	opts := s.defaults
	opts.RequireRoot = true

	format, err := render.ParseFormat(chi.URLParam(r, "format"))
	if err != nil {
		return opts, err
	}
	opts.Format = format

	q := r.URL.Query()
	if q.Has("root") {
		opts.RootPackage = q.Get("root")
	}
	if v := q.Get("depth"); v != "" {
		d, err := strconv.Atoi(v)
		if err != nil {
			return opts, errs.New(errs.ErrCodeInvalidInput, "depth must be an integer, got %q", v)
		}
		opts.MaxDepth = d
	}
	if v := q.Get("rankdir"); v != "" {
		opts.RankDir = v
	}
	if v := q.Get("detailed"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return opts, errs.New(errs.ErrCodeInvalidInput, "detailed must be a boolean, got %q", v)
		}
		opts.Detailed = b
	}
	if opts.Kinds, err = s.kinds(r); err != nil {
		return opts, err
	}
	return opts, nil
}

// kinds applies the dev and peer query parameters to the default kinds.
func (s *Server) kinds(r *http.Request) (workspace.DepKind, error) {
	kinds := s.defaults.Kinds
	if kinds == 0 {
		kinds = workspace.KindProd
	}
	for param, kind := range map[string]workspace.DepKind{"dev": workspace.KindDev, "peer": workspace.KindPeer} {
		v := r.URL.Query().Get(param)
		if v == "" {
			continue
		}
		on, err := strconv.ParseBool(v)
		if err != nil {
			return 0, errs.New(errs.ErrCodeInvalidInput, "%s must be a boolean, got %q", param, v)
		}
		if on {
			kinds |= kind
		} else {
			kinds &^= kind
		}
	}
	return kinds, nil
}

func (s *Server) discover(ctx context.Context) (*workspace.Workspace, error) {
	return workspace.Discover(ctx, s.dir, workspace.Options{Logger: s.logger})
}

func cacheStatus(hit bool) string {
	if hit {
		return "HIT"
	}
	return "MISS"
}
