package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	oc "github.com/Gobd/objectchecker"
	"github.com/Gobd/objectchecker/internal/logging"
	"github.com/Gobd/objectchecker/route"
	"github.com/go-chi/chi/v5"
	"github.com/joeshaw/envdecode"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
)

// serveConfig is read from the environment.
type serveConfig struct {
	// Addr to listen on. ENV: OBJECTCHECKER_ADDR
	Addr string `env:"OBJECTCHECKER_ADDR,default=:8080"`
	// LogLevel unless --log-level is given. ENV: OBJECTCHECKER_LOG_LEVEL
	LogLevel string `env:"OBJECTCHECKER_LOG_LEVEL,default=info"`
	// DocPath serves the OpenAPI document, and the markdown one with ".md".
	// ENV: OBJECTCHECKER_DOC_PATH
	DocPath string `env:"OBJECTCHECKER_DOC_PATH,default=/docs"`
}

func loadServeConfig() serveConfig {
	var cfg serveConfig
	// Defaults come from the struct tags.
	_ = envdecode.Decode(&cfg)
	return cfg
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve a route table over HTTP",
	Long: `Mounts every route of a route table with a handler that echoes the checked
request, serves the route documentation and Prometheus metrics on /metrics.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		routes, _ := cmd.Flags().GetString("routes")
		cfg := loadServeConfig()
		if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
			cfg.Addr = addr
		}
		if !cmd.Flags().Changed("log-level") {
			level, err := logging.ParseLevel(cfg.LogLevel)
			if err != nil {
				return err
			}
			logger = logging.New(level)
		}

		handler, err := newServeHandler(routes, cfg, logger, prometheus.NewRegistry())
		if err != nil {
			return err
		}
		return listen(cfg.Addr, handler)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("routes", "r", "route.yaml", "Route table file")
	serveCmd.Flags().String("addr", "", "Address to listen on (overrides OBJECTCHECKER_ADDR)")
}

func newServeHandler(routesPath string, cfg serveConfig, logger *slog.Logger, reg *prometheus.Registry) (http.Handler, error) {
	table, err := route.LoadFile(routesPath)
	if err != nil {
		return nil, err
	}

	loader := route.NewLoader(
		route.WithLogger(logger),
		route.WithMetrics(route.NewMetrics(reg)),
	)
	r := chi.NewRouter()
	for _, rt := range table.Routes() {
		if err := loader.Handle(r, rt, echoHandler(rt)); err != nil {
			return nil, err
		}
	}
	loader.CreateDoc(r, cfg.DocPath, "objectchecker", "1.0.0")
	r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	logger.Info("routes loaded", "file", routesPath, "count", len(loader.Routes()))
	return r, nil
}

// echoHandler answers with the route id, the query and the JSON body it received.
func echoHandler(rt *route.Route) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		reply := oc.NewObject()
		reply.Set("route", oc.String(rt.ID()))
		reply.Set("query", route.QueryValue(r.URL.Query()))

		data, _ := io.ReadAll(r.Body)
		body := oc.Null()
		if len(data) > 0 {
			if v, err := oc.ParseJSON(data); err == nil {
				body = v
			}
		}
		reply.Set("body", body)

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(oc.ObjectValue(reply))
	}
}

func listen(addr string, handler http.Handler) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", addr)
		serverErrors <- srv.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server: %w", err)

	case sig := <-shutdown:
		logger.Info("shutting down", "signal", sig.String())

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			logger.Error("graceful shutdown did not complete", "error", err)
			return srv.Close()
		}
		return nil
	}
}
