package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/govalues/radix/internal/config"
	"github.com/govalues/radix/internal/httpapi"
	"github.com/govalues/radix/internal/server"
	"github.com/govalues/radix/internal/service"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

const shutdownTimeout = 5 * time.Second

// NewServeCommand creates the serve command.
func NewServeCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve requests over TCP and, optionally, HTTP",
		Long: `Serve requests over TCP, one connection at a time.

Each connection carries one request line and receives one response:
  convert,<number>,<source base>,<target base>
  arif,<a>,<b>,<base>,<operator>

With --http-listen the same operations are served as JSON under /v1,
together with /healthz and Prometheus metrics under /metrics.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runServe(ctx, rootOpts, cmd)
		},
	}

	cmd.Flags().String("listen", config.DefaultListen, "TCP address of the request server")
	cmd.Flags().String("http-listen", config.DefaultHTTPListen, "HTTP address of the JSON API and metrics (empty disables)")
	cmd.Flags().Duration("http-timeout", config.DefaultHTTPTimeout, "time allowed to answer an HTTP request")
	cmd.Flags().Int("http-max-in-flight", config.DefaultHTTPInFlight, "HTTP requests evaluated at once")
	cmd.Flags().Int("max-request-bytes", 0, "largest accepted request (0 means the default)")
	cmd.Flags().Duration("read-timeout", config.DefaultReadTimeout, "time allowed to read a request")
	cmd.Flags().Bool("proxy-protocol", false, "accept a PROXY protocol header before each request")
	cmd.Flags().Duration("cache-ttl", config.DefaultCacheTTL, "how long responses stay cached (0 disables)")
	cmd.Flags().Float64("rate-limit", config.DefaultRateLimit, "requests per second (0 means unlimited)")
	cmd.Flags().Int("rate-burst", config.DefaultRateBurst, "requests allowed in a burst")

	return cmd
}

func runServe(ctx context.Context, opts *RootOptions, cmd *cobra.Command) error {
	cfg := opts.Config
	log, err := opts.logger(cmd)
	if err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	svc, err := service.New(service.Options{
		MaxDigits:    cfg.MaxDigits,
		CacheTTL:     cfg.CacheTTL,
		CacheCleanup: cfg.CacheCleanup,
		Registerer:   reg,
		Logger:       log,
	})
	if err != nil {
		return err
	}

	g, ctx := errgroup.WithContext(ctx)

	tcp := server.New(svc, server.Options{
		MaxRequestBytes: cfg.MaxRequestBytes,
		ReadTimeout:     cfg.ReadTimeout,
		Limiter:         newLimiter(cfg),
		ProxyProtocol:   cfg.ProxyProtocol,
		Logger:          log,
	})
	g.Go(func() error {
		return tcp.ListenAndServe(ctx, cfg.Listen)
	})

	if cfg.HTTPListen != "" {
		srv := &http.Server{
			Addr: cfg.HTTPListen,
			Handler: httpapi.NewRouter(svc, httpapi.Options{
				Gatherer:        reg,
				Limiter:         newLimiter(cfg),
				MaxRequestBytes: cfg.MaxRequestBytes,
				Timeout:         cfg.HTTPTimeout,
				MaxInFlight:     cfg.HTTPMaxInFlight,
				Logger:          log,
			}),
			ReadHeaderTimeout: cfg.ReadTimeout,
		}
		g.Go(func() error {
			log.WithFields(logrus.Fields{"addr": cfg.HTTPListen}).Info("Serving HTTP")
			if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("serving HTTP: %w", err)
			}
			return nil
		})
		g.Go(func() error {
			<-ctx.Done()
			sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			return srv.Shutdown(sctx)
		})
	}

	err = g.Wait()
	log.Info("Stopped")
	return err
}

func newLimiter(cfg config.Config) *rate.Limiter {
	if cfg.RateLimit <= 0 {
		return nil
	}
	return rate.NewLimiter(rate.Limit(cfg.RateLimit), cfg.RateBurst)
}
