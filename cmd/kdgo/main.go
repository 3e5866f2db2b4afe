// Command kdgo runs a command script against an in-memory k-d tree.
//
//	kdgo -k 2 -m 4 <<EOF
//	insert a 0 0
//	insert b 10 10
//	knn 1 1 1
//	dump
//	EOF
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/hupe1980/kdgo"
	"github.com/hupe1980/kdgo/codec"
	"github.com/hupe1980/kdgo/metrics/prom"
)

type config struct {
	k           int
	m           int
	codecName   string
	compression string
	logLevel    string
	file        string
	metricsAddr string
	seed        int64
}

func main() {
	var cfg config
	flag.IntVar(&cfg.k, "k", 2, "number of dimensions")
	flag.IntVar(&cfg.m, "m", 8, "maximum points per leaf")
	flag.StringVar(&cfg.codecName, "codec", "go-json", "output codec (json, go-json)")
	flag.StringVar(&cfg.compression, "compress", "none", "dump compression (none, zstd, lz4)")
	flag.StringVar(&cfg.logLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	flag.StringVar(&cfg.file, "file", "", "command script to read (default stdin)")
	flag.StringVar(&cfg.metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address")
	flag.Int64Var(&cfg.seed, "seed", 42, "random seed for the seed command")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		fmt.Fprintln(os.Stderr, "kdgo:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config) error {
	c, ok := codec.ByName(cfg.codecName)
	if !ok {
		return fmt.Errorf("unknown codec %q", cfg.codecName)
	}
	comp, err := codec.ParseCompression(cfg.compression)
	if err != nil {
		return err
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.logLevel)); err != nil {
		return fmt.Errorf("invalid log level %q", cfg.logLevel)
	}

	opts := []kdgo.Option{
		kdgo.WithCodec(c),
		kdgo.WithLogger(kdgo.NewTextLogger(level)),
	}

	if cfg.metricsAddr != "" {
		reg := prometheus.NewRegistry()
		collector, err := prom.New(reg, "kdgo")
		if err != nil {
			return err
		}
		opts = append(opts, kdgo.WithMetricsCollector(collector))

		srv := &http.Server{
			Addr:              cfg.metricsAddr,
			Handler:           promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
			ReadHeaderTimeout: 5 * time.Second,
		}
		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				fmt.Fprintln(os.Stderr, "kdgo: metrics server:", err)
			}
		}()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()
	}

	store, err := kdgo.New(cfg.k, cfg.m, opts...)
	if err != nil {
		return err
	}
	defer store.Close()

	in := os.Stdin
	if cfg.file != "" {
		f, err := os.Open(cfg.file)
		if err != nil {
			return err
		}
		defer f.Close()
		in = f
	}

	out := bufio.NewWriter(os.Stdout)
	defer out.Flush()

	cli := NewCLI(bufio.NewScanner(in), out, store, cfg.k, c, comp, cfg.seed)
	return cli.Run(ctx)
}
