// Package main runs a shardkv cluster through its full record lifecycle and
// prints how records are spread across partitions before and after a resize.
//
// The command is a caller of internal/cluster, not part of it: it creates a
// cluster, inserts three records, reads, updates and deletes them, resizes
// the cluster and reports the distribution at each step.
//
// Configuration:
//   - SHARDKV_PARTITIONS: Initial partition count (default: 8)
//   - SHARDKV_RESIZE_TO: Partition count after resize (default: 12)
//   - SHARDKV_COMPRESS: Store values snappy-compressed (default: false)
//   - SHARDKV_LOG_LEVEL: debug, info, warn or error (default: info)
//   - SHARDKV_LOG_FORMAT: console or json (default: console)
//   - SHARDKV_METRICS_ADDR: If set, serve /metrics on this address after the
//     run until interrupted (default: unset)
//
// Example usage:
//
//	SHARDKV_PARTITIONS=4 SHARDKV_RESIZE_TO=6 ./shardkv
//
//	# Keep the process up to scrape metrics
//	SHARDKV_METRICS_ADDR=:9090 ./shardkv
//	curl localhost:9090/metrics | grep shardkv_
package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/dreamware/shardkv/internal/cluster"
	"github.com/dreamware/shardkv/internal/metrics"
)

// logFatal is a variable to allow mocking log.Fatal in tests.
var logFatal = log.Fatalf

// config holds the process configuration read from the environment.
type config struct {
	LogLevel    string
	LogFormat   string
	MetricsAddr string
	Partitions  int
	ResizeTo    int
	Compress    bool
}

// record is the shape of the demo values; the cluster itself stores any JSON.
type record struct {
	Name string `json:"name"`
}

func main() {
	cfg, err := loadConfig()
	if err != nil {
		logFatal("config: %v", err)
	}

	logger, err := newLogger(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		logFatal("logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	reg := prometheus.NewRegistry()
	if err := run(cfg, logger, reg, os.Stdout); err != nil {
		logger.Fatal("run failed", zap.Error(err))
	}

	if cfg.MetricsAddr == "" {
		return
	}
	serveMetrics(cfg.MetricsAddr, reg, logger)
}

// loadConfig reads and validates the SHARDKV_* environment variables.
func loadConfig() (config, error) {
	partitions, err := getenvInt("SHARDKV_PARTITIONS", 8)
	if err != nil {
		return config{}, err
	}
	resizeTo, err := getenvInt("SHARDKV_RESIZE_TO", 12)
	if err != nil {
		return config{}, err
	}
	compress, err := getenvBool("SHARDKV_COMPRESS", false)
	if err != nil {
		return config{}, err
	}
	if partitions < 1 || resizeTo < 1 {
		return config{}, fmt.Errorf("partition counts must be at least 1, got %d and %d", partitions, resizeTo)
	}

	return config{
		Partitions:  partitions,
		ResizeTo:    resizeTo,
		Compress:    compress,
		LogLevel:    getenv("SHARDKV_LOG_LEVEL", "info"),
		LogFormat:   getenv("SHARDKV_LOG_FORMAT", "console"),
		MetricsAddr: getenv("SHARDKV_METRICS_ADDR", ""),
	}, nil
}

// newLogger builds a zap logger for the given level and format.
func newLogger(level, format string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, err
	}

	var zcfg zap.Config
	switch format {
	case "json":
		zcfg = zap.NewProductionConfig()
	case "console":
		zcfg = zap.NewDevelopmentConfig()
	default:
		return nil, fmt.Errorf("unknown log format %q", format)
	}
	zcfg.Level = zap.NewAtomicLevelAt(lvl)
	return zcfg.Build()
}

// run drives one cluster through insert, select, update, delete and resize,
// writing the observable results to out.
func run(cfg config, logger *zap.Logger, reg prometheus.Registerer, out io.Writer) error {
	opts := []cluster.Option{
		cluster.WithLogger(logger),
		cluster.WithMetrics(metrics.NewPrometheus(reg)),
	}
	if cfg.Compress {
		opts = append(opts, cluster.WithCompression())
	}

	c, err := cluster.New(cfg.Partitions, opts...)
	if err != nil {
		return err
	}

	ids := make([]string, 0, 3)
	for _, name := range []string{"lala", "lala2", "lala3"} {
		id, err := cluster.InsertJSON(c, record{Name: name})
		if err != nil {
			return err
		}
		ids = append(ids, id)
	}
	id1, id3 := ids[0], ids[2]

	fmt.Fprintln(out, "Distribution after insert:")
	printInfo(out, c.Info())

	fmt.Fprintln(out, "\nLookup:")
	for _, id := range []string{id1, id3} {
		if err := printRecord(out, c, id, ""); err != nil {
			return err
		}
	}

	if _, err := cluster.UpdateJSON(c, id1, record{Name: "updated_lala"}); err != nil {
		return err
	}
	fmt.Fprintln(out)
	if err := printRecord(out, c, id1, " after update"); err != nil {
		return err
	}

	c.Delete(id3)
	fmt.Fprintln(out)
	if err := printRecord(out, c, id3, " after delete"); err != nil {
		return err
	}

	if err := c.Resize(cfg.ResizeTo); err != nil {
		return err
	}
	fmt.Fprintf(out, "\nDistribution after resize to %d partitions:\n", cfg.ResizeTo)
	printInfo(out, c.Info())
	return nil
}

func printRecord(out io.Writer, c *cluster.Cluster, id, suffix string) error {
	v, ok, err := cluster.SelectJSON[record](c, id)
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintf(out, "Record %s%s: not found\n", id, suffix)
		return nil
	}
	fmt.Fprintf(out, "Record %s%s: {name: %s} in %s\n", id, suffix, v.Name, c.Locate(id))
	return nil
}

// printInfo renders one line per partition in placement order.
func printInfo(out io.Writer, infos []cluster.PartitionInfo) {
	for _, info := range infos {
		fmt.Fprintf(out, "%s: %d records\n", info.Name, info.Records)
	}
}

// serveMetrics exposes reg on addr until SIGINT or SIGTERM.
func serveMetrics(addr string, reg *prometheus.Registry, logger *zap.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	s := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("serving metrics", zap.String("addr", addr))
		if err := s.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logFatal("listen: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.Shutdown(ctx); err != nil {
		logger.Warn("metrics server shutdown", zap.Error(err))
	}
	logger.Info("stopped")
}

// getenv retrieves an environment variable with a fallback default value.
//
// Example:
//
//	level := getenv("SHARDKV_LOG_LEVEL", "info")
//	// Returns $SHARDKV_LOG_LEVEL if set, otherwise "info"
func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

// getenvInt is getenv for integer values. A set but unparsable value is an
// error rather than a silent fallback.
func getenvInt(k string, def int) (int, error) {
	v := os.Getenv(k)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", k, err)
	}
	return n, nil
}

// getenvBool is getenv for boolean values, accepting strconv.ParseBool forms.
func getenvBool(k string, def bool) (bool, error) {
	v := os.Getenv(k)
	if v == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("%s: %w", k, err)
	}
	return b, nil
}
