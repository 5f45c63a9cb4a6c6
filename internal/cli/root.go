// Package cli is the medqa command line.
package cli

import (
	"context"
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/redspider/medqa/internal/agent/model"
	"github.com/redspider/medqa/internal/app"
	"github.com/redspider/medqa/internal/metrics"
	logx "github.com/redspider/medqa/pkg/logger"
)

// Service is what the commands need from the assembled cascade.
type Service interface {
	Answer(ctx context.Context, question string) (model.Response, error)
	Check(ctx context.Context) ([]app.CheckResult, error)
	Close(ctx context.Context) error
}

var (
	envFile     string
	metricsAddr string

	// service is built on first use unless a caller injected one.
	service      Service
	ownsService  bool
	metricServer *metrics.Server
)

var rootCmd = &cobra.Command{
	Use:   "medqa",
	Short: "Medical question answering over a disease knowledge graph",
	Long: `medqa answers medical questions from a Neo4j disease graph
(symptoms, recommended food and drugs) and falls back to a generative
model when the graph has no answer.`,
	SilenceUsage:       true,
	PersistentPostRunE: teardown,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file loaded before the environment")
	rootCmd.PersistentFlags().StringVar(&metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address (overrides METRICS_ADDR)")
}

// Execute runs the root command with ctx and releases whatever it built.
func Execute(ctx context.Context) error {
	err := rootCmd.ExecuteContext(ctx)
	_ = teardown(rootCmd, nil)
	return err
}

// SetService injects a prebuilt service; commands then skip configuration.
func SetService(s Service) {
	service = s
	ownsService = false
}

// ensureService loads configuration and assembles the cascade once.
func ensureService(cmd *cobra.Command) (Service, error) {
	if service != nil {
		return service, nil
	}

	cfg, err := app.LoadConfig(envFile)
	if err != nil {
		return nil, err
	}
	cfg.InitLogger()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	addr := cfg.MetricsAddr
	if cmd.Flags().Changed("metrics-addr") {
		addr = metricsAddr
	}
	if addr != "" {
		metricServer = metrics.Serve(addr, reg)
	}

	a, err := app.New(cmd.Context(), cfg, m)
	if err != nil {
		return nil, err
	}
	service, ownsService = a, true
	return service, nil
}

func teardown(_ *cobra.Command, _ []string) error {
	ctx := context.Background()
	var errs []error
	if ownsService && service != nil {
		errs = append(errs, service.Close(ctx))
		service, ownsService = nil, false
	}
	if metricServer != nil {
		errs = append(errs, metricServer.Shutdown(ctx))
		metricServer = nil
	}
	if err := errors.Join(errs...); err != nil {
		logx.Warn().Err(err).Msg("shutdown incomplete")
	}
	return nil
}
