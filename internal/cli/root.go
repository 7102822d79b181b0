// Package cli wires the cobra command tree
package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"easywealth/internal/advisor"
	"easywealth/internal/calculations"
	"easywealth/internal/engine"
	"easywealth/internal/handler"
	"easywealth/internal/llm"
	"easywealth/internal/platform/config"
	"easywealth/internal/platform/logger"
	"easywealth/internal/projection"
	"easywealth/internal/schemeregistry"
	"easywealth/internal/session"
)

// NewRootCmd builds the command tree; running it bare starts the server
func NewRootCmd() *cobra.Command {
	var logLevel string

	root := &cobra.Command{
		Use:           "easywealth",
		Short:         "Personal finance engine: SIP and FIRE projections, risk profiling, scheme discovery",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			opt := logger.FromEnv()
			if logLevel != "" {
				opt.Level = logLevel
			}
			opt.Writer = cmd.ErrOrStderr()
			logger.Init(opt)
		},
	}
	root.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (overrides LOG_LEVEL)")

	serve := newServeCmd()
	root.RunE = serve.RunE
	root.Flags().AddFlagSet(serve.Flags())

	root.AddCommand(serve, newSIPCmd(), newFireCmd(), newClassifyCmd(), newSchemesCmd())
	return root
}

// Execute runs the CLI and exits non-zero on failure
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// projectionBounds applies configured slider limits over the default steps
func projectionBounds(b config.Bounds) projection.Bounds {
	out := projection.DefaultBounds()
	out.MonthlyContribution.Min, out.MonthlyContribution.Max = b.ContributionMin, b.ContributionMax
	out.AnnualRatePercent.Min, out.AnnualRatePercent.Max = b.RateMin, b.RateMax
	out.Years.Min, out.Years.Max = float64(b.YearsMin), float64(b.YearsMax)
	out.WithdrawalRate.Min, out.WithdrawalRate.Max = b.WithdrawalMin, b.WithdrawalMax
	return out
}

// collaborators picks Gemini when a key is configured, else the offline mock.
// Gemini failing to start degrades to no collaborator, not to the mock.
func collaborators(ctx context.Context, cfg config.App) (advisor.Conversationalist, advisor.Advisor) {
	log := logger.Named("cli")
	if cfg.UseMockLLM {
		log.Info().Msg("using offline mock collaborator")
		m := llm.NewMock()
		return m, m
	}
	g, err := llm.NewGemini(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
	if err != nil {
		log.Error().Err(err).Msg("gemini unavailable; chat and advice will use fallback replies")
		return nil, nil
	}
	return g, g
}

// buildHandler assembles the service graph behind the HTTP API
func buildHandler(ctx context.Context, cfg config.App) (*handler.Handler, error) {
	catalogue, err := catalogueFor(cfg)
	if err != nil {
		return nil, fmt.Errorf("loading scheme catalogue: %w", err)
	}

	bounds := projectionBounds(cfg.Bounds)
	sessions := session.NewStore()
	chat, adv := collaborators(ctx, cfg)

	return handler.New(handler.Deps{
		Engine:   engine.New(calculations.NewRegistry(bounds, time.Now)),
		Sessions: sessions,
		Advisor:  advisor.NewService(sessions, chat, adv),
		Schemes:  catalogue,
		Bounds:   bounds,
	}), nil
}

// catalogueFor loads the embedded schemes with the configured remote overrides
func catalogueFor(cfg config.App) (*schemeregistry.Catalogue, error) {
	return schemeregistry.Load(schemeregistry.NewRemote(cfg.SchemeRegistryURL, cfg.SchemeRegistryTimeout, nil))
}
