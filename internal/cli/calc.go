package cli

import (
	"context"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"easywealth/internal/model"
	"easywealth/internal/platform/config"
	"easywealth/internal/projection"
	"easywealth/internal/risk"
)

func newSIPCmd() *cobra.Command {
	var in projection.Input
	cmd := &cobra.Command{
		Use:   "sip",
		Short: "Project a monthly SIP year by year",
		RunE: func(cmd *cobra.Command, args []string) error {
			series, err := projection.ProjectSeries(in)
			if err != nil {
				return err
			}
			plan := model.NewSIPPlan(in, series)

			out := cmd.OutOrStdout()
			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', tabwriter.AlignRight)
			fmt.Fprintln(tw, "Year\tInvested\tValue\t")
			for _, p := range series {
				fmt.Fprintf(tw, "%d\t%.0f\t%.0f\t\n", p.Period, p.CumulativeContributed, p.ProjectedValue)
			}
			if err := tw.Flush(); err != nil {
				return err
			}
			fmt.Fprintf(out, "Invested: %s  Estimated value: %s  Gain: %s\n", plan.Invested, plan.EstimatedValue, plan.Gain)
			printFindings(cmd, projectionBounds(config.Load().Bounds).CheckProjection(in))
			return nil
		},
	}
	f := cmd.Flags()
	f.Float64Var(&in.MonthlyContribution, "monthly", 5000, "Monthly contribution")
	f.Float64Var(&in.AnnualRatePercent, "rate", 12, "Expected annual return, percent")
	f.IntVar(&in.Years, "years", 10, "Horizon in years")
	return cmd
}

func newFireCmd() *cobra.Command {
	var in projection.FireInput
	cmd := &cobra.Command{
		Use:   "fire",
		Short: "Size the corpus needed to retire on a withdrawal rate",
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := projection.FireNumber(in)
			if err != nil {
				return err
			}
			plan := model.NewFirePlan(in, res)
			fmt.Fprintf(cmd.OutOrStdout(), "Target corpus: %s\nMonthly withdrawal: %s\n", plan.TargetCorpus, plan.MonthlyWithdrawal.StringFixed(2))
			printFindings(cmd, projectionBounds(config.Load().Bounds).CheckFire(in))
			return nil
		},
	}
	f := cmd.Flags()
	f.Float64Var(&in.AnnualExpense, "expense", 600000, "Annual expense")
	f.Float64Var(&in.WithdrawalRatePercent, "rate", 4, "Safe withdrawal rate, percent")
	return cmd
}

func printFindings(cmd *cobra.Command, findings []projection.Finding) {
	for _, f := range findings {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s\n", f.Message)
	}
}

func newClassifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "classify <utterance>",
		Short: "Classify a risk-profile statement",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, ok := risk.Classify(strings.Join(args, " "))
			if !ok {
				fmt.Fprintln(cmd.OutOrStdout(), "no profile statement found")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), t)
			return nil
		},
	}
}

func newSchemesCmd() *cobra.Command {
	var tier string
	cmd := &cobra.Command{
		Use:   "schemes",
		Short: "List investment schemes, optionally for a risk tier",
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := risk.ParseTier(tier)
			if err != nil {
				return err
			}
			cat, err := catalogueFor(config.Load())
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "NAME\tTYPE\tRISK\tRETURN")
			for _, s := range cat.RecommendedFor(ctx, t) {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", s.Name, s.Type, s.Risk, s.ReturnRate)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().StringVar(&tier, "tier", "", "Risk tier: conservative, balanced or aggressive")
	return cmd
}
