package terminal

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/joshpickett/EdgeTaxAI-sub001/pkg/adapters"
	"github.com/joshpickett/EdgeTaxAI-sub001/pkg/models/domain"
	"github.com/joshpickett/EdgeTaxAI-sub001/pkg/services/questionnaire"
)

func (cli *CLI) newSessionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sessions",
		Short: "List saved sessions",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ids, err := cli.store.List(cmd.Context())
			if err != nil {
				return err
			}
			for _, id := range ids {
				fmt.Fprintln(cmd.OutOrStdout(), id)
			}
			return nil
		},
	}
}

func (cli *CLI) newReportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "report <session-id>",
		Short: "Print a return summary for a saved session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			summary, err := cli.buildSummary(cmd, args[0])
			if err != nil {
				return err
			}
			return cli.reporter.Handle(summary)
		},
	}
}

func (cli *CLI) newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <session-id>",
		Short: "Re-run validation for a saved session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			summary, err := cli.buildSummary(cmd, args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			clean := true
			for _, result := range summary.Findings {
				for _, e := range result.Errors {
					clean = false
					fmt.Fprintf(out, "ERROR   %s/%s %s: %s\n", result.Schedule, result.Section, e.Field, e.Message)
				}
				for _, w := range result.Warnings {
					clean = false
					fmt.Fprintf(out, "WARNING %s/%s %s: %s\n", result.Schedule, result.Section, w.Field, w.Message)
				}
			}
			if clean {
				fmt.Fprintln(out, "all sections valid")
			}
			return nil
		},
	}
}

func (cli *CLI) buildSummary(cmd *cobra.Command, id string) (*ReturnSummary, error) {
	snapshot, err := cli.store.Get(cmd.Context(), id)
	if err != nil {
		return nil, err
	}
	s := adapters.MapSnapshotToDomainSession(snapshot)

	engine := questionnaire.New(cli.catalog, s.Answers)
	summary := &ReturnSummary{
		Session:           s,
		RequiredDocuments: engine.RequiredDocuments(),
	}

	var seTax float64
	for _, data := range s.Schedules.Active() {
		totals, err := cli.registry.Calculate(data)
		if err != nil {
			return nil, err
		}
		results, err := cli.validator.ValidateSchedule(data)
		if err != nil {
			return nil, err
		}
		summary.Schedules = append(summary.Schedules, totals)
		summary.Findings = append(summary.Findings, results...)
		seTax += totals.SETax

		switch totals.Schedule {
		case domain.ScheduleC:
			summary.Aggregate.BusinessIncome = totals.Net
		case domain.ScheduleD:
			summary.Aggregate.CapitalGainLoss = totals.Net
		case domain.ScheduleE:
			summary.Aggregate.RentalIncome = totals.Net
		case domain.ScheduleF:
			summary.Aggregate.FarmIncome = totals.Net
		}
	}

	agg := &summary.Aggregate
	agg.TaxYear = s.TaxYear
	agg.SelfEmploymentTax = seTax
	agg.TotalIncome = agg.BusinessIncome + agg.CapitalGainLoss + agg.RentalIncome + agg.FarmIncome
	agg.Adjustments = seTax / 2
	agg.AdjustedGrossIncome = agg.TotalIncome - agg.Adjustments
	return summary, nil
}
