// Package main holds the CLI entrypoint for the rota solver: read a
// scheduling request, run one solve, write the solution envelope.
package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/nextmv-io/sdk"
	"github.com/nextmv-io/sdk/run"
	"github.com/nextmv-io/sdk/run/schema"
	"github.com/nextmv-io/sdk/run/statistics"

	"github.com/nhs-rota/rota-solver/internal/rota"
)

func main() {
	err := run.CLI(solve).Run(context.Background())
	if err != nil {
		log.Fatal(err)
	}
}

// options holds custom CLI configuration. The solve time budget and every
// other solver knob travels inside the request body itself, so there is
// nothing to configure here beyond what run.CLI already wires up
// (input/output file flags).
type options struct{}

func solve(ctx context.Context, input rota.Request, opts options) (schema.Output, error) {
	if err := input.Validate(); err != nil {
		return schema.Output{}, fmt.Errorf("rota: invalid request: %w", err)
	}

	response, err := rota.Solve(ctx, input, rota.NewCPSATEngine())
	if err != nil {
		return schema.Output{}, err
	}

	if response.Diagnostics.Infeasible {
		fmt.Fprintln(os.Stderr, "rota: solve returned infeasible")
	}
	for _, note := range response.Diagnostics.Notes {
		fmt.Fprintln(os.Stderr, "rota: "+note)
	}

	stats := statistics.NewStatistics()
	result := statistics.Result{}
	runStats := statistics.Run{}
	duration := float64(response.Metrics.SolveMs) / 1000.0
	runStats.Duration = &duration
	result.Duration = &duration
	value := statistics.Float64(float64(response.Diagnostics.Summary.TotalUnmet))
	result.Value = &value
	result.Custom = map[string]any{
		"solutionId":             response.SolutionID,
		"solveMs":                response.Metrics.SolveMs,
		"totalAssigned":          response.Diagnostics.Summary.TotalAssigned,
		"totalUnmet":             response.Diagnostics.Summary.TotalUnmet,
		"fairnessNightStd":       response.Metrics.FairnessNightStd,
		"preferenceSatisfaction": response.Metrics.PreferenceSatisfaction,
	}
	stats.Result = &result
	stats.Run = &runStats

	output := schema.Output{}
	output.Version = schema.Version{Sdk: sdk.VERSION}
	output.Options = opts
	output.Solutions = append(output.Solutions, response)
	output.Statistics = stats

	return output, nil
}
