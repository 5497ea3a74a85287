package analysis

import (
	"errors"
	"fmt"

	"service-insights-go/internal/progress"
	"service-insights-go/internal/types"
)

// Run executes the three analyses over the loaded tables. The questions are
// independent and order-insensitive; a degenerate aggregate in one is
// reported inside that question's result and does not block the others.
// Metrics depend only on the tables, so reruns over identical input are
// idempotent.
func Run(tables types.Tables, slaDays float64, plog *progress.Log) types.Results {
	var res types.Results

	q1, err := MeanGermanAugustTTS(tables, plog)
	res.Q1 = buildResult("Q1", q1, err, plog, func(v float64) string {
		return fmt.Sprintf("Mean time to solution for German customers' closed tickets opened in August 2024: %.3f days", v)
	})

	q2, err := InterestComplaintSLA(tables, slaDays, plog)
	res.Q2 = buildResult("Q2", q2, err, plog, func(v float64) string {
		return fmt.Sprintf("%.1f%% of complaints from customers with interest-related tickets were resolved within %.0f days", v, slaDays)
	})

	q3 := FrenchTransferComplaints(tables, plog)
	res.Q3 = buildResult("Q3", q3, nil, plog, func(v float64) string {
		return fmt.Sprintf("%d French customers filed both a transfer-related ticket and a complaint", int(v))
	})

	return res
}

func buildResult(question string, metric float64, err error, plog *progress.Log, explain func(float64) string) types.AnalysisResult {
	if err != nil {
		var degen *DegenerateAggregateError
		if errors.As(err, &degen) {
			plog.Appendf("%s: error - %s", question, degen.Detail)
			return types.AnalysisResult{
				MetricValue:    nil,
				SelectedOption: notComputableOption,
				Explanation:    fmt.Sprintf("Not computable: %s", degen.Detail),
			}
		}
		plog.Appendf("%s: error - %v", question, err)
		return types.AnalysisResult{
			MetricValue:    nil,
			SelectedOption: notComputableOption,
			Explanation:    err.Error(),
		}
	}
	v := metric
	return types.AnalysisResult{
		MetricValue:    &v,
		SelectedOption: selectOption(question, v),
		Explanation:    explain(v),
	}
}
