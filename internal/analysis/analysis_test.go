package analysis

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"service-insights-go/internal/progress"
	"service-insights-go/internal/types"
)

const slaDays = 14.0

func strPtr(s string) *string { return &s }

func ts(s string) *time.Time {
	parsed, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return &parsed
}

// canonicalTables is the fixture from the case study: one German customer
// with a single closed August ticket, one French customer, no complaints.
func canonicalTables() types.Tables {
	return types.Tables{
		Personal: []types.PersonalRecord{
			{AccountID: "A1", Jurisdiction: "DE"},
			{AccountID: "A2", Jurisdiction: "FR"},
		},
		Tickets: []types.TicketRecord{
			{
				AccountID:     "A1",
				CreatedAt:     ts("2024-08-01T00:00:00Z"),
				SolvedAt:      ts("2024-08-04T00:00:00Z"),
				Status:        "closed",
				ContactReason: strPtr("interest rate question"),
			},
		},
		Complaints: []types.ComplaintRecord{},
	}
}

func TestRunCanonicalFixture(t *testing.T) {
	plog := &progress.Log{}
	res := Run(canonicalTables(), slaDays, plog)

	require.NotNil(t, res.Q1.MetricValue)
	assert.Equal(t, 3.0, *res.Q1.MetricValue)
	assert.Equal(t, "b", res.Q1.SelectedOption)

	assert.Nil(t, res.Q2.MetricValue, "zero interest complaints is an undefined ratio")
	assert.Equal(t, "e", res.Q2.SelectedOption)
	assert.Contains(t, res.Q2.Explanation, "Not computable")

	require.NotNil(t, res.Q3.MetricValue)
	assert.Equal(t, 0.0, *res.Q3.MetricValue)

	assert.NotEmpty(t, plog.Events())
}

func TestRunIsIdempotent(t *testing.T) {
	tables := canonicalTables()
	first := Run(tables, slaDays, &progress.Log{})
	second := Run(tables, slaDays, &progress.Log{})

	require.NotNil(t, first.Q1.MetricValue)
	require.NotNil(t, second.Q1.MetricValue)
	assert.Equal(t, *first.Q1.MetricValue, *second.Q1.MetricValue)
	assert.Equal(t, first.Q1.SelectedOption, second.Q1.SelectedOption)
	assert.Equal(t, first.Q2, second.Q2)
	assert.Equal(t, *first.Q3.MetricValue, *second.Q3.MetricValue)
}

func TestQ1ExcludesSeptemberTickets(t *testing.T) {
	tables := canonicalTables()
	tables.Tickets = append(tables.Tickets, types.TicketRecord{
		AccountID: "A1",
		CreatedAt: ts("2024-09-01T00:00:00Z"),
		SolvedAt:  ts("2024-09-30T00:00:00Z"),
		Status:    "closed",
	})

	got, err := MeanGermanAugustTTS(tables, &progress.Log{})
	require.NoError(t, err)
	assert.Equal(t, 3.0, got, "September ticket must not move the mean")
}

func TestQ1ExcludesAugustOfOtherYears(t *testing.T) {
	tables := canonicalTables()
	tables.Tickets[0].CreatedAt = ts("2023-08-01T00:00:00Z")
	tables.Tickets[0].SolvedAt = ts("2023-08-04T00:00:00Z")

	_, err := MeanGermanAugustTTS(tables, &progress.Log{})
	var degen *DegenerateAggregateError
	require.ErrorAs(t, err, &degen)
	assert.Equal(t, "Q1", degen.Question)
}

func TestQ1ExcludesOpenTickets(t *testing.T) {
	tables := canonicalTables()
	tables.Tickets[0].Status = "open"

	_, err := MeanGermanAugustTTS(tables, &progress.Log{})
	var degen *DegenerateAggregateError
	require.ErrorAs(t, err, &degen)
}

func TestQ1StatusIsCaseSensitive(t *testing.T) {
	tables := canonicalTables()
	tables.Tickets[0].Status = "Closed"

	_, err := MeanGermanAugustTTS(tables, &progress.Log{})
	assert.Error(t, err)
}

func TestQ1DiscardsIncompleteTimestampPairs(t *testing.T) {
	tables := canonicalTables()
	tables.Tickets = append(tables.Tickets, types.TicketRecord{
		AccountID: "A1",
		CreatedAt: ts("2024-08-10T00:00:00Z"),
		SolvedAt:  nil,
		Status:    "closed",
	})

	got, err := MeanGermanAugustTTS(tables, &progress.Log{})
	require.NoError(t, err)
	assert.Equal(t, 3.0, got, "unsolved ticket contributes no duration")
}

func TestQ1EmptySelectionSignalsDegenerate(t *testing.T) {
	tables := canonicalTables()
	tables.Tickets = nil

	_, err := MeanGermanAugustTTS(tables, &progress.Log{})
	var degen *DegenerateAggregateError
	require.True(t, errors.As(err, &degen), "empty mean must be a degenerate aggregate, not 0 or NaN")
	assert.Contains(t, degen.Error(), "Q1")
}

func TestQ2CountsWithinSLA(t *testing.T) {
	tables := canonicalTables()
	tables.Complaints = []types.ComplaintRecord{
		// A1 has an interest ticket; 10 days, within the 14-day SLA
		{AccountID: "A1", CreatedAt: ts("2024-08-05T00:00:00Z"), SolvedAt: ts("2024-08-15T00:00:00Z")},
		// 20 days, outside SLA
		{AccountID: "A1", CreatedAt: ts("2024-08-05T00:00:00Z"), SolvedAt: ts("2024-08-25T00:00:00Z")},
		// A2 never mentioned interest, excluded entirely
		{AccountID: "A2", CreatedAt: ts("2024-08-05T00:00:00Z"), SolvedAt: ts("2024-08-06T00:00:00Z")},
	}

	got, err := InterestComplaintSLA(tables, slaDays, &progress.Log{})
	require.NoError(t, err)
	assert.Equal(t, 50.0, got)
}

func TestQ2MissingSolvedAtCountsAgainstSLA(t *testing.T) {
	tables := canonicalTables()
	tables.Complaints = []types.ComplaintRecord{
		{AccountID: "A1", CreatedAt: ts("2024-08-05T00:00:00Z"), SolvedAt: nil},
	}

	got, err := InterestComplaintSLA(tables, slaDays, &progress.Log{})
	require.NoError(t, err)
	assert.Equal(t, 0.0, got, "an unresolved complaint is in the total but never within SLA")
}

func TestQ2ZeroTotalSignalsDegenerate(t *testing.T) {
	tables := canonicalTables()

	_, err := InterestComplaintSLA(tables, slaDays, &progress.Log{})
	var degen *DegenerateAggregateError
	require.ErrorAs(t, err, &degen)
	assert.Equal(t, "Q2", degen.Question)
}

func TestQ3CountsDistinctFrenchTransferComplainers(t *testing.T) {
	tables := types.Tables{
		Personal: []types.PersonalRecord{
			{AccountID: "F1", Jurisdiction: "FR"},
			{AccountID: "F2", Jurisdiction: "FR"},
			{AccountID: "D1", Jurisdiction: "DE"},
		},
		Tickets: []types.TicketRecord{
			{AccountID: "F1", ContactReason: strPtr("SEPA Transfer delayed")},
			{AccountID: "D1", ContactReason: strPtr("transfer missing")}, // not French
			{AccountID: "F2", ContactReason: strPtr("card blocked")},    // French, no transfer
		},
		Complaints: []types.ComplaintRecord{
			{AccountID: "F1"},
			{AccountID: "F1"}, // second complaint, same account, still one
			{AccountID: "F2"}, // owner never filed a transfer ticket
			{AccountID: "D1"},
		},
	}

	got := FrenchTransferComplaints(tables, &progress.Log{})
	assert.Equal(t, 1.0, got)
}

func TestQ3NoTimingCorrelationRequired(t *testing.T) {
	// The complaint predates the transfer ticket; the join is on account only.
	tables := types.Tables{
		Personal: []types.PersonalRecord{{AccountID: "F1", Jurisdiction: "FR"}},
		Tickets: []types.TicketRecord{
			{AccountID: "F1", CreatedAt: ts("2024-09-01T00:00:00Z"), ContactReason: strPtr("transfer failed")},
		},
		Complaints: []types.ComplaintRecord{
			{AccountID: "F1", CreatedAt: ts("2024-01-01T00:00:00Z")},
		},
	}

	got := FrenchTransferComplaints(tables, &progress.Log{})
	assert.Equal(t, 1.0, got)
}

func TestSelectOption(t *testing.T) {
	tests := []struct {
		name     string
		question string
		metric   float64
		want     string
	}{
		{"canonical q1 answer", "Q1", 3.360, "b"},
		{"fixture q1 mean snaps to b", "Q1", 3.0, "b"},
		{"low q1 mean snaps to a", "Q1", 2.0, "a"},
		{"q2 midrange", "Q2", 70.1, "c"},
		{"q3 zero count", "Q3", 0, "a"},
		{"unknown question", "Q9", 1, "e"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, selectOption(tt.question, tt.metric))
		})
	}
}

func TestRunEmitsStepEvents(t *testing.T) {
	plog := &progress.Log{}
	Run(canonicalTables(), slaDays, plog)

	var messages []string
	for _, e := range plog.Events() {
		messages = append(messages, e.Message)
	}
	joined := ""
	for _, m := range messages {
		joined += m + "\n"
	}
	assert.Contains(t, joined, "Q1: German cohort has 1 accounts")
	assert.Contains(t, joined, "Q2: interest-reason cohort has 1 accounts")
	assert.Contains(t, joined, "Q3: French cohort has 1 accounts")
}
