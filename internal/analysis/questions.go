package analysis

import (
	"time"

	"service-insights-go/internal/cohort"
	"service-insights-go/internal/progress"
	"service-insights-go/internal/types"
)

const (
	germanJurisdiction = "DE"
	frenchJurisdiction = "FR"
	closedStatus       = "closed"
	interestReason     = "interest"
	transferReason     = "transfer"
)

// augustTarget pins Q1 to calendar August of 2024 exactly, not any August.
var augustTarget = struct {
	month time.Month
	year  int
}{time.August, 2024}

// MeanGermanAugustTTS computes the mean time-to-solution, in days, of closed
// tickets opened by German customers during August 2024. Returns a
// DegenerateAggregateError when no ticket qualifies.
func MeanGermanAugustTTS(tables types.Tables, plog *progress.Log) (float64, error) {
	german := cohort.Jurisdiction(tables.Personal, germanJurisdiction)
	plog.Appendf("Q1: German cohort has %d accounts", len(german))

	var durations []float64
	selected := 0
	for _, t := range tables.Tickets {
		if t.CreatedAt == nil {
			continue
		}
		if t.CreatedAt.Month() != augustTarget.month || t.CreatedAt.Year() != augustTarget.year {
			continue
		}
		if t.Status != closedStatus {
			continue
		}
		if !german.Contains(t.AccountID) {
			continue
		}
		selected++
		if d := DurationDays(t.CreatedAt, t.SolvedAt); d != nil {
			durations = append(durations, *d)
		}
	}
	plog.Appendf("Q1: selected %d closed August-2024 tickets, %d with complete timestamps", selected, len(durations))

	if len(durations) == 0 {
		return 0, &DegenerateAggregateError{Question: "Q1", Detail: "no closed German tickets in August 2024 with complete timestamps"}
	}
	sum := 0.0
	for _, d := range durations {
		sum += d
	}
	mean := sum / float64(len(durations))
	plog.Appendf("Q1: mean time to solution %.3f days - success", mean)
	return mean, nil
}

// InterestComplaintSLA computes the percentage of complaints filed by
// customers with an interest-related ticket that were resolved within slaDays.
// Returns a DegenerateAggregateError when no complaint qualifies (an
// undefined 0/0 ratio, never 0 or 100).
func InterestComplaintSLA(tables types.Tables, slaDays float64, plog *progress.Log) (float64, error) {
	interested := cohort.ContactReason(tables.Tickets, interestReason)
	plog.Appendf("Q2: interest-reason cohort has %d accounts", len(interested))

	total := 0
	within := 0
	for _, c := range tables.Complaints {
		if !interested.Contains(c.AccountID) {
			continue
		}
		total++
		if d := DurationDays(c.CreatedAt, c.SolvedAt); d != nil && *d <= slaDays {
			within++
		}
	}
	plog.Appendf("Q2: selected %d complaints, %d within the %.0f-day SLA", total, within, slaDays)

	if total == 0 {
		return 0, &DegenerateAggregateError{Question: "Q2", Detail: "no complaints from customers with interest-related tickets"}
	}
	pct := float64(within) / float64(total) * 100
	plog.Appendf("Q2: SLA compliance %.1f%% - success", pct)
	return pct, nil
}

// FrenchTransferComplaints counts the distinct French customers who both
// filed a transfer-related ticket and raised a complaint. The join is on
// account ID only; complaint timing is not correlated with the ticket.
func FrenchTransferComplaints(tables types.Tables, plog *progress.Log) float64 {
	french := cohort.Jurisdiction(tables.Personal, frenchJurisdiction)
	plog.Appendf("Q3: French cohort has %d accounts", len(french))

	transfer := cohort.ContactReason(tables.Tickets, transferReason)
	frenchTransfer := cohort.Set{}
	for id := range transfer {
		if french.Contains(id) {
			frenchTransfer[id] = struct{}{}
		}
	}
	plog.Appendf("Q3: %d French accounts with transfer-related tickets", len(frenchTransfer))

	qualifying := cohort.Set{}
	for _, c := range tables.Complaints {
		if frenchTransfer.Contains(c.AccountID) {
			qualifying[c.AccountID] = struct{}{}
		}
	}
	plog.Appendf("Q3: %d distinct complaining accounts - success", len(qualifying))
	return float64(len(qualifying))
}
