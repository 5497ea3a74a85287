package dataset

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"service-insights-go/internal/types"
)

func strPtr(s string) *string { return &s }

func TestSummarize(t *testing.T) {
	tables := types.Tables{
		Personal: []types.PersonalRecord{
			{AccountID: "A1", Jurisdiction: "DE"},
			{AccountID: "A2", Jurisdiction: "FR"},
			{AccountID: "A3", Jurisdiction: "DE"},
			{AccountID: "A4"},
		},
		Tickets: []types.TicketRecord{
			{AccountID: "A1", ContactReason: strPtr("interest rate question")},
			{AccountID: "A2", ContactReason: strPtr("Transfer failed")},
			{AccountID: "A3", ContactReason: strPtr("transfer to savings")},
			{AccountID: "A4", ContactReason: nil},
		},
		Complaints: []types.ComplaintRecord{{AccountID: "A1"}},
	}

	s := Summarize(tables)
	assert.Equal(t, 4, s.TotalPersonal)
	assert.Equal(t, 4, s.TotalTickets)
	assert.Equal(t, 1, s.TotalComplaints)
	assert.Equal(t, map[string]int{"DE": 2, "FR": 1}, s.ByJurisdiction, "blank jurisdictions are not counted")
	assert.Equal(t, []string{"transfer", "interest"}, s.TopContactReasons)
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(types.Tables{})
	assert.Zero(t, s.TotalPersonal)
	assert.Empty(t, s.TopContactReasons)
	assert.Empty(t, s.ByJurisdiction)
}
