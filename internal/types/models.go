package types

import "time"

// PersonalRecord is one row of the customer master table. AccountID is not
// guaranteed unique across rows.
type PersonalRecord struct {
	AccountID    string `json:"account_id"`
	Jurisdiction string `json:"jurisdiction"`
}

// TicketRecord is one support ticket. Nullable columns are pointers so every
// consumer has to handle the missing case explicitly.
type TicketRecord struct {
	AccountID     string     `json:"account_id"`
	CreatedAt     *time.Time `json:"created_at,omitempty"`
	SolvedAt      *time.Time `json:"solved_at,omitempty"`
	Status        string     `json:"status,omitempty"`
	ContactReason *string    `json:"contact_reason,omitempty"`
}

// ComplaintRecord is one complaint filed by a customer.
type ComplaintRecord struct {
	AccountID string     `json:"account_id"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
	SolvedAt  *time.Time `json:"solved_at,omitempty"`
}

// Tables holds the three loaded datasets for one analysis run. Row order is
// file order; the pipeline treats them as read-only.
type Tables struct {
	Personal   []PersonalRecord  `json:"personal"`
	Tickets    []TicketRecord    `json:"tickets"`
	Complaints []ComplaintRecord `json:"complaints"`
}

// AnalysisResult is the answer to one of the three fixed questions. A nil
// MetricValue means the metric was not computable from the supplied data.
type AnalysisResult struct {
	MetricValue    *float64 `json:"metric_value"`
	SelectedOption string   `json:"selected_option"`
	Explanation    string   `json:"explanation"`
}

// Results keys the three answers the way the display surface expects them.
type Results struct {
	Q1 AnalysisResult `json:"Q1"`
	Q2 AnalysisResult `json:"Q2"`
	Q3 AnalysisResult `json:"Q3"`
}
