package dataset

import (
	"sort"
	"strings"

	"service-insights-go/internal/types"
)

// Summary is a compact profile of one loaded run, returned alongside the
// results and logged at load time.
type Summary struct {
	TotalPersonal     int            `json:"total_personal"`
	TotalTickets      int            `json:"total_tickets"`
	TotalComplaints   int            `json:"total_complaints"`
	ByJurisdiction    map[string]int `json:"by_jurisdiction"`
	TopContactReasons []string       `json:"top_contact_reasons"`
}

// reasonTokens are the contact-reason themes the case study cares about.
var reasonTokens = []string{"interest", "transfer", "card", "fees", "account", "login", "payment"}

// Summarize profiles the loaded tables: row counts, jurisdiction
// distribution, and the most frequent contact-reason themes.
func Summarize(tables types.Tables) Summary {
	byJurisdiction := map[string]int{}
	for _, p := range tables.Personal {
		if p.Jurisdiction != "" {
			byJurisdiction[p.Jurisdiction]++
		}
	}

	reasonCounts := map[string]int{}
	for _, t := range tables.Tickets {
		if t.ContactReason == nil {
			continue
		}
		lower := strings.ToLower(*t.ContactReason)
		for _, tok := range reasonTokens {
			if strings.Contains(lower, tok) {
				reasonCounts[tok]++
			}
		}
	}

	type rc struct {
		reason string
		count  int
	}
	var ranked []rc
	for r, c := range reasonCounts {
		ranked = append(ranked, rc{r, c})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].count != ranked[j].count {
			return ranked[i].count > ranked[j].count
		}
		return ranked[i].reason < ranked[j].reason
	})
	top := []string{}
	for i := 0; i < len(ranked) && i < 3; i++ {
		top = append(top, ranked[i].reason)
	}

	return Summary{
		TotalPersonal:     len(tables.Personal),
		TotalTickets:      len(tables.Tickets),
		TotalComplaints:   len(tables.Complaints),
		ByJurisdiction:    byJurisdiction,
		TopContactReasons: top,
	}
}
