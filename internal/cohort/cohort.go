package cohort

import (
	"strings"

	"service-insights-go/internal/types"
)

// Set is a membership set of account IDs. Lookups are exact and
// case-sensitive.
type Set map[string]struct{}

// Contains reports whether id is a member.
func (s Set) Contains(id string) bool {
	_, ok := s[id]
	return ok
}

// Jurisdiction collects the accounts whose jurisdiction code matches exactly.
// Duplicate rows collapse to one membership.
func Jurisdiction(personal []types.PersonalRecord, code string) Set {
	out := Set{}
	for _, p := range personal {
		if p.Jurisdiction == code {
			out[p.AccountID] = struct{}{}
		}
	}
	return out
}

// ContactReason collects the accounts of tickets whose contact reason
// contains substr, case-insensitively. Tickets without a reason never match.
func ContactReason(tickets []types.TicketRecord, substr string) Set {
	needle := strings.ToLower(substr)
	out := Set{}
	for _, t := range tickets {
		if t.ContactReason == nil {
			continue
		}
		if strings.Contains(strings.ToLower(*t.ContactReason), needle) {
			out[t.AccountID] = struct{}{}
		}
	}
	return out
}
