package dataset

import (
	"io"
	"strings"
	"time"

	"service-insights-go/internal/progress"
	"service-insights-go/internal/types"
)

// Column names as they appear in the exported case-study files.
const (
	ColAccountID     = "AUTH_ACCOUNT_ID"
	ColJurisdiction  = "JURISDICTION"
	ColCreatedAt     = "CREATED_AT"
	ColSolvedAt      = "SOLVED_AT"
	ColStatus        = "STATUS"
	ColContactReason = "CONTACT_REASON_VALUE"
)

var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func parseTimestamp(v Value, ok bool) *time.Time {
	if !ok {
		return nil
	}
	raw := strings.TrimSpace(v.Raw)
	if raw == "" {
		return nil
	}
	for _, layout := range timestampLayouts {
		if ts, err := time.Parse(layout, raw); err == nil {
			return &ts
		}
	}
	return nil
}

func stringField(row Row, col string) string {
	return row[col].Raw
}

func optionalString(row Row, col string) *string {
	v, ok := row[col]
	if !ok || strings.TrimSpace(v.Raw) == "" {
		return nil
	}
	s := v.Raw
	return &s
}

// DecodePersonal maps a loaded table onto customer records. Absent columns
// decode to zero values; presence is not enforced here.
func DecodePersonal(t Table) []types.PersonalRecord {
	out := make([]types.PersonalRecord, 0, t.Len())
	for _, row := range t.Rows {
		out = append(out, types.PersonalRecord{
			AccountID:    stringField(row, ColAccountID),
			Jurisdiction: stringField(row, ColJurisdiction),
		})
	}
	return out
}

// DecodeTickets maps a loaded table onto ticket records. Unparsable or
// missing timestamps decode to nil.
func DecodeTickets(t Table) []types.TicketRecord {
	out := make([]types.TicketRecord, 0, t.Len())
	for _, row := range t.Rows {
		created, createdOK := row[ColCreatedAt]
		solved, solvedOK := row[ColSolvedAt]
		out = append(out, types.TicketRecord{
			AccountID:     stringField(row, ColAccountID),
			CreatedAt:     parseTimestamp(created, createdOK),
			SolvedAt:      parseTimestamp(solved, solvedOK),
			Status:        stringField(row, ColStatus),
			ContactReason: optionalString(row, ColContactReason),
		})
	}
	return out
}

// DecodeComplaints maps a loaded table onto complaint records.
func DecodeComplaints(t Table) []types.ComplaintRecord {
	out := make([]types.ComplaintRecord, 0, t.Len())
	for _, row := range t.Rows {
		created, createdOK := row[ColCreatedAt]
		solved, solvedOK := row[ColSolvedAt]
		out = append(out, types.ComplaintRecord{
			AccountID: stringField(row, ColAccountID),
			CreatedAt: parseTimestamp(created, createdOK),
			SolvedAt:  parseTimestamp(solved, solvedOK),
		})
	}
	return out
}

// Input is one named upload destined for the loader.
type Input struct {
	Name   string
	Reader io.Reader
}

// LoadTables decodes the three required tables, failing fast on the first
// missing or malformed input. Each successful load appends a "parsed N
// records" event to the run log.
func LoadTables(personal, tickets, complaints *Input, plog *progress.Log) (types.Tables, error) {
	var tables types.Tables

	load := func(in *Input, table string) (Table, error) {
		if in == nil || in.Reader == nil {
			return Table{}, &MissingInputError{Table: table}
		}
		name := in.Name
		if name == "" {
			name = table
		}
		t, err := ReadTable(in.Reader, name)
		if err != nil {
			return Table{}, err
		}
		plog.Appendf("parsed %d %s records", t.Len(), table)
		return t, nil
	}

	pt, err := load(personal, "personal")
	if err != nil {
		return types.Tables{}, err
	}
	tt, err := load(tickets, "tickets")
	if err != nil {
		return types.Tables{}, err
	}
	ct, err := load(complaints, "complaints")
	if err != nil {
		return types.Tables{}, err
	}

	tables.Personal = DecodePersonal(pt)
	tables.Tickets = DecodeTickets(tt)
	tables.Complaints = DecodeComplaints(ct)
	return tables, nil
}
