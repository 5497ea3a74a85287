package analysis

import "fmt"

// DegenerateAggregateError reports a mean or ratio over zero qualifying rows.
// It is local to one question: the result carries it in its explanation and
// the other questions still run.
type DegenerateAggregateError struct {
	Question string
	Detail   string
}

func (e *DegenerateAggregateError) Error() string {
	return fmt.Sprintf("%s: aggregate over zero qualifying rows (%s)", e.Question, e.Detail)
}
