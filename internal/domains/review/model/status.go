package model

type Status string

const (
	StatusPending Status = "PENDING"
	StatusPass    Status = "PASS"
	StatusFail    Status = "FAIL"
)

var statusLabels = map[Status]string{
	StatusPending: "Pending",
	StatusPass:    "Passed",
	StatusFail:    "Failed",
}

func (s Status) IsValid() bool {
	_, ok := statusLabels[s]
	return ok
}

func (s Status) Label() string {
	return statusLabels[s]
}

// Aggregate review states of a content
const (
	AggregateNoItems   = "No review items"
	AggregateCompleted = "Completed"
	AggregatePending   = "Pending"
)

// Counts is the per-content tally the aggregate is derived from
type Counts struct {
	Total  int
	Passed int
}

// Aggregate derives the review status of a content from its item counts.
// A failed item keeps the content Pending.
func Aggregate(c Counts) string {
	switch {
	case c.Total == 0:
		return AggregateNoItems
	case c.Passed == c.Total:
		return AggregateCompleted
	default:
		return AggregatePending
	}
}
