package models

import "net/http"

// Record is one phone → address mapping. It is derived from a single
// key-value pair and never stored as an object.
type Record struct {
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// Outcome is the success variant of a directory operation. Failures travel on
// the error channel; successes never do.
type Outcome int

const (
	OutcomeFound Outcome = iota + 1
	OutcomeCreated
	OutcomeUpdated
	OutcomeDeleted
)

// Status returns the HTTP status the outcome is reported with.
func (o Outcome) Status() int {
	switch o {
	case OutcomeCreated:
		return http.StatusCreated
	case OutcomeDeleted:
		return http.StatusNoContent
	default:
		return http.StatusOK
	}
}

func (o Outcome) String() string {
	switch o {
	case OutcomeFound:
		return "found"
	case OutcomeCreated:
		return "created"
	case OutcomeUpdated:
		return "updated"
	case OutcomeDeleted:
		return "deleted"
	default:
		return "unknown"
	}
}

// Result is returned by every successful directory operation. Record is nil
// for deletions.
type Result struct {
	Outcome Outcome
	Record  *Record
}
