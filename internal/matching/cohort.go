package matching

import (
	"errors"
	"fmt"
)

// MaxCohortSize bounds how many benchmark employees one run may reference.
const MaxCohortSize = 3

var (
	ErrEmptyCohort     = errors.New("cohort is empty")
	ErrCohortTooLarge  = fmt.Errorf("cohort exceeds %d members", MaxCohortSize)
	ErrDuplicateMember = errors.New("cohort contains duplicate employee ids")
	ErrEmptyCandidates = errors.New("candidate pool is empty")
)

// Cohort is the ordered set of benchmark employee ids whose statistics
// define the target profile. It is validated once at construction; an
// invalid cohort fails the run rather than producing a misleading result.
type Cohort []string

// NewCohort validates and returns a cohort.
func NewCohort(ids []string) (Cohort, error) {
	if len(ids) == 0 {
		return nil, ErrEmptyCohort
	}
	if len(ids) > MaxCohortSize {
		return nil, ErrCohortTooLarge
	}
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateMember, id)
		}
		seen[id] = struct{}{}
	}
	return Cohort(ids), nil
}

// Contains reports whether the employee id belongs to the cohort.
func (c Cohort) Contains(id string) bool {
	for _, member := range c {
		if member == id {
			return true
		}
	}
	return false
}
