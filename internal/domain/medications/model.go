package medications

import "time"

// Medication belongs to exactly one pet. A nil EndDate means the
// medication is ongoing; once set, EndDate is never before StartDate.
type Medication struct {
	ID               int64
	PetID            int64
	Name             string
	DosageAmount     float64
	DosageUnit       string
	Frequency        string
	TimeToAdminister string // normalized "HH:MM"
	StartDate        time.Time
	EndDate          *time.Time
}
