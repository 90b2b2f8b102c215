package vetvisits

import "time"

// VetVisit records one clinic visit for a pet. NextVisitDate is nil when
// no follow-up is booked.
type VetVisit struct {
	ID             int64
	PetID          int64
	VisitDate      time.Time
	NextVisitDate  *time.Time
	VetName        string
	ReasonForVisit string
	Notes          string
}
