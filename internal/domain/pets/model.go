package pets

import "time"

type WeightType string

const (
	WeightKG  WeightType = "KG"
	WeightLBS WeightType = "LBS"
)

func (t WeightType) Valid() bool {
	return t == WeightKG || t == WeightLBS
}

type ActivityLevel string

const (
	ActivityLow    ActivityLevel = "LOW"
	ActivityMedium ActivityLevel = "MEDIUM"
	ActivityHigh   ActivityLevel = "HIGH"
)

func (l ActivityLevel) Valid() bool {
	return l == ActivityLow || l == ActivityMedium || l == ActivityHigh
}

// Pet belongs to exactly one owner. PhotoURL is empty until a photo upload.
type Pet struct {
	ID            int64
	OwnerID       int64
	Name          string
	Type          string
	Breed         string
	Weight        float64
	WeightType    WeightType
	DateOfBirth   time.Time
	ActivityLevel ActivityLevel
	PhotoURL      string
}

// Age is derived from DateOfBirth at read time; it is never stored.
func (p Pet) Age(today time.Time) int {
	years := today.Year() - p.DateOfBirth.Year()
	anniversary := p.DateOfBirth.AddDate(years, 0, 0)
	if anniversary.After(today) {
		years--
	}
	if years < 0 {
		return 0
	}
	return years
}
