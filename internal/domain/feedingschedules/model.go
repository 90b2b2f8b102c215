package feedingschedules

type QuantityUnit string

const (
	UnitCups   QuantityUnit = "CUPS"
	UnitGrams  QuantityUnit = "GRAMS"
	UnitOunces QuantityUnit = "OUNCES"
	UnitCans   QuantityUnit = "CANS"
)

func (u QuantityUnit) Valid() bool {
	switch u {
	case UnitCups, UnitGrams, UnitOunces, UnitCans:
		return true
	}
	return false
}

// FeedingSchedule is one recurring feeding slot for a pet.
type FeedingSchedule struct {
	ID           int64
	PetID        int64
	Time         string // normalized "HH:MM"
	FoodType     string
	Quantity     float64
	QuantityUnit QuantityUnit
}
