package stories

import "strings"

// Age ranges are a fixed enumeration used to tune generation style and to
// filter stories.
var AgeRanges = []string{"0-2", "3-5", "6-8", "9-12"}

func ValidAgeRange(s string) bool {
	for _, r := range AgeRanges {
		if r == s {
			return true
		}
	}
	return false
}

// DaySelectorWeek asks the pipeline to generate one story per weekday.
const DaySelectorWeek = "week"

var dayOrders = map[string]int{
	"lundi": 1, "mardi": 2, "mercredi": 3, "jeudi": 4,
	"vendredi": 5, "samedi": 6, "dimanche": 7,

	"monday": 1, "tuesday": 2, "wednesday": 3, "thursday": 4,
	"friday": 5, "saturday": 6, "sunday": 7,
}

// DayOrder maps a weekday label to its order inside a week (1..7, Sunday=7).
// Matching is case-insensitive; the second return is false for unknown labels.
func DayOrder(label string) (int, bool) {
	n, ok := dayOrders[strings.ToLower(strings.TrimSpace(label))]
	return n, ok
}
