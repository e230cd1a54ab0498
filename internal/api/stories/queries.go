package stories

import (
	"strconv"

	"gorm.io/gorm"
)

// storyListQuery applies the optional list filters and the canonical
// week/day ordering.
func storyListQuery(db *gorm.DB, ageGroup, weekNumber string) *gorm.DB {
	q := db.
		Preload("Themes").
		Preload("Illustrations").
		Preload("Series").
		Order("week_number DESC").
		Order("day_order ASC")

	if ageGroup != "" {
		q = q.Where("age_range = ?", ageGroup)
	}
	if weekNumber != "" {
		if n, err := strconv.Atoi(weekNumber); err == nil {
			q = q.Where("week_number = ?", n)
		}
	}
	return q
}
