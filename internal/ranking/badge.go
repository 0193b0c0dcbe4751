package ranking

// Badge is a coarse label for a score.
type Badge string

const (
	BadgeExcellent Badge = "Excellent Match"
	BadgeGood      Badge = "Good Match"
	BadgePartial   Badge = "Partial Match"

	ExcellentScore = 80
	GoodScore      = 60
)

func BadgeFor(score int) Badge {
	switch {
	case score >= ExcellentScore:
		return BadgeExcellent
	case score >= GoodScore:
		return BadgeGood
	default:
		return BadgePartial
	}
}
