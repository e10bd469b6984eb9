package scoring

type Category string

const (
	CategoryPosture    Category = "posture"
	CategoryEyeContact Category = "eye_contact"
	CategorySpeech     Category = "speech"
	CategoryContent    Category = "content"
	CategoryDelivery   Category = "delivery"
)

// Categories lists every category in canonical order. Ties in
// recommendation ranking fall back to this order.
var Categories = []Category{
	CategoryPosture,
	CategoryEyeContact,
	CategorySpeech,
	CategoryContent,
	CategoryDelivery,
}

type CategoryScore struct {
	Total      float64            `json:"total"`
	Components map[string]float64 `json:"components"`
}

type OverallScore struct {
	Total            float64                    `json:"total"`
	PerformanceLevel string                     `json:"performance_level"`
	CategoryScores   map[Category]CategoryScore `json:"category_scores"`
	Breakdown        map[Category]float64       `json:"breakdown"`
	Recommendations  []string                   `json:"recommendations"`
}

// Performance levels, best first.
const (
	LevelExcellent        = "Excellent"
	LevelVeryGood         = "Very Good"
	LevelGood             = "Good"
	LevelSatisfactory     = "Satisfactory"
	LevelNeedsImprovement = "Needs Improvement"
	LevelNeedsPractice    = "Needs Practice"
)

const emptyRecommendation = "Start practicing to get your first score!"

// Empty is the score reported when scoring itself failed.
func Empty() OverallScore {
	bd := make(map[Category]float64, len(Categories))
	for _, c := range Categories {
		bd[c] = 0
	}
	return OverallScore{
		PerformanceLevel: LevelNeedsPractice,
		CategoryScores:   map[Category]CategoryScore{},
		Breakdown:        bd,
		Recommendations:  []string{emptyRecommendation},
	}
}
