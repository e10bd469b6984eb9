// Package scoring combines speech metrics, posture analysis and topic
// keywords into one bounded performance score with per-category
// breakdowns and recommendations.
package scoring

import (
	"math"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/floats/scalar"

	"github.com/omkar-jagtap8443/Talk-genius/outcome"
	"github.com/omkar-jagtap8443/Talk-genius/posture"
	"github.com/omkar-jagtap8443/Talk-genius/speech"
)

// Placeholders for signals that are not measured yet.
const (
	postureTrendPlaceholder    = 80
	volumeStabilityPlaceholder = 80
)

const weakThreshold = 70

var advice = map[Category]string{
	CategoryPosture:    "Practice maintaining better posture. Sit up straight and keep shoulders relaxed.",
	CategoryEyeContact: "Improve eye contact by looking directly at the camera more frequently.",
	CategorySpeech:     "Work on speech clarity. Reduce filler words and practice pacing.",
	CategoryContent:    "Focus on staying relevant to your topic. Use more topic-specific keywords.",
	CategoryDelivery:   "Vary your speaking pace and volume to make your delivery more engaging.",
}

const positiveRecommendation = "Great overall performance! Continue practicing to maintain these skills."

type Engine struct {
	w   Weights
	log logrus.FieldLogger
}

func NewEngine(w Weights, log logrus.FieldLogger) *Engine {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Engine{w: w, log: log}
}

// Score uses DefaultWeights.
func Score(p *posture.Analysis, s *speech.Metrics, keywords []string) OverallScore {
	return NewEngine(DefaultWeights(), nil).Score(p, s, keywords)
}

// Score never fails; a nil analysis or nil metrics scores that side as 0.
func (e *Engine) Score(p *posture.Analysis, s *speech.Metrics, keywords []string) OverallScore {
	return e.TryScore(p, s, keywords).Value
}

func (e *Engine) TryScore(p *posture.Analysis, s *speech.Metrics, keywords []string) outcome.Result[OverallScore] {
	return outcome.Guard(e.log, "scoring", Empty, func() (OverallScore, error) {
		return e.score(p, s, keywords)
	})
}

func (e *Engine) score(p *posture.Analysis, s *speech.Metrics, keywords []string) (OverallScore, error) {
	cats := map[Category]CategoryScore{
		CategoryPosture:    postureScore(p),
		CategoryEyeContact: eyeContactScore(p),
		CategorySpeech:     e.speechScore(s),
		CategoryContent:    contentScore(s, keywords),
		CategoryDelivery:   deliveryScore(s),
	}

	var weighted float64
	for _, c := range Categories {
		cs := cats[c]
		if !finite(cs.Total) {
			return OverallScore{}, outcome.Failed("%s total is %v", c, cs.Total)
		}
		weighted += cs.Total * e.w.Categories.of(c)
	}
	total := clamp(weighted)
	if !finite(total) {
		return OverallScore{}, outcome.Failed("total is %v", total)
	}

	bd := make(map[Category]float64, len(cats))
	for c, cs := range cats {
		bd[c] = scalar.Round(cs.Total, 1)
	}
	return OverallScore{
		Total:            scalar.Round(total, 1),
		PerformanceLevel: PerformanceLevel(total),
		CategoryScores:   cats,
		Breakdown:        bd,
		Recommendations:  recommendations(cats),
	}, nil
}

func postureScore(p *posture.Analysis) CategoryScore {
	if p == nil {
		return CategoryScore{Components: map[string]float64{}}
	}
	base := p.Summary.AveragePostureScore
	consistency := math.Min(100, p.Summary.PostureBreakdown.GoodPercentage*1.2)
	return CategoryScore{
		Total: clamp(base*0.7 + consistency*0.2 + postureTrendPlaceholder*0.1),
		Components: map[string]float64{
			"base_score":  base,
			"consistency": consistency,
			"trend":       postureTrendPlaceholder,
		},
	}
}

func eyeContactScore(p *posture.Analysis) CategoryScore {
	if p == nil {
		return CategoryScore{Components: map[string]float64{}}
	}
	base := p.Summary.AverageEyeContactScore
	consistency := math.Min(100, p.Summary.EyeContactBreakdown.GoodPercentage*1.2)
	return CategoryScore{
		Total: clamp(base*0.8 + consistency*0.2),
		Components: map[string]float64{
			"base_score":  base,
			"consistency": consistency,
		},
	}
}

func (e *Engine) speechScore(s *speech.Metrics) CategoryScore {
	if s == nil {
		return CategoryScore{Components: map[string]float64{}}
	}
	w := e.w.Speech
	comp := map[string]float64{
		"wpm":          WPMScore(s.WordsPerMinute),
		"filler_words": FillerScore(s.FillerRate()),
		"pauses":       PauseScore(s.PauseRatio(), s.DurationSeconds),
		"repetition":   RepetitionScore(s.Repetition.Total()),
		"grammar":      GrammarScore(s.GrammarErrors.Count, s.WordCount),
	}
	total := 0.0
	if sum := w.sum(); sum > 0 {
		total = (comp["wpm"]*w.WPM +
			comp["filler_words"]*w.Filler +
			comp["pauses"]*w.Pauses +
			comp["repetition"]*w.Repetition +
			comp["grammar"]*w.Grammar) / sum
	}
	return CategoryScore{Total: clamp(total), Components: comp}
}

func contentScore(s *speech.Metrics, keywords []string) CategoryScore {
	if s == nil {
		return CategoryScore{Components: map[string]float64{}}
	}
	transcript := strings.ToLower(s.Transcript)
	relevance := RelevanceScore(transcript, keywords)
	structure := StructureScore(transcript, s.WordCount)
	vocabulary := VocabularyScore(transcript, s.WordCount)
	return CategoryScore{
		Total: clamp(relevance*0.6 + structure*0.2 + vocabulary*0.2),
		Components: map[string]float64{
			"relevance":  relevance,
			"structure":  structure,
			"vocabulary": vocabulary,
		},
	}
}

func deliveryScore(s *speech.Metrics) CategoryScore {
	if s == nil {
		return CategoryScore{Components: map[string]float64{}}
	}
	pace := math.Max(0, 100-s.PaceAnalysis.Variation*10)
	return CategoryScore{
		Total: clamp(pace*0.6 + volumeStabilityPlaceholder*0.4),
		Components: map[string]float64{
			"pace_consistency": pace,
			"volume_stability": volumeStabilityPlaceholder,
		},
	}
}

func PerformanceLevel(total float64) string {
	switch {
	case total >= 90:
		return LevelExcellent
	case total >= 80:
		return LevelVeryGood
	case total >= 70:
		return LevelGood
	case total >= 60:
		return LevelSatisfactory
	case total >= 50:
		return LevelNeedsImprovement
	default:
		return LevelNeedsPractice
	}
}

func recommendations(cats map[Category]CategoryScore) []string {
	var weak []Category
	strong := false
	for _, c := range Categories {
		t := cats[c].Total
		if t < weakThreshold {
			weak = append(weak, c)
		}
		if t >= 80 {
			strong = true
		}
	}
	sort.SliceStable(weak, func(i, j int) bool { return cats[weak[i]].Total < cats[weak[j]].Total })

	out := []string{}
	for _, c := range weak {
		if len(out) == 3 {
			break
		}
		out = append(out, advice[c])
	}
	if len(weak) == 0 && strong {
		out = append(out, positiveRecommendation)
	}
	return out
}

func clamp(v float64) float64 {
	if math.IsNaN(v) {
		return v
	}
	return math.Max(0, math.Min(100, v))
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }
