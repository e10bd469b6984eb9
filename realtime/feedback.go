package realtime

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// Suggestions shown in the live UI.
const (
	msgPosturePoor = "Sit up straight - align your shoulders with your hips"
	msgEyePoor     = "Look directly at the camera for better engagement"
	msgTooSlow     = "Speak a bit faster to maintain audience interest"
	msgTooFast     = "Slow down slightly for better clarity"
	msgFillerHigh  = "Practice pausing instead of using filler words"
	msgFillerMed   = "Watch for occasional filler words like 'um' or 'like'"
	msgPositive    = "Great job! Your delivery is confident and clear"
	msgEncourage   = "Keep practicing and you'll improve!"
	msgStart       = "Start speaking to get real-time feedback..."
)

const maxSuggestions = 3

// trend fits a least-squares line through the values; the slope picks the
// direction.
func trend(values []float64) Trend {
	if len(values) < 2 {
		return TrendStable
	}
	xs := make([]float64, len(values))
	for i := range xs {
		xs[i] = float64(i)
	}
	_, slope := stat.LinearRegression(xs, values, nil, false)
	switch {
	case math.IsNaN(slope):
		return TrendStable
	case slope > 1:
		return TrendImproving
	case slope < -1:
		return TrendDeclining
	default:
		return TrendStable
	}
}

func (t Thresholds) postureStatus(score float64) string {
	switch {
	case score <= 0:
		return StatusUnknown
	case score >= t.PostureGood:
		return StatusGood
	case score >= t.PostureOkay:
		return StatusOkay
	default:
		return StatusPoor
	}
}

func (t Thresholds) eyeContactStatus(score float64) string {
	switch {
	case score <= 0:
		return StatusUnknown
	case score >= t.EyeContactGood:
		return StatusGood
	case score >= t.EyeContactModerate:
		return StatusModerate
	default:
		return StatusPoor
	}
}

func (t Thresholds) paceStatus(wpm float64) string {
	switch {
	case wpm < t.PaceTooSlow:
		return PaceTooSlow
	case wpm < t.PaceIdealMin:
		return PaceSlightlySlow
	case wpm <= t.PaceIdealMax:
		return PaceIdeal
	case wpm <= t.PaceTooFast:
		return PaceSlightlyFast
	default:
		return PaceTooFast
	}
}

func (t Thresholds) fillerStatus(rate int) string {
	switch {
	case float64(rate) <= t.FillerLow:
		return FillerLow
	case float64(rate) <= t.FillerMedium:
		return FillerMedium
	default:
		return FillerHigh
	}
}

func (t Thresholds) postureMessage(score float64, tr Trend) string {
	switch {
	case score <= 0:
		return "Analyzing posture..."
	case score >= t.PostureGood:
		return "Great posture! You're projecting confidence."
	case score >= t.PostureOkay && tr == TrendImproving:
		return "Posture is improving. Keep your shoulders back."
	case score >= t.PostureOkay:
		return "Good posture. Try to sit up a bit straighter."
	default:
		return "Adjust your posture. Sit up straight and align your shoulders."
	}
}

func (t Thresholds) eyeContactMessage(score float64) string {
	switch {
	case score <= 0:
		return "Analyzing eye contact..."
	case score >= t.EyeContactGood:
		return "Excellent eye contact with the audience."
	case score >= t.EyeContactModerate:
		return "Good eye contact. Try to look directly at the camera more."
	default:
		return "Focus on looking at the camera to engage your audience."
	}
}

func (t Thresholds) paceMessage(wpm float64) string {
	switch {
	case wpm >= t.PaceIdealMin && wpm <= t.PaceIdealMax:
		return "Perfect speaking pace - clear and engaging."
	case wpm < t.PaceTooSlow:
		return "Your pace is slow. Try to speak a bit faster."
	case wpm > t.PaceTooFast:
		return "You're speaking quickly. Slow down for better clarity."
	default:
		return "Good speaking pace. Maintain this rhythm."
	}
}

func (t Thresholds) fillerMessage(rate int) string {
	switch {
	case float64(rate) <= t.FillerLow:
		return "Excellent control of filler words."
	case float64(rate) <= t.FillerMedium:
		return "Good speech clarity. Watch for occasional filler words."
	default:
		return "Try pausing instead of using filler words like 'um' or 'like'."
	}
}

// signals is the state one tick is scored on.
type signals struct {
	posture    float64 // latest positive posture sample, 0 if none yet
	eyeContact float64
	wpm        float64
	fillerRate int
	hasSpeech  bool
}

// incrementalScore averages whatever is available. Pace and filler are
// always counted; with no posture or eye contact yet the score is neutral.
func (t Thresholds) incrementalScore(s signals) int {
	if s.posture <= 0 && s.eyeContact <= 0 {
		return 50
	}
	var pace float64
	switch {
	case s.wpm >= t.PaceIdealMin && s.wpm <= t.PaceIdealMax:
		pace = 100
	case s.wpm == 0:
		pace = 50
	default:
		pace = math.Max(0, 100-math.Abs(s.wpm-150)*2)
	}
	filler := math.Max(0, 100-float64(s.fillerRate)*10)

	var sum, weight float64
	if s.posture > 0 {
		sum += s.posture * 0.3
		weight += 0.3
	}
	if s.eyeContact > 0 {
		sum += s.eyeContact * 0.3
		weight += 0.3
	}
	sum += pace*0.25 + filler*0.15
	weight += 0.40
	return int(math.Max(0, math.Min(100, sum/weight)))
}

func alertLevel(score int) AlertLevel {
	switch {
	case score >= 80:
		return AlertExcellent
	case score >= 60:
		return AlertGood
	case score >= 40:
		return AlertNeedsImprovement
	default:
		return AlertPoor
	}
}

func (t Thresholds) suggestions(s signals, score int) []string {
	if s.posture <= 0 && s.eyeContact <= 0 && s.wpm <= 0 {
		return []string{msgStart}
	}
	var out []string
	add := func(m string) {
		for _, have := range out {
			if have == m {
				return
			}
		}
		out = append(out, m)
	}
	if t.postureStatus(s.posture) == StatusPoor {
		add(msgPosturePoor)
	}
	if t.eyeContactStatus(s.eyeContact) == StatusPoor {
		add(msgEyePoor)
	}
	if s.hasSpeech && s.wpm > 0 {
		switch t.paceStatus(s.wpm) {
		case PaceTooSlow:
			add(msgTooSlow)
		case PaceTooFast:
			add(msgTooFast)
		}
	}
	if s.hasSpeech && s.fillerRate > 0 {
		switch t.fillerStatus(s.fillerRate) {
		case FillerHigh:
			add(msgFillerHigh)
		case FillerMedium:
			add(msgFillerMed)
		}
	}
	if score >= 80 && len(out) == 0 {
		add(msgPositive)
	}
	if len(out) > maxSuggestions {
		out = out[:maxSuggestions]
	}
	if len(out) == 0 {
		out = append(out, msgEncourage)
	}
	return out
}
