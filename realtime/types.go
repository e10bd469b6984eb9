package realtime

import (
	"maps"
	"slices"
	"time"
)

// Frame is one polling tick of capture data. Zero means nothing was detected.
type Frame struct {
	PostureScore    float64 `json:"posture_score"`
	EyeContactScore float64 `json:"eye_contact_score"`
}

type Trend string

const (
	TrendImproving Trend = "improving"
	TrendStable    Trend = "stable"
	TrendDeclining Trend = "declining"
)

type AlertLevel string

const (
	AlertExcellent        AlertLevel = "excellent"
	AlertGood             AlertLevel = "good"
	AlertNeedsImprovement AlertLevel = "needs_improvement"
	AlertPoor             AlertLevel = "poor"
	AlertUnknown          AlertLevel = "unknown"
)

// Status bands for a single reading.
const (
	StatusUnknown  = "unknown"
	StatusGood     = "good"
	StatusOkay     = "okay"
	StatusModerate = "moderate"
	StatusPoor     = "poor"

	PaceTooSlow      = "too_slow"
	PaceSlightlySlow = "slightly_slow"
	PaceIdeal        = "ideal"
	PaceSlightlyFast = "slightly_fast"
	PaceTooFast      = "too_fast"

	FillerLow    = "low"
	FillerMedium = "medium"
	FillerHigh   = "high"
)

type PostureFeedback struct {
	Score            int               `json:"score"`
	EyeContactScore  int               `json:"eye_contact_score"`
	PostureStatus    string            `json:"posture_status"`
	EyeContactStatus string            `json:"eye_contact_status"`
	PostureTrend     Trend             `json:"posture_trend"`
	EyeContactTrend  Trend             `json:"eye_contact_trend"`
	Messages         map[string]string `json:"messages"`
}

type SpeechFeedback struct {
	CurrentWPM   float64           `json:"current_wpm"`
	FillerRate   int               `json:"filler_rate"`
	PaceStatus   string            `json:"pace_status,omitempty"`
	FillerStatus string            `json:"filler_status,omitempty"`
	Messages     map[string]string `json:"messages"`
}

// Feedback is what one tick returns to the live UI.
type Feedback struct {
	Timestamp    time.Time       `json:"timestamp"`
	Posture      PostureFeedback `json:"posture"`
	Speech       SpeechFeedback  `json:"speech"`
	Suggestions  []string        `json:"suggestions"`
	OverallScore int             `json:"overall_score"`
	AlertLevel   AlertLevel      `json:"alert_level"`
}

// EmptyFeedback is returned for unknown sessions and failed ticks.
func EmptyFeedback() Feedback {
	return Feedback{
		Timestamp:   time.Now(),
		Posture:     PostureFeedback{Messages: map[string]string{}},
		Speech:      SpeechFeedback{Messages: map[string]string{}},
		Suggestions: []string{},
		AlertLevel:  AlertUnknown,
	}
}

// clone copies the message maps and suggestions so a stored feedback
// never shares them with a caller.
func (f Feedback) clone() Feedback {
	f.Posture.Messages = maps.Clone(f.Posture.Messages)
	f.Speech.Messages = maps.Clone(f.Speech.Messages)
	f.Suggestions = slices.Clone(f.Suggestions)
	return f
}

type MetricPoint struct {
	Timestamp time.Time `json:"timestamp"`
	Value     float64   `json:"value"`
}

// History holds the per-tick metric series of a session.
type History struct {
	Posture    []MetricPoint `json:"posture"`
	EyeContact []MetricPoint `json:"eye_contact"`
	Pace       []MetricPoint `json:"pace"`
	FillerRate []MetricPoint `json:"filler_rate"`
}

type Summary struct {
	SessionID           string        `json:"session_id"`
	Duration            time.Duration `json:"duration"`
	AveragePosture      float64       `json:"average_posture"`
	AverageEyeContact   float64       `json:"average_eye_contact"`
	AverageOverallScore float64       `json:"average_overall_score"`
	FeedbackCount       int           `json:"feedback_count"`
	LastFeedback        *Feedback     `json:"last_feedback,omitempty"`
}
