package posture

// Sample is one per-frame score from the capture layer. A score of 0 means
// the detector found nothing unless Confidence says otherwise.
type Sample struct {
	Timestamp  float64  `json:"timestamp"`
	Score      float64  `json:"score"`
	Confidence *float64 `json:"confidence,omitempty"`
}

// RawData holds the two independent sample streams of one recording.
type RawData struct {
	Posture    []Sample `json:"posture"`
	EyeContact []Sample `json:"eye_contact"`
}

func (r RawData) Empty() bool { return len(r.Posture) == 0 && len(r.EyeContact) == 0 }

type Bucket struct {
	PostureScores    []float64 `json:"posture_scores"`
	EyeContactScores []float64 `json:"eye_contact_scores"`
	Samples          int       `json:"samples"`
}

type PostureBreakdown struct {
	GoodPercentage float64 `json:"good_percentage"`
	OkayPercentage float64 `json:"okay_percentage"`
	BadPercentage  float64 `json:"bad_percentage"`
}

type EyeContactBreakdown struct {
	GoodPercentage     float64 `json:"good_percentage"`
	ModeratePercentage float64 `json:"moderate_percentage"`
	PoorPercentage     float64 `json:"poor_percentage"`
}

type Summary struct {
	AveragePostureScore    float64             `json:"average_posture_score"`
	AverageEyeContactScore float64             `json:"average_eye_contact_score"`
	PostureBreakdown       PostureBreakdown    `json:"posture_breakdown"`
	EyeContactBreakdown    EyeContactBreakdown `json:"eye_contact_breakdown"`
	TotalRecordingSeconds  int                 `json:"total_recording_seconds"`
}

type Status string

const (
	StatusOK               Status = "ok"
	StatusInsufficientData Status = "insufficient_data"
)

type Analysis struct {
	Status         Status         `json:"status"`
	Summary        Summary        `json:"summary"`
	SecondBySecond map[int]Bucket `json:"second_by_second"`
	RecordingTime  int            `json:"recording_time"`
}

// Category labels for per-second classification.
const (
	PostureGood = "good"
	PostureOkay = "okay"
	PostureBad  = "bad"

	EyeGood     = "good"
	EyeModerate = "moderate"
	EyePoor     = "poor"
)

type Thresholds struct {
	PostureGood    float64 `json:"posture_good"`
	PostureOkay    float64 `json:"posture_okay"`
	EyeContactGood float64 `json:"eye_contact_good"`
	EyeContactOkay float64 `json:"eye_contact_moderate"`
}

func DefaultThresholds() Thresholds {
	return Thresholds{PostureGood: 80, PostureOkay: 60, EyeContactGood: 75, EyeContactOkay: 50}
}

func (t Thresholds) ClassifyPosture(score float64) string {
	switch {
	case score >= t.PostureGood:
		return PostureGood
	case score >= t.PostureOkay:
		return PostureOkay
	default:
		return PostureBad
	}
}

func (t Thresholds) ClassifyEyeContact(score float64) string {
	switch {
	case score >= t.EyeContactGood:
		return EyeGood
	case score >= t.EyeContactOkay:
		return EyeModerate
	default:
		return EyePoor
	}
}
