package scoring

// CategoryWeights is the share of each category in the total score. The
// total is the plain weighted sum, clamped to [0,100]; the defaults add up
// to 0.95.
type CategoryWeights struct {
	Posture    float64 `json:"posture"`
	EyeContact float64 `json:"eye_contact"`
	Speech     float64 `json:"speech"`
	Content    float64 `json:"content"`
	Delivery   float64 `json:"delivery"`
}

func (w CategoryWeights) of(c Category) float64 {
	switch c {
	case CategoryPosture:
		return w.Posture
	case CategoryEyeContact:
		return w.EyeContact
	case CategorySpeech:
		return w.Speech
	case CategoryContent:
		return w.Content
	case CategoryDelivery:
		return w.Delivery
	}
	return 0
}

type SpeechWeights struct {
	WPM        float64 `json:"wpm"`
	Filler     float64 `json:"filler_words"`
	Pauses     float64 `json:"pauses"`
	Repetition float64 `json:"repetition"`
	Grammar    float64 `json:"grammar"`
}

func (w SpeechWeights) sum() float64 {
	return w.WPM + w.Filler + w.Pauses + w.Repetition + w.Grammar
}

type Weights struct {
	Categories CategoryWeights `json:"categories"`
	Speech     SpeechWeights   `json:"speech"`
}

// DefaultWeights: speech, content and delivery carry the sum of their
// component weights.
func DefaultWeights() Weights {
	return Weights{
		Categories: CategoryWeights{
			Posture:    0.15,
			EyeContact: 0.10,
			Speech:     0.35,
			Content:    0.25,
			Delivery:   0.10,
		},
		Speech: SpeechWeights{
			WPM:        0.10,
			Filler:     0.10,
			Pauses:     0.05,
			Repetition: 0.05,
			Grammar:    0.05,
		},
	}
}
