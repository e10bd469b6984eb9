package speech

// Word is one transcribed word with its timing in seconds.
type Word struct {
	Text       string  `json:"text"`
	Start      float64 `json:"start"`
	End        float64 `json:"end"`
	Confidence float64 `json:"confidence,omitempty"`
}

type Transcript struct {
	Text       string  `json:"transcript"`
	Words      []Word  `json:"words"`
	Confidence float64 `json:"confidence"`
}

type FillerInstance struct {
	Word      string  `json:"word"`
	Timestamp float64 `json:"timestamp"`
	Position  int     `json:"position"`
}

type FillerStats struct {
	TotalCount int              `json:"total_count"`
	Percentage float64          `json:"percentage"`
	Breakdown  map[string]int   `json:"breakdown"`
	Instances  []FillerInstance `json:"instances"`
}

type Pause struct {
	Start        float64 `json:"start"`
	End          float64 `json:"end"`
	Duration     float64 `json:"duration"`
	PreviousWord string  `json:"previous_word"`
	NextWord     string  `json:"next_word"`
}

type PauseStats struct {
	Count           int     `json:"count"`
	TotalDuration   float64 `json:"total_duration"`
	AverageDuration float64 `json:"average_duration"`
	Details         []Pause `json:"details"`
}

type RepetitionSequence struct {
	Word      string  `json:"word"`
	Count     int     `json:"count"`
	StartTime float64 `json:"start_time"`
	EndTime   float64 `json:"end_time"`
	Duration  float64 `json:"duration"`
}

type WordCount struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
}

type RepetitionStats struct {
	RepeatedWords map[string]int       `json:"repeated_words"`
	Top           []WordCount          `json:"top_repetitions"`
	Sequences     []RepetitionSequence `json:"repetition_sequences"`
}

// Total is the number of occurrences across all repeated words.
func (r RepetitionStats) Total() int {
	n := 0
	for _, c := range r.RepeatedWords {
		n += c
	}
	return n
}

type GrammarError struct {
	Message     string   `json:"error"`
	Context     string   `json:"context"`
	Offset      int      `json:"offset"`
	Suggestions []string `json:"suggestions"`
	Category    string   `json:"category"`
}

type GrammarStats struct {
	Count   int            `json:"count"`
	Details []GrammarError `json:"details"`
}

type PaceSegment struct {
	Segment   int     `json:"segment"`
	StartTime float64 `json:"start_time"`
	EndTime   float64 `json:"end_time"`
	WPM       float64 `json:"wpm"`
	WordCount int     `json:"word_count"`
}

type PaceStats struct {
	Variation        float64       `json:"pace_variation"`
	Segments         []PaceSegment `json:"pace_segments"`
	RecommendedRange [2]float64    `json:"recommended_pace_range"`
}

// Metrics is the full speech analysis of one recording.
type Metrics struct {
	WordCount           int             `json:"word_count"`
	DurationSeconds     float64         `json:"duration_seconds"`
	WordsPerMinute      float64         `json:"words_per_minute"`
	SpeakingTimeSeconds float64         `json:"speaking_time_seconds"`
	PauseTimeSeconds    float64         `json:"pause_time_seconds"`
	FillerWords         FillerStats     `json:"filler_words"`
	Pauses              PauseStats      `json:"pauses"`
	Repetition          RepetitionStats `json:"repetition"`
	GrammarErrors       GrammarStats    `json:"grammar_errors"`
	PaceAnalysis        PaceStats       `json:"pace_analysis"`
	Transcript          string          `json:"transcript"`
}

// FillerRate returns filler words per minute of recording.
func (m Metrics) FillerRate() float64 {
	if m.DurationSeconds <= 0 {
		return 0
	}
	return float64(m.FillerWords.TotalCount) / m.DurationSeconds * 60
}

// PauseRatio is the share of the recording not covered by words.
func (m Metrics) PauseRatio() float64 {
	if m.DurationSeconds <= 0 {
		return 0
	}
	return m.PauseTimeSeconds / m.DurationSeconds
}

var idealPace = [2]float64{140, 160}

// Empty returns the zero analysis with every sub-structure allocated.
func Empty() Metrics {
	return Metrics{
		FillerWords: FillerStats{Breakdown: map[string]int{}, Instances: []FillerInstance{}},
		Pauses:      PauseStats{Details: []Pause{}},
		Repetition: RepetitionStats{
			RepeatedWords: map[string]int{},
			Top:           []WordCount{},
			Sequences:     []RepetitionSequence{},
		},
		GrammarErrors: GrammarStats{Details: []GrammarError{}},
		PaceAnalysis:  PaceStats{Segments: []PaceSegment{}, RecommendedRange: idealPace},
	}
}
