package scoring

import (
	"fmt"
	"math"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omkar-jagtap8443/Talk-genius/outcome"
	"github.com/omkar-jagtap8443/Talk-genius/posture"
	"github.com/omkar-jagtap8443/Talk-genius/speech"
)

// idealSpeech returns 150 distinct words over one minute, 20 to a sentence.
func idealSpeech() *speech.Metrics {
	m := speech.Empty()
	var b strings.Builder
	for i := 0; i < 150; i++ {
		fmt.Fprintf(&b, "w%03d", i)
		if (i+1)%20 == 0 {
			b.WriteString(".")
		}
		b.WriteString(" ")
	}
	m.Transcript = strings.TrimSpace(b.String())
	m.WordCount = 150
	m.DurationSeconds = 60
	m.WordsPerMinute = 150
	m.SpeakingTimeSeconds = 48
	m.PauseTimeSeconds = 12
	return &m
}

func strongPosture() *posture.Analysis {
	return &posture.Analysis{
		Status: posture.StatusOK,
		Summary: posture.Summary{
			AveragePostureScore:    95,
			AverageEyeContactScore: 95,
			PostureBreakdown:       posture.PostureBreakdown{GoodPercentage: 100},
			EyeContactBreakdown:    posture.EyeContactBreakdown{GoodPercentage: 100},
		},
	}
}

func TestSpeechScore_IdealInputsScore100(t *testing.T) {
	e := NewEngine(DefaultWeights(), nil)
	got := e.speechScore(idealSpeech())

	assert.Equal(t, 100.0, got.Total)
	for name, v := range got.Components {
		assert.Equal(t, 100.0, v, name)
	}
}

func TestFillerScore(t *testing.T) {
	assert.Equal(t, 100.0, FillerScore(0))
	assert.Equal(t, 100.0, FillerScore(3))
	assert.Equal(t, 30.0, FillerScore(10))
	assert.Equal(t, 25.0, FillerScore(15))
	assert.Equal(t, 0.0, FillerScore(40))
}

func TestWPMScore(t *testing.T) {
	cases := []struct {
		wpm  float64
		want float64
	}{
		{0, 0},
		{50, 50},
		{120, 80},
		{140, 100},
		{150, 100},
		{160, 100},
		{180, 80},
		{200, 60},
		{260, 70},
		{500, 0},
	}
	for _, c := range cases {
		assert.InDelta(t, c.want, WPMScore(c.wpm), 1e-9, "wpm=%v", c.wpm)
	}
}

func TestPauseScore(t *testing.T) {
	assert.Equal(t, 0.0, PauseScore(0.2, 0))
	assert.Equal(t, 100.0, PauseScore(0.2, 60))
	assert.Equal(t, 80.0, PauseScore(0, 60))
	assert.Equal(t, 90.0, PauseScore(0.05, 60))
	assert.Equal(t, 0.0, PauseScore(0.6, 60))
	assert.InDelta(t, 50.0, PauseScore(0.45, 60), 1e-9)
}

func TestSteppedScores(t *testing.T) {
	assert.Equal(t, 100.0, RepetitionScore(0))
	assert.Equal(t, 80.0, RepetitionScore(5))
	assert.Equal(t, 60.0, RepetitionScore(6))
	assert.Equal(t, 40.0, RepetitionScore(20))
	assert.Equal(t, 20.0, RepetitionScore(21))

	assert.Equal(t, 0.0, GrammarScore(0, 0))
	assert.Equal(t, 100.0, GrammarScore(0, 100))
	assert.Equal(t, 90.0, GrammarScore(1, 100))
	assert.Equal(t, 80.0, GrammarScore(2, 100))
	assert.Equal(t, 60.0, GrammarScore(5, 100))
	assert.Equal(t, 40.0, GrammarScore(6, 100))
}

func TestContentSubscores(t *testing.T) {
	assert.Equal(t, 50.0, RelevanceScore("", []string{"go"}))
	assert.Equal(t, 50.0, RelevanceScore("talking about go", nil))
	assert.Equal(t, 60.0, RelevanceScore("Talking about Go", []string{"go", "rust"}))
	assert.Equal(t, 100.0, RelevanceScore("go and rust", []string{"GO", "rust"}))

	assert.Equal(t, 50.0, StructureScore("short.", 10))
	assert.Equal(t, 90.0, StructureScore(idealSpeech().Transcript, 150))
	assert.Equal(t, 50.0, StructureScore(strings.Repeat("word ", 60), 60))

	assert.Equal(t, 50.0, VocabularyScore("a b c", 3))
	assert.Equal(t, 30.0, VocabularyScore(strings.Repeat("same ", 30), 30))
	assert.Equal(t, 90.0, VocabularyScore(idealSpeech().Transcript, 150))
}

func TestRelevanceScore_BlankKeywordsIgnored(t *testing.T) {
	tests := []struct {
		name     string
		keywords []string
		want     float64
	}{
		{"only blanks", []string{"", "  "}, 50},
		{"blank beside miss", []string{"rust", ""}, 0},
		{"blank beside hit", []string{"", "go"}, 100},
		{"padded keyword", []string{" talk "}, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RelevanceScore("we talk about go", tt.keywords))
		})
	}
}

func TestScore_EmptyTranscriptIsFinite(t *testing.T) {
	m := speech.Extract(speech.Transcript{})
	got := Score(nil, &m, []string{"topic"})

	assert.False(t, math.IsNaN(got.Total))
	assert.False(t, math.IsInf(got.Total, 0))
	assert.GreaterOrEqual(t, got.Total, 0.0)
	assert.LessOrEqual(t, got.Total, 100.0)
	assert.Len(t, got.Breakdown, len(Categories))
}

func TestScore_NilInputsScoreZero(t *testing.T) {
	got := Score(nil, nil, nil)

	assert.Equal(t, 0.0, got.Total)
	assert.Equal(t, LevelNeedsPractice, got.PerformanceLevel)
	for _, c := range Categories {
		assert.Equal(t, 0.0, got.CategoryScores[c].Total, string(c))
		assert.Empty(t, got.CategoryScores[c].Components, string(c))
	}
	want := []string{advice[CategoryPosture], advice[CategoryEyeContact], advice[CategorySpeech]}
	if diff := cmp.Diff(want, got.Recommendations); diff != "" {
		t.Errorf("recommendations mismatch (-want +got):\n%s", diff)
	}
}

func TestScore_ClampsOutOfRangeInputs(t *testing.T) {
	p := strongPosture()
	p.Summary.AveragePostureScore = 500
	p.Summary.AverageEyeContactScore = -50
	s := idealSpeech()
	s.PaceAnalysis.Variation = 1e6

	got := Score(p, s, nil)
	assert.Equal(t, 100.0, got.CategoryScores[CategoryPosture].Total)
	assert.Equal(t, 0.0, got.CategoryScores[CategoryEyeContact].Total)
	for _, c := range Categories {
		v := got.CategoryScores[c].Total
		assert.True(t, v >= 0 && v <= 100, "%s=%v", c, v)
	}
	assert.True(t, got.Total >= 0 && got.Total <= 100)
}

func TestScore_TotalIsClampedWeightedSum(t *testing.T) {
	tests := []struct {
		name    string
		posture float64
		want    float64
	}{
		// posture only: 0.7*95 + 0.2*100 + 0.1*80 = 94.5
		{"half weight", 0.5, 47.3},
		{"unit weight", 1, 94.5},
		{"overweight clamps", 2, 100},
		{"zero weight", 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := DefaultWeights()
			w.Categories = CategoryWeights{Posture: tt.posture}
			got := NewEngine(w, nil).Score(strongPosture(), idealSpeech(), nil)
			assert.Equal(t, tt.want, got.Total)
		})
	}
}

func TestScore_DefaultWeightsAreNotRenormalized(t *testing.T) {
	// categories 94.5/96/100/96/92 against weights summing to 0.95
	got := Score(strongPosture(), idealSpeech(), []string{"w001"})
	assert.Equal(t, 92.0, got.Total)
}

func TestScore_StrongSessionGetsPositiveMessage(t *testing.T) {
	got := Score(strongPosture(), idealSpeech(), []string{"w001"})

	assert.InDelta(t, 92.0, got.Total, 0.05)
	assert.Equal(t, LevelExcellent, got.PerformanceLevel)
	assert.Equal(t, []string{positiveRecommendation}, got.Recommendations)
	assert.Equal(t, 94.5, got.Breakdown[CategoryPosture])
	assert.Equal(t, 96.0, got.Breakdown[CategoryContent])
	assert.Equal(t, 92.0, got.Breakdown[CategoryDelivery])
}

func TestScore_RecommendationsRankLowestFirst(t *testing.T) {
	p := strongPosture()
	p.Summary.AverageEyeContactScore = 40
	p.Summary.EyeContactBreakdown = posture.EyeContactBreakdown{PoorPercentage: 100}

	got := Score(p, nil, nil)
	want := []string{advice[CategorySpeech], advice[CategoryContent], advice[CategoryDelivery]}
	assert.Equal(t, want, got.Recommendations)
}

func TestPerformanceLevel(t *testing.T) {
	cases := map[float64]string{
		95:   LevelExcellent,
		90:   LevelExcellent,
		85:   LevelVeryGood,
		70:   LevelGood,
		60.5: LevelSatisfactory,
		50:   LevelNeedsImprovement,
		10:   LevelNeedsPractice,
	}
	for total, want := range cases {
		assert.Equal(t, want, PerformanceLevel(total), "total=%v", total)
	}
}

func TestTryScore_FailureFallsBackToEmpty(t *testing.T) {
	p := strongPosture()
	p.Summary.AveragePostureScore = math.NaN()

	res := NewEngine(DefaultWeights(), nil).TryScore(p, idealSpeech(), nil)
	require.Equal(t, outcome.KindComputationFailure, res.Kind())
	if diff := cmp.Diff(Empty(), res.Value); diff != "" {
		t.Errorf("fallback mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, []string{emptyRecommendation}, res.Value.Recommendations)
}
