// Package speech turns a word-timed transcript into delivery metrics:
// pace, filler words, pauses, repetition, a capitalization check and
// pace variation across fixed windows.
package speech

import (
	"strings"
	"unicode"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/floats/scalar"

	"github.com/omkar-jagtap8443/Talk-genius/outcome"
)

const (
	pauseThreshold    = 0.3  // sec
	repeatGap         = 2.0  // sec between consecutive repeats
	paceWindowSeconds = 10.0 // sec
	maxPaceSegments   = 8640 // one day of windows
	minRepeated       = 3
	minContentLen     = 4
	topRepetitions    = 10
)

// Extract never fails: degraded input yields Empty or partial metrics.
func Extract(t Transcript) Metrics {
	return TryExtract(nil, t).Value
}

// TryExtract is Extract with the degradation kind exposed.
func TryExtract(log logrus.FieldLogger, t Transcript) outcome.Result[Metrics] {
	return outcome.Guard(log, "speech", Empty, func() (Metrics, error) {
		return extract(t)
	})
}

func extract(t Transcript) (Metrics, error) {
	text := strings.TrimSpace(t.Text)
	if text == "" {
		text = joinWords(t.Words)
	}
	if len(t.Words) == 0 {
		m := Empty()
		m.Transcript = text
		return m, outcome.ErrNoData
	}

	m := Empty()
	m.Transcript = text
	basicMetrics(&m, t.Words)
	m.FillerWords = analyzeFillers(t.Words)
	m.Pauses = analyzePauses(t.Words)
	m.Repetition = analyzeRepetition(t.Words)
	m.GrammarErrors = analyzeGrammar(text)
	m.PaceAnalysis = analyzePace(t.Words)
	return m, nil
}

func basicMetrics(m *Metrics, words []Word) {
	m.WordCount = len(words)
	duration := words[len(words)-1].End - words[0].Start
	if duration < 0 {
		duration = 0
	}
	speaking := 0.0
	for _, w := range words {
		speaking += w.End - w.Start
	}
	wpm := 0.0
	if duration > 0 {
		wpm = float64(m.WordCount) / duration * 60
	}
	m.DurationSeconds = scalar.Round(duration, 2)
	m.WordsPerMinute = scalar.Round(wpm, 0)
	m.SpeakingTimeSeconds = scalar.Round(speaking, 2)
	m.PauseTimeSeconds = scalar.Round(duration-speaking, 2)
}

func joinWords(words []Word) string {
	parts := make([]string, 0, len(words))
	for _, w := range words {
		parts = append(parts, w.Text)
	}
	return strings.Join(parts, " ")
}

// normalize lower-cases a token and trims surrounding punctuation.
func normalize(s string) string {
	return strings.TrimFunc(strings.ToLower(strings.TrimSpace(s)), unicode.IsPunct)
}
