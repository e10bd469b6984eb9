package scoring

import (
	"math"
	"strings"
)

var (
	idealWPM        = [2]float64{140, 160}
	idealPauseRatio = [2]float64{0.10, 0.30}
)

const idealFillerRate = 3

// WPMScore peaks at 100 inside the ideal band and falls off on either side.
func WPMScore(wpm float64) float64 {
	lo, hi := idealWPM[0], idealWPM[1]
	var s float64
	switch {
	case wpm >= lo && wpm <= hi:
		s = 100
	case wpm < 100:
		s = wpm
	case wpm > 200:
		s = 100 - (wpm-200)*0.5
	case wpm < lo:
		s = 80 + (wpm - 120)
	default:
		s = 100 - (wpm - hi)
	}
	return clamp(s)
}

// FillerScore takes fillers per minute.
func FillerScore(rate float64) float64 {
	switch {
	case rate <= idealFillerRate:
		return 100
	case rate <= 10:
		return clamp(100 - (rate-idealFillerRate)*10)
	default:
		return clamp(50 - (rate-10)*5)
	}
}

func PauseScore(ratio, duration float64) float64 {
	if duration <= 0 {
		return 0
	}
	lo, hi := idealPauseRatio[0], idealPauseRatio[1]
	switch {
	case ratio >= lo && ratio <= hi:
		return 100
	case ratio < lo:
		return clamp(80 + ratio/lo*20)
	default:
		return clamp(100 - (ratio-hi)/hi*100)
	}
}

// RepetitionScore steps down with the number of repeated-word occurrences.
func RepetitionScore(total int) float64 {
	switch {
	case total <= 0:
		return 100
	case total <= 5:
		return 80
	case total <= 10:
		return 60
	case total <= 20:
		return 40
	default:
		return 20
	}
}

func GrammarScore(errors, words int) float64 {
	if words <= 0 {
		return 0
	}
	rate := float64(errors) / float64(words)
	switch {
	case rate == 0:
		return 100
	case rate <= 0.01:
		return 90
	case rate <= 0.02:
		return 80
	case rate <= 0.05:
		return 60
	default:
		return 40
	}
}

// RelevanceScore is the share of keywords contained in the transcript,
// scaled by 1.2. Containment is a plain substring check; blank keywords are
// ignored.
func RelevanceScore(transcript string, keywords []string) float64 {
	lower := strings.ToLower(transcript)
	total, matches := 0, 0
	for _, k := range keywords {
		k = strings.ToLower(strings.TrimSpace(k))
		if k == "" {
			continue
		}
		total++
		if strings.Contains(lower, k) {
			matches++
		}
	}
	if total == 0 || strings.TrimSpace(transcript) == "" {
		return 50
	}
	pct := float64(matches) / float64(total) * 100
	return math.Min(100, pct*1.2)
}

func StructureScore(transcript string, words int) float64 {
	if words < 50 {
		return 50
	}
	sentences := 0
	for _, s := range strings.Split(transcript, ".") {
		if strings.TrimSpace(s) != "" {
			sentences++
		}
	}
	if sentences == 0 {
		return 50
	}
	avg := float64(words) / float64(sentences)
	switch {
	case avg >= 15 && avg <= 25:
		return 90
	case avg >= 10 && avg <= 30:
		return 70
	default:
		return 50
	}
}

// VocabularyScore buckets the type/token ratio of tokens longer than two runes.
func VocabularyScore(transcript string, words int) float64 {
	if words < 20 {
		return 50
	}
	var tokens []string
	for _, w := range strings.Fields(strings.ToLower(transcript)) {
		if len([]rune(w)) > 2 {
			tokens = append(tokens, w)
		}
	}
	if len(tokens) == 0 {
		return 50
	}
	uniq := make(map[string]struct{}, len(tokens))
	for _, w := range tokens {
		uniq[w] = struct{}{}
	}
	ratio := float64(len(uniq)) / float64(len(tokens))
	switch {
	case ratio >= 0.7:
		return 90
	case ratio >= 0.5:
		return 70
	case ratio >= 0.3:
		return 50
	default:
		return 30
	}
}
