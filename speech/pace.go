package speech

import (
	"gonum.org/v1/gonum/floats/scalar"
	"gonum.org/v1/gonum/stat"
)

// analyzePace splits the timeline into fixed windows anchored at the first
// word. A word counts toward a window only when it lies fully inside it.
// At most maxPaceSegments windows are reported.
func analyzePace(words []Word) PaceStats {
	out := PaceStats{Segments: []PaceSegment{}, RecommendedRange: idealPace}
	if len(words) < 2 {
		return out
	}
	origin := words[0].Start
	total := words[len(words)-1].End - origin
	n := maxPaceSegments
	if total < paceWindowSeconds*maxPaceSegments {
		n = int(total/paceWindowSeconds) + 1
	}

	counts := make([]int, n)
	for _, w := range words {
		if w.Start < origin {
			continue
		}
		seg := int((w.Start - origin) / paceWindowSeconds)
		// division can land one window late on a boundary
		if seg > 0 && w.Start < origin+float64(seg)*paceWindowSeconds {
			seg--
		}
		if seg < n && w.End <= origin+float64(seg+1)*paceWindowSeconds {
			counts[seg]++
		}
	}

	var active []float64
	for seg, count := range counts {
		t0 := origin + float64(seg)*paceWindowSeconds
		wpm := scalar.Round(float64(count)/(paceWindowSeconds/60), 0)
		out.Segments = append(out.Segments, PaceSegment{
			Segment:   seg,
			StartTime: t0,
			EndTime:   t0 + paceWindowSeconds,
			WPM:       wpm,
			WordCount: count,
		})
		if wpm > 0 {
			active = append(active, wpm)
		}
	}
	if len(active) > 0 {
		out.Variation = scalar.Round(stat.PopStdDev(active, nil), 2)
	}
	return out
}
