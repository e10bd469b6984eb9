package speech

import "gonum.org/v1/gonum/floats/scalar"

func analyzePauses(words []Word) PauseStats {
	out := PauseStats{Details: []Pause{}}
	total := 0.0
	for i := 1; i < len(words); i++ {
		gap := words[i].Start - words[i-1].End
		if gap <= pauseThreshold {
			continue
		}
		out.Details = append(out.Details, Pause{
			Start:        words[i-1].End,
			End:          words[i].Start,
			Duration:     scalar.Round(gap, 2),
			PreviousWord: words[i-1].Text,
			NextWord:     words[i].Text,
		})
		total += gap
	}
	out.Count = len(out.Details)
	out.TotalDuration = scalar.Round(total, 2)
	if out.Count > 0 {
		out.AverageDuration = scalar.Round(total/float64(out.Count), 2)
	}
	return out
}
