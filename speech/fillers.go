package speech

import "gonum.org/v1/gonum/floats/scalar"

var fillerLexicon = map[string]bool{
	"um": true, "uh": true, "like": true, "you know": true, "actually": true,
	"basically": true, "literally": true, "so": true, "well": true, "okay": true,
	"right": true, "ah": true, "er": true, "just": true, "kind of": true,
	"sort of": true, "i mean": true, "you see": true, "anyway": true,
	"seriously": true, "honestly": true, "anyways": true, "alright": true,
}

// analyzeFillers prefers two-word phrases over single tokens, so "you know"
// counts once rather than not at all.
func analyzeFillers(words []Word) FillerStats {
	out := FillerStats{Breakdown: map[string]int{}, Instances: []FillerInstance{}}
	for i := 0; i < len(words); i++ {
		tok := normalize(words[i].Text)
		if i+1 < len(words) {
			phrase := tok + " " + normalize(words[i+1].Text)
			if fillerLexicon[phrase] {
				out.record(phrase, words[i].Start, i)
				i++
				continue
			}
		}
		if fillerLexicon[tok] {
			out.record(tok, words[i].Start, i)
		}
	}
	if len(words) > 0 {
		out.Percentage = scalar.Round(float64(out.TotalCount)/float64(len(words))*100, 2)
	}
	return out
}

func (f *FillerStats) record(word string, ts float64, pos int) {
	f.TotalCount++
	f.Breakdown[word]++
	f.Instances = append(f.Instances, FillerInstance{Word: word, Timestamp: ts, Position: pos})
}
