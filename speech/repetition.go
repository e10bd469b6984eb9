package speech

import "sort"

var stopWords = map[string]bool{
	"the": true, "a": true, "an": true, "and": true, "or": true, "but": true,
	"in": true, "on": true, "at": true, "to": true, "for": true, "of": true,
	"with": true, "by": true, "is": true, "are": true, "was": true, "were": true,
	"be": true, "been": true, "being": true, "have": true, "has": true, "had": true,
	"do": true, "does": true, "did": true, "will": true, "would": true, "could": true,
	"should": true, "may": true, "might": true, "can": true, "this": true, "that": true,
	"these": true, "those": true, "i": true, "you": true, "he": true, "she": true,
	"it": true, "we": true, "they": true, "me": true, "him": true, "her": true,
	"us": true, "them": true,
}

func analyzeRepetition(words []Word) RepetitionStats {
	freq := map[string]int{}
	for _, w := range words {
		tok := normalize(w.Text)
		if len([]rune(tok)) < minContentLen || stopWords[tok] {
			continue
		}
		freq[tok]++
	}

	out := RepetitionStats{RepeatedWords: map[string]int{}, Top: []WordCount{}}
	for w, c := range freq {
		if c >= minRepeated {
			out.RepeatedWords[w] = c
			out.Top = append(out.Top, WordCount{Word: w, Count: c})
		}
	}
	sort.Slice(out.Top, func(i, j int) bool {
		if out.Top[i].Count != out.Top[j].Count {
			return out.Top[i].Count > out.Top[j].Count
		}
		return out.Top[i].Word < out.Top[j].Word
	})
	if len(out.Top) > topRepetitions {
		out.Top = out.Top[:topRepetitions]
	}
	out.Sequences = findSequences(words)
	return out
}

// findSequences reports runs of the same token where each repeat starts
// less than repeatGap seconds after the previous one ended.
func findSequences(words []Word) []RepetitionSequence {
	seqs := []RepetitionSequence{}
	i := 0
	for i < len(words)-1 {
		cur := normalize(words[i].Text)
		j := i + 1
		for j < len(words) && normalize(words[j].Text) == cur && words[j].Start-words[j-1].End < repeatGap {
			j++
		}
		if n := j - i; n >= 2 && cur != "" {
			seqs = append(seqs, RepetitionSequence{
				Word:      cur,
				Count:     n,
				StartTime: words[i].Start,
				EndTime:   words[j-1].End,
				Duration:  words[j-1].End - words[i].Start,
			})
			i = j
			continue
		}
		i++
	}
	return seqs
}
