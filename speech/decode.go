package speech

import (
	"bytes"
	"encoding/json"
	"math"
	"strings"

	"github.com/omkar-jagtap8443/Talk-genius/outcome"
)

// maxWordTime bounds word timestamps to one day of audio.
const maxWordTime = 24 * 60 * 60

type rawTranscript struct {
	Transcript *string           `json:"transcript"`
	Text       *string           `json:"text"`
	Confidence float64           `json:"confidence"`
	Words      []json.RawMessage `json:"words"`
}

type rawWord struct {
	Word       string   `json:"word"`
	Text       string   `json:"text"`
	Start      *float64 `json:"start"`
	End        *float64 `json:"end"`
	Confidence float64  `json:"confidence"`
}

// Decode reads a transcription result. Both "transcript" and "text" are
// accepted for the full text, and words may carry "word" or "text". Words
// without text or timing, ending before they start, or timed outside
// [0, maxWordTime] are dropped and reported through a MalformedInput error
// next to the usable transcript.
func Decode(data []byte) (Transcript, error) {
	var raw rawTranscript
	if err := json.Unmarshal(data, &raw); err != nil {
		return Transcript{}, outcome.Malformed("transcript: %v", err)
	}
	t := Transcript{Confidence: raw.Confidence, Words: make([]Word, 0, len(raw.Words))}
	switch {
	case raw.Transcript != nil:
		t.Text = *raw.Transcript
	case raw.Text != nil:
		t.Text = *raw.Text
	}

	skipped := 0
	for _, e := range raw.Words {
		var rw rawWord
		if len(bytes.TrimSpace(e)) == 0 || bytes.TrimSpace(e)[0] != '{' || json.Unmarshal(e, &rw) != nil {
			skipped++
			continue
		}
		text := rw.Word
		if text == "" {
			text = rw.Text
		}
		text = strings.TrimSpace(text)
		if text == "" || rw.Start == nil || rw.End == nil || *rw.End < *rw.Start ||
			math.IsNaN(*rw.Start) || math.IsNaN(*rw.End) || *rw.Start < 0 || *rw.End > maxWordTime {
			skipped++
			continue
		}
		t.Words = append(t.Words, Word{Text: text, Start: *rw.Start, End: *rw.End, Confidence: rw.Confidence})
	}
	if skipped > 0 {
		return t, outcome.Malformed("transcript: skipped %d words", skipped)
	}
	return t, nil
}
