package posture

import (
	"bytes"
	"encoding/json"
	"strconv"

	"github.com/omkar-jagtap8443/Talk-genius/outcome"
)

type rawPayload struct {
	Posture    []json.RawMessage `json:"posture"`
	EyeContact []json.RawMessage `json:"eye_contact"`
}

type rawSample struct {
	Timestamp  flexFloat  `json:"timestamp"`
	Score      flexFloat  `json:"score"`
	Confidence *flexFloat `json:"confidence"`
}

// Decode parses a capture payload. Entries that are not objects are skipped
// and fields that do not parse as numbers read as 0. The returned error is
// a MalformedInput error whenever anything had to be dropped; the data
// returned alongside it is still usable.
func Decode(data []byte) (RawData, error) {
	var p rawPayload
	if err := json.Unmarshal(data, &p); err != nil {
		return RawData{}, outcome.Malformed("posture payload: %v", err)
	}
	var out RawData
	var skipped int
	out.Posture, skipped = decodeSamples(p.Posture)
	var n int
	out.EyeContact, n = decodeSamples(p.EyeContact)
	skipped += n
	if skipped > 0 {
		return out, outcome.Malformed("posture payload: skipped %d entries", skipped)
	}
	return out, nil
}

func decodeSamples(entries []json.RawMessage) ([]Sample, int) {
	out := make([]Sample, 0, len(entries))
	skipped := 0
	for _, e := range entries {
		if len(bytes.TrimSpace(e)) == 0 || bytes.TrimSpace(e)[0] != '{' {
			skipped++
			continue
		}
		var rs rawSample
		if err := json.Unmarshal(e, &rs); err != nil {
			skipped++
			continue
		}
		s := Sample{Timestamp: float64(rs.Timestamp), Score: float64(rs.Score)}
		if rs.Confidence != nil {
			c := float64(*rs.Confidence)
			s.Confidence = &c
		}
		out = append(out, s)
	}
	return out, skipped
}

// flexFloat accepts JSON numbers, numeric strings and null.
type flexFloat float64

func (f *flexFloat) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*f = 0
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			*f = 0
			return nil
		}
		*f = flexFloat(v)
		return nil
	}
	var v float64
	if err := json.Unmarshal(b, &v); err != nil {
		*f = 0
		return nil
	}
	*f = flexFloat(v)
	return nil
}
