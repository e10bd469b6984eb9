package realtime

import (
	"encoding/json"
	"strconv"

	"github.com/omkar-jagtap8443/Talk-genius/outcome"
)

type wireScore struct {
	Score json.RawMessage `json:"score"`
}

type wireFrame struct {
	PostureScore    json.RawMessage `json:"posture_score"`
	EyeContactScore json.RawMessage `json:"eye_contact_score"`
	Posture         *wireScore      `json:"posture"`
	EyeContact      *wireScore      `json:"eye_contact"`
}

// DecodeFrame reads either {posture_score, eye_contact_score} or
// {posture:{score}, eye_contact:{score}}. Flat keys win when both appear.
// Anything unreadable decodes to zero scores along with a MalformedInput
// error; the returned Frame is always usable.
func DecodeFrame(payload []byte) (Frame, error) {
	if len(payload) == 0 {
		return Frame{}, nil
	}
	var w wireFrame
	if err := json.Unmarshal(payload, &w); err != nil {
		return Frame{}, outcome.Malformed("frame: %v", err)
	}

	var f Frame
	var bad bool
	pick := func(flat json.RawMessage, nested *wireScore) float64 {
		raw := flat
		if len(raw) == 0 && nested != nil {
			raw = nested.Score
		}
		v, ok := number(raw)
		if !ok {
			bad = true
		}
		return v
	}
	f.PostureScore = pick(w.PostureScore, w.Posture)
	f.EyeContactScore = pick(w.EyeContactScore, w.EyeContact)
	if bad {
		return f, outcome.Malformed("frame: non-numeric score")
	}
	return f, nil
}

// number accepts JSON numbers, numeric strings and null.
func number(raw json.RawMessage) (float64, bool) {
	if len(raw) == 0 || string(raw) == "null" {
		return 0, true
	}
	var v float64
	if err := json.Unmarshal(raw, &v); err == nil {
		return v, true
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if v, err := strconv.ParseFloat(s, 64); err == nil {
			return v, true
		}
	}
	return 0, false
}
