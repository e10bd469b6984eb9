package posture

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omkar-jagtap8443/Talk-genius/outcome"
)

func TestDecode_WellFormed(t *testing.T) {
	raw, err := Decode([]byte(`{"posture":[{"timestamp":0.5,"score":82}],"eye_contact":[{"timestamp":1,"score":70,"confidence":0.8}]}`))
	require.NoError(t, err)
	require.Len(t, raw.Posture, 1)
	assert.Equal(t, Sample{Timestamp: 0.5, Score: 82}, raw.Posture[0])
	require.NotNil(t, raw.EyeContact[0].Confidence)
	assert.Equal(t, 0.8, *raw.EyeContact[0].Confidence)
}

func TestDecode_SkipsMalformedEntries(t *testing.T) {
	raw, err := Decode([]byte(`{"posture":[42, "x", {"timestamp":"2.5","score":"77"}, {"timestamp":3,"score":"n/a"}, null]}`))
	assert.Equal(t, outcome.KindMalformedInput, outcome.KindOf(err))
	require.Len(t, raw.Posture, 2)
	assert.Equal(t, Sample{Timestamp: 2.5, Score: 77}, raw.Posture[0])
	assert.Equal(t, Sample{Timestamp: 3, Score: 0}, raw.Posture[1])
}

func TestDecode_Garbage(t *testing.T) {
	raw, err := Decode([]byte(`not json`))
	assert.ErrorIs(t, err, outcome.ErrMalformedInput)
	assert.True(t, raw.Empty())
}
