package realtime

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omkar-jagtap8443/Talk-genius/outcome"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

// fixedSignals reports one word and a fixed number of fillers per chunk.
type fixedSignals struct{ fillers int }

func (f fixedSignals) Process([]byte) SpeechSignal {
	return SpeechSignal{Words: 1, Fillers: f.fillers}
}

type panicSignals struct{}

func (panicSignals) Process([]byte) SpeechSignal { panic("recognizer crashed") }

func newTestService(mod func(*Options)) (*Service, *fakeClock) {
	clk := newFakeClock()
	opts := DefaultOptions()
	opts.Clock = clk.Now
	opts.Signals = fixedSignals{}
	if mod != nil {
		mod(&opts)
	}
	return NewService(opts, nil), clk
}

var chunk = []byte{0x01, 0x02}

func TestAnalyzeFrame_ZeroFrameIsNeutral(t *testing.T) {
	svc, _ := newTestService(nil)
	svc.Start("s1")

	fb := svc.AnalyzeFrame("s1", Frame{}, nil)
	assert.Equal(t, 50, fb.OverallScore)
	assert.Equal(t, AlertNeedsImprovement, fb.AlertLevel)
	assert.Equal(t, []string{msgStart}, fb.Suggestions)
	assert.Equal(t, StatusUnknown, fb.Posture.PostureStatus)
	assert.Equal(t, "Analyzing posture...", fb.Posture.Messages["posture"])
}

func TestAnalyzeFrame_UnknownSession(t *testing.T) {
	svc, _ := newTestService(nil)

	fb := svc.AnalyzeFrame("nope", Frame{PostureScore: 90}, chunk)
	assert.Equal(t, AlertUnknown, fb.AlertLevel)
	assert.Equal(t, 0, fb.OverallScore)
	assert.Empty(t, fb.Suggestions)
	assert.Empty(t, svc.Active())
}

func TestAnalyzeFrame_AutoStart(t *testing.T) {
	svc, _ := newTestService(func(o *Options) { o.AutoStart = true })

	fb := svc.AnalyzeFrame("auto", Frame{PostureScore: 90, EyeContactScore: 90}, nil)
	assert.NotEqual(t, AlertUnknown, fb.AlertLevel)
	assert.Equal(t, []string{"auto"}, svc.Active())
}

func TestEnd_Idempotent(t *testing.T) {
	svc, _ := newTestService(nil)
	svc.Start("s1")

	assert.NotPanics(t, func() {
		svc.End("s1")
		svc.End("s1")
		svc.End("never-started")
	})
	assert.Empty(t, svc.Active())
	assert.Equal(t, AlertUnknown, svc.AnalyzeFrame("s1", Frame{}, nil).AlertLevel)
}

func TestStart_GeneratesID(t *testing.T) {
	svc, _ := newTestService(nil)
	id := svc.Start("")
	assert.Len(t, id, 26)
	assert.Equal(t, []string{id}, svc.Active())
}

func TestAnalyzeFrame_IncrementalScore(t *testing.T) {
	cases := []struct {
		name    string
		frame   Frame
		score   int
		alert   AlertLevel
		suggest []string
	}{
		{"strong", Frame{PostureScore: 90, EyeContactScore: 90}, 81, AlertExcellent, []string{msgPositive}},
		{"posture only", Frame{PostureScore: 90}, 77, AlertGood, []string{msgEncourage}},
		{"poor", Frame{PostureScore: 40, EyeContactScore: 30}, 48, AlertNeedsImprovement, []string{msgPosturePoor, msgEyePoor}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			svc, _ := newTestService(nil)
			svc.Start("s")
			fb := svc.AnalyzeFrame("s", c.frame, nil)
			assert.Equal(t, c.score, fb.OverallScore)
			assert.Equal(t, c.alert, fb.AlertLevel)
			assert.Equal(t, c.suggest, fb.Suggestions)
		})
	}
}

func TestAnalyzeFrame_DroppedDetectionKeepsLastSample(t *testing.T) {
	svc, _ := newTestService(nil)
	svc.Start("s")
	svc.AnalyzeFrame("s", Frame{PostureScore: 90, EyeContactScore: 90}, nil)

	fb := svc.AnalyzeFrame("s", Frame{}, nil)
	assert.Equal(t, 81, fb.OverallScore)
	assert.Equal(t, 0, fb.Posture.Score)
}

func TestAnalyzeFrame_Trend(t *testing.T) {
	svc, _ := newTestService(nil)
	svc.Start("up")
	svc.Start("down")
	svc.Start("flat")

	var up, down, flat Feedback
	for i := 0; i < 12; i++ {
		up = svc.AnalyzeFrame("up", Frame{PostureScore: 40 + float64(i)*5, EyeContactScore: 50}, nil)
		down = svc.AnalyzeFrame("down", Frame{PostureScore: 95 - float64(i)*5, EyeContactScore: 50 + float64(i)*3}, nil)
		flat = svc.AnalyzeFrame("flat", Frame{PostureScore: 70, EyeContactScore: 70}, nil)
	}
	assert.Equal(t, TrendImproving, up.Posture.PostureTrend)
	assert.Equal(t, TrendStable, up.Posture.EyeContactTrend)
	assert.Equal(t, TrendDeclining, down.Posture.PostureTrend)
	assert.Equal(t, TrendImproving, down.Posture.EyeContactTrend)
	assert.Equal(t, TrendStable, flat.Posture.PostureTrend)
}

func TestTrend(t *testing.T) {
	assert.Equal(t, TrendStable, trend(nil))
	assert.Equal(t, TrendStable, trend([]float64{80}))
	assert.Equal(t, TrendImproving, trend([]float64{60, 70}))
	assert.Equal(t, TrendDeclining, trend([]float64{70, 60}))
	assert.Equal(t, TrendStable, trend([]float64{70, 70.5, 71}))
}

func TestAnalyzeFrame_SpeechPaceAndFillers(t *testing.T) {
	svc, clk := newTestService(func(o *Options) { o.Signals = fixedSignals{fillers: 1} })
	svc.Start("s")

	var fb Feedback
	for i := 0; i < 10; i++ {
		clk.Advance(10 * time.Second)
		fb = svc.AnalyzeFrame("s", Frame{PostureScore: 85, EyeContactScore: 80}, chunk)
	}
	// fillers at 10s..100s, the trailing minute holds 50s..100s
	assert.Equal(t, 6, fb.Speech.FillerRate)
	assert.Equal(t, 6.0, fb.Speech.CurrentWPM)
	assert.Equal(t, PaceTooSlow, fb.Speech.PaceStatus)
	assert.Equal(t, FillerHigh, fb.Speech.FillerStatus)
	assert.Equal(t, 55, fb.OverallScore)
	assert.Equal(t, []string{msgTooSlow, msgFillerHigh}, fb.Suggestions)

	h, err := svc.History("s")
	require.NoError(t, err)
	assert.Len(t, h.Pace, 10)
	assert.Equal(t, 6.0, h.FillerRate[9].Value)
}

func TestAnalyzeFrame_BoundedBuffers(t *testing.T) {
	svc, _ := newTestService(func(o *Options) {
		o.PostureWindow = 3
		o.EyeContactWindow = 3
		o.FeedbackHistory = 5
		o.RecentMessages = 2
		o.MetricHistory = 4
	})
	svc.Start("s")
	for i := 1; i <= 20; i++ {
		svc.AnalyzeFrame("s", Frame{PostureScore: float64(i), EyeContactScore: float64(i)}, nil)
	}

	sess := svc.get("s")
	assert.Equal(t, []float64{18, 19, 20}, sess.posture.items())
	assert.Equal(t, 3, sess.eyeContact.len())
	assert.Equal(t, 5, sess.feedback.len())

	recent, err := svc.Recent("s")
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, 20, recent[1].Posture.Score)

	h, err := svc.History("s")
	require.NoError(t, err)
	assert.Len(t, h.Posture, 4)
}

func TestAnalyzeFrame_ProviderPanicYieldsEmptyFeedback(t *testing.T) {
	svc, _ := newTestService(func(o *Options) { o.Signals = panicSignals{} })
	svc.Start("s")

	fb := svc.AnalyzeFrame("s", Frame{PostureScore: 80}, chunk)
	assert.Equal(t, AlertUnknown, fb.AlertLevel)

	// the session lock was released
	fb = svc.AnalyzeFrame("s", Frame{PostureScore: 80}, nil)
	assert.NotEqual(t, AlertUnknown, fb.AlertLevel)
}

func TestAnalyzeRaw(t *testing.T) {
	svc, _ := newTestService(nil)
	svc.Start("s")

	fb := svc.AnalyzeRaw("s", []byte(`{"posture":{"score":85},"eye_contact":{"score":"78"}}`), nil)
	assert.Equal(t, 85, fb.Posture.Score)
	assert.Equal(t, 78, fb.Posture.EyeContactScore)

	fb = svc.AnalyzeRaw("s2", []byte(`not json`), nil)
	assert.Equal(t, AlertUnknown, fb.AlertLevel)
}

func TestDecodeFrame(t *testing.T) {
	f, err := DecodeFrame([]byte(`{"posture_score": 72.5, "eye_contact_score": 64}`))
	require.NoError(t, err)
	assert.Equal(t, Frame{PostureScore: 72.5, EyeContactScore: 64}, f)

	f, err = DecodeFrame([]byte(`{"posture": {"score": 81}, "eye_contact": {"score": null}}`))
	require.NoError(t, err)
	assert.Equal(t, Frame{PostureScore: 81}, f)

	f, err = DecodeFrame(nil)
	require.NoError(t, err)
	assert.Equal(t, Frame{}, f)

	f, err = DecodeFrame([]byte(`{"posture_score": "high", "eye_contact_score": 50}`))
	assert.Equal(t, outcome.KindMalformedInput, outcome.KindOf(err))
	assert.Equal(t, Frame{EyeContactScore: 50}, f)

	f, err = DecodeFrame([]byte(`[1,2,3]`))
	assert.Equal(t, outcome.KindMalformedInput, outcome.KindOf(err))
	assert.Equal(t, Frame{}, f)
}

func TestSummary(t *testing.T) {
	svc, clk := newTestService(nil)
	svc.Start("s")

	_, err := svc.Summary("missing")
	assert.ErrorIs(t, err, ErrUnknownSession)

	sum, err := svc.Summary("s")
	require.NoError(t, err)
	assert.Equal(t, 0, sum.FeedbackCount)
	assert.Nil(t, sum.LastFeedback)

	svc.AnalyzeFrame("s", Frame{PostureScore: 90, EyeContactScore: 90}, nil)
	clk.Advance(30 * time.Second)
	svc.AnalyzeFrame("s", Frame{PostureScore: 70}, nil)
	svc.AnalyzeFrame("s", Frame{}, nil)

	sum, err = svc.Summary("s")
	require.NoError(t, err)
	assert.Equal(t, 3, sum.FeedbackCount)
	assert.Equal(t, 30*time.Second, sum.Duration)
	assert.Equal(t, 80.0, sum.AveragePosture)
	assert.Equal(t, 90.0, sum.AverageEyeContact)
	require.NotNil(t, sum.LastFeedback)
	assert.Equal(t, 0, sum.LastFeedback.Posture.Score)
}

func TestService_StoredFeedbackIsNotShared(t *testing.T) {
	svc, _ := newTestService(nil)
	svc.Start("s")

	fb := svc.AnalyzeFrame("s", Frame{PostureScore: 90, EyeContactScore: 90}, nil)
	fb.Posture.Messages["posture"] = "changed by caller"
	fb.Suggestions[0] = "changed by caller"

	recent, err := svc.Recent("s")
	require.NoError(t, err)
	require.Len(t, recent, 1)
	assert.NotEqual(t, "changed by caller", recent[0].Posture.Messages["posture"])
	assert.NotEqual(t, "changed by caller", recent[0].Suggestions[0])

	recent[0].Posture.Messages["posture"] = "changed again"
	sum, err := svc.Summary("s")
	require.NoError(t, err)
	require.NotNil(t, sum.LastFeedback)
	assert.NotEqual(t, "changed again", sum.LastFeedback.Posture.Messages["posture"])

	sum.LastFeedback.Speech.Messages["pace"] = "changed by summary"
	recent, err = svc.Recent("s")
	require.NoError(t, err)
	assert.NotContains(t, recent[0].Speech.Messages, "pace")
}

func TestService_ConcurrentSessions(t *testing.T) {
	svc, _ := newTestService(nil)
	const n, ticks = 8, 100

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		id := fmt.Sprintf("session-%d", i)
		svc.Start(id)
		wg.Add(1)
		go func(id string, base float64) {
			defer wg.Done()
			for k := 0; k < ticks; k++ {
				svc.AnalyzeFrame(id, Frame{PostureScore: base, EyeContactScore: base}, chunk)
			}
		}(id, float64(50+i*5))
	}
	wg.Wait()

	for i := 0; i < n; i++ {
		sum, err := svc.Summary(fmt.Sprintf("session-%d", i))
		require.NoError(t, err)
		assert.Equal(t, ticks, sum.FeedbackCount)
		assert.Equal(t, float64(50+i*5), sum.AveragePosture)
	}
}

func TestRing(t *testing.T) {
	r := newRing[int](3)
	_, ok := r.latest()
	assert.False(t, ok)

	for i := 1; i <= 5; i++ {
		r.push(i)
	}
	assert.Equal(t, 3, r.len())
	assert.Equal(t, []int{3, 4, 5}, r.items())
	assert.Equal(t, []int{4, 5}, r.last(2))
	v, ok := r.latest()
	assert.True(t, ok)
	assert.Equal(t, 5, v)
}
