// Package realtime drives live feedback during a recording. A Service owns
// the active sessions; each tick folds one capture frame (and optionally an
// audio chunk) into the session's rolling windows and returns feedback.
package realtime

import (
	"errors"
	"math"
	"sort"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/stat"

	"github.com/omkar-jagtap8443/Talk-genius/outcome"
)

type Thresholds struct {
	PostureGood        float64
	PostureOkay        float64
	EyeContactGood     float64
	EyeContactModerate float64
	PaceTooSlow        float64
	PaceIdealMin       float64
	PaceIdealMax       float64
	PaceTooFast        float64
	FillerLow          float64 // per minute
	FillerMedium       float64
}

func DefaultThresholds() Thresholds {
	return Thresholds{
		PostureGood:        80,
		PostureOkay:        60,
		EyeContactGood:     75,
		EyeContactModerate: 50,
		PaceTooSlow:        120,
		PaceIdealMin:       140,
		PaceIdealMax:       160,
		PaceTooFast:        180,
		FillerLow:          2,
		FillerMedium:       5,
	}
}

type Options struct {
	PostureWindow    int
	EyeContactWindow int
	FillerWindow     int // filler timestamps kept
	FeedbackHistory  int
	RecentMessages   int
	MetricHistory    int
	TrendPoints      int
	FillerRateWindow time.Duration

	// AutoStart starts unknown sessions on their first frame instead of
	// answering with EmptyFeedback.
	AutoStart bool

	Thresholds Thresholds
	Signals    SignalProvider
	Clock      func() time.Time
}

func DefaultOptions() Options {
	return Options{
		PostureWindow:    300,
		EyeContactWindow: 300,
		FillerWindow:     600,
		FeedbackHistory:  1000,
		RecentMessages:   10,
		MetricHistory:    3600,
		TrendPoints:      10,
		FillerRateWindow: time.Minute,
		Thresholds:       DefaultThresholds(),
	}
}

var ErrUnknownSession = errors.New("unknown session")

type session struct {
	mu sync.Mutex

	id      string
	started time.Time

	posture    *ring[float64]
	eyeContact *ring[float64]
	fillers    *ring[time.Time]
	words      int

	feedback *ring[Feedback]
	recent   *ring[Feedback]

	postureHist *ring[MetricPoint]
	eyeHist     *ring[MetricPoint]
	paceHist    *ring[MetricPoint]
	fillerHist  *ring[MetricPoint]
}

// Service is safe for concurrent use. Ticks for different sessions only
// share the registry read lock.
type Service struct {
	opts Options
	log  logrus.FieldLogger

	mu       sync.RWMutex
	sessions map[string]*session
}

func NewService(opts Options, log logrus.FieldLogger) *Service {
	if log == nil {
		log = logrus.StandardLogger()
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	if opts.Signals == nil {
		opts.Signals = NewSimulatedSignals(defaultFillerProbability, 0)
	}
	if opts.TrendPoints < 2 {
		opts.TrendPoints = 10
	}
	if opts.FillerRateWindow <= 0 {
		opts.FillerRateWindow = time.Minute
	}
	return &Service{
		opts:     opts,
		log:      log.WithField("component", "realtime"),
		sessions: make(map[string]*session),
	}
}

// Start opens a session and returns its id, generating one when id is
// empty. Starting an active id resets it.
func (s *Service) Start(id string) string {
	if id == "" {
		id = ulid.Make().String()
	}
	o := s.opts
	sess := &session{
		id:          id,
		started:     o.Clock(),
		posture:     newRing[float64](o.PostureWindow),
		eyeContact:  newRing[float64](o.EyeContactWindow),
		fillers:     newRing[time.Time](o.FillerWindow),
		feedback:    newRing[Feedback](o.FeedbackHistory),
		recent:      newRing[Feedback](o.RecentMessages),
		postureHist: newRing[MetricPoint](o.MetricHistory),
		eyeHist:     newRing[MetricPoint](o.MetricHistory),
		paceHist:    newRing[MetricPoint](o.MetricHistory),
		fillerHist:  newRing[MetricPoint](o.MetricHistory),
	}

	s.mu.Lock()
	s.sessions[id] = sess
	s.mu.Unlock()

	s.log.WithField("session_id", id).Info("realtime session started")
	return id
}

// End discards the session. Unknown ids are ignored.
func (s *Service) End(id string) {
	s.mu.Lock()
	_, ok := s.sessions[id]
	delete(s.sessions, id)
	s.mu.Unlock()
	if ok {
		s.log.WithField("session_id", id).Info("realtime session ended")
	}
}

// Active lists the open session ids in sorted order.
func (s *Service) Active() []string {
	s.mu.RLock()
	ids := make([]string, 0, len(s.sessions))
	for id := range s.sessions {
		ids = append(ids, id)
	}
	s.mu.RUnlock()
	sort.Strings(ids)
	return ids
}

func (s *Service) get(id string) *session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sessions[id]
}

// AnalyzeRaw decodes the frame payload and analyzes it. An unreadable
// payload is scored as an empty frame.
func (s *Service) AnalyzeRaw(id string, payload, audio []byte) Feedback {
	f, err := DecodeFrame(payload)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"session_id": id,
			"kind":       outcome.KindOf(err),
		}).WithError(err).Debug("frame decoded with defaults")
	}
	return s.AnalyzeFrame(id, f, audio)
}

// AnalyzeFrame never fails: unknown sessions and internal errors both
// yield EmptyFeedback.
func (s *Service) AnalyzeFrame(id string, f Frame, audio []byte) Feedback {
	sess := s.get(id)
	if sess == nil {
		if !s.opts.AutoStart {
			return EmptyFeedback()
		}
		s.Start(id)
		sess = s.get(id)
		if sess == nil {
			return EmptyFeedback()
		}
	}
	res := outcome.Guard(s.log.WithField("session_id", id), "realtime", EmptyFeedback, func() (Feedback, error) {
		sess.mu.Lock()
		defer sess.mu.Unlock()
		return s.tick(sess, f, audio), nil
	})
	return res.Value
}

func (s *Service) tick(sess *session, f Frame, audio []byte) Feedback {
	th := s.opts.Thresholds
	now := s.opts.Clock()

	p := clamp100(f.PostureScore)
	e := clamp100(f.EyeContactScore)
	if p > 0 {
		sess.posture.push(p)
	}
	if e > 0 {
		sess.eyeContact.push(e)
	}
	pTrend := trend(sess.posture.last(s.opts.TrendPoints))
	eTrend := trend(sess.eyeContact.last(s.opts.TrendPoints))

	fb := Feedback{
		Timestamp: now,
		Posture: PostureFeedback{
			Score:            int(p),
			EyeContactScore:  int(e),
			PostureStatus:    th.postureStatus(p),
			EyeContactStatus: th.eyeContactStatus(e),
			PostureTrend:     pTrend,
			EyeContactTrend:  eTrend,
			Messages: map[string]string{
				"posture":     th.postureMessage(p, pTrend),
				"eye_contact": th.eyeContactMessage(e),
			},
		},
		Speech: SpeechFeedback{Messages: map[string]string{}},
	}

	sig := signals{}
	sig.posture, _ = sess.posture.latest()
	sig.eyeContact, _ = sess.eyeContact.latest()

	if len(audio) > 0 {
		sig.hasSpeech = true
		sig.wpm, sig.fillerRate = s.listen(sess, now, audio)
		fb.Speech = SpeechFeedback{
			CurrentWPM:   sig.wpm,
			FillerRate:   sig.fillerRate,
			PaceStatus:   th.paceStatus(sig.wpm),
			FillerStatus: th.fillerStatus(sig.fillerRate),
			Messages: map[string]string{
				"pace":         th.paceMessage(sig.wpm),
				"filler_words": th.fillerMessage(sig.fillerRate),
			},
		}
	}

	fb.OverallScore = th.incrementalScore(sig)
	fb.AlertLevel = alertLevel(fb.OverallScore)
	fb.Suggestions = th.suggestions(sig, fb.OverallScore)

	sess.postureHist.push(MetricPoint{now, p})
	sess.eyeHist.push(MetricPoint{now, e})
	sess.paceHist.push(MetricPoint{now, sig.wpm})
	sess.fillerHist.push(MetricPoint{now, float64(sig.fillerRate)})
	sess.feedback.push(fb.clone())
	sess.recent.push(fb.clone())
	return fb
}

// listen updates the speech bookkeeping and returns the session pace and
// the number of fillers inside the trailing rate window.
func (s *Service) listen(sess *session, now time.Time, audio []byte) (float64, int) {
	sig := s.opts.Signals.Process(audio)
	sess.words += sig.Words
	for i := 0; i < sig.Fillers; i++ {
		sess.fillers.push(now)
	}

	var wpm float64
	if elapsed := now.Sub(sess.started); elapsed > 0 {
		wpm = math.Round(float64(sess.words) / elapsed.Minutes())
	}
	rate := 0
	for _, t := range sess.fillers.items() {
		if now.Sub(t) < s.opts.FillerRateWindow {
			rate++
		}
	}
	return wpm, rate
}

// Summary aggregates the feedback history of an active session.
func (s *Service) Summary(id string) (Summary, error) {
	sess := s.get(id)
	if sess == nil {
		return Summary{}, ErrUnknownSession
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()

	hist := sess.feedback.items()
	sum := Summary{
		SessionID:     id,
		Duration:      s.opts.Clock().Sub(sess.started),
		FeedbackCount: len(hist),
	}
	if len(hist) == 0 {
		return sum, nil
	}
	var posture, eye, overall []float64
	for _, fb := range hist {
		if fb.Posture.Score > 0 {
			posture = append(posture, float64(fb.Posture.Score))
		}
		if fb.Posture.EyeContactScore > 0 {
			eye = append(eye, float64(fb.Posture.EyeContactScore))
		}
		overall = append(overall, float64(fb.OverallScore))
	}
	sum.AveragePosture = mean(posture)
	sum.AverageEyeContact = mean(eye)
	sum.AverageOverallScore = mean(overall)
	last := hist[len(hist)-1].clone()
	sum.LastFeedback = &last
	return sum, nil
}

// Recent returns the last few feedback objects, oldest first.
func (s *Service) Recent(id string) ([]Feedback, error) {
	sess := s.get(id)
	if sess == nil {
		return nil, ErrUnknownSession
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	out := sess.recent.items()
	for i := range out {
		out[i] = out[i].clone()
	}
	return out, nil
}

func (s *Service) History(id string) (History, error) {
	sess := s.get(id)
	if sess == nil {
		return History{}, ErrUnknownSession
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return History{
		Posture:    sess.postureHist.items(),
		EyeContact: sess.eyeHist.items(),
		Pace:       sess.paceHist.items(),
		FillerRate: sess.fillerHist.items(),
	}, nil
}

func mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	return stat.Mean(xs, nil)
}

func clamp100(v float64) float64 {
	if math.IsNaN(v) || v <= 0 {
		return 0
	}
	return math.Min(100, v)
}
