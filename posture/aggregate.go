// Package posture aligns posture and eye-contact sample streams into
// one-second buckets and summarises them.
package posture

import (
	"math"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/floats/scalar"
	"gonum.org/v1/gonum/stat"

	"github.com/omkar-jagtap8443/Talk-genius/outcome"
)

type Options struct {
	Thresholds Thresholds
	// FallbackDefaults substitutes plausible non-zero numbers when there is
	// no data at all. The analysis is still marked insufficient_data.
	FallbackDefaults bool
}

func DefaultOptions() Options {
	return Options{Thresholds: DefaultThresholds(), FallbackDefaults: true}
}

type Aggregator struct {
	opts Options
	log  logrus.FieldLogger
}

func NewAggregator(opts Options, log logrus.FieldLogger) *Aggregator {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Aggregator{opts: opts, log: log}
}

// Aggregate uses the default thresholds and fallback policy.
func Aggregate(raw RawData) Analysis {
	return NewAggregator(DefaultOptions(), nil).Aggregate(raw)
}

func (a *Aggregator) Aggregate(raw RawData) Analysis {
	return a.TryAggregate(raw).Value
}

func (a *Aggregator) TryAggregate(raw RawData) outcome.Result[Analysis] {
	return outcome.Guard(a.log, "posture", a.fallback, func() (Analysis, error) {
		return a.aggregate(raw)
	})
}

func (a *Aggregator) aggregate(raw RawData) (Analysis, error) {
	buckets := map[int]*Bucket{}
	var postureAll, eyeAll []float64

	add := func(s Sample, eye bool) {
		score, ok := accepted(s)
		if !ok {
			return
		}
		sec := int(math.Floor(s.Timestamp))
		b := buckets[sec]
		if b == nil {
			b = &Bucket{PostureScores: []float64{}, EyeContactScores: []float64{}}
			buckets[sec] = b
		}
		if eye {
			b.EyeContactScores = append(b.EyeContactScores, score)
			eyeAll = append(eyeAll, score)
		} else {
			b.PostureScores = append(b.PostureScores, score)
			postureAll = append(postureAll, score)
		}
	}
	for _, s := range raw.Posture {
		add(s, false)
	}
	for _, s := range raw.EyeContact {
		add(s, true)
	}

	if len(buckets) == 0 {
		return a.fallback(), outcome.ErrNoData
	}

	var pGood, pOkay, pBad, pTotal float64
	var eGood, eMod, ePoor, eTotal float64
	out := Analysis{Status: StatusOK, SecondBySecond: make(map[int]Bucket, len(buckets))}
	for sec, b := range buckets {
		b.Samples = max(len(b.PostureScores), len(b.EyeContactScores))
		out.SecondBySecond[sec] = *b

		if len(b.PostureScores) > 0 {
			pTotal++
			switch a.opts.Thresholds.ClassifyPosture(stat.Mean(b.PostureScores, nil)) {
			case PostureGood:
				pGood++
			case PostureOkay:
				pOkay++
			default:
				pBad++
			}
		}
		if len(b.EyeContactScores) > 0 {
			eTotal++
			switch a.opts.Thresholds.ClassifyEyeContact(stat.Mean(b.EyeContactScores, nil)) {
			case EyeGood:
				eGood++
			case EyeModerate:
				eMod++
			default:
				ePoor++
			}
		}
	}

	out.RecordingTime = len(buckets)
	out.Summary = Summary{
		AveragePostureScore:    mean1(postureAll),
		AverageEyeContactScore: mean1(eyeAll),
		PostureBreakdown: PostureBreakdown{
			GoodPercentage: pct(pGood, pTotal),
			OkayPercentage: pct(pOkay, pTotal),
			BadPercentage:  pct(pBad, pTotal),
		},
		EyeContactBreakdown: EyeContactBreakdown{
			GoodPercentage:     pct(eGood, eTotal),
			ModeratePercentage: pct(eMod, eTotal),
			PoorPercentage:     pct(ePoor, eTotal),
		},
		TotalRecordingSeconds: len(buckets),
	}
	return out, nil
}

func (a *Aggregator) fallback() Analysis {
	if !a.opts.FallbackDefaults {
		return Analysis{Status: StatusInsufficientData, SecondBySecond: map[int]Bucket{}}
	}
	return Default()
}

// Default is the plausible analysis reported when capture produced nothing.
func Default() Analysis {
	return Analysis{
		Status: StatusInsufficientData,
		Summary: Summary{
			AveragePostureScore:    65,
			AverageEyeContactScore: 60,
			PostureBreakdown:       PostureBreakdown{GoodPercentage: 40, OkayPercentage: 45, BadPercentage: 15},
			EyeContactBreakdown:    EyeContactBreakdown{GoodPercentage: 35, ModeratePercentage: 50, PoorPercentage: 15},
		},
		SecondBySecond: map[int]Bucket{},
	}
}

// accepted reports whether a sample counts as a detection and returns its
// score clamped to 100.
func accepted(s Sample) (float64, bool) {
	if math.IsNaN(s.Score) || math.IsNaN(s.Timestamp) || math.IsInf(s.Timestamp, 0) {
		return 0, false
	}
	detected := s.Score > 0 || (s.Confidence != nil && *s.Confidence > 0)
	if !detected {
		return 0, false
	}
	return math.Max(0, math.Min(100, s.Score)), true
}

func mean1(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	return scalar.Round(stat.Mean(xs, nil), 1)
}

func pct(n, total float64) float64 {
	if total == 0 {
		return 0
	}
	return scalar.Round(n/total*100, 1)
}
