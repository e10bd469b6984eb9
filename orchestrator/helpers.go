package orchestrator

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats/scalar"
	"gonum.org/v1/gonum/stat"

	"github.com/omkar-jagtap8443/Talk-genius/clients"
	"github.com/omkar-jagtap8443/Talk-genius/posture"
	"github.com/omkar-jagtap8443/Talk-genius/realtime"
	"github.com/omkar-jagtap8443/Talk-genius/report"
	"github.com/omkar-jagtap8443/Talk-genius/scoring"
)

func seconds(buckets map[int]posture.Bucket) []int {
	secs := make([]int, 0, len(buckets))
	for s := range buckets {
		secs = append(secs, s)
	}
	sort.Ints(secs)
	return secs
}

func bucketMean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	return scalar.Round(stat.Mean(xs, nil), 1)
}

// timelineRequest lays the per-second buckets out in time order. Seconds
// without a sample of a stream plot as 0.
func timelineRequest(sid string, a posture.Analysis, outDir string) clients.TimelineReq {
	req := clients.TimelineReq{SessionID: sid, OutputDir: outDir}
	for _, s := range seconds(a.SecondBySecond) {
		b := a.SecondBySecond[s]
		req.Seconds = append(req.Seconds, float64(s))
		req.PostureScores = append(req.PostureScores, bucketMean(b.PostureScores))
		req.EyeContactScores = append(req.EyeContactScores, bucketMean(b.EyeContactScores))
	}
	return req
}

func radarRequest(r *report.Report, outDir string) clients.RadarReq {
	req := clients.RadarReq{Title: r.Title, OutputDir: outDir}
	if req.Title == "" {
		req.Title = r.SessionID
	}
	for _, c := range scoring.Categories {
		req.Categories = append(req.Categories, string(c))
		req.Values = append(req.Values, r.OverallScore.Breakdown[c])
	}
	return req
}

func feedbackRequest(r *report.Report) clients.FeedbackReq {
	bd := make(map[string]float64, len(r.OverallScore.Breakdown))
	for c, v := range r.OverallScore.Breakdown {
		bd[string(c)] = v
	}
	return clients.FeedbackReq{
		Transcript:       r.Transcript,
		TopicKeywords:    r.TopicKeywords,
		OverallScore:     r.OverallScore.Total,
		PerformanceLevel: r.OverallScore.PerformanceLevel,
		Breakdown:        bd,
		Recommendations:  r.OverallScore.Recommendations,
		WordsPerMinute:   r.SpeechAnalysis.WordsPerMinute,
		FillerWords:      r.SpeechAnalysis.FillerWords.TotalCount,
		Pauses:           r.SpeechAnalysis.Pauses.Count,
	}
}

// Frames turns a recorded capture stream into one live frame per second,
// from the first to the last second seen. Each frame carries the mean of
// the positive samples in its second; gaps become empty frames.
func Frames(raw posture.RawData) []realtime.Frame {
	type acc struct{ p, e []float64 }
	secs := map[int]*acc{}
	first, last := math.MaxInt, math.MinInt
	add := func(s posture.Sample, eye bool) {
		if s.Score <= 0 || math.IsNaN(s.Score) || math.IsNaN(s.Timestamp) || s.Timestamp < 0 {
			return
		}
		sec := int(math.Floor(s.Timestamp))
		a := secs[sec]
		if a == nil {
			a = &acc{}
			secs[sec] = a
		}
		if eye {
			a.e = append(a.e, s.Score)
		} else {
			a.p = append(a.p, s.Score)
		}
		first = min(first, sec)
		last = max(last, sec)
	}
	for _, s := range raw.Posture {
		add(s, false)
	}
	for _, s := range raw.EyeContact {
		add(s, true)
	}
	if len(secs) == 0 {
		return nil
	}

	out := make([]realtime.Frame, 0, last-first+1)
	for sec := first; sec <= last; sec++ {
		var f realtime.Frame
		if a := secs[sec]; a != nil {
			f.PostureScore = bucketMean(a.p)
			f.EyeContactScore = bucketMean(a.e)
		}
		out = append(out, f)
	}
	return out
}
