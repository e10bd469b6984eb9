// Package orchestrator runs a completed recording through speech
// extraction, posture aggregation and scoring, and persists the report.
package orchestrator

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/omkar-jagtap8443/Talk-genius/clients"
	cfg "github.com/omkar-jagtap8443/Talk-genius/config"
	"github.com/omkar-jagtap8443/Talk-genius/outcome"
	"github.com/omkar-jagtap8443/Talk-genius/posture"
	"github.com/omkar-jagtap8443/Talk-genius/report"
	"github.com/omkar-jagtap8443/Talk-genius/scoring"
	"github.com/omkar-jagtap8443/Talk-genius/speech"
)

type Pipeline struct {
	cfg        *cfg.Root
	http       *clients.HTTP
	engine     *scoring.Engine
	aggregator *posture.Aggregator
	store      report.Store
	log        logrus.FieldLogger
	now        func() time.Time
}

func NewPipeline(c *cfg.Root, store report.Store, log logrus.FieldLogger) *Pipeline {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Pipeline{
		cfg:        c,
		http:       clients.NewHTTP(c.Services.ASR.Timeout()),
		engine:     scoring.NewEngine(c.Weights(), log),
		aggregator: posture.NewAggregator(c.PostureOptions(), log),
		store:      store,
		log:        log,
		now:        time.Now,
	}
}

func endpoint(s cfg.Service) clients.Endpoint {
	return clients.Endpoint{URL: s.URL, APIKey: s.APIKey()}
}

// Run always yields a complete report unless the inputs cannot be read or
// the report cannot be stored. Degraded components are listed on it.
func (p *Pipeline) Run(ctx context.Context, in Input) (*report.Report, error) {
	sid := in.SessionID
	if sid == "" {
		sid = report.NewSessionID()
	}
	log := p.log.WithField("session_id", sid)
	degraded := map[string]outcome.Kind{}
	note := func(component string, err error) {
		if err != nil {
			degraded[component] = outcome.KindOf(err)
		}
	}

	tr, err := p.transcript(ctx, in, log)
	if err != nil {
		return nil, err
	}
	note("transcript", tr.Err)

	raw, err := p.postureData(in)
	if err != nil {
		return nil, err
	}
	note("posture_input", raw.Err)

	sm := speech.TryExtract(log, tr.Value)
	note("speech", sm.Err)
	pa := p.aggregator.TryAggregate(raw.Value)
	note("posture", pa.Err)

	keywords := p.keywords(ctx, in, log)
	sc := p.engine.TryScore(&pa.Value, &sm.Value, keywords)
	note("scoring", sc.Err)

	r := &report.Report{
		SessionID:       sid,
		Title:           in.Title,
		CreatedAt:       p.now().UTC(),
		SpeechAnalysis:  sm.Value,
		PostureAnalysis: pa.Value,
		OverallScore:    sc.Value,
		Transcript:      sm.Value.Transcript,
		TopicKeywords:   keywords,
	}
	if len(degraded) > 0 {
		r.Degraded = degraded
	}

	r.AIFeedback = p.feedback(ctx, r, log)
	r.Charts = p.charts(ctx, r, log)

	if err := p.persist(ctx, r); err != nil {
		return nil, err
	}
	log.WithFields(logrus.Fields{
		"total": r.OverallScore.Total,
		"level": r.OverallScore.PerformanceLevel,
	}).Info("report saved")
	return r, nil
}

// transcript loads the transcript file, or transcribes the audio. An ASR
// failure degrades to an empty transcript.
func (p *Pipeline) transcript(ctx context.Context, in Input, log logrus.FieldLogger) (outcome.Result[speech.Transcript], error) {
	switch {
	case in.TranscriptPath != "":
		b, err := os.ReadFile(in.TranscriptPath)
		if err != nil {
			return outcome.Result[speech.Transcript]{}, fmt.Errorf("read transcript: %w", err)
		}
		t, err := speech.Decode(b)
		return outcome.Result[speech.Transcript]{Value: t, Err: err}, nil
	case in.AudioPath != "" && endpoint(p.cfg.Services.ASR).Enabled():
		t, err := p.http.Transcribe(ctx, endpoint(p.cfg.Services.ASR), in.AudioPath)
		if err != nil {
			log.WithError(err).Warn("transcription failed, scoring without speech")
			return outcome.Result[speech.Transcript]{Err: fmt.Errorf("%w: %v", outcome.ErrNoData, err)}, nil
		}
		return outcome.Result[speech.Transcript]{Value: t}, nil
	case in.AudioPath != "":
		log.Warn("no transcription service configured, scoring without speech")
		return outcome.Result[speech.Transcript]{Err: outcome.ErrNoData}, nil
	default:
		return outcome.Result[speech.Transcript]{Err: outcome.ErrNoData}, nil
	}
}

func (p *Pipeline) postureData(in Input) (outcome.Result[posture.RawData], error) {
	if in.PosturePath == "" {
		return outcome.Result[posture.RawData]{Err: outcome.ErrNoData}, nil
	}
	b, err := os.ReadFile(in.PosturePath)
	if err != nil {
		return outcome.Result[posture.RawData]{}, fmt.Errorf("read posture data: %w", err)
	}
	raw, err := posture.Decode(b)
	return outcome.Result[posture.RawData]{Value: raw, Err: err}, nil
}

func (p *Pipeline) keywords(ctx context.Context, in Input, log logrus.FieldLogger) []string {
	if len(in.Keywords) > 0 {
		return in.Keywords
	}
	text := strings.TrimSpace(in.TopicText)
	ep := endpoint(p.cfg.Services.Keywords)
	if text == "" || !ep.Enabled() {
		return []string{}
	}
	kw, err := p.http.ExtractKeywords(ctx, ep, text, p.cfg.Scoring.MaxKeywords)
	if err != nil {
		log.WithError(err).Warn("keyword extraction failed, scoring without keywords")
		return []string{}
	}
	return kw
}

func (p *Pipeline) feedback(ctx context.Context, r *report.Report, log logrus.FieldLogger) string {
	ep := endpoint(p.cfg.Services.Feedback)
	if !ep.Enabled() {
		return ""
	}
	fb, err := p.http.GenerateFeedback(ctx, ep, feedbackRequest(r))
	if err != nil {
		log.WithError(err).Warn("feedback generation failed")
		return ""
	}
	return fb
}

func (p *Pipeline) charts(ctx context.Context, r *report.Report, log logrus.FieldLogger) map[string]string {
	ep := endpoint(p.cfg.Services.Visualization)
	if !ep.Enabled() {
		return nil
	}
	dir, err := mkOutputDir(p.cfg.Paths.Outputs, r.SessionID)
	if err != nil {
		log.WithError(err).Warn("cannot create chart directory")
		return nil
	}

	charts := map[string]string{}
	if tl := timelineRequest(r.SessionID, r.PostureAnalysis, dir); len(tl.Seconds) > 0 {
		resp, err := p.http.GenerateTimeline(ctx, ep, tl)
		if err != nil {
			log.WithError(err).Warn("timeline chart failed")
		} else {
			charts["timeline"] = resp.Path
		}
	}
	resp, err := p.http.GenerateRadar(ctx, ep, radarRequest(r, dir))
	if err != nil {
		log.WithError(err).Warn("radar chart failed")
	} else {
		charts["radar"] = resp.Path
	}
	if len(charts) == 0 {
		return nil
	}
	return charts
}
