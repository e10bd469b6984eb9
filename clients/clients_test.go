package clients

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serve(t *testing.T, h http.HandlerFunc) Endpoint {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return Endpoint{URL: srv.URL + "/", APIKey: "secret"}
}

func TestTranscribe(t *testing.T) {
	audio := filepath.Join(t.TempDir(), "take1.wav")
	require.NoError(t, os.WriteFile(audio, []byte("RIFFfake"), 0o644))

	ep := serve(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/transcribe", r.URL.Path)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		f, hdr, err := r.FormFile("file")
		if !assert.NoError(t, err) {
			return
		}
		defer f.Close()
		body, _ := io.ReadAll(f)
		assert.Equal(t, "take1.wav", hdr.Filename)
		assert.Equal(t, "RIFFfake", string(body))

		io.WriteString(w, `{"transcript":"Hi there","confidence":0.9,
			"words":[{"word":"Hi","start":0,"end":0.3},{"text":"there","start":0.4,"end":0.8},{"word":"?"}]}`)
	})

	tr, err := NewHTTP(time.Second).Transcribe(context.Background(), ep, audio)
	require.NoError(t, err)
	assert.Equal(t, "Hi there", tr.Text)
	require.Len(t, tr.Words, 2)
	assert.Equal(t, "there", tr.Words[1].Text)
}

func TestTranscribe_ServiceError(t *testing.T) {
	audio := filepath.Join(t.TempDir(), "a.wav")
	require.NoError(t, os.WriteFile(audio, []byte("x"), 0o644))
	ep := serve(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model offline", http.StatusServiceUnavailable)
	})

	_, err := NewHTTP(time.Second).Transcribe(context.Background(), ep, audio)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "asr 503")
	assert.Contains(t, err.Error(), "model offline")
}

func TestTranscribe_UnusablePayload(t *testing.T) {
	audio := filepath.Join(t.TempDir(), "a.wav")
	require.NoError(t, os.WriteFile(audio, []byte("x"), 0o644))
	ep := serve(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `[1,2]`)
	})

	_, err := NewHTTP(time.Second).Transcribe(context.Background(), ep, audio)
	assert.ErrorContains(t, err, "asr decode")
}

func TestExtractKeywords(t *testing.T) {
	ep := serve(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/keywords", r.URL.Path)
		var req keywordsReq
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "Go concurrency talk", req.Text)
		assert.Equal(t, 5, req.Max)
		io.WriteString(w, `{"keywords":["Go"," concurrency ","","go","channels"]}`)
	})

	kw, err := NewHTTP(time.Second).ExtractKeywords(context.Background(), ep, "Go concurrency talk", 5)
	require.NoError(t, err)
	assert.Equal(t, []string{"Go", "concurrency", "channels"}, kw)
}

func TestGenerateFeedback(t *testing.T) {
	ep := serve(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/feedback", r.URL.Path)
		var req FeedbackReq
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, 72.5, req.OverallScore)
		io.WriteString(w, `{"feedback":"  Solid pacing.  "}`)
	})

	fb, err := NewHTTP(time.Second).GenerateFeedback(context.Background(), ep, FeedbackReq{OverallScore: 72.5})
	require.NoError(t, err)
	assert.Equal(t, "Solid pacing.", fb)
}

func TestCharts(t *testing.T) {
	ep := serve(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/generate-timeline":
			var req TimelineReq
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, []float64{0, 1}, req.Seconds)
			io.WriteString(w, `{"status":"ok","path":"/tmp/timeline.png"}`)
		case "/generate-radar":
			io.WriteString(w, `{"status":"ok","path":"/tmp/radar.png"}`)
		default:
			http.NotFound(w, r)
		}
	})
	h := NewHTTP(time.Second)

	tl, err := h.GenerateTimeline(context.Background(), ep, TimelineReq{Seconds: []float64{0, 1}})
	require.NoError(t, err)
	assert.Equal(t, "/tmp/timeline.png", tl.Path)

	rd, err := h.GenerateRadar(context.Background(), ep, RadarReq{Categories: []string{"posture"}, Values: []float64{80}})
	require.NoError(t, err)
	assert.Equal(t, "/tmp/radar.png", rd.Path)
}

func TestEndpoint(t *testing.T) {
	assert.False(t, Endpoint{}.Enabled())
	assert.False(t, Endpoint{URL: "  "}.Enabled())
	assert.True(t, Endpoint{URL: "http://x"}.Enabled())
	assert.Equal(t, "http://x/keywords", Endpoint{URL: "http://x//"}.url("/keywords"))
}
