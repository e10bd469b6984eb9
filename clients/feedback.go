package clients

import (
	"context"
	"strings"
)

// FeedbackReq is the report digest sent to the generative feedback service.
type FeedbackReq struct {
	Transcript       string             `json:"transcript"`
	TopicKeywords    []string           `json:"topic_keywords,omitempty"`
	OverallScore     float64            `json:"overall_score"`
	PerformanceLevel string             `json:"performance_level"`
	Breakdown        map[string]float64 `json:"breakdown"`
	Recommendations  []string           `json:"recommendations"`
	WordsPerMinute   float64            `json:"words_per_minute"`
	FillerWords      int                `json:"filler_words"`
	Pauses           int                `json:"pauses"`
}

type feedbackResp struct {
	Feedback string `json:"feedback"`
}

func (h *HTTP) GenerateFeedback(ctx context.Context, ep Endpoint, req FeedbackReq) (string, error) {
	var out feedbackResp
	if err := h.postJSON(ctx, ep, "/feedback", "feedback", req, &out); err != nil {
		return "", err
	}
	return strings.TrimSpace(out.Feedback), nil
}
