package clients

import "context"

// TimelineReq plots posture and eye contact per second of the recording.
type TimelineReq struct {
	SessionID        string    `json:"session_id"`
	Seconds          []float64 `json:"seconds"`
	PostureScores    []float64 `json:"posture_scores"`
	EyeContactScores []float64 `json:"eye_contact_scores"`
	OutputDir        string    `json:"output_dir,omitempty"`
}

type ChartResp struct {
	Status string `json:"status"`
	Path   string `json:"path"`
}

func (h *HTTP) GenerateTimeline(ctx context.Context, ep Endpoint, req TimelineReq) (*ChartResp, error) {
	var out ChartResp
	if err := h.postJSON(ctx, ep, "/generate-timeline", "viz timeline", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// RadarReq plots the category scores of one report.
type RadarReq struct {
	Categories []string  `json:"categories"`
	Values     []float64 `json:"values"`
	Title      string    `json:"title"`
	OutputDir  string    `json:"output_dir,omitempty"`
}

func (h *HTTP) GenerateRadar(ctx context.Context, ep Endpoint, req RadarReq) (*ChartResp, error) {
	var out ChartResp
	if err := h.postJSON(ctx, ep, "/generate-radar", "viz radar", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
