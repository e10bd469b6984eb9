package orchestrator

import "github.com/omkar-jagtap8443/Talk-genius/realtime"

// Input names the artifacts of one recorded session. Either a transcript
// file or an audio file for the ASR service supplies the speech side.
type Input struct {
	SessionID      string
	Title          string
	TranscriptPath string
	AudioPath      string
	PosturePath    string
	// Keywords wins over TopicText; TopicText is sent to the keyword
	// service when one is configured.
	Keywords  []string
	TopicText string
}

// Replay is the outcome of feeding a recorded posture stream through the
// live feedback service.
type Replay struct {
	SessionID string              `json:"session_id"`
	Feedback  []realtime.Feedback `json:"feedback"`
	Summary   realtime.Summary    `json:"summary"`
}
