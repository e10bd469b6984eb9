package orchestrator

import (
	"context"

	"github.com/omkar-jagtap8443/Talk-genius/realtime"
)

// RunReplay starts a live session, feeds it the frames in order and ends
// it. When withAudio is set every frame carries an audio chunk so that the
// speech signals advance too.
func RunReplay(ctx context.Context, svc *realtime.Service, id string, frames []realtime.Frame, withAudio bool) (*Replay, error) {
	id = svc.Start(id)
	defer svc.End(id)

	var audio []byte
	if withAudio {
		audio = []byte{0}
	}
	out := &Replay{SessionID: id, Feedback: make([]realtime.Feedback, 0, len(frames))}
	for _, f := range frames {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		out.Feedback = append(out.Feedback, svc.AnalyzeFrame(id, f, audio))
	}
	sum, err := svc.Summary(id)
	if err != nil {
		return nil, err
	}
	out.Summary = sum
	return out, nil
}
