package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"

	"github.com/omkar-jagtap8443/Talk-genius/speech"
)

// Transcribe uploads an audio file and returns the word-timed transcript.
// Words the service returned in an unusable shape are dropped; the rest of
// the transcript is returned without error.
func (h *HTTP) Transcribe(ctx context.Context, ep Endpoint, audioPath string) (speech.Transcript, error) {
	var b bytes.Buffer
	w := multipart.NewWriter(&b)

	fw, err := w.CreateFormFile("file", filepath.Base(audioPath))
	if err != nil {
		return speech.Transcript{}, err
	}
	fd, err := os.Open(audioPath)
	if err != nil {
		return speech.Transcript{}, err
	}
	defer fd.Close()

	if _, err = io.Copy(fw, fd); err != nil {
		return speech.Transcript{}, err
	}
	if err = w.Close(); err != nil {
		return speech.Transcript{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, ep.url("/transcribe"), &b)
	if err != nil {
		return speech.Transcript{}, err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	var raw json.RawMessage
	if err := h.do(req, ep, "asr", &raw); err != nil {
		return speech.Transcript{}, err
	}
	t, err := speech.Decode(raw)
	if err != nil && len(t.Words) == 0 && t.Text == "" {
		return speech.Transcript{}, fmt.Errorf("asr decode: %w", err)
	}
	return t, nil
}
