// Package report defines the persisted result of one practice session and
// the stores that keep it.
package report

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/omkar-jagtap8443/Talk-genius/outcome"
	"github.com/omkar-jagtap8443/Talk-genius/posture"
	"github.com/omkar-jagtap8443/Talk-genius/scoring"
	"github.com/omkar-jagtap8443/Talk-genius/speech"
)

var (
	ErrNotFound  = errors.New("report not found")
	ErrInvalidID = errors.New("invalid report ID")
)

// Report is immutable once saved.
type Report struct {
	SessionID       string               `json:"session_id"`
	Title           string               `json:"title,omitempty"`
	CreatedAt       time.Time            `json:"created_at"`
	SpeechAnalysis  speech.Metrics       `json:"speech_analysis"`
	PostureAnalysis posture.Analysis     `json:"posture_analysis"`
	OverallScore    scoring.OverallScore `json:"overall_score"`
	Transcript      string               `json:"transcript"`
	TopicKeywords   []string             `json:"topic_keywords"`
	AIFeedback      string               `json:"ai_feedback,omitempty"`
	Charts          map[string]string    `json:"charts,omitempty"`

	// Degraded names the components that fell back, with the reason kind.
	Degraded map[string]outcome.Kind `json:"degraded,omitempty"`
}

// Summary is the listing view of a report.
type Summary struct {
	SessionID        string    `json:"session_id"`
	Title            string    `json:"title,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
	Total            float64   `json:"total"`
	PerformanceLevel string    `json:"performance_level"`
}

func (r *Report) Summary() Summary {
	return Summary{
		SessionID:        r.SessionID,
		Title:            r.Title,
		CreatedAt:        r.CreatedAt,
		Total:            r.OverallScore.Total,
		PerformanceLevel: r.OverallScore.PerformanceLevel,
	}
}

func NewSessionID() string { return uuid.NewString() }

// Store persists reports keyed by session id.
type Store interface {
	Save(ctx context.Context, r *Report) error
	Load(ctx context.Context, id string) (*Report, error)
	// List returns summaries, newest first.
	List(ctx context.Context) ([]Summary, error)
	Close() error
}

const (
	DriverFile   = "file"
	DriverSQLite = "sqlite"
)

// Open returns the store for driver. path is a directory for the file
// driver and a database file for sqlite.
func Open(driver, path string, compress bool) (Store, error) {
	switch strings.ToLower(driver) {
	case "", DriverFile:
		return NewFileStore(path, compress)
	case DriverSQLite:
		return NewSQLiteStore(path)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", driver)
	}
}

func validID(id string) bool {
	return id != "" && id != "." && id != ".." && !strings.ContainsAny(id, `/\`)
}
