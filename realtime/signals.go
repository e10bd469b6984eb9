package realtime

import (
	"math/rand"
	"sync"
	"time"
)

// SpeechSignal is what a provider extracted from one audio chunk.
type SpeechSignal struct {
	Words   int
	Fillers int
}

// SignalProvider turns raw audio chunks into speech signals. A streaming
// recognizer can be plugged in here without touching the scoring math.
type SignalProvider interface {
	Process(audio []byte) SpeechSignal
}

// SimulatedSignals counts one word per chunk and flags a filler with a
// fixed probability. It stands in until streaming recognition exists.
type SimulatedSignals struct {
	FillerProbability float64

	mu  sync.Mutex
	rng *rand.Rand
}

const defaultFillerProbability = 0.05

func NewSimulatedSignals(p float64, seed int64) *SimulatedSignals {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &SimulatedSignals{
		FillerProbability: p,
		rng:               rand.New(rand.NewSource(seed)),
	}
}

func (s *SimulatedSignals) Process(audio []byte) SpeechSignal {
	sig := SpeechSignal{Words: 1}
	s.mu.Lock()
	roll := s.rng.Float64()
	s.mu.Unlock()
	if roll < s.FillerProbability {
		sig.Fillers = 1
	}
	return sig
}
