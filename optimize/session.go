package optimize

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/trickybestia/cocsim/replay"
	"github.com/trickybestia/cocsim/status"
)

// MessageKind tags session messages
type MessageKind string

const (
	MessageProgress MessageKind = "progress"
	MessageResult   MessageKind = "result"
)

// Message is one entry of a session's progress stream
// The stream is any number of progress messages followed by exactly one result
type Message struct {
	Session uuid.UUID      `json:"session"`
	Kind    MessageKind    `json:"kind"`
	Step    int            `json:"step"`
	Steps   int            `json:"steps"`
	Text    string         `json:"text,omitempty"`
	Best    *Scored        `json:"best,omitempty"`
	Replay  *replay.Replay `json:"-"`
}

// Session drives an optimizer for a fixed number of steps and renders the winner
type Session struct {
	ID uuid.UUID

	pr    *Problem
	opt   Optimizer
	steps int
	every int

	statSteps     *atomic.Int64
	statSessions  *atomic.Int64
	statCancelled *atomic.Int64
	statBest      *status.AtomicFloat
}

// NewSession creates a session running steps steps of opt
// The final replay keeps every n-th tick
func NewSession(pr *Problem, opt Optimizer, steps, every int) *Session {
	reg := pr.Eval.Status()
	return &Session{
		ID:            uuid.New(),
		pr:            pr,
		opt:           opt,
		steps:         max(steps, 1),
		every:         max(every, 1),
		statSteps:     reg.Ints.Get("session.steps"),
		statSessions:  reg.Ints.Get("session.started"),
		statCancelled: reg.Ints.Get("session.cancelled"),
		statBest:      reg.Floats.Get("session.best_score"),
	}
}

// Run steps the optimizer, emitting progress after each step and the result at the end
// A cancelled context stops the session without a result message
func (s *Session) Run(ctx context.Context, emit func(Message) error) (Scored, error) {
	s.statSessions.Add(1)
	log.Printf("session %s: started, %d steps", s.ID, s.steps)

	var best Scored
	for step := 1; step <= s.steps; step++ {
		b, err := s.opt.Step(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				s.statCancelled.Add(1)
				log.Printf("session %s: cancelled at step %d", s.ID, step)
			}
			return Scored{}, err
		}
		best = b
		s.statSteps.Add(1)
		s.statBest.StoreMax(best.Stats.Score)

		msg := Message{
			Session: s.ID,
			Kind:    MessageProgress,
			Step:    step,
			Steps:   s.steps,
			Text:    Describe(step, s.steps, best.Stats),
			Best:    &best,
		}
		if err := emit(msg); err != nil {
			return Scored{}, err
		}
	}

	if err := ctx.Err(); err != nil {
		return Scored{}, err
	}
	r, err := replay.Materialize(s.pr.Map, best.Plan, s.pr.Eval.Seed(), s.every)
	if err != nil {
		return Scored{}, err
	}
	log.Printf("session %s: finished, score %.1f", s.ID, best.Stats.Score)
	res := Message{
		Session: s.ID,
		Kind:    MessageResult,
		Step:    s.steps,
		Steps:   s.steps,
		Text:    r.Frames[len(r.Frames)-1].Progress,
		Best:    &best,
		Replay:  r,
	}
	if err := emit(res); err != nil {
		return Scored{}, err
	}
	return best, nil
}

// Describe formats one progress line
func Describe(step, steps int, st Stats) string {
	return fmt.Sprintf("step %d/%d: score %.1f | %.0f%% avg (%.0f-%.0f%%) | %.1f star | %.1f s",
		step, steps, st.Score, st.AvgPercentage, st.MinPercentage, st.MaxPercentage, st.AvgStars, st.AvgTime)
}
