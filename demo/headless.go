package demo

import (
	"context"
	"math/rand"

	"github.com/jakecoffman/cp"
)

const hitSpread = 24

// Summary describes a finished headless run.
type Summary struct {
	Frames  int
	Hits    int
	Deaths  int
	Cues    map[string]int
	Spawned map[string]int
}

// RunHeadless steps s for up to frames ticks, landing a hit near the target
// every interval ticks. It stops early once the target's body is gone or ctx
// is done.
func RunHeadless(ctx context.Context, s *Session, frames, interval int, rng *rand.Rand) (Summary, error) {
	if interval <= 0 {
		interval = 1
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}

	var sum Summary
	for i := 0; i < frames; i++ {
		if err := ctx.Err(); err != nil {
			return s.summary(sum), err
		}

		if i%interval == 0 {
			if pos, ok := s.Position(); ok && s.Controller().IsAlive() {
				at := cp.Vector{
					X: pos.X + (rng.Float64()*2-1)*hitSpread,
					Y: pos.Y + (rng.Float64()*2-1)*hitSpread,
				}
				if err := s.HitAt(at); err != nil {
					return s.summary(sum), err
				}
				sum.Hits++
			}
		}

		s.Step()

		if s.Controller() == nil {
			s.log.Info().Int("frame", s.Frames()).Msg("target despawned")
			break
		}
	}

	sum = s.summary(sum)
	s.log.Info().
		Int("frames", sum.Frames).
		Int("hits", sum.Hits).
		Int("deaths", sum.Deaths).
		Interface("cues", sum.Cues).
		Interface("spawned", sum.Spawned).
		Msg("headless run finished")
	return sum, nil
}

func (s *Session) summary(sum Summary) Summary {
	sum.Frames = s.Frames()
	sum.Deaths = s.Deaths()
	sum.Cues = make(map[string]int, len(s.Cues.Counts))
	for name, n := range s.Cues.Counts {
		sum.Cues[name] = n
	}
	sum.Spawned = make(map[string]int, len(s.Cues.Spawned))
	for name, n := range s.Cues.Spawned {
		sum.Spawned[name] = n
	}
	return sum
}
