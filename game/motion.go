package game

import (
	"math"
	"math/rand/v2"
)

// MotionKind tells which velocity channel a segment drives.
type MotionKind uint8

const (
	// MotionUniform drives linear velocity.
	MotionUniform MotionKind = iota
	// MotionTurn drives angular velocity.
	MotionTurn
)

// MotionSegment holds Rate on its channel for Duration seconds.
type MotionSegment struct {
	Kind     MotionKind
	Rate     float32
	Duration float32
	Elapsed  float32
}

// Uniform returns a segment moving at velocity for duration seconds.
func Uniform(duration, velocity float32) MotionSegment {
	return MotionSegment{Kind: MotionUniform, Rate: velocity, Duration: duration}
}

// Turn returns a segment turning at rate for duration seconds.
func Turn(duration, rate float32) MotionSegment {
	return MotionSegment{Kind: MotionTurn, Rate: rate, Duration: duration}
}

// Motion is a pair of segment queues, one per velocity channel, consumed
// head first.
type Motion struct {
	Linear  []MotionSegment
	Angular []MotionSegment
}

// Push appends seg to the queue of its channel.
func (m *Motion) Push(seg MotionSegment) {
	if seg.Kind == MotionTurn {
		m.Angular = append(m.Angular, seg)
	} else {
		m.Linear = append(m.Linear, seg)
	}
}

// Step advances both queues by dt and writes the resulting velocity. A
// segment that ends partway through the tick contributes only for the part
// it was active. An empty queue leaves its channel at zero.
func (m *Motion) Step(v *Velocity, dt float32) {
	v.Linear, m.Linear = stepQueue(m.Linear, dt)
	v.Angular, m.Angular = stepQueue(m.Angular, dt)
}

func stepQueue(q []MotionSegment, dt float32) (float32, []MotionSegment) {
	if len(q) == 0 || dt <= 0 {
		return 0, q
	}
	head := &q[0]
	slice := min(dt, head.Duration-head.Elapsed)
	head.Elapsed += slice
	rate := head.Rate * slice / dt
	if head.Elapsed >= head.Duration {
		q = q[1:]
	}
	return rate, q
}

const (
	scriptedSegmentSeconds = 2
	scriptedSpeedStep      = 2
	scriptedTurnStep       = math.Pi / 16 * 2
)

// refill tops up empty queues with a random segment each.
func (m *Motion) refill(rng *rand.Rand) {
	if len(m.Linear) == 0 {
		m.Push(Uniform(scriptedSegmentSeconds, float32(rng.IntN(5))*scriptedSpeedStep))
	}
	if len(m.Angular) == 0 {
		m.Push(Turn(scriptedSegmentSeconds, float32(rng.IntN(9)-4)*scriptedTurnStep))
	}
}
