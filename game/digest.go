package game

import (
	"encoding/binary"
	"fmt"
	"math"
	"reflect"

	"github.com/cespare/xxhash/v2"
	"github.com/plus3/tanks/ecs"
)

// Digest hashes the complete simulation state: every live entity in id
// order with each of its components. Two worlds built from the same seed
// and fed the same inputs and time steps produce the same digest.
func (w *World) Digest() uint64 {
	d := xxhash.New()
	var buf []byte
	for _, e := range w.storage.Entities() {
		buf = binary.LittleEndian.AppendUint64(buf[:0], uint64(e))
		for _, c := range w.storage.Components(e) {
			buf = appendComponent(buf, c)
		}
		d.Write(buf)
	}
	return d.Sum64()
}

func appendFloat(buf []byte, fs ...float32) []byte {
	for _, f := range fs {
		buf = binary.LittleEndian.AppendUint32(buf, math.Float32bits(f))
	}
	return buf
}

func appendBool(buf []byte, b bool) []byte {
	if b {
		return append(buf, 1)
	}
	return append(buf, 0)
}

func appendComponent(buf []byte, c any) []byte {
	buf = append(buf, reflect.TypeOf(c).Elem().Name()...)
	switch c := c.(type) {
	case *Transform:
		buf = appendFloat(buf, c.Position[:]...)
		buf = appendFloat(buf, c.Yaw)
		buf = appendFloat(buf, c.Scale[:]...)
	case *Velocity:
		buf = appendFloat(buf, c.Linear, c.Angular)
	case *Weapon:
		buf = appendFloat(buf, c.FireRate, c.BulletSpeed, c.Cooldown)
		buf = appendBool(buf, c.Active)
	case *IntentToFire:
		buf = appendBool(buf, c.Active)
	case *Expirable:
		buf = appendFloat(buf, c.RemainingTime)
	case *Renderable:
		if c.Mesh != nil {
			buf = append(buf, c.Mesh.Name...)
			buf = binary.LittleEndian.AppendUint32(buf, uint32(len(c.Mesh.Vertices)))
		}
	case *Motion:
		for _, q := range [][]MotionSegment{c.Linear, c.Angular} {
			buf = binary.LittleEndian.AppendUint32(buf, uint32(len(q)))
			for _, seg := range q {
				buf = append(buf, byte(seg.Kind))
				buf = appendFloat(buf, seg.Rate, seg.Duration, seg.Elapsed)
			}
		}
	case *Player:
		buf = binary.LittleEndian.AppendUint32(buf, uint32(c.Slot))
	case *Tank, *Bot, *Bullet, *Barrier:
	default:
		buf = fmt.Appendf(buf, "%+v", c)
	}
	return buf
}

// EntityDigest hashes a single entity's components; zero if it has none.
func (w *World) EntityDigest(e ecs.Entity) uint64 {
	components := w.storage.Components(e)
	if len(components) == 0 {
		return 0
	}
	var buf []byte
	for _, c := range components {
		buf = appendComponent(buf, c)
	}
	return xxhash.Sum64(buf)
}
