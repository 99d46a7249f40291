package game

import "fmt"

// AIMode selects how bots pick their velocity.
type AIMode string

const (
	// AIRandom re-rolls every bot's velocity each tick.
	AIRandom AIMode = "random"
	// AIScripted drives bots from queued uniform/turn motion segments.
	AIScripted AIMode = "scripted"
)

// Settings holds the tunables of a session.
type Settings struct {
	Players     int
	Bots        int
	AI          AIMode
	FireRate    float32
	BulletSpeed float32
	BulletTTL   float32
}

// DefaultSettings returns the standard two-player setup.
func DefaultSettings() Settings {
	return Settings{
		Players:     2,
		Bots:        5,
		AI:          AIRandom,
		FireRate:    0.5,
		BulletSpeed: 16,
		BulletTTL:   8,
	}
}

// Validate checks the settings for values the systems cannot work with.
func (s Settings) Validate() error {
	if s.Players < 0 || s.Players > len(PlayerBindings) {
		return fmt.Errorf("players must be between 0 and %d, got %d", len(PlayerBindings), s.Players)
	}
	if s.Bots < 0 {
		return fmt.Errorf("bots must not be negative, got %d", s.Bots)
	}
	if s.AI != AIRandom && s.AI != AIScripted {
		return fmt.Errorf("unknown ai mode %q", s.AI)
	}
	if s.FireRate <= 0 {
		return fmt.Errorf("fire rate must be positive, got %g", s.FireRate)
	}
	return nil
}
