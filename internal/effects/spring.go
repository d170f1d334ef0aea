package effects

import "math"

// Spring maps a frame position to eased progress in [0, 1].
// Implementations must depend only on their arguments and configuration.
type Spring interface {
	Evaluate(frame, fps float64) float64
}

// DampedSpring is a mass-spring-damper released from rest at 0 towards 1.
// It is solved in closed form, so any frame can be evaluated directly.
type DampedSpring struct {
	Mass      float64 `yaml:"mass"`
	Stiffness float64 `yaml:"stiffness"`
	Damping   float64 `yaml:"damping"`
}

// DefaultSpring matches the content card slide-in: heavily overdamped, no overshoot.
func DefaultSpring() DampedSpring {
	return DampedSpring{Mass: 1, Stiffness: 100, Damping: 100}
}

func (s DampedSpring) normalized() DampedSpring {
	if s.Mass <= 0 {
		s.Mass = 1
	}
	if s.Stiffness <= 0 {
		s.Stiffness = 100
	}
	if s.Damping < 0 {
		s.Damping = 0
	}
	return s
}

// Evaluate returns the spring position at frame/fps seconds, clamped to [0, 1].
func (s DampedSpring) Evaluate(frame, fps float64) float64 {
	if frame <= 0 || fps <= 0 {
		return 0
	}
	s = s.normalized()
	t := frame / fps

	w0 := math.Sqrt(s.Stiffness / s.Mass)
	zeta := s.Damping / (2 * math.Sqrt(s.Stiffness*s.Mass))

	var x float64
	switch {
	case zeta < 1:
		wd := w0 * math.Sqrt(1-zeta*zeta)
		envelope := math.Exp(-zeta * w0 * t)
		x = 1 - envelope*(math.Cos(wd*t)+(zeta*w0/wd)*math.Sin(wd*t))
	case zeta == 1:
		x = 1 - math.Exp(-w0*t)*(1+w0*t)
	default:
		root := math.Sqrt(zeta*zeta - 1)
		r1 := -w0 * (zeta - root)
		r2 := -w0 * (zeta + root)
		x = 1 - (r2*math.Exp(r1*t)-r1*math.Exp(r2*t))/(r2-r1)
	}
	return clamp01(x)
}
