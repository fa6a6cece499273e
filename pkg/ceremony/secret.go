package ceremony

import (
	"runtime"

	"srsceremony/pkg/curve"
)

// Secret wraps a participant's toxic-waste scalar for its entire lexical
// lifetime: allocated on entry to the driver, passed by reference into
// every exponentiation job, and zeroed on every exit path. Zero must be
// called via defer immediately after the secret is created so it runs on
// normal return, error return, and panic alike.
type Secret struct {
	y curve.Scalar
}

// NewSecret draws a fresh random scalar to serve as this run's toxic
// waste.
func NewSecret() (*Secret, error) {
	y, err := curve.RandomScalar()
	if err != nil {
		return nil, err
	}
	return &Secret{y: y}, nil
}

// Value returns the wrapped scalar. Callers must not retain copies of the
// returned value past the Secret's lifetime.
func (s *Secret) Value() curve.Scalar {
	return s.y
}

// Zero overwrites the scalar with the field's zero element, then touches
// it through runtime.KeepAlive so the compiler cannot prove the store is
// dead and elide it.
func (s *Secret) Zero() {
	s.y.SetZero()
	runtime.KeepAlive(&s.y)
}
