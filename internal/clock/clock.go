// Package clock pins "now" to the deployment timezone (KST for the live
// site) so stored timestamps and leaderboard day-windows agree regardless of
// the host's local zone.
package clock

import "time"

type Clock interface {
	Now() time.Time
}

type zoneClock struct {
	loc *time.Location
}

// NewInZone returns a Clock reporting wall time in the named IANA zone.
func NewInZone(name string) (Clock, error) {
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, err
	}
	return &zoneClock{loc: loc}, nil
}

func (c *zoneClock) Now() time.Time {
	return time.Now().In(c.loc)
}
