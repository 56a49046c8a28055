// Package clock provides the read-only time sources that are consumed by the spend
// authorization checks whenever no explicit timestamp is supplied by the caller.
package clock

import (
	"time"

	"github.com/beevik/ntp"
	"github.com/cockroachdb/errors"
)

// Clock is a read-only source of the current wall-clock time.
type Clock interface {
	// Now returns the current time according to the Clock.
	Now() time.Time
}

// region System ///////////////////////////////////////////////////////////////////////////////////////////////////////

// System is a Clock that is backed by the local wall clock of the machine.
type System struct{}

// Now returns the current local time.
func (System) Now() time.Time {
	return time.Now()
}

// code contract (make sure the type implements all required methods)
var _ Clock = System{}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region NTP //////////////////////////////////////////////////////////////////////////////////////////////////////////

// NTP is a Clock that corrects the local wall clock by an offset that was measured
// against an NTP pool. The offset is measured once during construction which keeps the
// Clock free of shared mutable state.
type NTP struct {
	offset time.Duration
}

// NewNTP queries the given NTP pool and returns a Clock that applies the measured
// clock offset to every reading of the local time.
func NewNTP(ntpPool string) (*NTP, error) {
	resp, err := ntp.Query(ntpPool)
	if err != nil {
		return nil, errors.Errorf("failed to query NTP pool %s: %v", ntpPool, err)
	}

	return &NTP{
		offset: resp.ClockOffset,
	}, nil
}

// Now returns the current local time corrected by the measured NTP offset.
func (n *NTP) Now() time.Time {
	return time.Now().Add(n.offset)
}

// Offset returns the clock offset that was measured against the NTP pool.
func (n *NTP) Offset() time.Duration {
	return n.offset
}

// code contract (make sure the type implements all required methods)
var _ Clock = &NTP{}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////
