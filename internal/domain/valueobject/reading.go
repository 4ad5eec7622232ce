package valueobject

import (
	"strconv"
)

// ReadingStatus tells whether a reading carries a value
type ReadingStatus int

// The zero value is StatusUnsupported so that a Reading nobody filled in is absent.
const (
	// StatusUnsupported: the platform has no such sensor
	StatusUnsupported ReadingStatus = iota
	// StatusPresent: the value was read successfully
	StatusPresent
	// StatusError: the read failed
	StatusError
)

func (s ReadingStatus) String() string {
	switch s {
	case StatusPresent:
		return "present"
	case StatusUnsupported:
		return "unsupported"
	case StatusError:
		return "error"
	default:
		return "unknown"
	}
}

// Reading is a single sampled value or the reason it is missing (Value Object).
// An absent reading is never treated as zero.
type Reading struct {
	status ReadingStatus
	value  float64
	note   string
}

// Present builds a reading that carries value
func Present(value float64) Reading {
	return Reading{status: StatusPresent, value: value}
}

// Unsupported builds an absent reading for a sensor the host does not have
func Unsupported(note string) Reading {
	if note == "" {
		note = "not supported on this platform"
	}
	return Reading{status: StatusUnsupported, note: note}
}

// Failed builds an absent reading from a read error
func Failed(err error) Reading {
	note := "unknown error"
	if err != nil {
		note = err.Error()
	}
	return Reading{status: StatusError, note: note}
}

// Value returns the value and whether it is present
func (r Reading) Value() (float64, bool) {
	if r.status != StatusPresent {
		return 0, false
	}
	return r.value, true
}

func (r Reading) IsPresent() bool {
	return r.status == StatusPresent
}

func (r Reading) Status() ReadingStatus {
	return r.status
}

// Note returns the diagnostic for an absent reading
func (r Reading) Note() string {
	return r.note
}

// Format renders the value with one decimal and unit. Absent readings
// render as "N/A" when unsupported and "Error" when the read failed.
func (r Reading) Format(unit string) string {
	switch r.status {
	case StatusPresent:
		return strconv.FormatFloat(r.value, 'f', 1, 64) + unit
	case StatusError:
		return "Error"
	default:
		return "N/A"
	}
}

// NetworkCounters holds cumulative interface byte counters since boot
type NetworkCounters struct {
	reading   Reading
	bytesSent uint64
	bytesRecv uint64
}

func NewNetworkCounters(bytesSent, bytesRecv uint64) NetworkCounters {
	return NetworkCounters{
		reading:   Present(0),
		bytesSent: bytesSent,
		bytesRecv: bytesRecv,
	}
}

// NetworkUnavailable wraps an absent reading as missing counters
func NetworkUnavailable(r Reading) NetworkCounters {
	if r.IsPresent() {
		r = Failed(nil)
	}
	return NetworkCounters{reading: r}
}

func (n NetworkCounters) Available() bool {
	return n.reading.IsPresent()
}

func (n NetworkCounters) BytesSent() uint64 {
	return n.bytesSent
}

func (n NetworkCounters) BytesRecv() uint64 {
	return n.bytesRecv
}

// Reading returns the availability of the counters. Its value is not meaningful.
func (n NetworkCounters) Reading() Reading {
	return n.reading
}
