package report

// A TimeUnit is a fixed power-of-1000 divisor from nanoseconds.
type TimeUnit int64

const (
	Nano  TimeUnit = 1
	Micro TimeUnit = 1_000
	Milli TimeUnit = 1_000_000
	Sec   TimeUnit = 1_000_000_000
)

// FromNanos converts a nanosecond value into this unit.
func (u TimeUnit) FromNanos(nano float64) float64 {
	return nano / float64(u)
}

// Suffix is the axis-label suffix for this unit, e.g. "ms".
func (u TimeUnit) Suffix() string {
	switch u {
	case Nano:
		return "ns"
	case Micro:
		return "us"
	case Milli:
		return "ms"
	case Sec:
		return "s"
	}
	return "?"
}
