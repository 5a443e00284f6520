package domain

type Classification string

const (
	Fast         Classification = "fast"
	Slow         Classification = "slow"
	Disconnected Classification = "disconnected"
	Unknown      Classification = "unknown"
)

// Classify maps a probe outcome to a classification. Total: every
// (rtt, ok) pair lands in exactly one bucket. fastMS is the threshold
// below which a reachable host counts as fast.
func Classify(rttMS *float64, ok bool, fastMS float64) Classification {
	if !ok || rttMS == nil {
		return Disconnected
	}
	if *rttMS < fastMS {
		return Fast
	}
	return Slow
}

// Connected reports whether the classification represents a reachable host.
func (c Classification) Connected() bool {
	return c == Fast || c == Slow
}

// Color returns the indicator color for the dashboard.
func (c Classification) Color() string {
	switch c {
	case Fast:
		return "#00FF00"
	case Slow:
		return "#FFFF00"
	case Disconnected:
		return "#FF0000"
	default:
		return "#808080"
	}
}

// Overall aggregates per-host classifications into one status:
// any host down wins, then unknown, then slow.
func Overall(states []Classification) Classification {
	if len(states) == 0 {
		return Unknown
	}
	out := Fast
	for _, c := range states {
		switch c {
		case Disconnected:
			return Disconnected
		case Unknown:
			out = Unknown
		case Slow:
			if out != Unknown {
				out = Slow
			}
		}
	}
	return out
}
