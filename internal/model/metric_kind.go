package model

// MetricKind identifies one of the three tracked wellness metrics.
type MetricKind string

const (
	MetricSleep      MetricKind = "sleep"
	MetricWater      MetricKind = "water"
	MetricMeditation MetricKind = "meditation"
)

// Value ranges per metric: hours of sleep per day, milliliters of water,
// minutes of meditation.
const (
	MaxSleepHours        = 24
	MaxWaterML           = 10000
	MaxMeditationMinutes = 1440
)

// ParseMetricKind maps a wire string to a MetricKind.
func ParseMetricKind(s string) (MetricKind, bool) {
	switch MetricKind(s) {
	case MetricSleep, MetricWater, MetricMeditation:
		return MetricKind(s), true
	}
	return "", false
}

// MaxMetricValue returns the upper bound for a kind, or -1 for an unknown kind.
func MaxMetricValue(kind MetricKind) int {
	switch kind {
	case MetricSleep:
		return MaxSleepHours
	case MetricWater:
		return MaxWaterML
	case MetricMeditation:
		return MaxMeditationMinutes
	}
	return -1
}

// ValidMetricValue reports whether v is inside the allowed range for kind.
// Unknown kinds are never valid.
func ValidMetricValue(kind MetricKind, v int) bool {
	max := MaxMetricValue(kind)
	if max < 0 {
		return false
	}
	return v >= 0 && v <= max
}
