package model

import "time"

// DaySeconds is the fixed length of a tracking day. Day buckets are plain
// 86400-second windows counted from the Unix epoch, not calendar days in
// any timezone.
const DaySeconds int64 = 86400

// DayStart floors t to its day bucket, in Unix seconds.
func DayStart(t time.Time) int64 {
	return t.Unix() / DaySeconds * DaySeconds
}

// DailyMetricRecord is one user's metrics for one day bucket.
type DailyMetricRecord struct {
	ID                uint64    `gorm:"primaryKey;autoIncrement"`
	UID               string    `gorm:"column:uid;size:128;not null;uniqueIndex:uidx_uid_day"`
	Day               int64     `gorm:"column:day;not null;uniqueIndex:uidx_uid_day"`
	SleepHours        int       `gorm:"column:sleep_hours;not null;default:0"`
	WaterML           int       `gorm:"column:water_ml;not null;default:0"`
	MeditationMinutes int       `gorm:"column:meditation_minutes;not null;default:0"`
	RecordedAt        time.Time `gorm:"column:recorded_at;not null"`
}

func (DailyMetricRecord) TableName() string {
	return "daily_metrics"
}

// Value returns the stored value for kind; unknown kinds read as 0.
func (r *DailyMetricRecord) Value(kind MetricKind) int {
	switch kind {
	case MetricSleep:
		return r.SleepHours
	case MetricWater:
		return r.WaterML
	case MetricMeditation:
		return r.MeditationMinutes
	}
	return 0
}

// SetValue writes the field for kind. Unknown kinds are ignored; callers
// validate before writing.
func (r *DailyMetricRecord) SetValue(kind MetricKind, v int) {
	switch kind {
	case MetricSleep:
		r.SleepHours = v
	case MetricWater:
		r.WaterML = v
	case MetricMeditation:
		r.MeditationMinutes = v
	}
}
