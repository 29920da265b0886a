package model

import "time"

// WellnessGoals holds one user's daily targets. Overwritten wholesale on
// each goal-setting call; no history is kept.
type WellnessGoals struct {
	UID                   string    `gorm:"column:uid;primaryKey;size:128"`
	SleepHoursGoal        int       `gorm:"column:sleep_hours_goal;not null;default:0"`
	WaterMLGoal           int       `gorm:"column:water_ml_goal;not null;default:0"`
	MeditationMinutesGoal int       `gorm:"column:meditation_minutes_goal;not null;default:0"`
	LastUpdated           time.Time `gorm:"column:last_updated;not null"`
}

func (WellnessGoals) TableName() string {
	return "wellness_goals"
}

// Goal returns the target for kind; unknown kinds read as 0.
func (g *WellnessGoals) Goal(kind MetricKind) int {
	switch kind {
	case MetricSleep:
		return g.SleepHoursGoal
	case MetricWater:
		return g.WaterMLGoal
	case MetricMeditation:
		return g.MeditationMinutesGoal
	}
	return 0
}
