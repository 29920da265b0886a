package model

import "time"

// User holds the per-user wellness counters. Created lazily on first
// interaction; never deleted.
type User struct {
	UID           string    `gorm:"column:uid;primaryKey;size:128"`
	JoinedAt      time.Time `gorm:"column:joined_at;not null"`
	WellnessScore int       `gorm:"column:wellness_score;not null;default:0"`
	StreakDays    int       `gorm:"column:streak_days;not null;default:0"`
	CreatedAt     time.Time `gorm:"autoCreateTime"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime"`
}

func (User) TableName() string {
	return "users"
}
