package model

import "time"

type AchievementCategory string

const (
	CategoryStreak AchievementCategory = "streak"
	CategoryScore  AchievementCategory = "score"
)

// Achievement is one entry of the static badge catalog.
type Achievement struct {
	ID          uint64              `gorm:"primaryKey"`
	Code        string              `gorm:"column:code;size:64;not null;uniqueIndex"`
	Name        string              `gorm:"column:name;size:120;not null"`
	Description string              `gorm:"column:description;type:text;not null"`
	Category    AchievementCategory `gorm:"column:category;size:32;not null"`
	Threshold   int                 `gorm:"column:threshold;not null"`
}

func (Achievement) TableName() string {
	return "achievements"
}

// EarnedAchievement marks that a user holds a badge. At most one row per
// (uid, achievement) ever; rows are never updated or deleted.
type EarnedAchievement struct {
	UID             string    `gorm:"column:uid;primaryKey;size:128"`
	AchievementID   uint64    `gorm:"column:achievement_id;primaryKey"`
	AchievementName string    `gorm:"column:achievement_name;size:120;not null"`
	EarnedAt        time.Time `gorm:"column:earned_at;not null"`
}

func (EarnedAchievement) TableName() string {
	return "earned_achievements"
}

// AchievementCatalog returns the fixed six-entry catalog: three streak
// thresholds and three score thresholds. Each threshold is checked
// independently, so reaching 30 streak days also earns the 7-day badge.
func AchievementCatalog() []Achievement {
	return []Achievement{
		{ID: 1, Code: "streak_7", Name: "Week Warrior", Description: "Logged metrics 7 days in a row.", Category: CategoryStreak, Threshold: 7},
		{ID: 2, Code: "streak_30", Name: "Habit Builder", Description: "Logged metrics 30 days in a row.", Category: CategoryStreak, Threshold: 30},
		{ID: 3, Code: "streak_100", Name: "Century Streak", Description: "Logged metrics 100 days in a row.", Category: CategoryStreak, Threshold: 100},
		{ID: 4, Code: "score_50", Name: "Wellness Beginner", Description: "Reached a wellness score of 50.", Category: CategoryScore, Threshold: 50},
		{ID: 5, Code: "score_75", Name: "Wellness Enthusiast", Description: "Reached a wellness score of 75.", Category: CategoryScore, Threshold: 75},
		{ID: 6, Code: "score_90", Name: "Wellness Master", Description: "Reached a wellness score of 90.", Category: CategoryScore, Threshold: 90},
	}
}
