package service

import "errors"

var (
	ErrNotAuthorized      = errors.New("not_authorized")
	ErrInvalidMetricKind  = errors.New("invalid_metric_kind")
	ErrInvalidValue       = errors.New("invalid_value")
	ErrMetricValueTooHigh = errors.New("metric_value_too_high")
	ErrGoalNotFound       = errors.New("goal_not_found")
	ErrUserNotFound       = errors.New("user_not_found")
	ErrDuplicateEntry     = errors.New("duplicate_entry")
	ErrNotFound           = errors.New("not_found")

	// ErrAchievementAlreadyEarned is declared for API completeness but never
	// returned: re-issuing an earned badge is a silent no-op.
	ErrAchievementAlreadyEarned = errors.New("achievement_already_earned")
)
