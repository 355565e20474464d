package domain

import "time"

// Badge identifiers awarded by the gamification engine.
const (
	BadgeFirstEntry   = "FIRST_ENTRY"
	BadgeStreak3Days  = "STREAK_3_DAYS"
	BadgeStreak7Days  = "STREAK_7_DAYS"
	BadgeStreak30Days = "STREAK_30_DAYS"
)

// Badge is a single earned achievement.
type Badge struct {
	Code     string    `json:"code"`
	EarnedAt time.Time `json:"earnedAt"`
}

// GamificationProfile is the single per-device gamification document:
// points, level, logging streaks and earned badges.
type GamificationProfile struct {
	Points         int       `json:"points"`
	Level          int       `json:"level"`
	CurrentStreak  int       `json:"currentStreak"`
	LongestStreak  int       `json:"longestStreak"`
	LastActivityAt time.Time `json:"lastActivityAt"`
	Badges         []Badge   `json:"badges"`
	AuditFields
}

// HasBadge reports whether the badge with the given code was already earned.
func (p *GamificationProfile) HasBadge(code string) bool {
	for _, b := range p.Badges {
		if b.Code == code {
			return true
		}
	}
	return false
}
