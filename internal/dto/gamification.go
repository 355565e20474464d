package dto

import (
	"time"

	"github.com/pocketfin/pocket_finance_app/internal/core/domain"
)

// BadgeResponse mirrors domain.Badge.
type BadgeResponse struct {
	Code     string    `json:"code"`
	EarnedAt time.Time `json:"earnedAt"`
}

// GamificationProfileResponse mirrors domain.GamificationProfile.
type GamificationProfileResponse struct {
	Points         int             `json:"points"`
	Level          int             `json:"level"`
	CurrentStreak  int             `json:"currentStreak"`
	LongestStreak  int             `json:"longestStreak"`
	LastActivityAt time.Time       `json:"lastActivityAt"`
	Badges         []BadgeResponse `json:"badges"`
}

// ToGamificationProfileResponse converts the profile document to its DTO.
func ToGamificationProfileResponse(p *domain.GamificationProfile) GamificationProfileResponse {
	badges := make([]BadgeResponse, len(p.Badges))
	for i, b := range p.Badges {
		badges[i] = BadgeResponse{Code: b.Code, EarnedAt: b.EarnedAt}
	}
	return GamificationProfileResponse{
		Points:         p.Points,
		Level:          p.Level,
		CurrentStreak:  p.CurrentStreak,
		LongestStreak:  p.LongestStreak,
		LastActivityAt: p.LastActivityAt,
		Badges:         badges,
	}
}
