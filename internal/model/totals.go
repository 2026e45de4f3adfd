package model

import "time"

// DashboardTotals is the cached aggregate row used by the dashboard.
// A single record with this id is kept and fully overwritten on refresh.
const TotalsID = 1

type DashboardTotals struct {
	ID                    uint           `gorm:"primaryKey"`
	TotalInvitees         int            `gorm:"not null;default:0"`
	RsvpYes               int            `gorm:"not null;default:0"`
	RsvpNo                int            `gorm:"not null;default:0"`
	AccommodationRequests int            `gorm:"not null;default:0"`
	FoodPreferences       map[string]int `gorm:"serializer:json"`
	UpdatedAt             time.Time
}

type DashboardStatsDTO struct {
	TotalInvitees         int            `json:"totalInvitees"`
	RsvpYes               int            `json:"rsvpYes"`
	RsvpNo                int            `json:"rsvpNo"`
	AccommodationRequests int            `json:"accommodationRequests"`
	FoodPreferences       map[string]int `json:"foodPreferences"`
}

func (t *DashboardTotals) DTO() *DashboardStatsDTO {
	if t == nil {
		return nil
	}

	prefs := t.FoodPreferences
	if prefs == nil {
		prefs = make(map[string]int)
	}

	return &DashboardStatsDTO{
		TotalInvitees:         t.TotalInvitees,
		RsvpYes:               t.RsvpYes,
		RsvpNo:                t.RsvpNo,
		AccommodationRequests: t.AccommodationRequests,
		FoodPreferences:       prefs,
	}
}
