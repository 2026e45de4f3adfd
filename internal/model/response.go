package model

import "time"

const (
	FoodVeg         = "Veg"
	FoodNonVeg      = "Non-Veg"
	FoodNotRequired = "Not Required"
)

type Response struct {
	ResponseID                string `gorm:"primaryKey"`
	EmployeeID                string `gorm:"not null;index"`
	MobileNumber              string `gorm:"not null;default:''"`
	RequiresAccommodation     bool   `gorm:"not null;default:false"`
	ArrivalDate               string `gorm:"not null;default:''"`
	DepartureDate             string `gorm:"not null;default:''"`
	FoodPreference            string `gorm:"not null;default:''"`
	DepartureTimePreference   string `gorm:"not null;default:''"`
	ArrivalTimePreference     string `gorm:"not null;default:''"`
	SpecialFlightRequirements string `gorm:"not null;default:''"`
	SubmissionTimestamp       time.Time
}

type ResponseDTO struct {
	ResponseID                string    `json:"responseId"`
	EmployeeID                string    `json:"employeeId"`
	MobileNumber              string    `json:"mobileNumber"`
	RequiresAccommodation     bool      `json:"requiresAccommodation"`
	ArrivalDate               string    `json:"arrivalDate,omitempty"`
	DepartureDate             string    `json:"departureDate,omitempty"`
	FoodPreference            string    `json:"foodPreference"`
	DepartureTimePreference   string    `json:"departureTimePreference,omitempty"`
	ArrivalTimePreference     string    `json:"arrivalTimePreference,omitempty"`
	SpecialFlightRequirements string    `json:"specialFlightRequirements,omitempty"`
	SubmissionTimestamp       time.Time `json:"submissionTimestamp"`
}

type ResponsePostDTO struct {
	EmployeeID                string `json:"employeeId"`
	MobileNumber              string `json:"mobileNumber"`
	RequiresAccommodation     bool   `json:"requiresAccommodation"`
	ArrivalDate               string `json:"arrivalDate,omitempty"`
	DepartureDate             string `json:"departureDate,omitempty"`
	FoodPreference            string `json:"foodPreference"`
	DepartureTimePreference   string `json:"departureTimePreference,omitempty"`
	ArrivalTimePreference     string `json:"arrivalTimePreference,omitempty"`
	SpecialFlightRequirements string `json:"specialFlightRequirements,omitempty"`
}

func (r *Response) DTO() *ResponseDTO {
	if r == nil {
		return nil
	}

	return &ResponseDTO{
		ResponseID:                r.ResponseID,
		EmployeeID:                r.EmployeeID,
		MobileNumber:              r.MobileNumber,
		RequiresAccommodation:     r.RequiresAccommodation,
		ArrivalDate:               r.ArrivalDate,
		DepartureDate:             r.DepartureDate,
		FoodPreference:            r.FoodPreference,
		DepartureTimePreference:   r.DepartureTimePreference,
		ArrivalTimePreference:     r.ArrivalTimePreference,
		SpecialFlightRequirements: r.SpecialFlightRequirements,
		SubmissionTimestamp:       r.SubmissionTimestamp,
	}
}
