package dto

import (
	domain "github.com/elinspetor87/ai-vision-studio-sub000/internal/domain/availability"
	ucAvailability "github.com/elinspetor87/ai-vision-studio-sub000/internal/usecase/availability"
)

// ======================================================
// REQUESTS
// ======================================================

type SetAvailabilityRequest struct {
	Date      string   `json:"date" binding:"required,datekey"`
	TimeSlots []string `json:"timeSlots" binding:"omitempty,dive,slotlabel"`
	IsBlocked bool     `json:"isBlocked"`
	Notes     string   `json:"notes" binding:"max=500"`
}

type ResetAvailabilityRequest struct {
	Date string `json:"date" binding:"required,datekey"`
}

// Target dates are validated by the use case so that a bad one is reported
// with its position.
type CopyAvailabilityRequest struct {
	SourceDate  string   `json:"sourceDate" binding:"required,datekey"`
	TargetDates []string `json:"targetDates"`
}

// ======================================================
// RESPONSES
// ======================================================

type SuccessResponse struct {
	Success bool `json:"success"`
}

type ResetAvailabilityResponse struct {
	Success bool `json:"success"`
	Deleted bool `json:"deleted"`
}

type CopyAvailabilityResponse struct {
	Success     bool                          `json:"success"`
	Status      string                        `json:"status"`
	SourceDate  domain.DateKey                `json:"sourceDate"`
	CopiedCount int                           `json:"copiedCount"`
	Results     []ucAvailability.TargetResult `json:"results"`
	Failures    []ucAvailability.TargetResult `json:"failures"`
}

func NewCopyAvailabilityResponse(r *ucAvailability.CopyResult) CopyAvailabilityResponse {
	return CopyAvailabilityResponse{
		Success:     len(r.Failures) == 0,
		Status:      r.Status(),
		SourceDate:  r.SourceDate,
		CopiedCount: r.CopiedCount,
		Results:     r.Results,
		Failures:    r.Failures,
	}
}
