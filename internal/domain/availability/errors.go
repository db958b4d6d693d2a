package availability

import "github.com/elinspetor87/ai-vision-studio-sub000/internal/httperr"

// ===============================
// Error codes
// ===============================

const (
	CodeInvalidDate  = "invalid_date"
	CodeInvalidInput = "invalid_input"
	CodeNotFound     = "not_found"
)

var (
	ErrInvalidDate  = httperr.ErrBusiness(CodeInvalidDate)
	ErrInvalidInput = httperr.ErrBusiness(CodeInvalidInput)
	ErrNotFound     = httperr.ErrBusiness(CodeNotFound)
)
