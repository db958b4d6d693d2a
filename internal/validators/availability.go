package validators

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	domain "github.com/elinspetor87/ai-vision-studio-sub000/internal/domain/availability"
)

const (
	TagDateKey   = "datekey"
	TagSlotLabel = "slotlabel"
)

// Register installs the availability tags on gin's binding validator.
// Calling it again replaces the catalog used by slotlabel.
func Register(catalog *domain.SlotCatalog) error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return errors.New("validators: gin binding engine is not validator/v10")
	}
	return RegisterOn(v, catalog)
}

func RegisterOn(v *validator.Validate, catalog *domain.SlotCatalog) error {
	if err := v.RegisterValidation(TagDateKey, validateDateKey); err != nil {
		return err
	}
	return v.RegisterValidation(TagSlotLabel, func(fl validator.FieldLevel) bool {
		return catalog.Contains(fl.Field().String())
	})
}

func validateDateKey(fl validator.FieldLevel) bool {
	_, err := domain.ParseDateKey(fl.Field().String())
	return err == nil
}

// ErrorCode maps a binding error to the error code answered to clients.
func ErrorCode(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return domain.CodeInvalidInput
	}

	first := verrs[0]
	switch {
	case first.Tag() == TagDateKey:
		return domain.CodeInvalidDate
	case first.Tag() == "required" && strings.HasSuffix(strings.ToLower(first.Field()), "date"):
		return "missing_date"
	default:
		return domain.CodeInvalidInput
	}
}

// FirstMessage renders the first validation failure as "field problem".
func FirstMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "malformed request body"
	}

	first := verrs[0]
	field := first.Field()
	switch first.Tag() {
	case "required":
		return field + " is required"
	case "min":
		return field + " must have at least " + first.Param() + " item(s)"
	case TagDateKey:
		return field + " is not a valid date"
	case TagSlotLabel:
		return field + " is not a known time slot"
	default:
		return field + " is invalid"
	}
}
