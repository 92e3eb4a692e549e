package dto

import (
	"errors"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"studie-planner/internal/model"
	"studie-planner/internal/planner"
)

// Custom validation tags.
const (
	itemTypeTag = "itemtype"
	gameTag     = "game"
	notBlankTag = "notblank"
)

// RegisterValidators installs the custom tags on gin's validator engine and
// makes validation errors report JSON field names.
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}
	return Register(v)
}

// Register installs the custom tags on v.
func Register(v *validator.Validate) error {
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	if err := v.RegisterValidation(itemTypeTag, func(fl validator.FieldLevel) bool {
		return planner.ContentType(fl.Field().String()).Valid()
	}); err != nil {
		return err
	}
	if err := v.RegisterValidation(gameTag, func(fl validator.FieldLevel) bool {
		return IsGame(fl.Field().String())
	}); err != nil {
		return err
	}
	return v.RegisterValidation(notBlankTag, func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
}

// IsGame reports whether g names an arcade game that keeps scores.
func IsGame(g string) bool {
	return g == model.GameBreakout || g == model.GameParatrooper
}

// FirstError renders the first field error of a binding failure in Dutch,
// or the raw error when it is not a validation error.
func FirstError(err error) string {
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) || len(errs) == 0 {
		return "ongeldige invoer: " + err.Error()
	}
	fe := errs[0]
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return field + " is verplicht"
	case notBlankTag:
		return field + " mag niet leeg zijn"
	case itemTypeTag:
		return field + " is geen bekend onderdeeltype"
	case gameTag:
		return field + " is geen bekend spel"
	case "datetime":
		return field + " moet een datum zijn (JJJJ-MM-DD)"
	case "uuid":
		return field + " moet een geldig id zijn"
	case "min", "gte":
		return field + " is te klein (minimaal " + fe.Param() + ")"
	case "max", "lte":
		return field + " is te groot (maximaal " + fe.Param() + ")"
	case "gtefield":
		return field + " moet minstens gelijk zijn aan " + fe.Param()
	case "oneof":
		return field + " moet een van " + fe.Param() + " zijn"
	case "hexcolor":
		return field + " moet een kleurcode zijn, bijvoorbeeld #3b82f6"
	}
	return field + " is ongeldig"
}
