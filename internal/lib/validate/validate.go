package validate

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

var v = validator.New()

// Struct validates a struct against its `validate` tags.
func Struct(s any) error {
	err := v.Struct(s)
	if err == nil {
		return nil
	}

	var errs validator.ValidationErrors
	if errors.As(err, &errs) && len(errs) > 0 {
		f := errs[0]
		return fmt.Errorf("field %s failed on %s", f.Field(), f.Tag())
	}
	return err
}
