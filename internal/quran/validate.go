package quran

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterStructValidation(verseLengths, Chapter{})
	return v
}

// verseLengths enforces that every present verse sequence has TotalVerses entries.
func verseLengths(sl validator.StructLevel) {
	c, ok := sl.Current().Interface().(Chapter)
	if !ok {
		return
	}
	check := func(name string, s []string) {
		if len(s) > 0 && len(s) != c.TotalVerses {
			sl.ReportError(s, name, name, "verselen", fmt.Sprint(c.TotalVerses))
		}
	}
	check("English", c.English)
	check("Arabic1", c.Arabic1)
	check("Arabic2", c.Arabic2)
	check("Urdu", c.Urdu)
}

// Validate checks the chapter invariants.
func (c *Chapter) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return err
		}
		fields := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			fields = append(fields, fe.Namespace()+" ("+fe.Tag()+")")
		}
		return fmt.Errorf("%w: %s", ErrInvalidChapter, strings.Join(fields, ", "))
	}
	return nil
}
