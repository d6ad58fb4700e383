package models

import (
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// ValidationErrors maps a form field name to a human readable message.
type ValidationErrors map[string]string

func (e ValidationErrors) Error() string {
	fields := make([]string, 0, len(e))
	for f := range e {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	parts := make([]string, len(fields))
	for i, f := range fields {
		parts[i] = f + ": " + e[f]
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Add keeps the first message recorded for a field.
func (e ValidationErrors) Add(field, message string) {
	if _, ok := e[field]; !ok {
		e[field] = message
	}
}

func (e ValidationErrors) Merge(other ValidationErrors) {
	for f, m := range other {
		e.Add(f, m)
	}
}

func (e ValidationErrors) HasErrors() bool {
	return len(e) > 0
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})

	// Prices are compared as floats. An unset price becomes nil, which the
	// validator reports under the field's first rule before running it.
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.NullDecimal); ok && d.Valid {
			return d.Decimal.InexactFloat64()
		}
		return nil
	}, decimal.NullDecimal{})

	// decimal_required only sees set values, so zero passes on to the
	// range rules instead of reading as missing like "required" would.
	if err := v.RegisterValidation("decimal_required", func(fl validator.FieldLevel) bool {
		return fl.Field().IsValid()
	}); err != nil {
		panic(err)
	}

	return v
}

var messages = map[string]map[string]string{
	"Category.Name": {
		"required": "Category name is required.",
		"min":      "Category name must be between 3 and 50 characters.",
		"max":      "Category name must be between 3 and 50 characters.",
	},
	"Product.Name": {
		"required": "Product name is required.",
		"min":      "Product name must be between 3 and 100 characters.",
		"max":      "Product name must be between 3 and 100 characters.",
	},
	"Product.CategoryID": {
		"required": "Category is required. Select a valid category.",
	},
	"Product.Price": {
		"decimal_required": "Price is required.",
		"gte":      "Price must be at least 0.01.",
	},
	"Product.StockQuantity": {
		"gte": "Stock quantity cannot be negative.",
	},
	"Product.Brand": {
		"max": "Brand must not exceed 50 characters.",
	},
	"Product.Description": {
		"max": "Description must not exceed 500 characters.",
	},
	"Product.ImageURL": {
		"max": "Image URL is too long.",
	},
}

// Validate checks v against its struct rules. It does no I/O; rules that
// need the store (unique names, existing references) are checked by callers.
func Validate(v any) ValidationErrors {
	errs := ValidationErrors{}

	err := validate.Struct(v)
	if err == nil {
		return errs
	}

	fieldErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		errs.Add("form", err.Error())
		return errs
	}

	for _, fe := range fieldErrs {
		errs.Add(fe.Field(), message(fe))
	}
	return errs
}

func message(fe validator.FieldError) string {
	if byTag, ok := messages[fe.StructNamespace()]; ok {
		if msg, ok := byTag[fe.Tag()]; ok {
			return msg
		}
	}

	switch fe.Tag() {
	case "required", "decimal_required":
		return fmt.Sprintf("%s is required.", fe.Field())
	case "min":
		return fmt.Sprintf("%s must be at least %s characters.", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("%s must not exceed %s characters.", fe.Field(), fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be at least %s.", fe.Field(), fe.Param())
	}
	return fmt.Sprintf("%s is invalid.", fe.Field())
}
