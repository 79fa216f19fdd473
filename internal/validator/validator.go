// Package validator checks request payloads before they reach the calculation
// engines and reports every failing field at once.
package validator

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"tradedesk/internal/domain"
	"tradedesk/internal/gst"
)

// Validator wraps go-playground/validator with the GST rules registered.
type Validator struct {
	validate *validator.Validate
}

// New creates a Validator with the gstin, hsn and taxslab tags and decimal support.
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})

	v.RegisterTagNameFunc(func(sf reflect.StructField) string {
		name := strings.SplitN(sf.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return sf.Name
		}
		return name
	})

	// Registration only fails for empty tags or nil funcs.
	_ = v.RegisterValidation("gstin", validGSTIN)
	_ = v.RegisterValidation("hsn", validHSN)
	_ = v.RegisterValidation("taxslab", validTaxSlab)
	_ = v.RegisterValidation("statecode", validStateCode)
	v.RegisterStructValidation(partyStateMatchesGSTIN, domain.Party{})

	return &Validator{validate: v}
}

// Errors returns every field error in s, or nil when s is valid.
func (v *Validator) Errors(s interface{}) domain.FieldErrors {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return domain.FieldErrors{{Field: "", Message: err.Error()}}
	}
	out := make(domain.FieldErrors, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, domain.FieldError{Field: fieldPath(fe.Namespace()), Message: message(fe)})
	}
	return out
}

// Struct validates s and returns domain.FieldErrors as an error when it fails.
func (v *Validator) Struct(s interface{}) error {
	if errs := v.Errors(s); len(errs) > 0 {
		return errs
	}
	return nil
}

// ItemIDs reports every line that lacks an item id. Item ids are the canonical
// key for quantity reconciliation, so new consumption records must carry them.
func ItemIDs(field string, items []domain.LineItem) domain.FieldErrors {
	var out domain.FieldErrors
	for i, li := range items {
		if strings.TrimSpace(li.ItemID) == "" {
			out = append(out, domain.FieldError{
				Field:   fmt.Sprintf("%s[%d].item_id", field, i),
				Message: "is required",
			})
		}
	}
	return out
}

// fieldPath drops the root struct name from a validator namespace.
func fieldPath(ns string) string {
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "gt":
		return "must be greater than " + fe.Param()
	case "gte":
		return "must be at least " + fe.Param()
	case "lte":
		return "must be at most " + fe.Param()
	case "min":
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("must contain at least %s item(s)", fe.Param())
		}
		return "must be at least " + fe.Param()
	case "len":
		return fmt.Sprintf("must be %s characters", fe.Param())
	case "numeric":
		return "must contain only digits"
	case "gstin":
		return "must be a valid 15-character GSTIN"
	case "hsn":
		return "must be a 4 to 8 digit HSN/SAC code"
	case "statecode":
		return "must be a 2-digit state code (01-38)"
	case "gstinstate":
		return "must match the GSTIN state prefix " + fe.Param()
	case "taxslab":
		parts := make([]string, len(gst.AllowedSlabs))
		for i, s := range gst.AllowedSlabs {
			parts[i] = s.String()
		}
		return "must be one of " + strings.Join(parts, ", ")
	default:
		return "failed " + fe.Tag() + " check"
	}
}
