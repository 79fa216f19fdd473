package validator

import (
	"reflect"
	"regexp"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"tradedesk/internal/domain"
	"tradedesk/internal/gst"
)

var (
	gstinPattern = regexp.MustCompile(`^\d{2}[A-Z]{5}\d{4}[A-Z][1-9A-Z]Z[0-9A-Z]$`)
	hsnPattern   = regexp.MustCompile(`^\d{4,8}$`)
)

// IsGSTIN reports whether s is a well-formed 15-character GSTIN.
func IsGSTIN(s string) bool {
	return gstinPattern.MatchString(s)
}

func validGSTIN(fl validator.FieldLevel) bool {
	return IsGSTIN(fl.Field().String())
}

func validHSN(fl validator.FieldLevel) bool {
	return hsnPattern.MatchString(fl.Field().String())
}

// Decimal fields reach custom rules as float64 through the registered type
// func, so the exact value is read back from the parent struct.
func validTaxSlab(fl validator.FieldLevel) bool {
	if parent := reflect.Indirect(fl.Parent()); parent.Kind() == reflect.Struct {
		if d, ok := parent.FieldByName(fl.StructFieldName()).Interface().(decimal.Decimal); ok {
			return gst.IsAllowedSlab(d)
		}
	}
	f := fl.Field()
	switch {
	case f.CanFloat():
		return gst.IsAllowedSlab(decimal.NewFromFloat(f.Float()))
	case f.CanInt():
		return gst.IsAllowedSlab(decimal.NewFromInt(f.Int()))
	default:
		return false
	}
}

func validStateCode(fl validator.FieldLevel) bool {
	v := fl.Field().String()
	if len(v) != 2 {
		return false
	}
	code, err := strconv.Atoi(v)
	return err == nil && code >= 1 && code <= 38
}

// partyStateMatchesGSTIN flags a party whose explicit state code disagrees with
// its GSTIN prefix.
func partyStateMatchesGSTIN(sl validator.StructLevel) {
	p := sl.Current().Interface().(domain.Party)
	if p.StateCode == "" || !IsGSTIN(p.GSTIN) {
		return
	}
	if prefix := gst.StateCode(p.GSTIN); prefix != p.StateCode {
		sl.ReportError(p.StateCode, "state_code", "StateCode", "gstinstate", prefix)
	}
}
