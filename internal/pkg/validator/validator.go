package validator

import (
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type ValidationError struct {
	Field   string
	Message string
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	var msgs []string
	for _, err := range v {
		msgs = append(msgs, err.Field+": "+err.Message)
	}
	return strings.Join(msgs, "; ")
}

func (v ValidationErrors) ToMap() map[string]string {
	result := make(map[string]string)
	for _, err := range v {
		result[err.Field] = err.Message
	}
	return result
}

// IsEmpty checks if a string is empty after trimming whitespace.
func IsEmpty(s string) bool {
	return strings.TrimSpace(s) == ""
}

// Numeric validation
var numericRegex = regexp.MustCompile(`^[0-9]+$`)

func IsNumeric(s string) bool {
	return numericRegex.MatchString(s)
}

// Date validation
func IsValidDate(dateStr string) (time.Time, bool) {
	date, err := time.Parse("2006-01-02", dateStr)
	return date, err == nil
}

// IC number validation (Malaysian NRIC): YYMMDD-PB-####, dashes optional.
var icRegex = regexp.MustCompile(`^\d{6}-?\d{2}-?\d{4}$`)

func IsValidICNumber(ic string) bool {
	if !icRegex.MatchString(ic) {
		return false
	}
	mm := (int(ic[2]-'0'))*10 + int(ic[3]-'0')
	dd := (int(ic[4]-'0'))*10 + int(ic[5]-'0')
	return mm >= 1 && mm <= 12 && dd >= 1 && dd <= 31
}

// IsValidMonth checks a payroll month number.
func IsValidMonth(month int) bool {
	return month >= 1 && month <= 12
}

// IsValidYear checks a payroll year number.
func IsValidYear(year int) bool {
	return year >= 2020 && year <= 2100
}

// IsNonNegativeAmount checks a monetary input.
func IsNonNegativeAmount(d decimal.Decimal) bool {
	return !d.IsNegative()
}

// Slice contains check
func IsInSlice(value string, slice []string) bool {
	for _, item := range slice {
		if item == value {
			return true
		}
	}
	return false
}

// Clock time validation ("15:04").
func IsValidClockTime(s string) bool {
	_, err := time.Parse("15:04", s)
	return err == nil
}
