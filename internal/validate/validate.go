// Package validate evaluates declarative per-field rules against form values.
//
// It holds no reference to any document: values come in through Lookup and
// failures go out as data, so rendering stays in the view package.
package validate

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/alumni-network/donation-client/internal/format"
)

// Rule describes the checks for one field. Checks run in a fixed order
// (required, email, min, max, pattern) and stop at the first failure.
type Rule struct {
	Label    string
	Required bool
	Email    bool
	Min      *float64
	Max      *float64
	Pattern  *regexp.Regexp
	Message  string // used when Pattern fails
}

// FieldRule binds a Rule to a field name.
type FieldRule struct {
	Field string
	Rule  Rule
}

// RuleSet is evaluated in order, which also orders the failures.
type RuleSet []FieldRule

// Lookup returns a field's raw value and whether the field exists.
type Lookup interface {
	Lookup(field string) (string, bool)
}

// Values is a Lookup over a plain map.
type Values map[string]string

func (v Values) Lookup(field string) (string, bool) {
	s, ok := v[field]
	return s, ok
}

// Failure is the single message recorded for a failing field.
type Failure struct {
	Field   string
	Message string
}

// Bound returns a pointer to f, for Rule.Min and Rule.Max.
func Bound(f float64) *float64 { return &f }

// Validator keeps the failures of the most recent Validate call.
type Validator struct {
	failures []Failure
}

// Validate evaluates rules against values, replacing any previous failures.
// It returns true iff no field failed.
func (v *Validator) Validate(values Lookup, rules RuleSet) bool {
	v.failures = v.failures[:0]
	seen := make(map[string]bool, len(rules))

	for _, fr := range rules {
		if seen[fr.Field] {
			continue
		}
		raw, ok := values.Lookup(fr.Field)
		value := ""
		if ok {
			value = strings.TrimSpace(raw)
		}
		if msg, failed := check(fr.Rule, value); failed {
			seen[fr.Field] = true
			v.failures = append(v.failures, Failure{Field: fr.Field, Message: msg})
		}
	}
	return len(v.failures) == 0
}

// Valid reports whether the last Validate call recorded no failures.
func (v *Validator) Valid() bool { return len(v.failures) == 0 }

// Failures returns the failures in rule order.
func (v *Validator) Failures() []Failure {
	out := make([]Failure, len(v.failures))
	copy(out, v.failures)
	return out
}

// Errors returns the failures keyed by field.
func (v *Validator) Errors() map[string]string {
	out := make(map[string]string, len(v.failures))
	for _, f := range v.failures {
		out[f.Field] = f.Message
	}
	return out
}

// Reset forgets all failures.
func (v *Validator) Reset() { v.failures = v.failures[:0] }

func check(r Rule, value string) (string, bool) {
	if value == "" {
		if r.Required {
			return r.Label + " is required", true
		}
		return "", false
	}
	if r.Email && !format.IsValidEmail(value) {
		return "Please enter a valid email address", true
	}
	if r.Min != nil && ParseNumber(value) < *r.Min {
		return fmt.Sprintf("%s must be at least %s", r.Label, formatBound(*r.Min)), true
	}
	if r.Max != nil && ParseNumber(value) > *r.Max {
		return fmt.Sprintf("%s must not exceed %s", r.Label, formatBound(*r.Max)), true
	}
	if r.Pattern != nil && !r.Pattern.MatchString(value) {
		if r.Message != "" {
			return r.Message, true
		}
		return "Invalid " + r.Label, true
	}
	return "", false
}

var leadingNumber = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?`)

// ParseNumber reads the longest numeric prefix of s, ignoring leading
// whitespace. Input with no numeric prefix yields NaN, which fails every
// comparison and so never trips a min or max check.
func ParseNumber(s string) float64 {
	m := leadingNumber.FindString(strings.TrimSpace(s))
	if m == "" {
		return math.NaN()
	}
	f, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return math.NaN()
	}
	return f
}

func formatBound(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
