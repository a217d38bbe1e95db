// Package forms drives the create/edit dialogs: per-field rule evaluation,
// dirty tracking, submit gating, and dual-mode (create vs. edit) defaulting.
//
// The rule engine is pure (value in, verdict out), so it is unit-testable
// without rendering anything. Each field carries an ordered list of rules
// evaluated short-circuit on the first failure.
package forms

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
)

// Rule is one (predicate, message) pair. Check returns true when the value
// passes.
type Rule struct {
	Check   func(value string) bool
	Message string
}

// RuleViolation reports the first rule a value failed. It never leaves the
// forms layer except as a message shown next to the offending field.
type RuleViolation struct {
	Field   string
	Message string
}

func (e *RuleViolation) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Evaluate runs rules in order and returns the first violation, or nil.
func Evaluate(value string, rules []Rule) *RuleViolation {
	for _, r := range rules {
		if !r.Check(value) {
			return &RuleViolation{Message: r.Message}
		}
	}
	return nil
}

var (
	doubleSpaceRe = regexp.MustCompile(`\s{2,}`)
	whitespaceRe  = regexp.MustCompile(`\s`)
	domainRe      = regexp.MustCompile(`@[a-zA-Z0-9-]+\.[a-zA-Z]{2,}$`)
)

// Required fails on values that are empty or whitespace-only.
func Required(label string) Rule {
	return Rule{
		Check:   func(v string) bool { return strings.TrimSpace(v) != "" },
		Message: label + " is required",
	}
}

// MinLen fails on values shorter than n characters.
func MinLen(label string, n int) Rule {
	return Rule{
		Check:   func(v string) bool { return len([]rune(v)) >= n },
		Message: fmt.Sprintf("%s must be at least %d characters", label, n),
	}
}

// MaxLen fails on values longer than n characters.
func MaxLen(label string, n int) Rule {
	return Rule{
		Check:   func(v string) bool { return len([]rune(v)) <= n },
		Message: fmt.Sprintf("%s must be at most %d characters", label, n),
	}
}

// Pattern fails on values not matching re.
func Pattern(re *regexp.Regexp, message string) Rule {
	return Rule{
		Check:   re.MatchString,
		Message: message,
	}
}

// NoDoubleSpaces fails on two or more consecutive whitespace characters.
func NoDoubleSpaces(label string) Rule {
	return Rule{
		Check:   func(v string) bool { return !doubleSpaceRe.MatchString(v) },
		Message: label + " cannot have multiple consecutive spaces",
	}
}

// Trimmed fails on leading or trailing whitespace.
func Trimmed(label string) Rule {
	return Rule{
		Check:   func(v string) bool { return v == strings.TrimSpace(v) },
		Message: label + " cannot start or end with spaces",
	}
}

// NoWhitespace fails on any whitespace anywhere in the value.
func NoWhitespace(label string) Rule {
	return Rule{
		Check:   func(v string) bool { return !whitespaceRe.MatchString(v) },
		Message: label + " cannot contain spaces",
	}
}

// ValidDomain fails unless the value ends in a plausible domain suffix.
func ValidDomain() Rule {
	return Rule{
		Check:   domainRe.MatchString,
		Message: "Please enter a valid domain",
	}
}

// ContainsUpper fails unless at least one uppercase letter is present.
func ContainsUpper(label string) Rule {
	return Rule{
		Check:   func(v string) bool { return strings.ContainsFunc(v, unicode.IsUpper) },
		Message: label + " must contain an uppercase letter",
	}
}

// ContainsLower fails unless at least one lowercase letter is present.
func ContainsLower(label string) Rule {
	return Rule{
		Check:   func(v string) bool { return strings.ContainsFunc(v, unicode.IsLower) },
		Message: label + " must contain a lowercase letter",
	}
}

// ContainsDigit fails unless at least one digit is present.
func ContainsDigit(label string) Rule {
	return Rule{
		Check:   func(v string) bool { return strings.ContainsFunc(v, unicode.IsDigit) },
		Message: label + " must contain a digit",
	}
}

// ContainsSymbol fails unless at least one non-alphanumeric, non-space
// character is present.
func ContainsSymbol(label string) Rule {
	return Rule{
		Check: func(v string) bool {
			return strings.ContainsFunc(v, func(r rune) bool {
				return !unicode.IsLetter(r) && !unicode.IsDigit(r) && !unicode.IsSpace(r)
			})
		},
		Message: label + " must contain a symbol",
	}
}
