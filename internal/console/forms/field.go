package forms

// FieldState is the per-field validation status.
type FieldState int

const (
	// FieldUntouched means no value has been entered since the dialog
	// opened (or since the last reset).
	FieldUntouched FieldState = iota
	FieldValid
	FieldInvalid
)

func (s FieldState) String() string {
	switch s {
	case FieldUntouched:
		return "untouched"
	case FieldValid:
		return "valid"
	case FieldInvalid:
		return "invalid"
	default:
		return "unknown"
	}
}

// Field is one input of a form draft: its declared rules, current value,
// seeded value, and validation status.
type Field struct {
	name   string
	label  string
	secret bool
	rules  []Rule

	value     string
	seed      string
	state     FieldState
	violation *RuleViolation
}

// NewField declares a field with its ordered rule list.
func NewField(name, label string, rules ...Rule) *Field {
	return &Field{name: name, label: label, rules: rules}
}

// Secret marks the field as sensitive so front ends suppress echo.
func (f *Field) Secret() *Field {
	f.secret = true
	return f
}

func (f *Field) Name() string  { return f.name }
func (f *Field) Label() string { return f.label }
func (f *Field) IsSecret() bool {
	return f.secret
}

// Value returns the current draft value.
func (f *Field) Value() string { return f.value }

// Seed returns the value the field was seeded with when the dialog opened.
func (f *Field) Seed() string { return f.seed }

// State returns the field's validation status.
func (f *Field) State() FieldState { return f.state }

// Err returns the current violation, or nil.
func (f *Field) Err() error {
	if f.violation == nil {
		return nil
	}
	return f.violation
}

// Dirty reports whether the value differs from the seed.
func (f *Field) Dirty() bool { return f.value != f.seed }

// set stores value and validates it against the field's own rules.
// Cross-field rules are the form's responsibility.
func (f *Field) set(value string) {
	f.value = value
	f.check()
}

// check re-evaluates the field's rules against the current value.
func (f *Field) check() {
	if v := Evaluate(f.value, f.rules); v != nil {
		v.Field = f.name
		f.state = FieldInvalid
		f.violation = v
		return
	}
	f.state = FieldValid
	f.violation = nil
}

// reseed resets the field to the given seed value, untouched.
func (f *Field) reseed(seed string) {
	f.seed = seed
	f.value = seed
	f.state = FieldUntouched
	f.violation = nil
}
