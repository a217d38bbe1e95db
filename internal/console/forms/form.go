package forms

import (
	"errors"
	"fmt"
)

// Mode distinguishes a create dialog (empty defaults) from an edit dialog
// (seeded from an existing record).
type Mode int

const (
	ModeCreate Mode = iota
	ModeEdit
)

// ErrNoChanges is returned by Submit when an edit-mode draft does not differ
// from the record it was seeded with. The caller surfaces a notice instead
// of issuing a pointless mutation request.
var ErrNoChanges = errors.New("no changes detected")

// matchRule ties a field to a sibling whose value it must equal, e.g.
// password confirmation.
type matchRule struct {
	field   string
	other   string
	message string
}

// Form is a dialog-scoped draft: candidate values, per-field status, and a
// dirty flag derived from the seeds. It is created when a dialog opens and
// discarded when it closes; it never escapes except as a finalized payload.
type Form struct {
	mode    Mode
	fields  []*Field
	index   map[string]*Field
	matches []matchRule
}

// NewForm assembles a draft from ordered field declarations.
func NewForm(mode Mode, fields ...*Field) *Form {
	f := &Form{
		mode:   mode,
		fields: fields,
		index:  make(map[string]*Field, len(fields)),
	}
	for _, fld := range fields {
		f.index[fld.name] = fld
	}
	return f
}

// MatchFields requires field's value to equal other's, reported with the
// given message. Evaluated on change of either side and at submit.
func (f *Form) MatchFields(field, other, message string) {
	f.matches = append(f.matches, matchRule{field: field, other: other, message: message})
}

// Mode reports whether this draft creates a new record or edits an existing
// one.
func (f *Form) Mode() Mode { return f.mode }

// Field returns the named field, or nil.
func (f *Form) Field(name string) *Field { return f.index[name] }

// Fields returns the fields in declaration order.
func (f *Form) Fields() []*Field { return f.fields }

// SetValue stores a candidate value and validates the field immediately.
// Cross-field rules touching the field are re-evaluated as well, so editing
// a password re-checks its confirmation.
func (f *Form) SetValue(name, value string) error {
	fld := f.index[name]
	if fld == nil {
		return fmt.Errorf("unknown field %q", name)
	}

	fld.set(value)
	if fld.state == FieldInvalid {
		return fld.violation
	}

	for _, m := range f.matches {
		if m.field != name && m.other != name {
			continue
		}
		target := f.index[m.field]
		if target == nil || target.state == FieldUntouched {
			continue
		}
		if v := f.checkMatch(m); v != nil {
			if m.field == name {
				return v
			}
		}
	}
	return nil
}

// checkMatch evaluates one cross-field rule and records the result on the
// dependent field.
func (f *Form) checkMatch(m matchRule) *RuleViolation {
	target, other := f.index[m.field], f.index[m.other]
	if target == nil || other == nil {
		return nil
	}
	if target.value != other.value {
		v := &RuleViolation{Field: m.field, Message: m.message}
		target.state = FieldInvalid
		target.violation = v
		return v
	}
	if target.state == FieldInvalid && target.violation != nil && target.violation.Message == m.message {
		target.check()
	}
	return nil
}

// Dirty reports whether any field differs from its seed.
func (f *Form) Dirty() bool {
	for _, fld := range f.fields {
		if fld.Dirty() {
			return true
		}
	}
	return false
}

// Validate gates submission: every field must pass its rules (untouched
// fields are evaluated against their current value) and every cross-field
// rule must hold. The first violation, in declaration order, is returned.
func (f *Form) Validate() error {
	for _, fld := range f.fields {
		fld.check()
		if fld.violation != nil {
			return fld.violation
		}
	}
	for _, m := range f.matches {
		if v := f.checkMatch(m); v != nil {
			return v
		}
	}
	return nil
}

// Values returns the current draft values keyed by field name.
func (f *Form) Values() map[string]string {
	values := make(map[string]string, len(f.fields))
	for _, fld := range f.fields {
		values[fld.name] = fld.value
	}
	return values
}

// Submit finalizes the draft. It fails with the first rule violation when
// any field is invalid, and with ErrNoChanges when an edit-mode draft is
// clean. On success it returns the finalized values; the caller decides
// whether to Reset (create mode keeps the dialog usable for another entry).
func (f *Form) Submit() (map[string]string, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}
	if f.mode == ModeEdit && !f.Dirty() {
		return nil, ErrNoChanges
	}
	return f.Values(), nil
}

// Reset discards all candidate values, returning every field to its seed
// (empty defaults in create mode) and untouched state. A front end that
// keeps a create dialog open for repeated entries calls this after each
// successful submit; one that opens a fresh form per dialog, as the
// terminal flows do, gets the same result by construction.
func (f *Form) Reset() {
	for _, fld := range f.fields {
		fld.reseed(fld.seed)
	}
}
