package forms

import (
	"regexp"

	"github.com/userdeck/userdeck/internal/console/models"
)

var (
	nameCharsRe       = regexp.MustCompile(`^[a-zA-Z\s]+$`)
	departmentCharsRe = regexp.MustCompile(`^[a-zA-Z0-9\s&-]+$`)
	emailShapeRe      = regexp.MustCompile(`(?i)^[A-Z0-9._%+-]+@[A-Z0-9.-]+\.[A-Z]{2,}$`)
)

func nameField() *Field {
	return NewField("name", "Name",
		Required("Name"),
		MinLen("Name", 2),
		MaxLen("Name", 50),
		Pattern(nameCharsRe, "Name can only contain letters and spaces"),
		NoDoubleSpaces("Name"),
		Trimmed("Name"),
	)
}

func emailField() *Field {
	return NewField("email", "Email address",
		Required("Email address"),
		MaxLen("Email", 100),
		NoWhitespace("Email"),
		Pattern(emailShapeRe, "Please enter a valid email address"),
		ValidDomain(),
		Trimmed("Email"),
	)
}

func departmentField() *Field {
	return NewField("department", "Department",
		Required("Department"),
		MinLen("Department", 2),
		MaxLen("Department", 50),
		Pattern(departmentCharsRe, "Department can only contain letters, numbers, spaces, & and -"),
		NoDoubleSpaces("Department"),
		Trimmed("Department"),
	)
}

func passwordField(name, label string) *Field {
	return NewField(name, label,
		Required(label),
		MinLen(label, 6),
		MaxLen(label, 50),
		NoWhitespace(label),
		ContainsUpper(label),
		ContainsLower(label),
		ContainsDigit(label),
		ContainsSymbol(label),
	).Secret()
}

// NewUserForm opens a user dialog draft: edit mode seeded from the given
// record, create mode with empty defaults when seed is nil.
func NewUserForm(seed *models.User) *Form {
	form := NewForm(ModeCreate, nameField(), emailField(), departmentField())
	if seed != nil {
		form.mode = ModeEdit
		form.Field("name").reseed(seed.Name)
		form.Field("email").reseed(seed.Email)
		form.Field("department").reseed(seed.Department)
	}
	return form
}

// UserPayload converts finalized user-form values into a mutation body.
func UserPayload(values map[string]string) models.UserPayload {
	return models.UserPayload{
		Name:       values["name"],
		Email:      values["email"],
		Department: values["department"],
	}
}
