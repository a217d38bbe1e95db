package forms

// NewLoginForm builds the login draft. Only presence is checked locally;
// credential correctness is the server's verdict.
func NewLoginForm() *Form {
	return NewForm(ModeCreate,
		NewField("email", "Email address", Required("Email address")),
		NewField("password", "Password", Required("Password")).Secret(),
	)
}

// NewRegisterForm builds the signup draft with the full rule set, including
// the password confirmation sibling match.
func NewRegisterForm() *Form {
	form := NewForm(ModeCreate,
		nameField(),
		emailField(),
		passwordField("password", "Password"),
		NewField("confirmPassword", "Password confirmation", Required("Password confirmation")).Secret(),
	)
	form.MatchFields("confirmPassword", "password", "Passwords do not match")
	return form
}
