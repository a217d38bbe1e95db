package cli

import (
	"bufio"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/userdeck/userdeck/internal/console/forms"
	"github.com/userdeck/userdeck/internal/console/models"
)

// script installs stubbed input seams feeding canned answers and restores
// the real ones afterwards.
func script(t *testing.T, text []string, secrets []string) {
	t.Helper()

	origText, origPw, origPrint := getSimpleText, getPassword, printlnFn
	t.Cleanup(func() {
		getSimpleText, getPassword, printlnFn = origText, origPw, origPrint
	})

	printlnFn = func(...any) (int, error) { return 0, nil }
	getSimpleText = func(*bufio.Reader, string, io.Writer) (string, error) {
		require.NotEmpty(t, text, "ran out of scripted text input")
		next := text[0]
		text = text[1:]
		return next, nil
	}
	getPassword = func(io.Writer, string) ([]byte, error) {
		require.NotEmpty(t, secrets, "ran out of scripted secret input")
		next := secrets[0]
		secrets = secrets[1:]
		return []byte(next), nil
	}
}

func TestFillForm_RepromptsOnInvalidValue(t *testing.T) {
	script(t, []string{"John  Doe", "John Doe", "john@x.com", "Eng"}, nil)

	a := &App{}
	values, err := a.fillForm(forms.NewUserForm(nil))
	require.NoError(t, err)

	assert.Equal(t, "John Doe", values["name"])
	assert.Equal(t, "john@x.com", values["email"])
	assert.Equal(t, "Eng", values["department"])
}

func TestFillForm_EmptyInputDismissesCreateDialog(t *testing.T) {
	script(t, []string{"John Doe", ""}, nil)

	a := &App{}
	_, err := a.fillForm(forms.NewUserForm(nil))
	assert.ErrorIs(t, err, errDismissed)
}

func TestFillForm_EditModeKeepsCurrentValuesOnEmptyInput(t *testing.T) {
	script(t, []string{"", "", ""}, nil)

	seed := models.User{ID: "u1", Name: "Ann Lee", Email: "ann@x.com", Department: "Eng"}
	a := &App{}
	_, err := a.fillForm(forms.NewUserForm(&seed))

	// Nothing changed, so the draft is not submittable.
	assert.ErrorIs(t, err, forms.ErrNoChanges)
}

func TestFillForm_EditModeSingleFieldChange(t *testing.T) {
	script(t, []string{"", "", "Platform"}, nil)

	seed := models.User{ID: "u1", Name: "Ann Lee", Email: "ann@x.com", Department: "Eng"}
	a := &App{}
	values, err := a.fillForm(forms.NewUserForm(&seed))
	require.NoError(t, err)

	assert.Equal(t, "Ann Lee", values["name"])
	assert.Equal(t, "Platform", values["department"])
}

func TestFillForm_SecretFieldsUseHiddenInput(t *testing.T) {
	script(t, []string{"Ann Lee", "ann@x.com"}, []string{"Abc123!@", "Abc123!@"})

	a := &App{}
	values, err := a.fillForm(forms.NewRegisterForm())
	require.NoError(t, err)

	assert.Equal(t, "Abc123!@", values["password"])
}

func TestFillForm_ConfirmationMismatchReprompts(t *testing.T) {
	script(t, []string{"Ann Lee", "ann@x.com"}, []string{"Abc123!@", "Nope123!", "Abc123!@"})

	a := &App{}
	values, err := a.fillForm(forms.NewRegisterForm())
	require.NoError(t, err)

	assert.Equal(t, "Abc123!@", values["confirmPassword"])
}
