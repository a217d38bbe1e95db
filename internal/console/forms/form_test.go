package forms

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/userdeck/userdeck/internal/console/models"
)

func validDraft(t *testing.T, f *Form) {
	t.Helper()
	require.NoError(t, f.SetValue("name", "Ann Lee"))
	require.NoError(t, f.SetValue("email", "ann@x.com"))
	require.NoError(t, f.SetValue("department", "Eng"))
}

func TestCreateMode_SubmitYieldsPayload(t *testing.T) {
	f := NewUserForm(nil)
	assert.Equal(t, ModeCreate, f.Mode())

	validDraft(t, f)
	values, err := f.Submit()
	require.NoError(t, err)

	payload := UserPayload(values)
	assert.Equal(t, models.UserPayload{Name: "Ann Lee", Email: "ann@x.com", Department: "Eng"}, payload)
}

func TestCreateMode_SubmitGatedOnAllFieldsValid(t *testing.T) {
	f := NewUserForm(nil)
	require.NoError(t, f.SetValue("name", "Ann Lee"))
	// email and department untouched and empty

	_, err := f.Submit()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Email address is required")
}

func TestFieldStates(t *testing.T) {
	f := NewUserForm(nil)
	assert.Equal(t, FieldUntouched, f.Field("name").State())

	require.Error(t, f.SetValue("name", "John  Doe"))
	assert.Equal(t, FieldInvalid, f.Field("name").State())

	require.NoError(t, f.SetValue("name", "John Doe"))
	assert.Equal(t, FieldValid, f.Field("name").State())
}

func TestEditMode_CleanSubmitIsSuppressed(t *testing.T) {
	seed := models.User{ID: "u1", Name: "Ann Lee", Email: "ann@x.com", Department: "Eng"}
	f := NewUserForm(&seed)
	assert.Equal(t, ModeEdit, f.Mode())
	assert.False(t, f.Dirty())

	_, err := f.Submit()
	assert.ErrorIs(t, err, ErrNoChanges)
}

func TestEditMode_RetypingSeedValuesStaysClean(t *testing.T) {
	seed := models.User{ID: "u1", Name: "Ann Lee", Email: "ann@x.com", Department: "Eng"}
	f := NewUserForm(&seed)

	require.NoError(t, f.SetValue("department", "Eng"))
	assert.False(t, f.Dirty())

	_, err := f.Submit()
	assert.ErrorIs(t, err, ErrNoChanges)
}

func TestEditMode_DirtySubmit(t *testing.T) {
	seed := models.User{ID: "u1", Name: "Ann Lee", Email: "ann@x.com", Department: "Eng"}
	f := NewUserForm(&seed)

	require.NoError(t, f.SetValue("department", "Platform"))
	assert.True(t, f.Dirty())

	values, err := f.Submit()
	require.NoError(t, err)
	assert.Equal(t, "Platform", values["department"])
	assert.Equal(t, "Ann Lee", values["name"])
}

func TestReset_RestoresSeeds(t *testing.T) {
	f := NewUserForm(nil)
	validDraft(t, f)
	require.True(t, f.Dirty())

	f.Reset()

	assert.False(t, f.Dirty())
	assert.Empty(t, f.Field("name").Value())
	assert.Equal(t, FieldUntouched, f.Field("name").State())
}

func TestReset_EditModeRestoresRecordValues(t *testing.T) {
	seed := models.User{ID: "u1", Name: "Ann Lee", Email: "ann@x.com", Department: "Eng"}
	f := NewUserForm(&seed)
	require.NoError(t, f.SetValue("name", "Bo Chan"))

	f.Reset()

	assert.Equal(t, "Ann Lee", f.Field("name").Value())
	assert.False(t, f.Dirty())
}

func TestRegisterForm_ConfirmationMustMatch(t *testing.T) {
	f := NewRegisterForm()
	require.NoError(t, f.SetValue("name", "Ann Lee"))
	require.NoError(t, f.SetValue("email", "ann@x.com"))
	require.NoError(t, f.SetValue("password", "Abc123!@"))
	require.Error(t, f.SetValue("confirmPassword", "Abc123!!"))
	assert.Equal(t, FieldInvalid, f.Field("confirmPassword").State())

	_, err := f.Submit()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Passwords do not match")

	require.NoError(t, f.SetValue("confirmPassword", "Abc123!@"))
	_, err = f.Submit()
	assert.NoError(t, err)
}

func TestRegisterForm_EditingPasswordRechecksConfirmation(t *testing.T) {
	f := NewRegisterForm()
	require.NoError(t, f.SetValue("password", "Abc123!@"))
	require.NoError(t, f.SetValue("confirmPassword", "Abc123!@"))
	assert.Equal(t, FieldValid, f.Field("confirmPassword").State())

	// Changing the password invalidates the previously matching confirmation.
	require.NoError(t, f.SetValue("password", "Xyz789!@"))
	assert.Equal(t, FieldInvalid, f.Field("confirmPassword").State())
}

func TestLoginForm_PresenceOnly(t *testing.T) {
	f := NewLoginForm()
	require.NoError(t, f.SetValue("email", "whatever"))
	require.NoError(t, f.SetValue("password", "pw"))

	_, err := f.Submit()
	assert.NoError(t, err)
}

func TestSetValue_UnknownField(t *testing.T) {
	f := NewUserForm(nil)
	assert.Error(t, f.SetValue("nope", "x"))
}

func TestSecretFields(t *testing.T) {
	f := NewRegisterForm()
	assert.False(t, f.Field("email").IsSecret())
	assert.True(t, f.Field("password").IsSecret())
	assert.True(t, f.Field("confirmPassword").IsSecret())
}

func TestDismisser_SingleCancelPathForAllSources(t *testing.T) {
	var got []DismissSource
	d := NewDismisser(func(source DismissSource) { got = append(got, source) })

	d.Dismiss(DismissEscape)
	d.Dismiss(DismissBackdrop)
	d.Dismiss(DismissCancel)

	assert.Equal(t, []DismissSource{DismissEscape}, got)
}

func TestDismisser_NilHandler(t *testing.T) {
	assert.NotPanics(t, func() { NewDismisser(nil).Dismiss(DismissCancel) })
}
