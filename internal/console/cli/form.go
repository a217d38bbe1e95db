package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/userdeck/userdeck/internal/common"
	"github.com/userdeck/userdeck/internal/console/forms"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// errDismissed signals that the operator backed out of a dialog. The draft
// is discarded; nothing is submitted.
var errDismissed = errors.New("dialog dismissed")

// fillForm walks the form's fields in declaration order, prompting for each
// one. Invalid values are reported and re-prompted. An empty line dismisses
// the dialog in create mode; in edit mode it keeps the field's current
// value and moves on.
//
// Secret fields are read without echo and their raw buffers wiped once the
// value is handed to the form.
func (a *App) fillForm(form *forms.Form) (map[string]string, error) {
	dismiss := forms.NewDismisser(func(forms.DismissSource) {
		printlnFn("Discarded.")
	})

	for _, fld := range form.Fields() {
		for {
			raw, err := a.promptField(form, fld)
			if err != nil {
				return nil, err
			}

			if raw == "" {
				if form.Mode() == forms.ModeEdit {
					// Keep the current value.
					break
				}
				dismiss.Dismiss(forms.DismissEscape)
				return nil, errDismissed
			}

			if err := form.SetValue(fld.Name(), raw); err != nil {
				printlnFn(err.Error())
				continue
			}
			break
		}
	}

	return form.Submit()
}

func (a *App) promptField(form *forms.Form, fld *forms.Field) (string, error) {
	if fld.IsSecret() {
		pw, err := getPassword(os.Stdout, fld.Label())
		if err != nil {
			return "", err
		}
		raw := string(pw)
		common.WipeBytes(pw)
		return raw, nil
	}

	prompt := fld.Label()
	if form.Mode() == forms.ModeEdit {
		prompt = fmt.Sprintf("%s [%s] (Enter keeps current)", fld.Label(), fld.Value())
	}
	return getSimpleText(a.reader, prompt, os.Stdout)
}
