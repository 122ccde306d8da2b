package view

import "github.com/alumni-network/donation-client/internal/validate"

// ShowErrors clears every rendered error inside form and then marks each
// failing control with the "error" class, inserting an .error-message
// node right after it. Failures for controls that do not exist are
// skipped. An empty list only clears.
func ShowErrors(form *Form, failures []validate.Failure) {
	root := form.Node()
	for _, n := range root.Query(Selector{Class: "error-message"}) {
		n.Remove()
	}
	for _, n := range root.Query(Selector{Class: "error"}) {
		n.RemoveClass("error")
	}

	for _, f := range failures {
		input := form.Control(f.Field)
		if input == nil {
			continue
		}
		input.AddClass("error")

		msg := root.doc.CreateElement("div")
		msg.SetAttr("class", "error-message")
		msg.SetText(f.Message)
		msg.InsertAfter(input)
	}
}

// FormValidator runs rules against a bound form and renders the outcome.
type FormValidator struct {
	form *Form
	v    validate.Validator
}

// NewFormValidator returns a validator for form.
func NewFormValidator(form *Form) *FormValidator {
	return &FormValidator{form: form}
}

// Validate evaluates rules against the form's current values.
func (fv *FormValidator) Validate(rules validate.RuleSet) bool {
	return fv.v.Validate(fv.form, rules)
}

// Errors returns the last failures keyed by field.
func (fv *FormValidator) Errors() map[string]string { return fv.v.Errors() }

// ShowErrors renders the last failures. Without a failed Validate it only
// clears what was rendered before.
func (fv *FormValidator) ShowErrors() {
	ShowErrors(fv.form, fv.v.Failures())
}
