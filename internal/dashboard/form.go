package dashboard

import (
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
)

// formField is one labeled single-line input on a form.
type formField struct {
	label string
	input textinput.Model
}

// newField creates a blurred text input with the given label.
func newField(label, placeholder string) formField {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = 0
	ti.Prompt = ""
	return formField{label: label, input: ti}
}

// newArea creates a blurred multi-line input.
func newArea() textarea.Model {
	ta := textarea.New()
	ta.ShowLineNumbers = false
	ta.SetHeight(3)
	return ta
}

// renderField renders a label/value line, highlighting the focused field.
func renderField(f formField, focused bool) string {
	label := fieldLabelStyle.Render(f.label)
	if focused {
		label = focusedLabelStyle.Render(f.label)
	}
	return label + "\n  " + f.input.View()
}

// renderArea renders a labeled multi-line field.
func renderArea(label string, ta textarea.Model, focused bool) string {
	styled := fieldLabelStyle.Render(label)
	if focused {
		styled = focusedLabelStyle.Render(label)
	}
	return styled + "\n" + indent(ta.View(), "  ")
}

// indent prefixes every line of s.
func indent(s, prefix string) string {
	lines := strings.Split(s, "\n")
	for i := range lines {
		lines[i] = prefix + lines[i]
	}
	return strings.Join(lines, "\n")
}
