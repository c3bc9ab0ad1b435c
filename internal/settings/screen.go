// Package settings implements editable text preferences bound to a source's
// preference store: live validation while typing, persistence on accept and
// the restart notice shown after every successful write.
package settings

import (
	"fmt"
	"strings"

	"github.com/vrsandeep/mango-easyyomi/internal/models"
)

// RestartNotice is returned after every successful write. Sources read their
// settings once at construction, so a change only applies after a restart.
const RestartNotice = "Restart the app to apply new setting."

// InputType hints how a field should be edited.
type InputType string

const (
	InputText     InputType = "text"
	InputURI      InputType = "uri"
	InputPassword InputType = "password"
)

// EditTextField is a single free-text preference.
type EditTextField struct {
	Key               string
	Title             string
	Summary           string
	Default           string
	InputType         InputType
	Validate          func(string) bool
	ValidationMessage string
}

// ValidationError is reported when a non-blank value fails its field's rule.
type ValidationError struct {
	Key     string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid value for %q: %s", e.Key, e.Message)
}

// Screen is an ordered set of fields bound to one Preferences namespace.
type Screen struct {
	prefs  models.Preferences
	fields []*EditTextField
}

// NewScreen creates an empty screen writing into prefs.
func NewScreen(prefs models.Preferences) *Screen {
	return &Screen{prefs: prefs}
}

// Add appends a field. Adding the same key twice is a programming error.
func (s *Screen) Add(field EditTextField) {
	if field.Key == "" {
		field.Key = field.Title
	}
	if s.Field(field.Key) != nil {
		panic(fmt.Sprintf("settings field %q is already registered", field.Key))
	}
	s.fields = append(s.fields, &field)
}

// Fields returns the fields in display order.
func (s *Screen) Fields() []EditTextField {
	out := make([]EditTextField, len(s.fields))
	for i, f := range s.fields {
		out[i] = *f
	}
	return out
}

// Field returns the field registered under key, or nil.
func (s *Screen) Field(key string) *EditTextField {
	for _, f := range s.fields {
		if f.Key == key {
			return f
		}
	}
	return nil
}

// Value returns the stored value for key, falling back to the field default.
func (s *Screen) Value(key string) (string, error) {
	f := s.Field(key)
	if f == nil {
		return "", fmt.Errorf("unknown settings field %q", key)
	}
	return s.prefs.Get(f.Key, f.Default)
}

// Check validates text the way the edit dialog does on every keystroke.
// Blank input is always accepted and means "unset".
func (s *Screen) Check(key, text string) error {
	f := s.Field(key)
	if f == nil {
		return fmt.Errorf("unknown settings field %q", key)
	}
	if f.Validate == nil || strings.TrimSpace(text) == "" {
		return nil
	}
	if !f.Validate(text) {
		return &ValidationError{Key: f.Key, Message: f.ValidationMessage}
	}
	return nil
}

// Submit validates and persists text, returning the notice to show the user.
func (s *Screen) Submit(key, text string) (string, error) {
	if err := s.Check(key, text); err != nil {
		return "", err
	}
	if err := s.prefs.Put(key, text); err != nil {
		return "", fmt.Errorf("failed to save %q: %w", key, err)
	}
	return RestartNotice, nil
}
