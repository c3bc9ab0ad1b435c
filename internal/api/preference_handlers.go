// Handlers for the per-source settings form.

package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/vrsandeep/mango-easyyomi/internal/settings"
)

// configurable is implemented by sources that expose a settings form.
type configurable interface {
	PreferenceScreen() *settings.Screen
}

// PreferenceField is the JSON shape of one settings field.
type PreferenceField struct {
	Key       string             `json:"key"`
	Title     string             `json:"title"`
	Summary   string             `json:"summary"`
	InputType settings.InputType `json:"input_type"`
	Value     string             `json:"value,omitempty"`
	Validated bool               `json:"validated"`
}

// PreferencePayload is the body of the validate and submit endpoints.
type PreferencePayload struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

func screenFromRequest(w http.ResponseWriter, r *http.Request) *settings.Screen {
	src, ok := getSourceFromContext(r).(configurable)
	if !ok {
		RespondWithError(w, http.StatusNotImplemented, "Source has no settings")
		return nil
	}
	return src.PreferenceScreen()
}

func (s *Server) handleListPreferences(w http.ResponseWriter, r *http.Request) {
	screen := screenFromRequest(w, r)
	if screen == nil {
		return
	}

	fields := screen.Fields()
	out := make([]PreferenceField, 0, len(fields))
	for _, f := range fields {
		pf := PreferenceField{
			Key:       f.Key,
			Title:     f.Title,
			Summary:   f.Summary,
			InputType: f.InputType,
			Validated: f.Validate != nil,
		}
		if pf.InputType == "" {
			pf.InputType = settings.InputText
		}
		// Passwords are write-only.
		if f.InputType != settings.InputPassword {
			value, err := screen.Value(f.Key)
			if err != nil {
				RespondWithError(w, http.StatusInternalServerError, "Failed to read settings")
				return
			}
			pf.Value = value
		}
		out = append(out, pf)
	}
	RespondWithJSON(w, http.StatusOK, out)
}

func (s *Server) handleValidatePreference(w http.ResponseWriter, r *http.Request) {
	screen := screenFromRequest(w, r)
	if screen == nil {
		return
	}
	var payload PreferencePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if screen.Field(payload.Key) == nil {
		RespondWithError(w, http.StatusNotFound, "Unknown setting")
		return
	}

	resp := map[string]interface{}{"valid": true}
	var verr *settings.ValidationError
	if err := screen.Check(payload.Key, payload.Value); errors.As(err, &verr) {
		resp["valid"] = false
		resp["error"] = verr.Message
	}
	RespondWithJSON(w, http.StatusOK, resp)
}

func (s *Server) handleSubmitPreference(w http.ResponseWriter, r *http.Request) {
	screen := screenFromRequest(w, r)
	if screen == nil {
		return
	}
	var payload PreferencePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if screen.Field(payload.Key) == nil {
		RespondWithError(w, http.StatusNotFound, "Unknown setting")
		return
	}

	notice, err := screen.Submit(payload.Key, payload.Value)
	var verr *settings.ValidationError
	switch {
	case errors.As(err, &verr):
		RespondWithError(w, http.StatusBadRequest, verr.Message)
		return
	case err != nil:
		RespondWithError(w, http.StatusInternalServerError, "Failed to save setting")
		return
	}
	RespondWithJSON(w, http.StatusOK, map[string]string{"message": notice})
}
