package easyyomi

import (
	"fmt"
	"strings"

	"github.com/vrsandeep/mango-easyyomi/internal/models"
	"github.com/vrsandeep/mango-easyyomi/internal/settings"
)

// Preference keys. They double as the field titles shown to the user, so
// they must not change once released.
const (
	PrefDisplayName = "Source display name"
	PrefAddress     = "Address"
	PrefUsername    = "Username"
	PrefPassword    = "Password"

	addressDefault  = ""
	usernameDefault = "username"
	passwordDefault = "password"
)

// Config is the per-instance configuration, read once when the source is
// constructed and passed explicitly to everything that needs it.
type Config struct {
	Suffix      string
	DisplayName string
	BaseURL     string
	Username    string
	Password    string
}

// LoadConfig reads the source settings from prefs.
func LoadConfig(suffix string, prefs models.Preferences) (Config, error) {
	cfg := Config{Suffix: suffix}
	for _, p := range []struct {
		key string
		def string
		dst *string
	}{
		{PrefDisplayName, "", &cfg.DisplayName},
		{PrefAddress, addressDefault, &cfg.BaseURL},
		{PrefUsername, usernameDefault, &cfg.Username},
		{PrefPassword, passwordDefault, &cfg.Password},
	} {
		v, err := prefs.Get(p.key, p.def)
		if err != nil {
			return Config{}, fmt.Errorf("failed to read preference %q: %w", p.key, err)
		}
		*p.dst = v
	}
	cfg.BaseURL = strings.TrimSuffix(cfg.BaseURL, "/")
	return cfg, nil
}

// PreferenceScreen builds the settings form for this source. Summaries show
// the values loaded at construction, matching what the source is using.
func (s *Easyyomi) PreferenceScreen() *settings.Screen {
	screen := settings.NewScreen(s.prefs)
	screen.Add(settings.EditTextField{
		Key:     PrefDisplayName,
		Title:   "Source display name",
		Default: s.cfg.Suffix,
		Summary: orDefault(s.cfg.DisplayName, "Here you can change the source displayed suffix"),
	})
	screen.Add(settings.EditTextField{
		Key:               PrefAddress,
		Title:             "Address",
		Default:           addressDefault,
		Summary:           orDefault(s.cfg.BaseURL, "The server address (with port if necessary)"),
		InputType:         settings.InputURI,
		Validate:          settings.IsHTTPURL,
		ValidationMessage: "The URL is invalid or malformed",
	})
	screen.Add(settings.EditTextField{
		Key:     PrefUsername,
		Title:   "Username",
		Default: usernameDefault,
		Summary: orDefault(s.cfg.Username, "The basic auth username"),
	})
	screen.Add(settings.EditTextField{
		Key:       PrefPassword,
		Title:     "Password",
		Default:   passwordDefault,
		Summary:   passwordSummary(s.cfg.Password),
		InputType: settings.InputPassword,
	})
	return screen
}

// passwordSummary masks the password with one '*' per character.
// TODO: confirm whether the mask should have a fixed width; this one reveals the password length.
func passwordSummary(password string) string {
	if strings.TrimSpace(password) == "" {
		return "The basic auth password"
	}
	return strings.Repeat("*", len([]rune(password)))
}

func orDefault(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}
