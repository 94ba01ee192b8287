package domain

// Preference values mirror the console frontend's language and theme toggles.
const (
	LanguageFrench  = "fr"
	LanguageEnglish = "en"

	ThemeLight = "light"
	ThemeDark  = "dark"
)

// Preferences is the per-user UI preference record.
type Preferences struct {
	Language string `json:"language"`
	Theme    string `json:"theme"`
}

// DefaultPreferences matches the frontend defaults for a fresh browser.
func DefaultPreferences() Preferences {
	return Preferences{Language: LanguageFrench, Theme: ThemeLight}
}

// Normalize coerces unknown values back to the defaults.
func (p Preferences) Normalize() Preferences {
	if p.Language != LanguageFrench && p.Language != LanguageEnglish {
		p.Language = LanguageFrench
	}
	if p.Theme != ThemeLight && p.Theme != ThemeDark {
		p.Theme = ThemeLight
	}
	return p
}
