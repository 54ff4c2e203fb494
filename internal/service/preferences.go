package service

import (
	"context"

	"github.com/Mester2001/portfolio/internal/models"
	"github.com/Mester2001/portfolio/pkg/logger"
)

const (
	ThemeDark  = "dark"
	ThemeLight = "light"

	LanguageArabic  = "ar"
	LanguageEnglish = "en"
)

// DefaultPreferences is what a fresh visitor sees.
var DefaultPreferences = models.Preferences{Theme: ThemeDark, Language: LanguageArabic}

// PreferenceStore keeps the theme and language flags in the same key-value
// store as the projects.
type PreferenceStore struct {
	kv models.KeyValueStore
}

func NewPreferenceStore(kv models.KeyValueStore) *PreferenceStore {
	return &PreferenceStore{kv: kv}
}

// Get never fails: unreadable or unknown values fall back to the defaults.
func (s *PreferenceStore) Get(ctx context.Context) models.Preferences {
	return models.Preferences{
		Theme:    s.read(ctx, models.KeyTheme, DefaultPreferences.Theme, ThemeDark, ThemeLight),
		Language: s.read(ctx, models.KeyLanguage, DefaultPreferences.Language, LanguageArabic, LanguageEnglish),
	}
}

func (s *PreferenceStore) read(ctx context.Context, key, fallback string, allowed ...string) string {
	v, found, err := s.kv.Get(ctx, key)
	if err != nil {
		logger.Warn("Error reading preference %s: %v", key, err)
		return fallback
	}
	if !found {
		return fallback
	}

	for _, a := range allowed {
		if v == a {
			return v
		}
	}
	logger.Debug("Ignoring unknown %s value %q", key, v)
	return fallback
}

func (s *PreferenceStore) ToggleTheme(ctx context.Context) (models.Preferences, error) {
	prefs := s.Get(ctx)
	if prefs.Theme == ThemeDark {
		prefs.Theme = ThemeLight
	} else {
		prefs.Theme = ThemeDark
	}

	return prefs, s.kv.Set(ctx, models.KeyTheme, prefs.Theme)
}

func (s *PreferenceStore) ToggleLanguage(ctx context.Context) (models.Preferences, error) {
	prefs := s.Get(ctx)
	if prefs.Language == LanguageArabic {
		prefs.Language = LanguageEnglish
	} else {
		prefs.Language = LanguageArabic
	}

	return prefs, s.kv.Set(ctx, models.KeyLanguage, prefs.Language)
}
