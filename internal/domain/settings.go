package domain

import (
	"slices"
	"time"
)

// Settings bounds for the minimum rest period.
const (
	MinRestDaysFloor = 1
	MinRestDaysCeil  = 60
)

// Settings holds the user-mutable rotation configuration.
// EnabledSiteKeys covers both default and custom sites; the invariant
// "at least one site enabled" is enforced by the site service on every
// mutation, never here.
type Settings struct {
	MinRestDays       int
	EnabledSiteKeys   []string
	ShowDisabledSites bool
	UpdatedAt         time.Time
}

// IsEnabled reports whether the given site key is in the enabled set.
func (s *Settings) IsEnabled(key string) bool {
	return slices.Contains(s.EnabledSiteKeys, key)
}

// EnabledSet returns the enabled site keys as a set.
func (s *Settings) EnabledSet() map[string]bool {
	set := make(map[string]bool, len(s.EnabledSiteKeys))
	for _, k := range s.EnabledSiteKeys {
		set[k] = true
	}
	return set
}

// DefaultSettings returns the settings used before the user changes anything:
// a 3-day rest period with every built-in site enabled.
func DefaultSettings() Settings {
	sites := DefaultSites()
	keys := make([]string, len(sites))
	for i, s := range sites {
		keys[i] = s.Key
	}
	return Settings{
		MinRestDays:       3,
		EnabledSiteKeys:   keys,
		ShowDisabledSites: false,
	}
}
