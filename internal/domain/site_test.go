package domain

import "testing"

func TestDefaultSites_UniqueKeys(t *testing.T) {
	seen := make(map[string]bool)
	for _, s := range DefaultSites() {
		if seen[s.Key] {
			t.Errorf("duplicate site key %q", s.Key)
		}
		seen[s.Key] = true
		if s.Kind != SiteKindDefault {
			t.Errorf("site %q kind = %s, want DEFAULT", s.Key, s.Kind)
		}
		if s.Name == "" {
			t.Errorf("site %q has empty name", s.Key)
		}
	}
	if len(seen) != 9 {
		t.Errorf("default catalog has %d sites, want 9", len(seen))
	}
}

func TestIsDefaultSiteKey(t *testing.T) {
	if !IsDefaultSiteKey(SiteAbdomenLeft) {
		t.Errorf("IsDefaultSiteKey(%q) = false, want true", SiteAbdomenLeft)
	}
	if IsDefaultSiteKey("custom_123") {
		t.Error("IsDefaultSiteKey(custom_123) = true, want false")
	}
}

func TestStartingSiteKey_IsInCatalog(t *testing.T) {
	if !IsDefaultSiteKey(StartingSiteKey) {
		t.Errorf("starting site %q is not in the default catalog", StartingSiteKey)
	}
}

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()
	if s.MinRestDays != 3 {
		t.Errorf("MinRestDays = %d, want 3", s.MinRestDays)
	}
	if len(s.EnabledSiteKeys) != len(DefaultSites()) {
		t.Errorf("enabled %d sites, want %d", len(s.EnabledSiteKeys), len(DefaultSites()))
	}
	if !s.IsEnabled(SiteLowerBack) {
		t.Error("lower_back should be enabled by default")
	}
	if s.IsEnabled("custom_nope") {
		t.Error("unknown key should not be enabled")
	}
}
