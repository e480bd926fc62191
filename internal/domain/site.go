package domain

// SiteKind distinguishes built-in sites from user-defined ones.
type SiteKind string

const (
	SiteKindDefault SiteKind = "DEFAULT"
	SiteKindCustom  SiteKind = "CUSTOM"
)

func (k SiteKind) String() string { return string(k) }

func (k SiteKind) IsValid() bool {
	switch k {
	case SiteKindDefault, SiteKindCustom:
		return true
	}
	return false
}

// Site is a body location where the device can be placed.
// Default sites are fixed at build time and can only be enabled or disabled;
// custom sites are created, renamed, and deleted by the user.
type Site struct {
	Key     string
	Name    string
	Icon    string
	Kind    SiteKind
	Enabled bool
}

// Keys of the built-in site catalog. Stable — they are referenced by
// placement rows and the enabled-site set in settings.
const (
	SiteAbdomenLeft  = "abdomen_left"
	SiteAbdomenRight = "abdomen_right"
	SiteThighLeft    = "thigh_left"
	SiteThighRight   = "thigh_right"
	SiteButtockLeft  = "buttock_left"
	SiteButtockRight = "buttock_right"
	SiteArmLeft      = "arm_left"
	SiteArmRight     = "arm_right"
	SiteLowerBack    = "lower_back"
)

// StartingSiteKey is recommended when no placement has ever been logged.
const StartingSiteKey = SiteAbdomenLeft

// DefaultSites returns the built-in catalog in display order.
// Enabled flags are not set here; the caller applies the enabled-site set
// from settings.
func DefaultSites() []Site {
	return []Site{
		{Key: SiteAbdomenLeft, Name: "Abdomen (left)", Icon: "abdomen", Kind: SiteKindDefault},
		{Key: SiteAbdomenRight, Name: "Abdomen (right)", Icon: "abdomen", Kind: SiteKindDefault},
		{Key: SiteThighLeft, Name: "Thigh (left)", Icon: "thigh", Kind: SiteKindDefault},
		{Key: SiteThighRight, Name: "Thigh (right)", Icon: "thigh", Kind: SiteKindDefault},
		{Key: SiteButtockLeft, Name: "Buttock (left)", Icon: "buttock", Kind: SiteKindDefault},
		{Key: SiteButtockRight, Name: "Buttock (right)", Icon: "buttock", Kind: SiteKindDefault},
		{Key: SiteArmLeft, Name: "Upper arm (left)", Icon: "arm", Kind: SiteKindDefault},
		{Key: SiteArmRight, Name: "Upper arm (right)", Icon: "arm", Kind: SiteKindDefault},
		{Key: SiteLowerBack, Name: "Lower back", Icon: "back", Kind: SiteKindDefault},
	}
}

// IsDefaultSiteKey reports whether key belongs to the built-in catalog.
func IsDefaultSiteKey(key string) bool {
	for _, s := range DefaultSites() {
		if s.Key == key {
			return true
		}
	}
	return false
}
