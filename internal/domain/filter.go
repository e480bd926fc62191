package domain

import "time"

// PlacementFilter narrows placement listings. Nil fields mean "no filter".
type PlacementFilter struct {
	From    *time.Time
	To      *time.Time
	SiteKey *string
	Limit   int
	Offset  int
}
