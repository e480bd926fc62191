package domain

import (
	"time"

	"github.com/google/uuid"
)

// Placement is a single logged use of a site at a point in time.
// OccurredAt has to-the-second precision and defaults to "now" when the
// placement is logged; it is changed only through an explicit edit.
type Placement struct {
	ID         uuid.UUID
	SiteKey    string
	OccurredAt time.Time
	Note       *string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
