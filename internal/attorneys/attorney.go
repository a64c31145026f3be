// Package attorneys maintains the directory of attorneys available for
// lead assignment.
package attorneys

import (
	"time"

	"github.com/google/uuid"
)

// Attorney is a service provider who can be assigned to leads. IDs are
// opaque UUIDs rather than sequence numbers so records imported from
// external rosters can never collide with locally created ones.
type Attorney struct {
	ID          uuid.UUID
	Name        string
	Email       string
	Phone       string
	City        string
	State       string
	Specialties []string
	CreatedAt   time.Time
}
