package appointment

import "time"

type AvailabilityInput struct {
	DoctorID string
	Days     int
	// Now is the current instant in the clinic timezone.
	Now time.Time
}
