package auditor

// Schema version.
const SchemaVersion = "1.0.0"

// Rotation policy constants (days).
const (
	// GracePeriodDays is the fixed interval between the first rotation
	// notice and deactivation. Deliberately not configurable.
	GracePeriodDays = 7
)

// ContactTagKey is the user tag carrying the owner's email address.
const ContactTagKey = "Contact"
