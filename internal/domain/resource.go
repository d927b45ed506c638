package domain

// Resource represents a unit of service capacity (a cleaning truck with its
// crew). A booking consumes exactly one resource for its entire duration.
// Inactive resources are excluded from allocation but never deleted, so
// historical bookings keep a valid reference.
type Resource struct {
	ID             int64
	DisplayName    string
	IdentifierCode string
	Active         bool
	PriorityOrder  int
}
