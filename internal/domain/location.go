package domain

// LocationRole marks a location's position in the routed sequence.
type LocationRole string

const (
	RoleOrigin      LocationRole = "origin"
	RoleDestination LocationRole = "destination"
	RoleWaypoint    LocationRole = "waypoint"
)

// Valid reports whether r is one of the known roles.
func (r LocationRole) Valid() bool {
	switch r {
	case RoleOrigin, RoleDestination, RoleWaypoint:
		return true
	}
	return false
}

// Location is a resolved place on the route. Immutable once a route has been
// calculated; geocoding happens in an external collaborator before segments
// reach the engine.
type Location struct {
	ID      string       `json:"id,omitempty"` // provider place id, may be empty
	Name    string       `json:"name"`
	Address string       `json:"address,omitempty"`
	Lat     float64      `json:"lat"`
	Lng     float64      `json:"lng"`
	Role    LocationRole `json:"role,omitempty"`
}

// HasCoordinates reports whether the location was actually geocoded.
// The zero pair (0,0) is the "never resolved" marker used throughout the
// planner; it is a point in the Gulf of Guinea no road trip passes through.
func (l Location) HasCoordinates() bool {
	return l.Lat != 0 || l.Lng != 0
}
