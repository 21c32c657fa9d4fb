package server

// Route path constants
// All application routes are defined here to ensure consistency and prevent typos
const (
	// Auth Routes
	RouteAuthStatus = "/auth/status"
	RouteAuthLogin  = "/auth/login"
	RouteCallback   = "/callback"
	RouteLogout     = "/logout"

	// Design Routes
	RouteDesigns      = "/designs"
	RouteDesignByID   = "/designs/{designId}"
	RouteDesignImport = "/designs/{designId}/import"

	// Image Routes
	RouteImages = "/images/{filename}"
)
