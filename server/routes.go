package server

func (s *Server) initRoutes() {
	// AUTH
	s.RegisterRouteHandler("GET "+RouteAuthStatus, ChainMiddleware(s.AuthStatusHandler(), s.APIMiddleware()...))
	s.RegisterRouteHandler("GET "+RouteAuthLogin, ChainMiddleware(s.LoginHandler(), s.APIMiddleware()...))
	s.RegisterRouteHandler("GET "+RouteCallback, ChainMiddleware(s.CallbackHandler(), s.APIMiddleware()...))
	s.RegisterRouteHandler("POST "+RouteLogout, ChainMiddleware(s.LogoutHandler(), s.APIMiddleware()...))

	// DESIGNS
	s.RegisterRouteHandler("GET "+RouteDesigns, ChainMiddleware(s.ListDesignsHandler(), s.APIMiddleware()...))
	s.RegisterRouteHandler("GET "+RouteDesignByID, ChainMiddleware(s.GetDesignHandler(), s.APIMiddleware()...))
	s.RegisterRouteHandler("POST "+RouteDesignImport, ChainMiddleware(s.ImportDesignHandler(), s.APIMiddleware()...))

	// IMAGES
	s.RegisterRouteHandler("GET "+RouteImages, ChainMiddleware(s.ServeImageHandler(), s.APIMiddleware()...))

	// Browsers send preflight requests before cross-origin POSTs; the CORS
	// middleware answers them before this handler runs.
	s.RegisterRouteHandler("OPTIONS /", ChainMiddleware(s.PreflightHandler(), s.APIMiddleware()...))
}
