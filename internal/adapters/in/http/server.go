package http

import (
	"net/http"

	"transportconnect/internal/core/application/usecases/commands"
	"transportconnect/internal/core/application/usecases/queries"

	"github.com/labstack/echo/v4"
)

// Handlers groups the use cases the HTTP boundary exposes.
type Handlers struct {
	Register          commands.RegisterCommandHandler
	Login             commands.LoginCommandHandler
	Logout            commands.LogoutCommandHandler
	CreateOffer       commands.CreateOfferCommandHandler
	DeleteOffer       commands.DeleteOfferCommandHandler
	CreateRequest     commands.CreateRequestCommandHandler
	TransitionRequest commands.TransitionRequestCommandHandler
	SetIdentityActive commands.SetIdentityActiveCommandHandler
	VerifyIdentity    commands.VerifyIdentityCommandHandler

	Authenticate   queries.AuthenticateQueryHandler
	GetMe          queries.GetMeQueryHandler
	GetRequest     queries.GetRequestQueryHandler
	ListOffers     queries.ListOffersQueryHandler
	ListIdentities queries.ListIdentitiesQueryHandler
	GetStatistics  queries.GetStatisticsQueryHandler
}

// Server translates HTTP calls into commands and queries and renders their
// results. Errors are returned to echo and rendered by the error handler.
type Server struct {
	// Command handlers
	registerHandler          commands.RegisterCommandHandler
	loginHandler             commands.LoginCommandHandler
	logoutHandler            commands.LogoutCommandHandler
	createOfferHandler       commands.CreateOfferCommandHandler
	deleteOfferHandler       commands.DeleteOfferCommandHandler
	createRequestHandler     commands.CreateRequestCommandHandler
	transitionRequestHandler commands.TransitionRequestCommandHandler
	setIdentityActiveHandler commands.SetIdentityActiveCommandHandler
	verifyIdentityHandler    commands.VerifyIdentityCommandHandler

	// Query handlers
	authenticateHandler   queries.AuthenticateQueryHandler
	getMeHandler          queries.GetMeQueryHandler
	getRequestHandler     queries.GetRequestQueryHandler
	listOffersHandler     queries.ListOffersQueryHandler
	listIdentitiesHandler queries.ListIdentitiesQueryHandler
	getStatisticsHandler  queries.GetStatisticsQueryHandler
}

func NewServer(h Handlers) *Server {
	return &Server{
		registerHandler:          h.Register,
		loginHandler:             h.Login,
		logoutHandler:            h.Logout,
		createOfferHandler:       h.CreateOffer,
		deleteOfferHandler:       h.DeleteOffer,
		createRequestHandler:     h.CreateRequest,
		transitionRequestHandler: h.TransitionRequest,
		setIdentityActiveHandler: h.SetIdentityActive,
		verifyIdentityHandler:    h.VerifyIdentity,
		authenticateHandler:      h.Authenticate,
		getMeHandler:             h.GetMe,
		getRequestHandler:        h.GetRequest,
		listOffersHandler:        h.ListOffers,
		listIdentitiesHandler:    h.ListIdentities,
		getStatisticsHandler:     h.GetStatistics,
	}
}

// RegisterRoutes mounts every endpoint on e.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", s.Health)
	e.POST("/register", s.Register)
	e.POST("/login", s.Login)

	e.POST("/logout", s.Logout, s.RequireAuth)
	e.GET("/me", s.Me, s.RequireAuth)
	e.POST("/offers", s.CreateOffer, s.RequireAuth)
	e.POST("/requests", s.CreateRequest, s.RequireAuth)
	e.GET("/requests/:id", s.GetRequest, s.RequireAuth)
	e.PUT("/requests/:id/status", s.UpdateRequestStatus, s.RequireAuth)

	admin := e.Group("/admin", s.RequireAuth)
	admin.GET("/users", s.ListUsers)
	admin.PUT("/users/:id/status", s.SetUserStatus)
	admin.PUT("/users/:id/verify", s.VerifyUser)
	admin.GET("/offers", s.ListOffers)
	admin.DELETE("/offers/:id", s.DeleteOffer)
	admin.GET("/dashboard", s.Dashboard)
}

// Health handles GET /health.
func (s *Server) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, HealthResponse{Status: "ok"})
}

// Register handles POST /register - public sign-up for drivers and senders.
func (s *Server) Register(c echo.Context) error {
	var body RegisterRequest
	if err := bindBody(c, &body); err != nil {
		return err
	}
	cmd, err := commands.NewRegisterCommand(body.FirstName, body.LastName, body.Email, body.Password, body.Role, body.Phone)
	if err != nil {
		return err
	}
	result, err := s.registerHandler.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toAuthResponse(result))
}

// Login handles POST /login.
func (s *Server) Login(c echo.Context) error {
	var body LoginRequest
	if err := bindBody(c, &body); err != nil {
		return err
	}
	cmd, err := commands.NewLoginCommand(body.Email, body.Password)
	if err != nil {
		return err
	}
	result, err := s.loginHandler.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toAuthResponse(result))
}

// Logout handles POST /logout - revokes the presented token.
func (s *Server) Logout(c echo.Context) error {
	raw, err := bearerToken(c)
	if err != nil {
		return err
	}
	cmd, err := commands.NewLogoutCommand(raw)
	if err != nil {
		return err
	}
	if err := s.logoutHandler.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, MessageResponse{Success: true, Message: "logged out"})
}

// Me handles GET /me.
func (s *Server) Me(c echo.Context) error {
	query, err := queries.NewGetMeQuery(actorOf(c))
	if err != nil {
		return err
	}
	summary, err := s.getMeHandler.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, UserEnvelope{Success: true, User: toUserResponse(summary)})
}

// CreateOffer handles POST /offers - drivers publish capacity.
func (s *Server) CreateOffer(c echo.Context) error {
	var body CreateOfferRequest
	if err := bindBody(c, &body); err != nil {
		return err
	}
	route, capacity, err := body.toDomain()
	if err != nil {
		return err
	}
	cmd, err := commands.NewCreateOfferCommand(actorOf(c), route, capacity)
	if err != nil {
		return err
	}
	created, err := s.createOfferHandler.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, OfferEnvelope{Success: true, Offer: toOfferResponse(created)})
}

// CreateRequest handles POST /requests - senders ask for space on an offer.
func (s *Server) CreateRequest(c echo.Context) error {
	var body CreateRequestRequest
	if err := bindBody(c, &body); err != nil {
		return err
	}
	cmd, err := commands.NewCreateRequestCommand(actorOf(c), body.OfferID, body.toDomain())
	if err != nil {
		return err
	}
	created, err := s.createRequestHandler.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, RequestEnvelope{Success: true, Request: toRequestResponse(created)})
}

// GetRequest handles GET /requests/:id.
func (s *Server) GetRequest(c echo.Context) error {
	query, err := queries.NewGetRequestQuery(actorOf(c), c.Param("id"))
	if err != nil {
		return err
	}
	found, err := s.getRequestHandler.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, RequestEnvelope{Success: true, Request: toRequestResponse(found)})
}

// UpdateRequestStatus handles PUT /requests/:id/status.
func (s *Server) UpdateRequestStatus(c echo.Context) error {
	var body UpdateStatusRequest
	if err := bindBody(c, &body); err != nil {
		return err
	}
	cmd, err := commands.NewTransitionRequestCommand(actorOf(c), c.Param("id"), body.Status)
	if err != nil {
		return err
	}
	updated, err := s.transitionRequestHandler.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, RequestEnvelope{Success: true, Request: toRequestResponse(updated)})
}

// ListUsers handles GET /admin/users?role=&status=.
func (s *Server) ListUsers(c echo.Context) error {
	query, err := queries.NewListIdentitiesQuery(actorOf(c), c.QueryParam("role"), c.QueryParam("status"))
	if err != nil {
		return err
	}
	users, err := s.listIdentitiesHandler.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, UsersEnvelope{Success: true, Users: toUserResponses(users)})
}

// SetUserStatus handles PUT /admin/users/:id/status.
func (s *Server) SetUserStatus(c echo.Context) error {
	var body SetActiveRequest
	if err := bindBody(c, &body); err != nil {
		return err
	}
	cmd, err := commands.NewSetIdentityActiveCommand(actorOf(c), c.Param("id"), *body.IsActive)
	if err != nil {
		return err
	}
	summary, err := s.setIdentityActiveHandler.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, UserEnvelope{Success: true, User: toUserResponse(summary)})
}

// VerifyUser handles PUT /admin/users/:id/verify.
func (s *Server) VerifyUser(c echo.Context) error {
	cmd, err := commands.NewVerifyIdentityCommand(actorOf(c), c.Param("id"))
	if err != nil {
		return err
	}
	summary, err := s.verifyIdentityHandler.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, UserEnvelope{Success: true, User: toUserResponse(summary)})
}

// ListOffers handles GET /admin/offers.
func (s *Server) ListOffers(c echo.Context) error {
	offers, err := s.listOffersHandler.Handle(c.Request().Context(), queries.NewListOffersQuery(actorOf(c)))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, OffersEnvelope{Success: true, Offers: toListedOfferResponses(offers)})
}

// DeleteOffer handles DELETE /admin/offers/:id.
func (s *Server) DeleteOffer(c echo.Context) error {
	cmd, err := commands.NewDeleteOfferCommand(actorOf(c), c.Param("id"))
	if err != nil {
		return err
	}
	if err := s.deleteOfferHandler.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, MessageResponse{Success: true, Message: "offer deleted"})
}

// Dashboard handles GET /admin/dashboard.
func (s *Server) Dashboard(c echo.Context) error {
	stats, err := s.getStatisticsHandler.Handle(c.Request().Context(), queries.NewGetStatisticsQuery(actorOf(c)))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, DashboardEnvelope{Success: true, Stats: toDashboardStats(stats)})
}
