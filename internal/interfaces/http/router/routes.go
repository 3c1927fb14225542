package router

import (
	"github.com/gin-gonic/gin"
	"github.com/shelflog/backend/internal/interfaces/http/handler"
	"github.com/shelflog/backend/internal/interfaces/http/middleware"
	"go.uber.org/zap"
)

// Handlers bundles the HTTP handlers the API exposes
type Handlers struct {
	Auth      *handler.AuthHandler
	Items     *handler.ItemHandler
	Events    *handler.EventHandler
	Feeds     *handler.FeedHandler
	Trends    *handler.TrendHandler
	Dashboard *handler.DashboardHandler
	System    *handler.SystemHandler
	// AuthLimiter throttles the public auth endpoints when set
	AuthLimiter *middleware.RateLimiter
}

// APIGroups builds the route groups of the API:
//
//	public:    /auth/signup /auth/signin /auth/refresh /health /system/info
//	signed-in: /auth/signout /me /items /events /feeds/me /dashboard
//	managers:  /feeds/store /trends
func APIGroups(h Handlers, authenticator middleware.Authenticator, log *zap.Logger) []RouteRegistrar {
	public := NewDomainGroup("public", "")
	authRoutes := public.Group("auth", "/auth")
	if h.AuthLimiter != nil {
		authRoutes.Use(middleware.AuthRateLimit(h.AuthLimiter))
	}
	authRoutes.
		POST("/signup", h.Auth.SignUp).
		POST("/signin", h.Auth.SignIn).
		POST("/refresh", h.Auth.Refresh)
	public.GET("/health", h.System.Health)
	public.GET("/system/info", h.System.GetSystemInfo)

	protected := NewDomainGroup("protected", "").
		Use(middleware.JWTAuth(authenticator, log), middleware.SpanAttributes())
	protected.
		POST("/auth/signout", h.Auth.SignOut).
		GET("/me", h.Auth.Me).
		GET("/items", h.Items.List).
		POST("/events", h.Events.Submit).
		GET("/feeds/me", h.Feeds.UserFeed).
		GET("/dashboard", h.Dashboard.Get)

	protected.Group("manager", "").
		Use(middleware.RequireManager()).
		GET("/feeds/store", h.Feeds.StoreFeed).
		GET("/trends", h.Trends.Get)

	return []RouteRegistrar{public, protected}
}

// SetupAPI registers the API groups on the engine under /api/<version>
func SetupAPI(engine *gin.Engine, h Handlers, authenticator middleware.Authenticator, log *zap.Logger, opts ...RouterOption) *Router {
	r := NewRouter(engine, opts...)
	r.Register(APIGroups(h, authenticator, log)...)
	r.Setup()
	return r
}
