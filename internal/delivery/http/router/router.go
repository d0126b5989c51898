// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"shopfront/internal/delivery/http/middleware"
	"shopfront/internal/delivery/http/router/handler"
	"shopfront/internal/delivery/http/static"
	"shopfront/internal/domain/entity"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	HomeHandler      *handler.HomeHandler
	AuthHandler      *handler.AuthHandler
	DashboardHandler *handler.DashboardHandler
	ProductHandler   *handler.ProductHandler
	MediaHandler     *handler.MediaHandler

	SessionMiddleware *middleware.SessionMiddleware
	AccessMiddleware  *middleware.AccessMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	homeHandler      *handler.HomeHandler
	authHandler      *handler.AuthHandler
	dashboardHandler *handler.DashboardHandler
	productHandler   *handler.ProductHandler
	mediaHandler     *handler.MediaHandler

	sessionMiddleware *middleware.SessionMiddleware
	accessMiddleware  *middleware.AccessMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		homeHandler:       params.HomeHandler,
		authHandler:       params.AuthHandler,
		dashboardHandler:  params.DashboardHandler,
		productHandler:    params.ProductHandler,
		mediaHandler:      params.MediaHandler,
		sessionMiddleware: params.SessionMiddleware,
		accessMiddleware:  params.AccessMiddleware,
	}
}

// RegisterRoutes sets up all the page routes for the application.
// The principal is loaded for every request; role gates are per route.
func (r *router) RegisterRoutes(e *echo.Echo) {
	e.Use(r.sessionMiddleware.LoadPrincipal)

	e.GET("/health", handler.HealthCheck)
	e.GET("/media/products/:name", r.mediaHandler.ProductImage)
	e.StaticFS(static.PathPrefix, static.FS())
	e.GET("/", r.homeHandler.Home)

	// Anonymous routes
	for _, role := range entity.AllRoles {
		e.GET(middleware.LoginPath(role), r.authHandler.LoginPage(role))
		e.POST(middleware.LoginPath(role), r.authHandler.Login(role))
	}
	e.GET("/register/viewer", r.authHandler.RegisterViewerPage)
	e.POST("/register/viewer", r.authHandler.RegisterViewer)
	e.GET("/register/admin", r.authHandler.RegisterSellerPage)
	e.POST("/register/admin", r.authHandler.RegisterSeller)
	e.GET("/forgotpassword", r.authHandler.ForgotPasswordPage)
	e.POST("/forgotpassword", r.authHandler.ForgotPassword)

	e.GET("/logout", r.authHandler.Logout, r.sessionMiddleware.RequireSession)

	// Viewer routes
	viewerOnly := r.accessMiddleware.RequireRole(entity.RoleViewer)
	e.GET(middleware.DashboardPath(entity.RoleViewer), r.dashboardHandler.Viewer, viewerOnly)

	// Seller routes, always scoped to the seller's own shop
	adminOnly := r.accessMiddleware.RequireRole(entity.RoleAdmin)
	e.GET(middleware.DashboardPath(entity.RoleAdmin), r.dashboardHandler.Admin, adminOnly)
	e.GET("/product/add", r.productHandler.AddPage, adminOnly)
	e.POST("/product/add", r.productHandler.Add, adminOnly)
	e.POST("/product/import", r.productHandler.Import, adminOnly)
	e.GET("/product/edit/:id", r.productHandler.EditPage, adminOnly)
	e.POST("/product/edit/:id", r.productHandler.Edit, adminOnly)
	e.GET("/product/delete/:id", r.productHandler.DeletePage, adminOnly)
	e.POST("/product/delete/:id", r.productHandler.Delete, adminOnly)
}
