package http

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/bizdash/internal/api/http/handlers"
	"github.com/spec-kit/bizdash/internal/guard"
	"github.com/spec-kit/bizdash/internal/service"
	"github.com/spec-kit/bizdash/internal/workspace"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health    *handlers.HealthHandler
	Auth      *handlers.AuthHandler
	Business  *handlers.BusinessHandler
	Blog      *handlers.BlogHandler
	Staff     *handlers.StaffHandler
	Settings  *handlers.SettingsHandler
	Portal    *handlers.PortalHandler
	Workspace *workspace.Factory

	AdminAuth *service.AuthService
	StaffAuth *service.StaffAuthService

	LoginPerMinute int
	LoginBurst     int
	Logger         *zap.Logger
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	// health probes are registered ahead of the workspace middleware so they
	// never touch cookies or the session persister
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	app.Use(workspace.Middleware(cfg.Workspace))

	limiter := newLoginLimiter(cfg.LoginPerMinute, cfg.LoginBurst).handler()
	app.Get("/login", cfg.Auth.LoginPage)
	app.Post("/login", limiter, cfg.Auth.Login)
	app.Post("/login/staff", limiter, cfg.Auth.LoginStaff)
	app.Post("/register", limiter, cfg.Auth.Register)
	app.Post("/logout", cfg.Auth.Logout)
	app.Post("/staff/logout", cfg.Auth.LogoutStaff)

	admin := chain(rehydrateAdmin(cfg.AdminAuth, logger), guard.Middleware(guard.RequireAuthenticated, adminView))
	superAdmin := chain(rehydrateAdmin(cfg.AdminAuth, logger), guard.Middleware(guard.RequireSuperAdmin, adminView))
	staff := chain(rehydrateStaff(cfg.StaffAuth, logger), guard.Middleware(guard.RequireStaff, staffView))

	app.Get("/overview", admin(cfg.Business.Overview)...)
	app.Post("/businesses", admin(cfg.Business.Create)...)

	// slug lookups go first so "/business/slug/..." never binds :id
	app.Get("/business/slug/:slug", admin(cfg.Business.GetBySlug)...)
	app.Get("/business/:id/blog/slug/:slug", admin(cfg.Blog.GetBySlug)...)

	app.Get("/business/:id", admin(cfg.Business.Get)...)
	app.Put("/business/:id", admin(cfg.Business.Update)...)
	app.Delete("/business/:id", admin(cfg.Business.Delete)...)
	app.Post("/business/:id/logo", admin(cfg.Business.UploadLogo)...)

	app.Get("/business/:id/blog", admin(cfg.Blog.List)...)
	app.Post("/business/:id/blog", admin(cfg.Blog.Create)...)
	app.Get("/business/:id/blog/:blogId", admin(cfg.Blog.Get)...)
	app.Put("/business/:id/blog/:blogId", admin(cfg.Blog.Update)...)
	app.Delete("/business/:id/blog/:blogId", admin(cfg.Blog.Delete)...)
	app.Post("/business/:id/blog/:blogId/featured-image", admin(cfg.Blog.UploadFeaturedImage)...)

	app.Get("/business/:id/staff", admin(cfg.Staff.List)...)
	app.Post("/business/:id/staff", admin(cfg.Staff.Create)...)
	app.Get("/business/:id/staff/:staffId", admin(cfg.Staff.Get)...)
	app.Put("/business/:id/staff/:staffId", admin(cfg.Staff.Update)...)
	app.Delete("/business/:id/staff/:staffId", admin(cfg.Staff.Delete)...)
	app.Post("/business/:id/staff/:staffId/photo", admin(cfg.Staff.UploadPhoto)...)
	app.Post("/business/:id/staff/:staffId/documents", admin(cfg.Staff.UploadDocument)...)

	app.Get("/settings/admins", superAdmin(cfg.Settings.ListAdmins)...)
	app.Post("/settings/create-admin", superAdmin(cfg.Settings.CreateAdmin)...)
	app.Get("/settings/admins/:id", superAdmin(cfg.Settings.GetAdmin)...)
	app.Put("/settings/admins/:id", superAdmin(cfg.Settings.UpdateAdmin)...)
	app.Delete("/settings/admins/:id", superAdmin(cfg.Settings.DeleteAdmin)...)

	app.Get("/dashboard", staff(cfg.Portal.Dashboard)...)
	app.Get("/attendance", staff(cfg.Portal.Attendance)...)
	app.Post("/attendance/clock-in", staff(cfg.Portal.ClockIn)...)
	app.Post("/attendance/clock-out", staff(cfg.Portal.ClockOut)...)
}

// chain prefixes a route handler with mw.
func chain(mw ...fiber.Handler) func(fiber.Handler) []fiber.Handler {
	return func(h fiber.Handler) []fiber.Handler {
		out := make([]fiber.Handler, 0, len(mw)+1)
		out = append(out, mw...)
		return append(out, h)
	}
}

func adminView(c *fiber.Ctx) guard.View {
	ws := workspace.From(c)
	if ws == nil {
		return guard.View{}
	}
	return guard.AdminView(ws.Admin)
}

func staffView(c *fiber.Ctx) guard.View {
	ws := workspace.From(c)
	if ws == nil {
		return guard.View{}
	}
	return guard.StaffView(ws.Staff)
}

// rehydrateAdmin refreshes the admin snapshot before the guard reads it. A
// failed refresh leaves the snapshot as is and lets the guard decide.
func rehydrateAdmin(svc *service.AuthService, logger *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if ws := workspace.From(c); ws != nil {
			if err := svc.Rehydrate(c.UserContext(), ws); err != nil {
				logger.Warn("admin rehydrate failed", zap.Error(err))
			}
		}
		return c.Next()
	}
}

func rehydrateStaff(svc *service.StaffAuthService, logger *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if ws := workspace.From(c); ws != nil {
			if err := svc.Rehydrate(c.UserContext(), ws); err != nil {
				logger.Warn("staff rehydrate failed", zap.Error(err))
			}
		}
		return c.Next()
	}
}
