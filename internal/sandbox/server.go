// Package sandbox is a self-contained implementation of the REST backend the
// dashboard consumes. It enforces the same tenancy rule server-side and is
// used for local development and end-to-end tests.
package sandbox

import (
	"context"
	"errors"
	"fmt"
	"path"
	"runtime/debug"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/bizdash/internal/access"
	"github.com/spec-kit/bizdash/internal/auth"
	"github.com/spec-kit/bizdash/internal/persistence"
	"github.com/spec-kit/bizdash/internal/repository"
	apperrors "github.com/spec-kit/bizdash/pkg/util"
)

// Deps bundles the backend's collaborators.
type Deps struct {
	Repos      repository.Set
	Objects    persistence.ObjectStore
	Tokens     *auth.TokenManager
	BcryptCost int
	Logger     *zap.Logger
	Now        func() time.Time
}

// Server holds the handlers.
type Server struct {
	repos      repository.Set
	objects    persistence.ObjectStore
	tokens     *auth.TokenManager
	authMW     *auth.AuthMiddleware
	bcryptCost int
	logger     *zap.Logger
	now        func() time.Time
}

// New builds a Server.
func New(deps Deps) *Server {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}
	if deps.Objects == nil {
		deps.Objects = persistence.NewMemoryObjectStore("")
	}
	return &Server{
		repos:      deps.Repos,
		objects:    deps.Objects,
		tokens:     deps.Tokens,
		authMW:     auth.NewAuthMiddleware(deps.Tokens, deps.Repos.Admins, deps.Repos.Staff),
		bcryptCost: deps.BcryptCost,
		logger:     deps.Logger,
		now:        deps.Now,
	}
}

// App builds a fiber app running mw ahead of the error envelope and the
// backend routes.
func (s *Server) App(mw ...fiber.Handler) *fiber.App {
	app := fiber.New(fiber.Config{DisableStartupMessage: true, BodyLimit: 10 << 20, UnescapePath: true})
	for _, h := range mw {
		app.Use(h)
	}
	app.Use(errorMiddleware(s.logger))
	s.Register(app)
	return app
}

// Register wires the backend routes on app.
func (s *Server) Register(app fiber.Router) {
	authed := s.authMW.Handle
	admin := auth.RequireAdmin()
	superAdmin := auth.RequireSuperAdmin()
	staff := auth.RequireStaff()

	app.Post("/admin/login", s.adminLogin)
	app.Post("/admin/register", s.authMW.Optional, s.adminRegister)
	app.Get("/admin/me", authed, admin, s.adminMe)
	app.Get("/admin/admins", authed, superAdmin, s.listAdmins)
	app.Get("/admin/admins/:id", authed, superAdmin, s.getAdmin)
	app.Put("/admin/admins/:id", authed, superAdmin, s.updateAdmin)
	app.Delete("/admin/admins/:id", authed, superAdmin, s.deleteAdmin)

	app.Post("/staff/login", s.staffLogin)
	app.Get("/staff/me", authed, staff, s.staffMe)

	app.Get("/businesses", authed, admin, s.listBusinesses)
	app.Post("/businesses", authed, superAdmin, s.createBusiness)
	app.Get("/businesses/slug/:slug", authed, admin, s.getBusinessBySlug)
	app.Get("/businesses/:id", authed, admin, s.getBusiness)
	app.Put("/businesses/:id", authed, admin, s.updateBusiness)
	app.Delete("/businesses/:id", authed, admin, s.deleteBusiness)
	app.Post("/businesses/:id/logo", authed, admin, s.uploadLogo)
	app.Get("/businesses/:id/blogs", authed, admin, s.listBusinessBlogs)
	app.Get("/businesses/:id/staff", authed, admin, s.listBusinessStaff)

	app.Get("/blogs", authed, admin, s.listBlogs)
	app.Post("/blogs", authed, admin, s.createBlog)
	app.Get("/blogs/slug/:slug", authed, admin, s.getBlogBySlug)
	app.Get("/blogs/:id", authed, admin, s.getBlog)
	app.Put("/blogs/:id", authed, admin, s.updateBlog)
	app.Delete("/blogs/:id", authed, admin, s.deleteBlog)
	app.Post("/blogs/:id/featured-image", authed, admin, s.uploadFeaturedImage)

	app.Post("/staff", authed, admin, s.createStaff)
	app.Get("/staff/:id", authed, admin, s.getStaff)
	app.Put("/staff/:id", authed, admin, s.updateStaff)
	app.Delete("/staff/:id", authed, admin, s.deleteStaff)
	app.Post("/staff/:id/photo", authed, admin, s.uploadStaffPhoto)
	app.Post("/staff/:id/documents", authed, admin, s.uploadStaffDocument)

	app.Post("/attendance/clock-in", authed, staff, s.clockIn)
	app.Post("/attendance/clock-out", authed, staff, s.clockOut)
	app.Get("/attendance/me", authed, staff, s.myAttendance)

	if src, ok := s.objects.(objectSource); ok {
		app.Get("/uploads/*", serveUpload(src))
	}
}

// objectSource is implemented by stores that can serve their own uploads.
type objectSource interface {
	Get(key string) ([]byte, string, bool)
}

func serveUpload(src objectSource) fiber.Handler {
	return func(c *fiber.Ctx) error {
		data, contentType, ok := src.Get(c.Params("*"))
		if !ok {
			return apperrors.NewNotFound("upload", map[string]any{"key": c.Params("*")})
		}
		c.Set(fiber.HeaderContentType, contentType)
		return c.Send(data)
	}
}

func principal(c *fiber.Ctx) *auth.Principal {
	p, _ := auth.PrincipalFromContext(c)
	return p
}

// requireBusiness applies the tenancy rule to the caller.
func requireBusiness(c *fiber.Ctx, businessID string) error {
	return access.Require(principal(c).Identity(), businessID)
}

func notFound(err error, resource, id string) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return apperrors.NewNotFound(resource, map[string]any{"id": id})
	}
	return err
}

func conflict(err error, message string) error {
	if errors.Is(err, repository.ErrDuplicate) {
		return apperrors.NewConflict(message, nil)
	}
	return err
}

// store saves the multipart "file" field under prefix and returns its URL.
func (s *Server) store(c *fiber.Ctx, prefix string) (string, error) {
	header, err := c.FormFile("file")
	if err != nil {
		return "", apperrors.NewValidationError("file is required", map[string]any{"file": "required"})
	}
	f, err := header.Open()
	if err != nil {
		return "", err
	}
	defer f.Close()

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	key := fmt.Sprintf("%s/%s%s", strings.Trim(prefix, "/"), uuid.NewString(), strings.ToLower(path.Ext(header.Filename)))
	return s.objects.Put(c.UserContext(), key, f, header.Size, contentType)
}

func bind(c *fiber.Ctx, out any) error {
	if err := c.BodyParser(out); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	return nil
}

// errorMiddleware renders failures as {"error": message, "code": code}.
func errorMiddleware(logger *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) (err error) {
		defer func() {
			if r := recover(); r != nil {
				logger.Error("panic recovered", zap.Any("panic", r), zap.ByteString("stack", debug.Stack()))
				err = apperrors.NewInternalError(nil)
			}
			if err == nil {
				return
			}
			var fiberErr *fiber.Error
			if errors.As(err, &fiberErr) {
				err = apperrors.NewDomainError("REQUEST_FAILED", fiberErr.Message, fiberErr.Code, nil)
			}
			domainErr := apperrors.ToDomainError(err)
			if domainErr.HTTPStatus >= 500 {
				logger.Error("request failed", zap.Error(domainErr))
			}
			body := fiber.Map{"error": domainErr.Message, "code": domainErr.Code}
			if len(domainErr.Details) > 0 {
				body["details"] = domainErr.Details
			}
			c.Status(domainErr.HTTPStatus)
			_ = c.JSON(body)
			err = nil
		}()
		return c.Next()
	}
}

// Bootstrap creates the first super-admin when no admin exists yet.
func (s *Server) Bootstrap(ctx context.Context, email, password string) error {
	if email == "" || password == "" {
		return nil
	}
	n, err := s.repos.Admins.Count(ctx)
	if err != nil || n > 0 {
		return err
	}
	_, err = s.createAdmin(ctx, registerInput{
		Email:     email,
		Password:  password,
		FirstName: "Super",
		LastName:  "Admin",
	}, true)
	switch {
	case errors.Is(err, repository.ErrNotFirst):
		return nil
	case err != nil:
		return err
	}
	s.logger.Info("bootstrap super-admin created", zap.String("email", email))
	return nil
}
