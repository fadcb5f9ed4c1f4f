package handlers

import (
	"io"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/bizdash/internal/workspace"
	apperrors "github.com/spec-kit/bizdash/pkg/util"
)

// Viewer is the header block every signed-in page renders.
type Viewer struct {
	FullName     string `json:"fullName"`
	Initials     string `json:"initials"`
	Role         string `json:"role,omitempty"`
	IsSuperAdmin bool   `json:"isSuperAdmin"`
}

func adminViewer(ws *workspace.Workspace) Viewer {
	return Viewer{
		FullName:     ws.Admin.FullName(),
		Initials:     ws.Admin.Initials(),
		Role:         string(ws.Admin.Role()),
		IsSuperAdmin: ws.Admin.IsSuperAdmin(),
	}
}

func staffViewer(ws *workspace.Workspace) Viewer {
	return Viewer{FullName: ws.Staff.FullName(), Initials: ws.Staff.Initials()}
}

func current(c *fiber.Ctx) (*workspace.Workspace, error) {
	ws := workspace.From(c)
	if ws == nil {
		return nil, apperrors.NewInternalError(nil)
	}
	return ws, nil
}

func parseBody(c *fiber.Ctx, out any) error {
	if err := c.BodyParser(out); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	return nil
}

func parseQuery(c *fiber.Ctx, out any) error {
	if err := c.QueryParser(out); err != nil {
		return apperrors.NewValidationError("invalid query", nil)
	}
	return nil
}

// withUpload opens the multipart "file" field and hands it to fn.
func withUpload(c *fiber.Ctx, fn func(filename string, file io.Reader) error) error {
	header, err := c.FormFile("file")
	if err != nil {
		return apperrors.NewValidationError("file is required", map[string]any{"file": "required"})
	}
	f, err := header.Open()
	if err != nil {
		return apperrors.NewInternalError(err)
	}
	defer f.Close()
	return fn(header.Filename, f)
}

func data(c *fiber.Ctx, status int, v any) error {
	return c.Status(status).JSON(fiber.Map{"data": v})
}

func redirectAfterPost(c *fiber.Ctx, path string, body fiber.Map) error {
	c.Location(path)
	c.Set(fiber.HeaderCacheControl, "no-store")
	body["redirect"] = path
	return c.Status(fiber.StatusSeeOther).JSON(body)
}
