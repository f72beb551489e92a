package handler

import (
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/campusjobboard/portal/internal/api/view"
	"github.com/campusjobboard/portal/internal/core/domain"
	"github.com/campusjobboard/portal/internal/core/ports"
)

const (
	msgAdminCreated      = "Admin created successfully!"
	msgAdminCreateFailed = "Failed to create admin."
	msgAdminDeleted      = "Admin deleted successfully."
	msgAdminDeleteFailed = "Failed to delete admin."
)

// SuperAdminHandler serves the super admin dashboard: the admin table, the
// quota indicator, admin creation and confirmed deletion.
type SuperAdminHandler struct {
	adminService ports.AdminService
	log          zerolog.Logger
}

func NewSuperAdminHandler(adminService ports.AdminService, log zerolog.Logger) *SuperAdminHandler {
	return &SuperAdminHandler{adminService: adminService, log: log}
}

type adminForm struct {
	FullName string `form:"fullName" validate:"fullname"`
	Email    string `form:"email"    validate:"portal_email"`
	Password string `form:"password" validate:"password"`
}

func (h *SuperAdminHandler) Dashboard(c echo.Context) error {
	return h.render(c, http.StatusOK, view.AdminForm{}, nil, view.Status{})
}

// CreateAdmin validates the new admin form and provisions the account. The
// dashboard is reloaded either way so the table and quota are current.
func (h *SuperAdminHandler) CreateAdmin(c echo.Context) error {
	var form adminForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form")
	}
	form.FullName = strings.TrimSpace(form.FullName)
	form.Email = strings.TrimSpace(form.Email)
	echoed := view.AdminForm{FullName: form.FullName, Email: form.Email}

	fe, err := validateForm(c, "create_admin", &form)
	if err != nil {
		return err
	}
	if fe != nil {
		return h.render(c, http.StatusUnprocessableEntity, echoed, fe, view.Status{})
	}

	err = h.adminService.Create(c.Request().Context(), domain.NewAdmin{
		FullName: form.FullName,
		Email:    form.Email,
		Password: form.Password,
	})
	if err == nil {
		return h.render(c, http.StatusOK, view.AdminForm{}, nil, view.Success(msgAdminCreated))
	}

	status, fields, msg, ok := submitFailure(err, msgAdminCreateFailed)
	if !ok {
		if domain.RequiresLogin(err) {
			return err
		}
		h.log.Error().Err(err).Msg("create admin failed")
		status, msg = http.StatusBadGateway, msgAdminCreateFailed
	}
	return h.render(c, status, echoed, fields, view.Failure(msg))
}

// ConfirmDelete asks before an admin is deleted.
func (h *SuperAdminHandler) ConfirmDelete(c echo.Context) error {
	return c.Render(http.StatusOK, view.PageConfirmDelete, view.ConfirmDeletePage{
		Page:    page(c, "Delete admin"),
		AdminID: adminID(c),
	})
}

// DeleteAdmin deletes the admin only when the confirmation form answered
// yes. Any other answer goes back to the dashboard without a request.
func (h *SuperAdminHandler) DeleteAdmin(c echo.Context) error {
	id := adminID(c)
	confirmed := c.FormValue("confirm") == "yes"

	err := h.adminService.Delete(c.Request().Context(), id, confirmed)
	switch {
	case err == nil:
		return h.render(c, http.StatusOK, view.AdminForm{}, nil, view.Success(msgAdminDeleted))
	case errors.Is(err, domain.ErrDeleteNotConfirmed):
		return c.Redirect(http.StatusSeeOther, domain.PathSuperAdminDashboard)
	case domain.RequiresLogin(err):
		return err
	}

	status, _, msg, ok := submitFailure(err, msgAdminDeleteFailed)
	if !ok {
		h.log.Error().Err(err).Str("admin_id", id).Msg("delete admin failed")
		status = http.StatusBadGateway
	}
	if !errors.Is(err, domain.ErrSubmitInProgress) {
		msg = msgAdminDeleteFailed
	}
	return h.render(c, status, view.AdminForm{}, nil, view.Failure(msg))
}

func (h *SuperAdminHandler) render(c echo.Context, status int, form view.AdminForm, fe domain.FieldErrors, st view.Status) error {
	dash, err := h.adminService.Load(c.Request().Context())
	if err != nil {
		return err
	}
	return c.Render(status, view.PageSuperAdminDashboard, view.SuperAdminPage{
		Page:   page(c, "Super admin dashboard"),
		Admins: dash.Admins,
		Quota:  dash.Quota,
		Form:   form,
		Errors: fe,
		Status: st,
	})
}

// adminID returns the decoded :id segment. Links escape the ID so it stays a
// single segment.
func adminID(c echo.Context) string {
	raw := c.Param("id")
	if id, err := url.PathUnescape(raw); err == nil {
		return id
	}
	return raw
}
