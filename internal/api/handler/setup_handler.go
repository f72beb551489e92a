package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/campusjobboard/portal/internal/api/view"
	"github.com/campusjobboard/portal/internal/core/domain"
	"github.com/campusjobboard/portal/internal/core/ports"
)

const (
	msgProfileUpdated      = "Profile updated successfully!"
	msgProfileUpdateFailed = "Failed to update profile."
)

// SetupHandler serves the super admin's profile setup page.
type SetupHandler struct {
	profileService ports.ProfileService
	log            zerolog.Logger
}

func NewSetupHandler(profileService ports.ProfileService, log zerolog.Logger) *SetupHandler {
	return &SetupHandler{profileService: profileService, log: log}
}

type profileForm struct {
	FullName string `form:"fullName" validate:"fullname"`
	Email    string `form:"email"    validate:"portal_email"`
	Password string `form:"password" validate:"password"`
}

// SetupPage renders the form pre-filled with the current profile.
func (h *SetupHandler) SetupPage(c echo.Context) error {
	profile, err := h.profileService.Load(c.Request().Context())
	if err != nil {
		return err
	}
	return c.Render(http.StatusOK, view.PageSuperAdminSetup, view.SetupPage{
		Page:    page(c, "Setup"),
		Profile: *profile,
	})
}

// UpdateProfile saves the profile and, on success, shows the confirmation
// before returning to the dashboard.
func (h *SetupHandler) UpdateProfile(c echo.Context) error {
	var form profileForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form")
	}
	form.FullName = strings.TrimSpace(form.FullName)
	form.Email = strings.TrimSpace(form.Email)
	form.Password = strings.TrimSpace(form.Password)

	data := view.SetupPage{
		Page:    page(c, "Setup"),
		Profile: domain.Profile{FullName: form.FullName, Email: form.Email},
	}

	fe, err := validateForm(c, "setup", &form)
	if err != nil {
		return err
	}
	if fe != nil {
		data.Errors = fe
		return c.Render(http.StatusUnprocessableEntity, view.PageSuperAdminSetup, data)
	}

	err = h.profileService.Update(c.Request().Context(), domain.Profile{
		FullName: form.FullName,
		Email:    form.Email,
		Password: form.Password,
	})
	if err == nil {
		data.Status = view.Success(msgProfileUpdated)
		data.RefreshTo = domain.PathSuperAdminDashboard
		return c.Render(http.StatusOK, view.PageSuperAdminSetup, data)
	}

	status, fields, msg, ok := submitFailure(err, msgProfileUpdateFailed)
	if !ok {
		if domain.RequiresLogin(err) {
			return err
		}
		h.log.Error().Err(err).Msg("profile update failed")
		status, msg = http.StatusBadGateway, msgProfileUpdateFailed
	}
	data.Errors = fields
	data.Status = view.Failure(msg)
	return c.Render(status, view.PageSuperAdminSetup, data)
}
