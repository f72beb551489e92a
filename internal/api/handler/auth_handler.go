package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/campusjobboard/portal/internal/api/view"
	"github.com/campusjobboard/portal/internal/core/domain"
	"github.com/campusjobboard/portal/internal/core/ports"
)

const (
	tabRegister = "register"

	msgInvalidLogin      = "Invalid email or password."
	msgLoginError        = "Login error. Please try again."
	msgRegisterFailed    = "Registration failed."
	msgRegisterTransport = "Error registering user."
)

type AuthHandler struct {
	authService ports.AuthService
	log         zerolog.Logger
}

func NewAuthHandler(authService ports.AuthService, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{authService: authService, log: log}
}

type loginForm struct {
	Email    string `form:"email"    validate:"portal_email"`
	Password string `form:"password" validate:"required"`
}

type registerForm struct {
	FullName        string `form:"fullName"        validate:"fullname"`
	Email           string `form:"email"           validate:"portal_email"`
	Password        string `form:"password"        validate:"password"`
	ConfirmPassword string `form:"confirmPassword" validate:"confirms=Password"`
	Role            string `form:"role"            validate:"signup_role"`
}

// Root sends visitors to the login page.
func (h *AuthHandler) Root(c echo.Context) error {
	return c.Redirect(http.StatusSeeOther, domain.PathLogin)
}

// LoginPage renders the login form, or the register form with ?tab=register.
func (h *AuthHandler) LoginPage(c echo.Context) error {
	data := view.LoginPage{
		Page:       page(c, "Log in"),
		Registered: c.QueryParam("registered") == "1",
	}
	if c.QueryParam("tab") == tabRegister {
		data.Tab = tabRegister
	}
	return c.Render(http.StatusOK, view.PageLogin, data)
}

// Login validates the credentials, authenticates against the API and sends
// the browser to its role's dashboard.
func (h *AuthHandler) Login(c echo.Context) error {
	var form loginForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form")
	}
	form.Email = strings.TrimSpace(form.Email)

	data := view.LoginPage{
		Page:  page(c, "Log in"),
		Login: view.LoginForm{Email: form.Email},
	}

	fe, err := validateForm(c, "login", &form)
	if err != nil {
		return err
	}
	if fe != nil {
		data.LoginErrors = fe
		return c.Render(http.StatusUnprocessableEntity, view.PageLogin, data)
	}

	dest, err := h.authService.Login(c.Request().Context(), domain.Credentials{
		Email:    form.Email,
		Password: form.Password,
	})
	switch {
	case err == nil:
		return c.Redirect(http.StatusSeeOther, dest)
	case errors.Is(err, domain.ErrInvalidCredentials):
		data.LoginError = msgInvalidLogin
		return c.Render(http.StatusUnauthorized, view.PageLogin, data)
	case errors.Is(err, domain.ErrUnknownRole):
		// Nothing was stored; stay on the login page.
		return c.Render(http.StatusOK, view.PageLogin, data)
	default:
		h.log.Warn().Err(err).Msg("login request failed")
		data.LoginError = msgLoginError
		return c.Render(http.StatusBadGateway, view.PageLogin, data)
	}
}

// Register creates a student or employer account and returns the browser to
// the login tab with a success notice.
func (h *AuthHandler) Register(c echo.Context) error {
	var form registerForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form")
	}
	form.FullName = strings.TrimSpace(form.FullName)
	form.Email = strings.TrimSpace(form.Email)

	data := view.LoginPage{
		Page: page(c, "Register"),
		Tab:  tabRegister,
		Register: view.RegisterForm{
			FullName: form.FullName,
			Email:    form.Email,
			Role:     form.Role,
		},
	}

	fe, err := validateForm(c, "register", &form)
	if err != nil {
		return err
	}
	if fe != nil {
		data.RegisterErrors = fe
		return c.Render(http.StatusUnprocessableEntity, view.PageLogin, data)
	}

	err = h.authService.Register(c.Request().Context(), domain.Registration{
		FullName: form.FullName,
		Email:    form.Email,
		Password: form.Password,
		Role:     domain.Role(form.Role),
	})
	if err == nil {
		return c.Redirect(http.StatusSeeOther, domain.PathLogin+"?registered=1")
	}

	status, fields, msg, ok := submitFailure(err, msgRegisterFailed)
	if !ok {
		h.log.Warn().Err(err).Msg("registration request failed")
		status, msg = http.StatusBadGateway, msgRegisterTransport
	} else if errors.Is(err, domain.ErrUpstreamUnavailable) {
		msg = msgRegisterTransport
	}
	data.RegisterErrors = fields
	data.RegisterError = msg
	return c.Render(status, view.PageLogin, data)
}

// Logout ends the session and returns to the login page.
func (h *AuthHandler) Logout(c echo.Context) error {
	if err := h.authService.Logout(c.Request().Context()); err != nil {
		h.log.Warn().Err(err).Msg("logout failed")
	}
	return c.Redirect(http.StatusSeeOther, domain.PathLogin)
}
