package apiclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/rs/zerolog"

	"github.com/campusjobboard/portal/internal/core/domain"
)

const (
	pathAdmins      = "/api/superadmin/admins"
	pathAdminCount  = "/api/superadmin/admin-count"
	pathCreateAdmin = "/api/superadmin/create-admin"
	routeAdminByID  = "/api/superadmin/admins/{id}"
)

// DirectoryClient manages admin accounts through the Gateway.
type DirectoryClient struct {
	gw  *Gateway
	log zerolog.Logger
}

func NewDirectoryClient(gw *Gateway, log zerolog.Logger) *DirectoryClient {
	return &DirectoryClient{gw: gw, log: log}
}

// List returns admins in server order. Upstream failures yield an empty
// list so the dashboard always renders; session errors are returned.
func (d *DirectoryClient) List(ctx context.Context) ([]domain.AdminAccount, error) {
	empty := []domain.AdminAccount{}

	resp, err := d.gw.Do(ctx, pathAdmins, RequestOptions{})
	if err != nil {
		if domain.RequiresLogin(err) {
			return nil, err
		}
		d.log.Warn().Err(err).Msg("admin list unavailable")
		return empty, nil
	}
	defer resp.Body.Close()

	if !IsSuccess(resp) {
		d.log.Warn().Int("status", resp.StatusCode).Msg("admin list request failed")
		return empty, nil
	}

	var admins []domain.AdminAccount
	if err := json.NewDecoder(resp.Body).Decode(&admins); err != nil {
		d.log.Warn().Err(err).Msg("admin list response not decodable")
		return empty, nil
	}
	if admins == nil {
		return empty, nil
	}
	return admins, nil
}

// Count returns the number of admins, or 0 when the API cannot answer.
func (d *DirectoryClient) Count(ctx context.Context) (int, error) {
	resp, err := d.gw.Do(ctx, pathAdminCount, RequestOptions{})
	if err != nil {
		if domain.RequiresLogin(err) {
			return 0, err
		}
		d.log.Warn().Err(err).Msg("admin count unavailable")
		return 0, nil
	}
	defer resp.Body.Close()

	if !IsSuccess(resp) {
		d.log.Warn().Int("status", resp.StatusCode).Msg("admin count request failed")
		return 0, nil
	}

	var n int
	if err := json.NewDecoder(resp.Body).Decode(&n); err != nil {
		d.log.Warn().Err(err).Msg("admin count response not decodable")
		return 0, nil
	}
	return n, nil
}

// Create submits a new admin. A rejection is returned as *domain.APIError.
func (d *DirectoryClient) Create(ctx context.Context, admin domain.NewAdmin) error {
	resp, err := d.gw.Do(ctx, pathCreateAdmin, RequestOptions{
		Method: http.MethodPost,
		Body:   admin,
	})
	if err != nil {
		return err
	}
	return checkStatus(resp)
}

// Delete removes the admin with id.
func (d *DirectoryClient) Delete(ctx context.Context, id string) error {
	resp, err := d.gw.Do(ctx, pathAdmins+"/"+url.PathEscape(id), RequestOptions{
		Method: http.MethodDelete,
		Route:  routeAdminByID,
	})
	if err != nil {
		return err
	}
	return checkStatus(resp)
}
