package apiclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/campusjobboard/portal/internal/core/domain"
)

const (
	pathProfile       = "/api/superadmin/profile"
	pathUpdateProfile = "/api/superadmin/update-profile"
)

// ProfileClient reads and updates the super admin's own account.
type ProfileClient struct {
	gw *Gateway
}

func NewProfileClient(gw *Gateway) *ProfileClient {
	return &ProfileClient{gw: gw}
}

func (p *ProfileClient) Get(ctx context.Context) (*domain.Profile, error) {
	resp, err := p.gw.Do(ctx, pathProfile, RequestOptions{})
	if err != nil {
		return nil, err
	}
	if !IsSuccess(resp) {
		return nil, ReadAPIError(resp)
	}
	defer resp.Body.Close()

	var profile domain.Profile
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		return nil, fmt.Errorf("decode profile: %w", err)
	}
	return &profile, nil
}

func (p *ProfileClient) Update(ctx context.Context, profile domain.Profile) error {
	resp, err := p.gw.Do(ctx, pathUpdateProfile, RequestOptions{
		Method: http.MethodPut,
		Body:   profile,
	})
	if err != nil {
		return err
	}
	return checkStatus(resp)
}
