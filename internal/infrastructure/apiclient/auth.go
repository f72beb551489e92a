package apiclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/campusjobboard/portal/internal/core/domain"
)

const (
	pathLogin    = "/api/auth/login"
	pathRegister = "/api/auth/register"
)

// AuthClient performs the unauthenticated auth calls.
type AuthClient struct {
	client *Client
}

func NewAuthClient(client *Client) *AuthClient {
	return &AuthClient{client: client}
}

type loginResponse struct {
	Token    string `json:"token"`
	Role     string `json:"role"`
	FullName string `json:"fullName"`
}

// Login exchanges credentials for a session. Any non-2xx answer is reported
// as domain.ErrInvalidCredentials; the body is only logged.
func (a *AuthClient) Login(ctx context.Context, creds domain.Credentials) (*domain.Session, error) {
	req, err := a.client.newRequest(ctx, http.MethodPost, pathLogin, creds)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.client.send(req, pathLogin)
	if err != nil {
		return nil, err
	}

	if !IsSuccess(resp) {
		apiErr := ReadAPIError(resp)
		a.client.log.Info().
			Int("status", apiErr.Status).
			Str("detail", apiErr.Message).
			Msg("login rejected")
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidCredentials, apiErr)
	}
	defer resp.Body.Close()

	var body loginResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode login response: %w", err)
	}
	return &domain.Session{
		Token:    body.Token,
		Role:     domain.Role(body.Role),
		FullName: body.FullName,
	}, nil
}

// Register creates a self-service account. Failures come back as
// *domain.APIError carrying the server's per-field messages.
func (a *AuthClient) Register(ctx context.Context, reg domain.Registration) error {
	req, err := a.client.newRequest(ctx, http.MethodPost, pathRegister, reg)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.client.send(req, pathRegister)
	if err != nil {
		return err
	}
	return checkStatus(resp)
}
