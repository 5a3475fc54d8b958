package remote

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/expense-tracker/core/internal/application/adapter"
	"github.com/expense-tracker/core/internal/domain/entity"
	domainerror "github.com/expense-tracker/core/internal/domain/error"
)

// identityClient implements the adapter.IdentityClient interface against the
// relay's auth endpoints.
type identityClient struct {
	client *Client
}

// NewIdentityClient creates a new remote identity client.
func NewIdentityClient(client *Client) adapter.IdentityClient {
	return &identityClient{
		client: client,
	}
}

type userDTO struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName,omitempty"`
}

func (d userDTO) toEntity() *entity.User {
	return &entity.User{
		ID:          d.ID,
		Email:       d.Email,
		DisplayName: d.DisplayName,
	}
}

// SignUp registers a new account through the relay.
func (c *identityClient) SignUp(ctx context.Context, email, password, displayName string) (*entity.User, string, error) {
	body := struct {
		Email       string `json:"email"`
		Password    string `json:"password"`
		DisplayName string `json:"displayName,omitempty"`
	}{Email: email, Password: password, DisplayName: displayName}

	var resp struct {
		User    userDTO `json:"user"`
		IDToken string  `json:"idToken"`
	}
	if err := c.client.doJSON(ctx, http.MethodPost, "/api/auth/signup", body, &resp); err != nil {
		return nil, "", classifyAuthStatus(err)
	}
	return resp.User.toEntity(), resp.IDToken, nil
}

// SignIn exchanges a provider-issued ID token for the canonical user record.
func (c *identityClient) SignIn(ctx context.Context, idToken string) (*entity.User, error) {
	body := struct {
		IDToken string `json:"idToken"`
	}{IDToken: idToken}

	var resp struct {
		User userDTO `json:"user"`
	}
	if err := c.client.doJSON(ctx, http.MethodPost, "/api/auth/signin", body, &resp); err != nil {
		return nil, classifyAuthStatus(err)
	}
	return resp.User.toEntity(), nil
}

// classifyAuthStatus maps relay status codes onto domain sentinels so the
// use-case layer can branch without knowing HTTP.
func classifyAuthStatus(err error) error {
	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		return fmt.Errorf("%w: %v", domainerror.ErrIdentityUnavailable, err)
	}
	switch statusErr.StatusCode {
	case http.StatusConflict:
		return domainerror.ErrEmailAlreadyInUse
	case http.StatusUnauthorized, http.StatusForbidden, http.StatusBadRequest:
		return domainerror.ErrInvalidCredentials
	default:
		return fmt.Errorf("%w: %v", domainerror.ErrIdentityUnavailable, err)
	}
}
