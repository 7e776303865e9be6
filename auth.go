package noteflow

import (
	"context"
	"net/http"
)

// Login authenticates with email and password and returns the access token
// the service minted.
//
// Login does not store the token anywhere. Persisting it is the caller's
// decision, via [Session.SetToken], so that the gateway stays free of side
// effects beyond the network call itself.
func (c *Client) Login(ctx context.Context, creds Credentials) (Result[AuthToken], error) {
	resp, err := c.doRequest(ctx, http.MethodPost, "/login", creds)
	if err != nil {
		return Result[AuthToken]{}, err
	}
	return decode[AuthToken](resp)
}

// Register creates a new account. The service does not log the account in;
// follow up with Login.
func (c *Client) Register(ctx context.Context, input RegisterInput) (Result[struct{}], error) {
	resp, err := c.doRequest(ctx, http.MethodPost, "/register", input)
	if err != nil {
		return Result[struct{}]{}, err
	}
	return decode[struct{}](resp)
}

// GetCurrentUser retrieves the identity behind the session's current token.
func (c *Client) GetCurrentUser(ctx context.Context) (Result[User], error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/users/me", nil)
	if err != nil {
		return Result[User]{}, err
	}
	return decode[User](resp)
}
