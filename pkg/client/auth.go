package client

import (
	"context"
	"log"
	"net/http"
	"net/url"

	authdomain "taskpro-backend/internal/auth/domain"
	authdto "taskpro-backend/internal/auth/dto"
)

func (c *Client) Register(ctx context.Context, name, email, password string) (*Session, error) {
	req := authdto.RegisterRequest{Name: name, Email: email, Password: password}
	return c.startSession(ctx, "/auth/register", req)
}

func (c *Client) Login(ctx context.Context, email, password string) (*Session, error) {
	req := authdto.LoginRequest{Email: email, Password: password}
	return c.startSession(ctx, "/auth/login", req)
}

// ResetPassword sets a new password from an emailed token and logs in.
func (c *Client) ResetPassword(ctx context.Context, token, password string) (*Session, error) {
	req := authdto.ResetPasswordRequest{Token: token, Password: password}
	return c.startSession(ctx, "/auth/reset-password", req)
}

// startSession posts credentials without the bearer token, so a rejected
// login never triggers a refresh of the previous session.
func (c *Client) startSession(ctx context.Context, path string, body any) (*Session, error) {
	payload, err := encode(body)
	if err != nil {
		return nil, err
	}
	status, data, err := c.send(ctx, http.MethodPost, path, payload, "")
	if err != nil {
		return nil, err
	}
	var session Session
	if err := decode(status, data, &session); err != nil {
		return nil, err
	}
	c.cache.Reset()
	if err := c.store.Save(&session); err != nil {
		return nil, err
	}
	return &session, nil
}

// Logout forgets the session locally whatever the server answers.
func (c *Client) Logout(ctx context.Context) error {
	session, err := c.store.Load()
	if err == nil && session != nil && session.RefreshToken != "" {
		req := authdto.RefreshTokenRequest{RefreshToken: session.RefreshToken}
		status, _, err := c.send(ctx, http.MethodPost, "/auth/logout", mustEncode(req), "")
		if err != nil || status != http.StatusOK {
			log.Printf("[Client] server logout failed (status %d): %v", status, err)
		}
	}
	c.cache.Reset()
	return c.store.Clear()
}

// ForgotPassword returns the server's generic confirmation message.
func (c *Client) ForgotPassword(ctx context.Context, email string) (string, error) {
	var resp authdto.MessageResponse
	if err := c.do(ctx, http.MethodPost, "/auth/forgot-password", authdto.ForgotPasswordRequest{Email: email}, &resp); err != nil {
		return "", err
	}
	return resp.Message, nil
}

func (c *Client) Profile(ctx context.Context) (*authdomain.User, error) {
	return c.profileCall(ctx, http.MethodGet, nil)
}

func (c *Client) UpdateProfile(ctx context.Context, patch authdto.ProfilePatch) (*authdomain.User, error) {
	return c.profileCall(ctx, http.MethodPatch, patch)
}

// profileCall keeps the user inside the stored session in step with the server.
func (c *Client) profileCall(ctx context.Context, method string, body any) (*authdomain.User, error) {
	if !c.LoggedIn() {
		return nil, ErrNotLoggedIn
	}
	var resp authdto.UserResponse
	if err := c.do(ctx, method, "/auth/profile", body, &resp); err != nil {
		return nil, err
	}
	if session, err := c.store.Load(); err == nil && session != nil {
		session.User = resp.User
		if err := c.store.Save(session); err != nil {
			return nil, err
		}
	}
	return resp.User, nil
}

func (c *Client) RegisterDevice(ctx context.Context, token, deviceInfo string) error {
	req := authdto.RegisterDeviceRequest{Token: token, DeviceInfo: deviceInfo}
	return c.do(ctx, http.MethodPost, "/auth/devices", req, nil)
}

func (c *Client) UnregisterDevice(ctx context.Context, token string) error {
	return c.do(ctx, http.MethodDelete, "/auth/devices/"+url.PathEscape(token), nil, nil)
}

func mustEncode(body any) []byte {
	payload, _ := encode(body)
	return payload
}
