package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"arguminds/internal/domain"
)

// AdminClient provides access to the Supabase Admin API for user management.
// The seed command uses it to provision the demo account; the API server never does.
type AdminClient struct {
	supabaseURL string
	serviceKey  string
	httpClient  *http.Client
}

// NewAdminClient creates a new Supabase Admin API client.
// Requires the service role key (SUPABASE_KEY) for elevated permissions.
func NewAdminClient(supabaseURL, serviceKey string) *AdminClient {
	return &AdminClient{
		supabaseURL: supabaseURL,
		serviceKey:  serviceKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// CreateUserRequest is the payload for creating a new user
type CreateUserRequest struct {
	Email        string                 `json:"email"`
	Password     string                 `json:"password"`
	EmailConfirm bool                   `json:"email_confirm"`
	UserMetadata map[string]interface{} `json:"user_metadata,omitempty"`
}

// AdminUser is a user as returned by the Admin API
type AdminUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

type listUsersResponse struct {
	Users []AdminUser `json:"users"`
}

// CreateUser creates a confirmed user and returns its UUID.
// The display name is stored in user metadata.
func (c *AdminClient) CreateUser(ctx context.Context, email, password, name string) (string, error) {
	payload := CreateUserRequest{
		Email:        email,
		Password:     password,
		EmailConfirm: true,
	}
	if name != "" {
		payload.UserMetadata = map[string]interface{}{"name": name}
	}

	var user AdminUser
	if err := c.do(ctx, http.MethodPost, "/auth/v1/admin/users", payload, &user, http.StatusOK, http.StatusCreated); err != nil {
		return "", fmt.Errorf("create user: %w", err)
	}
	return user.ID, nil
}

// FindUserIDByEmail returns the ID of the user with this email.
// Returns domain.ErrNotFound when no user matches.
func (c *AdminClient) FindUserIDByEmail(ctx context.Context, email string) (string, error) {
	var list listUsersResponse
	if err := c.do(ctx, http.MethodGet, "/auth/v1/admin/users", nil, &list, http.StatusOK); err != nil {
		return "", fmt.Errorf("list users: %w", err)
	}

	for _, user := range list.Users {
		if user.Email == email {
			return user.ID, nil
		}
	}
	return "", fmt.Errorf("user %s: %w", email, domain.ErrNotFound)
}

// EnsureUser returns the ID of the user with this email, creating it if needed
func (c *AdminClient) EnsureUser(ctx context.Context, email, password, name string) (string, error) {
	id, err := c.FindUserIDByEmail(ctx, email)
	if err == nil {
		return id, nil
	}
	return c.CreateUser(ctx, email, password, name)
}

// DeleteUserByEmail finds a user by email and deletes them.
// This is idempotent: a missing user is not an error.
func (c *AdminClient) DeleteUserByEmail(ctx context.Context, email string) error {
	userID, err := c.FindUserIDByEmail(ctx, email)
	if err != nil {
		return nil
	}

	path := "/auth/v1/admin/users/" + userID
	if err := c.do(ctx, http.MethodDelete, path, nil, nil, http.StatusOK, http.StatusNoContent); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	return nil
}

// do sends an authenticated request and decodes the JSON answer into out (if non-nil)
func (c *AdminClient) do(ctx context.Context, method, path string, payload, out interface{}, expected ...int) error {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.supabaseURL+path, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.serviceKey)
	req.Header.Set("apikey", c.serviceKey)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	ok := false
	for _, status := range expected {
		if resp.StatusCode == status {
			ok = true
			break
		}
	}
	if !ok {
		return fmt.Errorf("status %d: %s", resp.StatusCode, string(respBody))
	}

	if out == nil || len(respBody) == 0 {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
