package clients

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
)

// User is an identity record from the users service. The document pair
// (typeDocument, numberDocument) is what binds a user to their cart.
type User struct {
	ID             string `json:"_id"`
	FirstName      string `json:"firstName"`
	MiddleName     string `json:"middleName,omitempty"`
	SurName1       string `json:"surName1"`
	SurName2       string `json:"surName2,omitempty"`
	Email          string `json:"email"`
	TypeDocument   string `json:"typeDocument"`
	NumberDocument string `json:"numberDocument"`
	Username       string `json:"username"`
}

// RegisterUserRequest carries the full registration payload the users
// service expects. The password travels in hashPassword in plain form;
// hashing is the users service's responsibility, not ours.
type RegisterUserRequest struct {
	FirstName      string `json:"firstName"`
	MiddleName     string `json:"middleName,omitempty"`
	SurName1       string `json:"surName1"`
	SurName2       string `json:"surName2,omitempty"`
	BornDate       string `json:"bornDate,omitempty"`
	Department     string `json:"department,omitempty"`
	Municipality   string `json:"municipality,omitempty"`
	Trail          string `json:"trail,omitempty"`
	Email          string `json:"email"`
	TypeDocument   string `json:"typeDocument"`
	NumberDocument string `json:"numberDocument"`
	PhoneNumber    string `json:"phoneNumber,omitempty"`
	HashPassword   string `json:"hashPassword"`
	Username       string `json:"username"`
}

// UsersClient delegates all credential handling to the users service.
type UsersClient struct {
	BaseURL string
	HTTP    *http.Client
}

func NewUsersClient(baseURL string) *UsersClient {
	return &UsersClient{BaseURL: baseURL, HTTP: newHTTPClient()}
}

// Register creates an identity. A conflicting registration surfaces as a
// ServerError carrying the upstream status.
func (c *UsersClient) Register(ctx context.Context, req RegisterUserRequest) (User, error) {
	var user User
	if err := doJSON(ctx, c.HTTP, "register user", http.MethodPost, c.BaseURL+"/users/register", req, &user); err != nil {
		return User{}, err
	}
	return user, nil
}

// Authenticate verifies an email/password pair. The service answers the
// trailing-slash path only.
func (c *UsersClient) Authenticate(ctx context.Context, email, password string) (User, error) {
	body := map[string]string{
		"email":        email,
		"hashPassword": password,
	}
	var user User
	err := doJSON(ctx, c.HTTP, "authenticate user", http.MethodPost, c.BaseURL+"/users/autenticate/", body, &user)
	if err != nil {
		var se *ServerError
		if errors.As(err, &se) && (se.Status == http.StatusUnauthorized || se.Status == http.StatusForbidden) {
			return User{}, ErrInvalidCredentials
		}
		if IsNotFound(err) {
			return User{}, ErrInvalidCredentials
		}
		return User{}, err
	}
	return user, nil
}

// GetByEmail looks up an identity record by email.
func (c *UsersClient) GetByEmail(ctx context.Context, email string) (User, error) {
	endpoint := fmt.Sprintf("%s/users/getByEmail/%s", c.BaseURL, url.PathEscape(email))
	var user User
	if err := doJSON(ctx, c.HTTP, "get user by email", http.MethodGet, endpoint, nil, &user); err != nil {
		if IsNotFound(err) {
			return User{}, &NotFoundError{Resource: "user", ID: email}
		}
		return User{}, err
	}
	return user, nil
}
