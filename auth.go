package main

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
)

// AuthResult is the processed login/register response. The server calls the
// token "jwt"; everything past this layer calls it token.
type AuthResult struct {
	Token string
	User  User
}

type AuthService struct {
	api *APIClient
}

func NewAuthService(api *APIClient) *AuthService {
	return &AuthService{api: api}
}

// Login posts identifier/password as a URL-encoded form, per the server's
// auth convention. Auth responses are bare {jwt, user}, no data envelope.
func (s *AuthService) Login(email string, password string) (AuthResult, error) {
	form := url.Values{}
	form.Set("identifier", email)
	form.Set("password", password)
	blob, err := s.api.postForm("/auth/local", form)
	if err != nil {
		return AuthResult{}, err
	}
	var parsed struct {
		JWT  string `json:"jwt"`
		User *User  `json:"user"`
	}
	if err := json.Unmarshal(blob, &parsed); err != nil {
		return AuthResult{}, err
	}
	if parsed.JWT == "" || parsed.User == nil || parsed.User.ID == 0 {
		return AuthResult{}, errors.New("login failed: incomplete server response")
	}
	return AuthResult{Token: parsed.JWT, User: *parsed.User}, nil
}

// Register may or may not return a token depending on whether the server
// requires email confirmation; Token is empty in that case.
func (s *AuthService) Register(username string, email string, password string) (AuthResult, error) {
	form := url.Values{}
	form.Set("username", username)
	form.Set("email", email)
	form.Set("password", password)
	blob, err := s.api.postForm("/auth/local/register", form)
	if err != nil {
		return AuthResult{}, err
	}
	var parsed struct {
		JWT  string `json:"jwt"`
		User *User  `json:"user"`
	}
	if err := json.Unmarshal(blob, &parsed); err != nil {
		return AuthResult{}, err
	}
	if parsed.User == nil || parsed.User.ID == 0 {
		return AuthResult{}, errors.New("registration failed: incomplete server response")
	}
	return AuthResult{Token: parsed.JWT, User: *parsed.User}, nil
}

// CurrentUser validates the active token against /users/me.
func (s *AuthService) CurrentUser() (User, error) {
	blob, err := s.api.do(http.MethodGet, "/users/me", nil, nil, "")
	if err != nil {
		return User{}, err
	}
	var user User
	if err := json.Unmarshal(blob, &user); err != nil {
		return User{}, err
	}
	if user.ID == 0 {
		return User{}, errors.New("failed to fetch user data: unexpected format")
	}
	return user, nil
}
