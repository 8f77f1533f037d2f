package main

import (
	"io"
	"net/http"
	"net/url"
	"testing"
)

func authClientCapture(body string, seen **http.Request, seenBody *string) *http.Client {
	return &http.Client{Transport: roundTripperFunc(func(r *http.Request) (*http.Response, error) {
		*seen = r
		if r.Body != nil {
			blob, _ := io.ReadAll(r.Body)
			*seenBody = string(blob)
		}
		return newResponse(http.StatusOK, body, map[string]string{"content-type": "application/json"}, r), nil
	})}
}

func TestLoginSendsFormBody(t *testing.T) {
	var seen *http.Request
	var seenBody string
	api := NewAPIClient("http://api.test")
	api.client = authClientCapture(`{"jwt":"t1","user":{"id":1,"username":"a","email":"a@b.com"}}`, &seen, &seenBody)

	result, err := NewAuthService(api).Login("a@b.com", "secret")
	if err != nil {
		t.Fatalf("login error: %v", err)
	}
	if result.Token != "t1" || result.User.Username != "a" {
		t.Fatalf("unexpected result: %+v", result)
	}
	if got := seen.Header.Get("Content-Type"); got != "application/x-www-form-urlencoded" {
		t.Fatalf("expected form content type, got %q", got)
	}
	form, err := url.ParseQuery(seenBody)
	if err != nil {
		t.Fatalf("parse form: %v", err)
	}
	if form.Get("identifier") != "a@b.com" || form.Get("password") != "secret" {
		t.Fatalf("unexpected form body: %q", seenBody)
	}
}

func TestLoginIncompleteResponse(t *testing.T) {
	api := NewAPIClient("http://api.test")
	api.client = clientForResponse(http.StatusOK, `{"user":{"id":1,"username":"a"}}`, nil)
	if _, err := NewAuthService(api).Login("a@b.com", "secret"); err == nil {
		t.Fatalf("expected error for missing jwt")
	}

	api.client = clientForResponse(http.StatusOK, `{"jwt":"t1"}`, nil)
	if _, err := NewAuthService(api).Login("a@b.com", "secret"); err == nil {
		t.Fatalf("expected error for missing user")
	}
}

func TestRegisterWithoutToken(t *testing.T) {
	var seen *http.Request
	var seenBody string
	api := NewAPIClient("http://api.test")
	api.client = authClientCapture(`{"user":{"id":2,"username":"b","email":"b@c.com"}}`, &seen, &seenBody)

	result, err := NewAuthService(api).Register("b", "b@c.com", "secret")
	if err != nil {
		t.Fatalf("register error: %v", err)
	}
	if result.Token != "" || result.User.ID != 2 {
		t.Fatalf("unexpected result: %+v", result)
	}
	if seen.URL.Path != "/auth/local/register" {
		t.Fatalf("unexpected path: %s", seen.URL.Path)
	}
	form, _ := url.ParseQuery(seenBody)
	if form.Get("username") != "b" || form.Get("email") != "b@c.com" || form.Get("password") != "secret" {
		t.Fatalf("unexpected form body: %q", seenBody)
	}
}

func TestCurrentUser(t *testing.T) {
	api := NewAPIClient("http://api.test")
	api.client = clientForResponse(http.StatusOK, `{"id":1,"username":"a","email":"a@b.com"}`, nil)
	user, err := NewAuthService(api).CurrentUser()
	if err != nil || user.Username != "a" {
		t.Fatalf("CurrentUser error: %v", err)
	}

	api.client = clientForResponse(http.StatusOK, `{}`, nil)
	if _, err := NewAuthService(api).CurrentUser(); err == nil {
		t.Fatalf("expected error for empty user")
	}
}

func TestLoginCredentialError(t *testing.T) {
	api := NewAPIClient("http://api.test")
	api.client = clientForResponse(http.StatusBadRequest, `{"error":{"message":"Invalid identifier or password"}}`, nil)
	_, err := NewAuthService(api).Login("a@b.com", "wrong")
	if err == nil || err.Error() != "Invalid identifier or password" {
		t.Fatalf("expected credential error, got %v", err)
	}
}
