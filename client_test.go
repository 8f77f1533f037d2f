package main

import (
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"
)

func TestClientAttachesBearerToken(t *testing.T) {
	var seen *http.Request
	client := NewAPIClient("http://api.test")
	client.token = func() string { return "t1" }
	client.client = &http.Client{Transport: roundTripperFunc(func(r *http.Request) (*http.Response, error) {
		seen = r
		return newResponse(http.StatusOK, `{"data":[]}`, nil, r), nil
	})}

	if _, err := client.do(http.MethodGet, "/articles", nil, nil, ""); err != nil {
		t.Fatalf("do error: %v", err)
	}
	if got := seen.Header.Get("Authorization"); got != "Bearer t1" {
		t.Fatalf("expected bearer header, got %q", got)
	}
	if seen.Header.Get("X-Request-ID") == "" {
		t.Fatalf("expected request id header")
	}
}

func TestClientNoTokenNoHeader(t *testing.T) {
	var seen *http.Request
	client := NewAPIClient("http://api.test")
	client.client = &http.Client{Transport: roundTripperFunc(func(r *http.Request) (*http.Response, error) {
		seen = r
		return newResponse(http.StatusOK, `{}`, nil, r), nil
	})}
	if _, err := client.do(http.MethodGet, "/articles", nil, nil, ""); err != nil {
		t.Fatalf("do error: %v", err)
	}
	if seen.Header.Get("Authorization") != "" {
		t.Fatalf("expected no authorization header")
	}
}

func TestClientUnauthorizedForcesLogout(t *testing.T) {
	hookCalled := false
	client := NewAPIClient("http://api.test")
	client.onUnauthorized = func() { hookCalled = true }
	client.client = clientForResponse(http.StatusUnauthorized, `{}`, nil)

	_, err := client.do(http.MethodGet, "/articles", nil, nil, "")
	if err == nil || err.Error() != sessionExpiredMessage {
		t.Fatalf("expected session expired error, got %v", err)
	}
	if !hookCalled {
		t.Fatalf("expected unauthorized hook")
	}
}

func TestClientUnauthorizedOnAuthEndpointPassesThrough(t *testing.T) {
	hookCalled := false
	client := NewAPIClient("http://api.test")
	client.onUnauthorized = func() { hookCalled = true }
	client.client = clientForResponse(http.StatusUnauthorized, `{"error":{"message":"Invalid identifier or password"}}`, nil)

	_, err := client.do(http.MethodPost, "/auth/local", nil, nil, "")
	if err == nil || err.Error() != "Invalid identifier or password" {
		t.Fatalf("expected credential error, got %v", err)
	}
	if hookCalled {
		t.Fatalf("auth endpoint 401 must not force logout")
	}
}

func TestAPIErrorWithFieldDetails(t *testing.T) {
	body := `{"error":{"message":"Validation failed","details":{"errors":[{"message":"title is required"},{"message":"category is required"}]}}}`
	err := apiErrorFromBody([]byte(body), "400 Bad Request")
	want := "Validation failed: title is required, category is required"
	if err.Error() != want {
		t.Fatalf("expected %q, got %q", want, err.Error())
	}
}

func TestAPIErrorFallbacks(t *testing.T) {
	if err := apiErrorFromBody([]byte(`{"message":"weird shape"}`), "500"); err.Error() != "weird shape" {
		t.Fatalf("expected top-level message, got %q", err.Error())
	}
	if err := apiErrorFromBody([]byte(`not-json`), "502 Bad Gateway"); !strings.Contains(err.Error(), "502 Bad Gateway") {
		t.Fatalf("expected status fallback, got %q", err.Error())
	}
}

func TestDecodeSingleMalformed(t *testing.T) {
	var article Article
	if err := decodeSingle([]byte(`{"meta":{}}`), &article); !errors.Is(err, errMalformedResponse) {
		t.Fatalf("expected malformed response error, got %v", err)
	}
	if err := decodeSingle([]byte(`{"data":null}`), &article); !errors.Is(err, errMalformedResponse) {
		t.Fatalf("expected malformed response for null data, got %v", err)
	}
	if err := decodeSingle([]byte(`{"data":{"id":1,"documentId":"a"}}`), &article); err != nil || article.DocID != "a" {
		t.Fatalf("decodeSingle error: %v", err)
	}
}

func TestDecodeListMalformed(t *testing.T) {
	var articles []Article
	if _, err := decodeList([]byte(`{"meta":{}}`), &articles); !errors.Is(err, errMalformedResponse) {
		t.Fatalf("expected malformed response error, got %v", err)
	}
	meta, err := decodeList([]byte(`{"data":[{"id":1,"documentId":"a"}],"meta":{"pagination":{"page":1,"pageSize":9,"pageCount":3,"total":25}}}`), &articles)
	if err != nil || len(articles) != 1 {
		t.Fatalf("decodeList error: %v", err)
	}
	if meta.PageCount != 3 || meta.Total != 25 {
		t.Fatalf("unexpected pagination: %+v", meta)
	}
}

func TestClientTransportError(t *testing.T) {
	client := NewAPIClient("http://api.test")
	client.client = &http.Client{Transport: roundTripperFunc(func(*http.Request) (*http.Response, error) {
		return nil, errors.New("transport fail")
	})}
	if _, err := client.do(http.MethodGet, "/articles", nil, nil, ""); err == nil {
		t.Fatalf("expected transport error")
	}
}

func TestSendDataEnvelope(t *testing.T) {
	var body string
	client := NewAPIClient("http://api.test")
	client.client = &http.Client{Transport: roundTripperFunc(func(r *http.Request) (*http.Response, error) {
		blob, _ := io.ReadAll(r.Body)
		body = string(blob)
		return newResponse(http.StatusOK, `{"data":{"id":1}}`, nil, r), nil
	})}
	if _, err := client.sendData(http.MethodPost, "/articles", ArticlePayload{Title: "x"}); err != nil {
		t.Fatalf("sendData error: %v", err)
	}
	if !strings.HasPrefix(body, `{"data":`) {
		t.Fatalf("expected data envelope, got %q", body)
	}
}
