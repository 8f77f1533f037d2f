package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
)

var errMalformedResponse = errors.New("malformed response from server: missing data")

const sessionExpiredMessage = "session expired, please log in again"

// APIClient is the single chokepoint for outbound requests. It injects the
// bearer token, tags each request with an X-Request-ID, and intercepts 401
// responses on non-auth endpoints by forcing a logout through the
// unauthorized hook. It never retries.
type APIClient struct {
	baseURL        string
	client         *http.Client
	token          func() string
	onUnauthorized func()
}

var clientReadBody = io.ReadAll

func NewAPIClient(baseURL string) *APIClient {
	return &APIClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: 30 * time.Second},
		token:   func() string { return "" },
	}
}

func isAuthPath(path string) bool {
	return strings.HasPrefix(path, "/auth/local")
}

func (c *APIClient) do(method string, path string, query url.Values, body io.Reader, contentType string) ([]byte, error) {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}
	req, err := http.NewRequest(method, target, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token := c.token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	blob, err := clientReadBody(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode == http.StatusUnauthorized && !isAuthPath(path) {
		if c.onUnauthorized != nil {
			c.onUnauthorized()
		}
		return nil, errors.New(sessionExpiredMessage)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, apiErrorFromBody(blob, resp.Status)
	}
	return blob, nil
}

func (c *APIClient) getJSON(path string, query url.Values, out any) error {
	blob, err := c.do(http.MethodGet, path, query, nil, "")
	if err != nil {
		return err
	}
	return json.Unmarshal(blob, out)
}

// sendData wraps payload in the server's {data: ...} mutation envelope.
func (c *APIClient) sendData(method string, path string, payload any) ([]byte, error) {
	blob, err := json.Marshal(struct {
		Data any `json:"data"`
	}{Data: payload})
	if err != nil {
		return nil, err
	}
	return c.do(method, path, nil, bytes.NewReader(blob), "application/json")
}

func (c *APIClient) postForm(path string, form url.Values) ([]byte, error) {
	return c.do(http.MethodPost, path, nil, strings.NewReader(form.Encode()), "application/x-www-form-urlencoded")
}

// apiErrorFromBody flattens the server's structured error into one
// human-readable message: top-level message plus any field-level messages.
func apiErrorFromBody(blob []byte, status string) error {
	var parsed struct {
		Error struct {
			Message string `json:"message"`
			Details struct {
				Errors []struct {
					Message string `json:"message"`
				} `json:"errors"`
			} `json:"details"`
		} `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(blob, &parsed); err == nil {
		if parsed.Error.Message != "" {
			message := parsed.Error.Message
			details := make([]string, 0, len(parsed.Error.Details.Errors))
			for _, detail := range parsed.Error.Details.Errors {
				details = append(details, detail.Message)
			}
			if len(details) > 0 {
				message += ": " + strings.Join(details, ", ")
			}
			return errors.New(message)
		}
		if parsed.Message != "" {
			return errors.New(parsed.Message)
		}
	}
	return fmt.Errorf("request failed: %s", status)
}

// decodeSingle unwraps a {data, meta} envelope around one item. A missing
// data key is a malformed response, never silently defaulted.
func decodeSingle(blob []byte, out any) error {
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(blob, &envelope); err != nil {
		return err
	}
	if len(envelope.Data) == 0 || string(envelope.Data) == "null" {
		return errMalformedResponse
	}
	return json.Unmarshal(envelope.Data, out)
}

// decodeList unwraps a {data, meta} list envelope and returns the server's
// pagination block.
func decodeList(blob []byte, out any) (Pagination, error) {
	var envelope struct {
		Data json.RawMessage `json:"data"`
		Meta struct {
			Pagination Pagination `json:"pagination"`
		} `json:"meta"`
	}
	if err := json.Unmarshal(blob, &envelope); err != nil {
		return Pagination{}, err
	}
	if len(envelope.Data) == 0 || string(envelope.Data) == "null" {
		return Pagination{}, errMalformedResponse
	}
	if err := json.Unmarshal(envelope.Data, out); err != nil {
		return Pagination{}, err
	}
	return envelope.Meta.Pagination, nil
}
