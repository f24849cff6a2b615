//go:generate go run go.uber.org/mock/mockgen -source=client.go -destination=../mocks/mock_caller.go -package=mocks
// Package api is the HTTP layer. Every call goes through one unconditional
// normalization stage: transport failures and error statuses come back as the
// same Response shape a success does, so callers make exactly one check.
package api

import (
	"bytes"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/url"
	"slices"
	"strings"
	"time"

	"github.com/samber/lo"

	"chat-client/notify"
	"chat-client/repositories"
)

const (
	msgNetworkFailure   = "network connection failed, check your network"
	msgRequestFailure   = "request failed"
	msgSessionExpired   = "session expired, please sign in again"
	msgValidationFailed = "data validation failed"
)

type Caller interface {
	Get(path string, query url.Values) Response
	Post(path string, form url.Values) Response
	Put(path string, form url.Values) Response
	Delete(path string, query url.Values) Response
	Upload(path string, field, filename string, content io.Reader, extra url.Values) Response
}

// Client talks to the backend. The one global side effect it is allowed is
// the 401 path: purge credentials and raise the login navigation intent.
// Everything else in normalization is pure.
type Client struct {
	baseURL       string
	http          *http.Client
	creds         repositories.ICredentialRepository
	noticer       notify.Noticer
	onAuthExpired func()
	log           *slog.Logger
}

func NewClient(
	baseURL string,
	timeout time.Duration,
	creds repositories.ICredentialRepository,
	noticer notify.Noticer,
	onAuthExpired func(),
	log *slog.Logger,
) *Client {
	return &Client{
		baseURL:       strings.TrimRight(baseURL, "/"),
		http:          &http.Client{Timeout: timeout},
		creds:         creds,
		noticer:       noticer,
		onAuthExpired: onAuthExpired,
		log:           log,
	}
}

func (c *Client) Get(path string, query url.Values) Response {
	req, err := http.NewRequest(http.MethodGet, c.endpoint(path, query), nil)
	if err != nil {
		return c.transportFailure(err)
	}
	return c.dispatch(req)
}

// Post sends the payload form-encoded. The backend expects
// application/x-www-form-urlencoded bodies on mutating calls even though it
// answers JSON; this is the wire contract, not a convenience.
func (c *Client) Post(path string, form url.Values) Response {
	return c.sendForm(http.MethodPost, path, form)
}

func (c *Client) Put(path string, form url.Values) Response {
	return c.sendForm(http.MethodPut, path, form)
}

func (c *Client) Delete(path string, query url.Values) Response {
	req, err := http.NewRequest(http.MethodDelete, c.endpoint(path, query), nil)
	if err != nil {
		return c.transportFailure(err)
	}
	return c.dispatch(req)
}

// Upload sends a multipart body with one file part plus any extra fields.
func (c *Client) Upload(path string, field, filename string, content io.Reader, extra url.Values) Response {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile(field, filename)
	if err != nil {
		return c.transportFailure(err)
	}
	if _, err = io.Copy(part, content); err != nil {
		return c.transportFailure(err)
	}
	for key, values := range extra {
		for _, value := range values {
			_ = writer.WriteField(key, value)
		}
	}
	if err = writer.Close(); err != nil {
		return c.transportFailure(err)
	}

	req, err := http.NewRequest(http.MethodPost, c.endpoint(path, nil), &body)
	if err != nil {
		return c.transportFailure(err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return c.dispatch(req)
}

func (c *Client) sendForm(method, path string, form url.Values) Response {
	req, err := http.NewRequest(method, c.endpoint(path, nil), strings.NewReader(form.Encode()))
	if err != nil {
		return c.transportFailure(err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return c.dispatch(req)
}

func (c *Client) endpoint(path string, query url.Values) string {
	target := c.baseURL + "/" + strings.TrimLeft(path, "/")
	if len(query) > 0 {
		target += "?" + query.Encode()
	}
	return target
}

// dispatch executes the request and runs the response through normalization.
// No endpoint bypasses this stage.
func (c *Client) dispatch(req *http.Request) Response {
	req.Header.Set("Accept", "application/json")
	if bundle, ok := c.creds.Bundle(); ok && bundle.AccessToken != "" {
		req.Header.Set("Authorization", "Bearer "+bundle.AccessToken)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return c.transportFailure(err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return c.transportFailure(err)
	}

	return c.normalize(Response{Status: resp.StatusCode, Body: body})
}

// transportFailure is the "no response received" case: DNS, timeout, offline.
// Callers get the same shape as any other failure.
func (c *Client) transportFailure(err error) Response {
	c.log.Error("Transport failure", "err", err)
	c.noticer.Notice(msgNetworkFailure)
	return Response{Status: StatusNetworkFailure, Err: msgNetworkFailure}
}

func (c *Client) normalize(resp Response) Response {
	switch resp.Status {
	case http.StatusOK:
		return resp

	case http.StatusUnauthorized:
		// The only normalization path allowed to touch global auth state.
		if err := c.creds.Clear(); err != nil {
			c.log.Error("Failed to purge credentials after 401", "err", err)
		}
		if c.onAuthExpired != nil {
			c.onAuthExpired()
		}
		c.noticer.Notice(msgSessionExpired)
		resp.Err = msgSessionExpired
		return resp

	case http.StatusUnprocessableEntity:
		resp.Err = validationMessage(resp)
		c.noticer.Notice(resp.Err)
		return resp

	default:
		c.noticer.Notice(msgRequestFailure)
		return Response{Status: StatusRequestFailure, Err: msgRequestFailure}
	}
}

// validationMessage pulls the first field-level message out of a 422 body,
// falling back to the top-level error string, then to a generic message.
func validationMessage(resp Response) string {
	var body struct {
		Error  string              `json:"error"`
		Errors map[string][]string `json:"errors"`
	}
	if err := resp.Decode(&body); err != nil {
		return msgValidationFailed
	}

	// Field order on the wire is not observable here, so take the first
	// non-empty message in key order to stay deterministic.
	keys := lo.Keys(body.Errors)
	slices.Sort(keys)
	for _, key := range keys {
		if messages := body.Errors[key]; len(messages) > 0 {
			return messages[0]
		}
	}
	if body.Error != "" {
		return body.Error
	}
	return msgValidationFailed
}
