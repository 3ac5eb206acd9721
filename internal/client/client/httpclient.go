package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/splitroom/internal/client/models"
	"github.com/dmitrijs2005/splitroom/internal/client/session"
	"github.com/dmitrijs2005/splitroom/internal/common"
	"github.com/dmitrijs2005/splitroom/internal/logging"
)

// bodyFunc builds a request body and its content type. A fresh body is built
// per send attempt so the single auth retry never resends a drained reader.
type bodyFunc func() (io.Reader, string, error)

// HTTPClient is the Client implementation over net/http.
type HTTPClient struct {
	baseURL string
	http    *http.Client
	session *session.Session
	log     logging.Logger
}

// NewHTTPClient returns an HTTPClient talking to baseURL, authenticating
// through sess.
func NewHTTPClient(baseURL string, sess *session.Session, timeout time.Duration, log logging.Logger) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		session: sess,
		log:     log,
	}
}

func jsonBody(v any) bodyFunc {
	return func() (io.Reader, string, error) {
		data, err := json.Marshal(v)
		if err != nil {
			return nil, "", err
		}
		return bytes.NewReader(data), "application/json", nil
	}
}

func imageBody(field, filename, contentType string, data []byte) bodyFunc {
	return func() (io.Reader, string, error) {
		var buf bytes.Buffer
		w := multipart.NewWriter(&buf)

		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, field, filename))
		h.Set("Content-Type", contentType)

		part, err := w.CreatePart(h)
		if err != nil {
			return nil, "", err
		}
		if _, err := part.Write(data); err != nil {
			return nil, "", err
		}
		if err := w.Close(); err != nil {
			return nil, "", err
		}
		return &buf, w.FormDataContentType(), nil
	}
}

func (c *HTTPClient) newRequest(ctx context.Context, method, path, token, requestID string, makeBody bodyFunc) (*http.Request, error) {
	var body io.Reader
	var contentType string

	if makeBody != nil {
		var err error
		body, contentType, err = makeBody()
		if err != nil {
			return nil, fmt.Errorf("building request body: %w", err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token != "" {
		req.Header.Set(common.AuthHeaderName, common.BearerPrefix+token)
	}
	req.Header.Set(common.RequestIDHeaderName, requestID)
	return req, nil
}

// sendWithAuthRetry implements the refresh-once state machine: attach the
// current access token, send, and if the server answers 401/403, refresh the
// token through the session (single-flight) and resend the original request
// exactly once. The second response is final, success or not. Any other
// error or status is surfaced unmodified.
func (c *HTTPClient) sendWithAuthRetry(ctx context.Context, send func(token string) (*http.Response, error)) (*http.Response, error) {
	token, err := c.session.AccessToken(ctx)
	if err != nil {
		return nil, err
	}

	resp, err := send(token)
	if err != nil {
		return nil, err
	}
	if !isAuthFailure(resp.StatusCode) {
		return resp, nil
	}
	_ = resp.Body.Close()

	fresh, err := c.session.Refresh(ctx, c.RefreshToken)
	if err != nil {
		return nil, err
	}

	return send(fresh)
}

func isAuthFailure(status int) bool {
	return status == http.StatusUnauthorized || status == http.StatusForbidden
}

// do performs one API call. Authorized requests go through the auth-retry
// wrapper; unauthorized ones (login, register, refresh) are sent bare.
func (c *HTTPClient) do(ctx context.Context, method, path string, makeBody bodyFunc, authorized bool) (*http.Response, error) {
	requestID := uuid.NewString()

	send := func(token string) (*http.Response, error) {
		req, err := c.newRequest(ctx, method, path, token, requestID, makeBody)
		if err != nil {
			return nil, err
		}
		resp, err := c.http.Do(req)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
		}
		return resp, nil
	}

	var resp *http.Response
	var err error
	if authorized {
		resp, err = c.sendWithAuthRetry(ctx, send)
	} else {
		resp, err = send("")
	}
	if err != nil {
		c.log.Debug(ctx, "request failed", "method", method, "path", path, "request_id", requestID, "error", err)
		return nil, err
	}

	c.log.Debug(ctx, "request completed", "method", method, "path", path, "status", resp.StatusCode, "request_id", requestID)
	return resp, nil
}

func statusOK(status int) bool {
	return status >= 200 && status < 300
}

func decodeJSON(resp *http.Response, v any) error {
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

// serverError drains the response into a wrapped error carrying status and
// payload, so callers can show the backend's message.
func serverError(resp *http.Response) error {
	defer resp.Body.Close()
	b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	msg := strings.TrimSpace(string(b))
	if msg == "" {
		return fmt.Errorf("server error: %s", resp.Status)
	}
	return fmt.Errorf("server error: %s: %s", resp.Status, msg)
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type refreshRequest struct {
	Token string `json:"token"`
}

type refreshResponse struct {
	AccessToken string `json:"accessToken"`
}

type selectRequest struct {
	ItemIndex int `json:"itemIndex"`
}

type splitsResponse struct {
	Splits map[string]models.UserSplit `json:"splits"`
}

func (c *HTTPClient) Login(ctx context.Context, email, password string) (*models.TokenPair, error) {
	resp, err := c.do(ctx, http.MethodPost, "/login", jsonBody(loginRequest{Email: email, Password: password}), false)
	if err != nil {
		return nil, err
	}
	if !statusOK(resp.StatusCode) {
		return nil, serverError(resp)
	}

	var pair models.TokenPair
	if err := decodeJSON(resp, &pair); err != nil {
		return nil, err
	}
	return &pair, nil
}

func (c *HTTPClient) Register(ctx context.Context, name, email, password string) error {
	resp, err := c.do(ctx, http.MethodPost, "/register", jsonBody(registerRequest{Name: name, Email: email, Password: password}), false)
	if err != nil {
		return err
	}
	if !statusOK(resp.StatusCode) {
		return serverError(resp)
	}
	_ = resp.Body.Close()
	return nil
}

func (c *HTTPClient) RefreshToken(ctx context.Context, refreshToken string) (string, error) {
	resp, err := c.do(ctx, http.MethodPost, "/refresh-token", jsonBody(refreshRequest{Token: refreshToken}), false)
	if err != nil {
		return "", err
	}
	if !statusOK(resp.StatusCode) {
		return "", serverError(resp)
	}

	var rr refreshResponse
	if err := decodeJSON(resp, &rr); err != nil {
		return "", err
	}
	return rr.AccessToken, nil
}

func (c *HTTPClient) Logout(ctx context.Context) error {
	resp, err := c.do(ctx, http.MethodPost, "/logout", nil, true)
	if err != nil {
		return err
	}
	if !statusOK(resp.StatusCode) {
		return serverError(resp)
	}
	_ = resp.Body.Close()
	return nil
}

func (c *HTTPClient) CreateRoom(ctx context.Context, image []byte, contentType string) (*models.Room, error) {
	resp, err := c.do(ctx, http.MethodPost, "/api/receipt", imageBody("image", "receipt.jpg", contentType, image), true)
	if err != nil {
		return nil, err
	}
	if !statusOK(resp.StatusCode) {
		return nil, serverError(resp)
	}

	var room models.Room
	if err := decodeJSON(resp, &room); err != nil {
		return nil, err
	}
	return &room, nil
}

func (c *HTTPClient) GetRoom(ctx context.Context, code string) (*models.Room, error) {
	resp, err := c.do(ctx, http.MethodGet, "/api/room/"+code, nil, true)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode == http.StatusNotFound {
		_ = resp.Body.Close()
		return nil, fmt.Errorf("%w: %s", ErrRoomNotFound, code)
	}
	if !statusOK(resp.StatusCode) {
		return nil, serverError(resp)
	}

	var room models.Room
	if err := decodeJSON(resp, &room); err != nil {
		return nil, err
	}
	return &room, nil
}

func (c *HTTPClient) SelectItem(ctx context.Context, code string, itemIndex int) error {
	resp, err := c.do(ctx, http.MethodPost, "/api/room/"+code+"/select", jsonBody(selectRequest{ItemIndex: itemIndex}), true)
	if err != nil {
		return err
	}
	return c.selectionResult(resp, code)
}

func (c *HTTPClient) DeselectItem(ctx context.Context, code string, itemIndex int) error {
	resp, err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/room/%s/select/%d", code, itemIndex), nil, true)
	if err != nil {
		return err
	}
	return c.selectionResult(resp, code)
}

func (c *HTTPClient) selectionResult(resp *http.Response, code string) error {
	if resp.StatusCode == http.StatusNotFound {
		_ = resp.Body.Close()
		return fmt.Errorf("%w: %s", ErrRoomNotFound, code)
	}
	if !statusOK(resp.StatusCode) {
		err := serverError(resp)
		return fmt.Errorf("%w: %v", ErrSelectionRejected, err)
	}
	_ = resp.Body.Close()
	return nil
}

func (c *HTTPClient) GetSplits(ctx context.Context, code string) (map[string]models.UserSplit, error) {
	resp, err := c.do(ctx, http.MethodGet, "/api/room/"+code+"/splits", nil, true)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode == http.StatusNotFound {
		_ = resp.Body.Close()
		return nil, fmt.Errorf("%w: %s", ErrRoomNotFound, code)
	}
	if !statusOK(resp.StatusCode) {
		return nil, serverError(resp)
	}

	var sr splitsResponse
	if err := decodeJSON(resp, &sr); err != nil {
		return nil, err
	}
	return sr.Splits, nil
}
