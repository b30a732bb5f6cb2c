package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/aylak/homedesk/internal/session"
)

const (
	pathSubmitReview  = "/submit_review"
	pathSubmitBooking = "/submit_booking"
	pathRemoveBooking = "/remove_booking"
	pathRemoveUser    = "/remove_user"
	pathDeleteAccount = "/delete_my_account"
	pathLogin         = "/login"

	sessionCookieName = "session"
)

var (
	// ErrNotLoggedIn is returned before any network I/O when an endpoint
	// needs an authenticated session and none is available.
	ErrNotLoggedIn = errors.New("not logged in")

	// ErrBadCredentials is returned when the login form is rejected.
	ErrBadCredentials = errors.New("invalid email or password")
)

// Client talks to the backend's action endpoints. The session is an explicit
// parameter of the client, not ambient state; a nil session means only Login
// will work.
type Client struct {
	baseURL string
	hc      *http.Client
	sess    *session.Session
	log     *slog.Logger
}

// New builds a Client. hc and log may be nil, in which case a client with a
// sane timeout and a discarding logger are used.
func New(baseURL string, sess *session.Session, hc *http.Client, log *slog.Logger) *Client {
	if hc == nil {
		hc = &http.Client{Timeout: 15 * time.Second}
	}
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		hc:      hc,
		sess:    sess,
		log:     log,
	}
}

func (c *Client) SubmitReview(ctx context.Context, r ReviewRequest) (Outcome, error) {
	return c.post(ctx, pathSubmitReview, r)
}

func (c *Client) SubmitBooking(ctx context.Context, b BookingRequest) (Outcome, error) {
	return c.post(ctx, pathSubmitBooking, b)
}

func (c *Client) RemoveBooking(ctx context.Context, bookingID string) (Outcome, error) {
	return c.post(ctx, pathRemoveBooking, bookingRemoval{BookingID: bookingID})
}

func (c *Client) RemoveUser(ctx context.Context, userID string) (Outcome, error) {
	return c.post(ctx, pathRemoveUser, userRemoval{UserID: userID})
}

// DeleteAccount posts an empty body; the backend identifies the actor from
// the session cookie.
func (c *Client) DeleteAccount(ctx context.Context) (Outcome, error) {
	return c.post(ctx, pathDeleteAccount, struct{}{})
}

// post issues one JSON request and decodes the uniform {success, message}
// response. Non-2xx statuses still carry that shape (the backend answers
// 4xx with it), so the status code alone never decides the outcome.
func (c *Client) post(ctx context.Context, path string, payload any) (Outcome, error) {
	if c.sess == nil || strings.TrimSpace(c.sess.Cookie) == "" {
		return Outcome{}, ErrNotLoggedIn
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return Outcome{}, fmt.Errorf("encode %s request: %w", path, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return Outcome{}, fmt.Errorf("create %s request: %w", path, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.AddCookie(&http.Cookie{Name: sessionCookieName, Value: c.sess.Cookie})

	id := uuid.NewString()
	c.log.Debug("dispatching action", "request_id", id, "path", path)

	resp, err := c.hc.Do(req)
	if err != nil {
		return Outcome{}, fmt.Errorf("%s: %w", path, err)
	}
	defer resp.Body.Close()

	var ar actionResponse
	if err := json.NewDecoder(resp.Body).Decode(&ar); err != nil {
		return Outcome{}, fmt.Errorf("decode %s response (status %d): %w", path, resp.StatusCode, err)
	}

	c.log.Debug("action outcome",
		"request_id", id, "path", path,
		"status", resp.StatusCode, "success", ar.Success)

	if ar.Success {
		return Accepted(ar.Message), nil
	}
	return Rejected(ar.Message), nil
}

// Login posts the login form and captures the session cookie the backend
// sets. The backend answers with a redirect either way; a redirect back to
// the login page means the credentials were rejected.
func (c *Client) Login(ctx context.Context, email, password string, admin bool) (*session.Session, error) {
	form := url.Values{}
	form.Set("email", email)
	form.Set("password", password)
	if admin {
		form.Set("admin_login", "1")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+pathLogin, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("create login request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	// Stop at the redirect so the Set-Cookie and Location of the login
	// response itself are visible.
	hc := *c.hc
	hc.CheckRedirect = func(*http.Request, []*http.Request) error {
		return http.ErrUseLastResponse
	}

	resp, err := hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	var cookie string
	for _, ck := range resp.Cookies() {
		if ck.Name == sessionCookieName {
			cookie = ck.Value
		}
	}

	loc := resp.Header.Get("Location")
	if resp.StatusCode < 300 || resp.StatusCode >= 400 || cookie == "" || strings.Contains(loc, pathLogin) {
		c.log.Debug("login rejected", "status", resp.StatusCode, "location", loc)
		return nil, ErrBadCredentials
	}

	return &session.Session{
		Cookie:    cookie,
		Email:     email,
		Admin:     admin,
		CreatedAt: time.Now(),
	}, nil
}
