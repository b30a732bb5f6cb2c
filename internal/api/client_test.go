package api

import (
	"context"
	"encoding/json"
	"io"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aylak/homedesk/internal/session"
)

func testSession() *session.Session {
	return &session.Session{Cookie: "test-cookie", Email: "user@example.com"}
}

func TestActionOutcomeTiers(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		body        string
		wantErr     bool
		wantAccept  bool
		wantMessage string
	}{
		{
			name:        "accepted",
			status:      http.StatusOK,
			body:        `{"success": true, "message": "Review submitted successfully!"}`,
			wantAccept:  true,
			wantMessage: "Review submitted successfully!",
		},
		{
			name:        "rejected with 400 still an outcome",
			status:      http.StatusBadRequest,
			body:        `{"success": false, "message": "Service ID and Rating are required."}`,
			wantAccept:  false,
			wantMessage: "Service ID and Rating are required.",
		},
		{
			name:        "rejected with 401",
			status:      http.StatusUnauthorized,
			body:        `{"success": false, "message": "You must be logged in to submit a review."}`,
			wantAccept:  false,
			wantMessage: "You must be logged in to submit a review.",
		},
		{
			name:    "non-json body is a transport error",
			status:  http.StatusInternalServerError,
			body:    "<html>Internal Server Error</html>",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				io.WriteString(w, tt.body)
			}))
			defer srv.Close()

			c := New(srv.URL, testSession(), srv.Client(), nil)
			out, err := c.SubmitReview(context.Background(), ReviewRequest{ServiceID: 3, Rating: 4.5, Comment: "Great"})

			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantAccept, out.Accepted())
			assert.Equal(t, tt.wantMessage, out.Message())
		})
	}
}

func TestPayloadShapes(t *testing.T) {
	var (
		gotPath   string
		gotBody   map[string]any
		gotCookie string
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		if ck, err := r.Cookie("session"); err == nil {
			gotCookie = ck.Value
		}
		gotBody = nil
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		io.WriteString(w, `{"success": true, "message": "ok"}`)
	}))
	defer srv.Close()

	c := New(srv.URL, testSession(), srv.Client(), nil)
	ctx := context.Background()

	_, err := c.SubmitReview(ctx, ReviewRequest{ServiceID: 3, Rating: 4.5, Comment: "Great"})
	require.NoError(t, err)
	assert.Equal(t, "/submit_review", gotPath)
	assert.Equal(t, "test-cookie", gotCookie)
	assert.Equal(t, map[string]any{"service_id": float64(3), "rating": 4.5, "comment": "Great"}, gotBody)

	_, err = c.SubmitBooking(ctx, BookingRequest{ServiceID: 7, BookingDate: "2026-09-01", BookingNotes: "x"})
	require.NoError(t, err)
	assert.Equal(t, "/submit_booking", gotPath)
	assert.Equal(t, map[string]any{"service_id": float64(7), "booking_date": "2026-09-01", "booking_notes": "x"}, gotBody)

	_, err = c.RemoveBooking(ctx, "booking_2")
	require.NoError(t, err)
	assert.Equal(t, "/remove_booking", gotPath)
	assert.Equal(t, map[string]any{"booking_id": "booking_2"}, gotBody)

	_, err = c.RemoveUser(ctx, "user_5")
	require.NoError(t, err)
	assert.Equal(t, "/remove_user", gotPath)
	assert.Equal(t, map[string]any{"user_id": "user_5"}, gotBody)

	_, err = c.DeleteAccount(ctx)
	require.NoError(t, err)
	assert.Equal(t, "/delete_my_account", gotPath)
	assert.Empty(t, gotBody, "account deletion posts an empty body")
}

func TestNotLoggedInBeforeNetwork(t *testing.T) {
	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
	}))
	defer srv.Close()

	c := New(srv.URL, nil, srv.Client(), nil)
	_, err := c.SubmitBooking(context.Background(), BookingRequest{ServiceID: 1, BookingDate: "2026-09-01"})

	assert.ErrorIs(t, err, ErrNotLoggedIn)
	assert.Zero(t, hits, "no request may be issued without a session")
}

func TestNaNRatingIsTransportTier(t *testing.T) {
	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
	}))
	defer srv.Close()

	c := New(srv.URL, testSession(), srv.Client(), nil)
	_, err := c.SubmitReview(context.Background(), ReviewRequest{ServiceID: 3, Rating: math.NaN()})

	require.Error(t, err, "NaN cannot be encoded as JSON")
	assert.Zero(t, hits)
}

func TestLogin(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		http.SetCookie(w, &http.Cookie{Name: "session", Value: "fresh-cookie"})
		if r.FormValue("email") == "user@example.com" && r.FormValue("password") == "secret" {
			w.Header().Set("Location", "/welcome")
		} else {
			w.Header().Set("Location", "/login")
		}
		w.WriteHeader(http.StatusFound)
	}))
	defer srv.Close()

	c := New(srv.URL, nil, srv.Client(), nil)

	sess, err := c.Login(context.Background(), "user@example.com", "secret", false)
	require.NoError(t, err)
	assert.Equal(t, "fresh-cookie", sess.Cookie)
	assert.Equal(t, "user@example.com", sess.Email)
	assert.False(t, sess.Admin)

	_, err = c.Login(context.Background(), "user@example.com", "wrong", false)
	assert.ErrorIs(t, err, ErrBadCredentials)
}
