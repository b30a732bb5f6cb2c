// Package dispatch maps each interactive trigger to exactly one backend
// action: collect inputs, confirm where destructive, call the endpoint,
// and hand the outcome back to whichever surface (CLI or TUI) triggered it.
package dispatch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/atotto/clipboard"

	"github.com/aylak/homedesk/internal/api"
)

// Action names one user-triggered operation.
type Action string

const (
	ActionCopyContact   Action = "copy_contact"
	ActionSubmitReview  Action = "submit_review"
	ActionSubmitBooking Action = "submit_booking"
	ActionRemoveBooking Action = "remove_booking"
	ActionRemoveUser    Action = "remove_user"
	ActionDeleteAccount Action = "delete_account"
)

var (
	// ErrBusy means the same action already has a request in flight; the
	// trigger stays disabled until that request completes.
	ErrBusy = errors.New("action already in flight")

	// ErrDeclined means the user answered no to the confirmation; nothing
	// was sent.
	ErrDeclined = errors.New("confirmation declined")

	// ErrMissingDate means the booking form had no preferred date; nothing
	// was sent.
	ErrMissingDate = errors.New("preferred date is required")
)

// Backend is the slice of the api client the dispatcher drives.
type Backend interface {
	SubmitReview(ctx context.Context, r api.ReviewRequest) (api.Outcome, error)
	SubmitBooking(ctx context.Context, b api.BookingRequest) (api.Outcome, error)
	RemoveBooking(ctx context.Context, bookingID string) (api.Outcome, error)
	RemoveUser(ctx context.Context, userID string) (api.Outcome, error)
	DeleteAccount(ctx context.Context) (api.Outcome, error)
}

// Dispatcher runs one action per trigger. Every action produces exactly one
// request and one response; while a request is outstanding the same action
// cannot be dispatched again.
type Dispatcher struct {
	backend Backend
	confirm func(prompt string) bool
	log     *slog.Logger

	// Copy places text on the system clipboard. Overridable in tests.
	Copy func(text string) error

	mu   sync.Mutex
	busy map[Action]bool
}

// New builds a Dispatcher. confirm decides destructive actions; a nil
// confirm declines everything. log may be nil.
func New(backend Backend, confirm func(string) bool, log *slog.Logger) *Dispatcher {
	if confirm == nil {
		confirm = func(string) bool { return false }
	}
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Dispatcher{
		backend: backend,
		confirm: confirm,
		log:     log,
		Copy:    clipboard.WriteAll,
		busy:    make(map[Action]bool),
	}
}

// CopyContact places the contact string on the clipboard. Denied clipboard
// access is logged and reported; no network is involved.
func (d *Dispatcher) CopyContact(contact string) error {
	if err := d.Copy(contact); err != nil {
		d.log.Error("clipboard write failed", "error", err)
		return err
	}
	return nil
}

// SubmitReview forwards the rating exactly as parsed; a non-numeric rating
// arrives here as NaN and is passed through, not rejected.
func (d *Dispatcher) SubmitReview(ctx context.Context, serviceID int, rating float64, comment string) (api.Outcome, error) {
	if err := d.begin(ActionSubmitReview); err != nil {
		return api.Outcome{}, err
	}
	defer d.end(ActionSubmitReview)
	return d.backend.SubmitReview(ctx, api.ReviewRequest{
		ServiceID: serviceID,
		Rating:    rating,
		Comment:   comment,
	})
}

func (d *Dispatcher) SubmitBooking(ctx context.Context, serviceID int, date, notes string) (api.Outcome, error) {
	if date == "" {
		return api.Outcome{}, ErrMissingDate
	}
	if err := d.begin(ActionSubmitBooking); err != nil {
		return api.Outcome{}, err
	}
	defer d.end(ActionSubmitBooking)
	return d.backend.SubmitBooking(ctx, api.BookingRequest{
		ServiceID:    serviceID,
		BookingDate:  date,
		BookingNotes: notes,
	})
}

func (d *Dispatcher) RemoveBooking(ctx context.Context, bookingID string) (api.Outcome, error) {
	if !d.confirm(fmt.Sprintf("Remove booking %s?", bookingID)) {
		return api.Outcome{}, ErrDeclined
	}
	if err := d.begin(ActionRemoveBooking); err != nil {
		return api.Outcome{}, err
	}
	defer d.end(ActionRemoveBooking)
	return d.backend.RemoveBooking(ctx, bookingID)
}

func (d *Dispatcher) RemoveUser(ctx context.Context, userID string) (api.Outcome, error) {
	prompt := fmt.Sprintf("Remove user %s? Their reviews and bookings are removed too. This cannot be undone.", userID)
	if !d.confirm(prompt) {
		return api.Outcome{}, ErrDeclined
	}
	if err := d.begin(ActionRemoveUser); err != nil {
		return api.Outcome{}, err
	}
	defer d.end(ActionRemoveUser)
	return d.backend.RemoveUser(ctx, userID)
}

func (d *Dispatcher) DeleteAccount(ctx context.Context) (api.Outcome, error) {
	if !d.confirm("Delete your account? Your reviews and bookings are removed too. This cannot be undone.") {
		return api.Outcome{}, ErrDeclined
	}
	if err := d.begin(ActionDeleteAccount); err != nil {
		return api.Outcome{}, err
	}
	defer d.end(ActionDeleteAccount)
	return d.backend.DeleteAccount(ctx)
}

func (d *Dispatcher) begin(a Action) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.busy[a] {
		d.log.Warn("action re-triggered while in flight", "action", string(a))
		return ErrBusy
	}
	d.busy[a] = true
	return nil
}

func (d *Dispatcher) end(a Action) {
	d.mu.Lock()
	d.busy[a] = false
	d.mu.Unlock()
}
