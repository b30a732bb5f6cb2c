package tui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/aylak/homedesk/internal/api"
	"github.com/aylak/homedesk/internal/dispatch"
	"github.com/aylak/homedesk/internal/ui"
)

// Service is the page context the screen is opened for. The surrounding
// templates own this data in the web app; here the caller provides it.
type Service struct {
	ID      int
	Name    string
	Contact string
}

// BookingRow is one removable row of the bookings table.
type BookingRow struct {
	ID   string
	Date string
}

const (
	copiedBadgeFor = 2000 * time.Millisecond
	refreshAfter   = 1500 * time.Millisecond
)

type section int

const (
	secRating section = iota
	secComment
	secDate
	secNotes
	secBookings
	sectionCount
)

type statusKind int

const (
	statusNone statusKind = iota
	statusLoading
	statusSuccess
	statusError
	statusWarn
)

// Messages produced by async commands and timers.
type outcomeMsg struct {
	action  dispatch.Action
	outcome api.Outcome
	err     error
	rowID   string
}

type copyDoneMsg struct{ err error }
type copiedExpiredMsg struct{}
type refreshMsg struct{}

// Model is the interactive service screen: review form, booking form,
// bookings table, contact line with copy, and a message area.
type Model struct {
	svc  Service
	rows []BookingRow
	disp *dispatch.Dispatcher

	rating  textinput.Model
	comment textinput.Model
	date    textinput.Model
	notes   textinput.Model

	focus  section
	cursor int

	status     statusKind
	statusText string

	copied bool

	confirming    bool
	confirmText   string
	pendingRemove string

	// refresh bookkeeping for the post-review reload
	reloadsScheduled int
	reloads          int
}

// New builds the screen. The confirm overlay is this screen's confirmation
// step, so the dispatcher it drives is built with an always-yes confirmer;
// nothing is dispatched until the user already answered the overlay.
func New(svc Service, rows []BookingRow, backend dispatch.Backend, log *slog.Logger) Model {
	m := Model{
		svc:  svc,
		rows: rows,
		disp: dispatch.New(backend, func(string) bool { return true }, log),
	}

	mk := func(placeholder string, limit int) textinput.Model {
		ti := textinput.New()
		ti.Prompt = "> "
		ti.Placeholder = placeholder
		ti.CharLimit = limit
		return ti
	}
	m.rating = mk("Rating (1-5)", 8)
	m.comment = mk("Your review...", 400)
	m.date = mk("Preferred date (YYYY-MM-DD)", 20)
	m.notes = mk("Booking notes (optional)", 400)

	m.setFocus(secRating)
	return m
}

// Dispatcher exposes the screen's dispatcher so callers can rewire the
// clipboard in tests.
func (m *Model) Dispatcher() *dispatch.Dispatcher { return m.disp }

func (m Model) Init() tea.Cmd { return textinput.Blink }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.updateKey(msg)

	case copyDoneMsg:
		// Denied clipboard access was already logged; no badge, no error.
		if msg.err != nil {
			return m, nil
		}
		m.copied = true
		return m, tea.Tick(copiedBadgeFor, func(time.Time) tea.Msg { return copiedExpiredMsg{} })

	case copiedExpiredMsg:
		m.copied = false
		return m, nil

	case refreshMsg:
		m.reloads++
		m.status = statusNone
		m.statusText = ""
		return m, nil

	case outcomeMsg:
		return m.updateOutcome(msg)
	}

	return m.updateFocused(msg)
}

func (m Model) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.confirming {
		switch msg.String() {
		case "y", "Y":
			m.confirming = false
			id := m.pendingRemove
			m.pendingRemove = ""
			return m.dispatchRemove(id)
		case "n", "N", "esc":
			m.confirming = false
			m.pendingRemove = ""
			return m, nil
		}
		return m, nil
	}

	switch msg.String() {
	case "ctrl+c", "esc":
		return m, tea.Quit
	case "tab":
		m.setFocus((m.focus + 1) % sectionCount)
		return m, nil
	case "shift+tab":
		m.setFocus((m.focus + sectionCount - 1) % sectionCount)
		return m, nil
	case "enter":
		switch m.focus {
		case secRating, secComment:
			return m.dispatchReview()
		case secDate, secNotes:
			return m.dispatchBooking()
		}
		return m, nil
	}

	if m.focus == secBookings {
		switch msg.String() {
		case "q":
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil
		case "down", "j":
			if m.cursor < len(m.rows)-1 {
				m.cursor++
			}
			return m, nil
		case "c":
			return m, m.copyContactCmd()
		case "d":
			if m.cursor >= 0 && m.cursor < len(m.rows) {
				m.confirming = true
				m.pendingRemove = m.rows[m.cursor].ID
				m.confirmText = fmt.Sprintf("Remove booking %s?", m.pendingRemove)
			}
			return m, nil
		}
		return m, nil
	}

	return m.updateFocused(msg)
}

func (m Model) updateFocused(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.focus {
	case secRating:
		m.rating, cmd = m.rating.Update(msg)
	case secComment:
		m.comment, cmd = m.comment.Update(msg)
	case secDate:
		m.date, cmd = m.date.Update(msg)
	case secNotes:
		m.notes, cmd = m.notes.Update(msg)
	}
	return m, cmd
}

func (m Model) updateOutcome(msg outcomeMsg) (tea.Model, tea.Cmd) {
	switch {
	case errors.Is(msg.err, dispatch.ErrMissingDate):
		m.setStatus(statusWarn, "Please select a preferred date for your booking.")
	case errors.Is(msg.err, dispatch.ErrBusy):
		m.setStatus(statusWarn, "That action is already in progress.")
	case msg.err != nil:
		m.setStatus(statusError, "An unexpected error occurred. Please try again.")
	case !msg.outcome.Accepted():
		m.setStatus(statusError, msg.outcome.Message())
	default:
		m.setStatus(statusSuccess, msg.outcome.Message())
		switch msg.action {
		case dispatch.ActionSubmitReview:
			m.rating.SetValue("")
			m.comment.SetValue("")
			m.reloadsScheduled++
			return m, tea.Tick(refreshAfter, func(time.Time) tea.Msg { return refreshMsg{} })
		case dispatch.ActionSubmitBooking:
			m.date.SetValue("")
			m.notes.SetValue("")
		case dispatch.ActionRemoveBooking:
			m.removeRow(msg.rowID)
		}
	}
	return m, nil
}

// ------ dispatch commands (values captured at trigger time) ------

func (m Model) dispatchReview() (tea.Model, tea.Cmd) {
	d, sid := m.disp, m.svc.ID
	rating := looseFloat(m.rating.Value())
	comment := m.comment.Value()
	m.setStatus(statusLoading, "Submitting review...")
	return m, func() tea.Msg {
		out, err := d.SubmitReview(context.Background(), sid, rating, comment)
		return outcomeMsg{action: dispatch.ActionSubmitReview, outcome: out, err: err}
	}
}

func (m Model) dispatchBooking() (tea.Model, tea.Cmd) {
	d, sid := m.disp, m.svc.ID
	date := strings.TrimSpace(m.date.Value())
	notes := m.notes.Value()
	m.setStatus(statusLoading, "Submitting booking request...")
	return m, func() tea.Msg {
		out, err := d.SubmitBooking(context.Background(), sid, date, notes)
		return outcomeMsg{action: dispatch.ActionSubmitBooking, outcome: out, err: err}
	}
}

func (m Model) dispatchRemove(id string) (tea.Model, tea.Cmd) {
	d := m.disp
	m.setStatus(statusLoading, "Removing booking "+id+"...")
	return m, func() tea.Msg {
		out, err := d.RemoveBooking(context.Background(), id)
		return outcomeMsg{action: dispatch.ActionRemoveBooking, outcome: out, err: err, rowID: id}
	}
}

func (m Model) copyContactCmd() tea.Cmd {
	d, contact := m.disp, m.svc.Contact
	return func() tea.Msg {
		return copyDoneMsg{err: d.CopyContact(contact)}
	}
}

// ------ model helpers ------

func (m *Model) setStatus(kind statusKind, text string) {
	m.status = kind
	m.statusText = text
}

func (m *Model) setFocus(s section) {
	m.focus = s
	for _, ti := range []*textinput.Model{&m.rating, &m.comment, &m.date, &m.notes} {
		ti.Blur()
	}
	switch s {
	case secRating:
		m.rating.Focus()
	case secComment:
		m.comment.Focus()
	case secDate:
		m.date.Focus()
	case secNotes:
		m.notes.Focus()
	}
}

func (m *Model) removeRow(id string) {
	out := m.rows[:0]
	for _, r := range m.rows {
		if r.ID != id {
			out = append(out, r)
		}
	}
	m.rows = out
	if m.cursor >= len(m.rows) {
		m.cursor = len(m.rows) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// looseFloat mirrors the permissive parsing of the original page: anything
// non-numeric becomes NaN and is forwarded as-is.
func looseFloat(s string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return math.NaN()
	}
	return f
}

// ------ view ------

func (m Model) View() string {
	var b strings.Builder

	title := ui.Title.Render(m.svc.Name)
	contact := ui.Muted.Render("Contact: ") + m.svc.Contact
	if m.copied {
		contact += "  " + ui.Success.Render("✔ copied")
	}
	b.WriteString(title + "\n" + contact + "\n\n")

	b.WriteString(m.sectionHeader("Leave a review", m.focus == secRating || m.focus == secComment) + "\n")
	b.WriteString(m.rating.View() + "\n")
	b.WriteString(m.comment.View() + "\n\n")

	b.WriteString(m.sectionHeader("Request a booking", m.focus == secDate || m.focus == secNotes) + "\n")
	b.WriteString(m.date.View() + "\n")
	b.WriteString(m.notes.View() + "\n\n")

	b.WriteString(m.sectionHeader("Your bookings", m.focus == secBookings) + "\n")
	if len(m.rows) == 0 {
		b.WriteString(ui.Muted.Render("  (none)") + "\n")
	}
	for i, r := range m.rows {
		prefix := "  "
		line := fmt.Sprintf("%s  %s", r.ID, r.Date)
		if m.focus == secBookings && i == m.cursor {
			prefix = ui.Selected.Render("> ")
		}
		b.WriteString(prefix + line + "\n")
	}

	b.WriteString("\n" + m.statusLine() + "\n")

	if m.confirming {
		b.WriteString(ui.Pending.Render(m.confirmText+" [y/n]") + "\n")
	}

	b.WriteString(ui.Help.Render("tab: next field  enter: submit  d: remove booking  c: copy contact  esc: quit"))

	border := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("8")).
		Padding(0, 1)
	return border.Render(b.String())
}

func (m Model) sectionHeader(label string, active bool) string {
	if active {
		return ui.Accent.Render(label)
	}
	return ui.Muted.Render(label)
}

func (m Model) statusLine() string {
	switch m.status {
	case statusLoading:
		return ui.Muted.Render(m.statusText)
	case statusSuccess:
		return ui.Success.Render(m.statusText)
	case statusError:
		return ui.Error.Render(m.statusText)
	case statusWarn:
		return ui.Pending.Render(m.statusText)
	}
	return ""
}
