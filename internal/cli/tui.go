package cli

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/aylak/homedesk/internal/tui"
)

var (
	uiName    string
	uiContact string
	uiRows    []string
)

var uiCmd = &cobra.Command{
	Use:   "ui <service-id>",
	Short: "Open the interactive service screen",
	Long: `Opens the interactive screen for one service: submit a review or a
booking request, remove your bookings, copy the contact number.

The web page gets its booking rows from the server-rendered template; here
they are seeded with repeated --row flags ("<booking-id>=<date>").`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		serviceID, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("service id must be a number, got %q", args[0])
		}

		rows := make([]tui.BookingRow, 0, len(uiRows))
		for _, raw := range uiRows {
			id, date, _ := strings.Cut(raw, "=")
			if id == "" {
				return fmt.Errorf("invalid --row %q, want <booking-id>=<date>", raw)
			}
			rows = append(rows, tui.BookingRow{ID: id, Date: date})
		}

		svc := tui.Service{ID: serviceID, Name: uiName, Contact: uiContact}
		if svc.Name == "" {
			svc.Name = fmt.Sprintf("Service #%d", serviceID)
		}

		m := tui.New(svc, rows, a.client, a.log)
		if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
			return fmt.Errorf("ui: %w", err)
		}
		return nil
	},
}

func init() {
	uiCmd.Flags().StringVar(&uiName, "name", "", "service display name")
	uiCmd.Flags().StringVar(&uiContact, "contact", "", "service contact number")
	uiCmd.Flags().StringArrayVar(&uiRows, "row", nil, "booking row, repeatable: <booking-id>=<date>")

	rootCmd.AddCommand(uiCmd)
}
