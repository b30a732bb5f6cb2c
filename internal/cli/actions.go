package cli

import (
	"fmt"
	"math"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/aylak/homedesk/internal/session"
	"github.com/aylak/homedesk/internal/ui"
)

var (
	reviewRating  string
	reviewComment string
	bookDate      string
	bookNotes     string
)

var reviewCmd = &cobra.Command{
	Use:   "review <service-id>",
	Short: "Submit a review for a service",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		serviceID, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("service id must be a number, got %q", args[0])
		}

		ui.Info("Submitting review...")
		out, err := a.disp.SubmitReview(cmd.Context(), serviceID, looseFloat(reviewRating), reviewComment)
		return a.report(out, err)
	},
}

var bookCmd = &cobra.Command{
	Use:   "book <service-id>",
	Short: "Submit a booking request for a service",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		serviceID, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("service id must be a number, got %q", args[0])
		}

		ui.Info("Submitting booking request...")
		out, err := a.disp.SubmitBooking(cmd.Context(), serviceID, bookDate, bookNotes)
		return a.report(out, err)
	},
}

var bookingCmd = &cobra.Command{
	Use:   "booking",
	Short: "Manage booking requests",
}

var bookingRmCmd = &cobra.Command{
	Use:   "rm <booking-id>",
	Short: "Remove a booking request",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		out, err := a.disp.RemoveBooking(cmd.Context(), args[0])
		return a.report(out, err)
	},
}

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Administrative user management",
}

var userRmCmd = &cobra.Command{
	Use:   "rm <user-id>",
	Short: "Remove a user and their reviews and bookings",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		out, err := a.disp.RemoveUser(cmd.Context(), args[0])
		return a.report(out, err)
	},
}

var accountCmd = &cobra.Command{
	Use:   "account",
	Short: "Manage your own account",
}

var accountDeleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Delete your account and all associated data",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		out, err := a.disp.DeleteAccount(cmd.Context())
		if rerr := a.report(out, err); rerr != nil || err != nil || !out.Accepted() {
			return rerr
		}
		// The account is gone server-side; drop the local session and point
		// back at the welcome page, the CLI's equivalent of navigating there.
		if a.sess != nil && a.sess.Source == "file" {
			if err := session.Delete(); err != nil {
				a.log.Error("delete session", "error", err)
			}
		}
		ui.Info("See you at " + a.cfg.ServerURL + "/welcome")
		return nil
	},
}

var contactCmd = &cobra.Command{
	Use:   "contact",
	Short: "Work with service contact numbers",
}

var contactCopyCmd = &cobra.Command{
	Use:   "copy <number>",
	Short: "Copy a contact number to the clipboard",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		// Clipboard denial is logged, never fatal.
		if err := a.disp.CopyContact(args[0]); err != nil {
			return nil
		}
		ui.OK("copied")
		return nil
	},
}

// looseFloat mirrors the permissive numeric parsing of the original page:
// anything non-numeric becomes NaN and is forwarded as-is.
func looseFloat(s string) float64 {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return math.NaN()
	}
	return f
}

func init() {
	reviewCmd.Flags().StringVar(&reviewRating, "rating", "", "rating (numeric)")
	reviewCmd.Flags().StringVar(&reviewComment, "comment", "", "review comment")

	bookCmd.Flags().StringVar(&bookDate, "date", "", "preferred date (required by the backend)")
	bookCmd.Flags().StringVar(&bookNotes, "notes", "", "optional booking notes")

	bookingCmd.AddCommand(bookingRmCmd)
	userCmd.AddCommand(userRmCmd)
	accountCmd.AddCommand(accountDeleteCmd)
	contactCmd.AddCommand(contactCopyCmd)

	rootCmd.AddCommand(reviewCmd, bookCmd, bookingCmd, userCmd, accountCmd, contactCmd)
}
