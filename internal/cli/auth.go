package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/aylak/homedesk/internal/session"
	"github.com/aylak/homedesk/internal/ui"
)

var loginAdmin bool

var loginCmd = &cobra.Command{
	Use:   "login [email]",
	Short: "Log in and store the session",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}

		email := ""
		if len(args) == 1 {
			email = args[0]
		} else {
			if email, err = readLine("Email"); err != nil {
				return fmt.Errorf("read email: %w", err)
			}
		}
		password, err := readPassword("Password")
		if err != nil {
			return fmt.Errorf("read password: %w", err)
		}

		sess, err := a.client.Login(cmd.Context(), email, password, loginAdmin)
		if err != nil {
			ui.Fail("login: " + err.Error())
			return errFailed
		}
		if err := session.Save(sess); err != nil {
			ui.Fail("save session: " + err.Error())
			return errFailed
		}
		ui.OK("logged in as " + email)
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Delete the stored session",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, _ := session.Current()
		if sess != nil && sess.Source == "env" {
			ui.OK("session is provided by HOMEDESK_SESSION env var (nothing to delete)")
			return nil
		}
		if err := session.Delete(); err != nil {
			ui.Fail("logout: " + err.Error())
			return errFailed
		}
		ui.OK("logged out")
		return nil
	},
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the current session",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := session.Current()
		if err != nil {
			return err
		}
		if sess == nil {
			fmt.Println(ui.Muted.Render("not logged in"))
			fmt.Println("Run: homedesk login")
			return nil
		}
		lines := []string{"source: " + sess.Source}
		if sess.Email != "" {
			lines = append(lines, "email: "+sess.Email)
		}
		lines = append(lines, fmt.Sprintf("admin: %v", sess.Admin))
		if !sess.CreatedAt.IsZero() {
			lines = append(lines, "created: "+sess.CreatedAt.UTC().Format(time.RFC3339))
		}
		lines = append(lines, ui.Muted.Render("env override: HOMEDESK_SESSION"))
		ui.Panel(lines)
		return nil
	},
}

func init() {
	loginCmd.Flags().BoolVar(&loginAdmin, "admin", false, "log in as administrator")
	rootCmd.AddCommand(loginCmd, logoutCmd, statusCmd)
}
