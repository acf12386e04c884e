package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// NewStatusCommand creates the 'prepwise status' command
func NewStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Check whether the saved HEB session is still logged in",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			manager, _, log, err := newSessionManager("status")
			if err != nil {
				return err
			}
			defer log.Close()

			status := manager.CheckStatus()
			out := cmd.OutOrStdout()
			if status.LoggedIn {
				fmt.Fprintf(out, "%s %s\n", color.GreenString("●"), status.Message)
			} else {
				fmt.Fprintf(out, "%s %s\n", color.YellowString("○"), status.Message)
			}
			return nil
		},
	}
}

// NewLoginCommand creates the 'prepwise login' command
func NewLoginCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "login",
		Short: "Open a browser on the HEB sign-in page to save a session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			manager, _, log, err := newSessionManager("login")
			if err != nil {
				return err
			}
			defer log.Close()

			msg, err := manager.OpenLoginPage()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), msg)
			return nil
		},
	}
}
