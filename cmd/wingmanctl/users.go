package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func init() {
	usersCmd := &cobra.Command{Use: "users", Short: "User operations"}

	// get
	getCmd := &cobra.Command{
		Use:   "get USER_ID",
		Short: "Get user progress and achievements",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := doGet(fmt.Sprintf("%s/api/users/%s", apiFlag, args[0]))
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	usersCmd.AddCommand(getCmd)

	// sync
	var userId, email string
	var position int
	var approved bool
	syncCmd := &cobra.Command{
		Use:   "sync",
		Short: "Sync a splash-page account record",
		RunE: func(cmd *cobra.Command, args []string) error {
			if userId == "" {
				return fmt.Errorf("--userId required")
			}
			payload := map[string]interface{}{
				"userId":     userId,
				"email":      email,
				"position":   position,
				"isApproved": approved,
			}
			data, err := doPostJSON(apiFlag+"/api/users/sync", payload)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	syncCmd.Flags().StringVarP(&userId, "userId", "u", "", "UserID (required)")
	syncCmd.Flags().StringVarP(&email, "email", "e", "", "User email")
	syncCmd.Flags().IntVarP(&position, "position", "p", 0, "Waitlist position")
	syncCmd.Flags().BoolVar(&approved, "approved", false, "Approved flag")
	_ = syncCmd.MarkFlagRequired("userId")
	usersCmd.AddCommand(syncCmd)

	rootCmd.AddCommand(usersCmd)
}
