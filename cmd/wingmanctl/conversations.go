package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func init() {
	convCmd := &cobra.Command{Use: "conversations", Short: "Conversation operations"}

	listCmd := &cobra.Command{
		Use:   "list USER_ID",
		Short: "List a user's conversations, newest first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := doGet(fmt.Sprintf("%s/api/conversations/%s", apiFlag, args[0]))
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	convCmd.AddCommand(listCmd)

	deleteCmd := &cobra.Command{
		Use:   "delete INTERACTION_ID",
		Short: "Delete one interaction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := doDelete(fmt.Sprintf("%s/api/interactions/%s", apiFlag, args[0])); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, "deleted")
			return nil
		},
	}
	convCmd.AddCommand(deleteCmd)

	rootCmd.AddCommand(convCmd)
}
