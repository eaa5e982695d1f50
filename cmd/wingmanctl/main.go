package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	apiFlag string
	rootCmd = &cobra.Command{
		Use:   "wingmanctl",
		Short: "CLI client for the Wingman REST API",
	}
)

func main() {
	rootCmd.PersistentFlags().StringVarP(&apiFlag, "api", "a", "http://localhost:8080", "Wingman service base URL")

	// ask subcommand
	var userFlag, codeFlag string
	askCmd := &cobra.Command{
		Use:   "ask QUESTION",
		Short: "Ask the assistant a question",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if userFlag == "" {
				return fmt.Errorf("--user required")
			}
			payload := map[string]interface{}{"userId": userFlag, "question": args[0]}
			if codeFlag != "" {
				payload["code"] = codeFlag
			}
			data, err := doPostJSON(apiFlag+"/api/assistant", payload)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	askCmd.Flags().StringVarP(&userFlag, "user", "u", "", "User ID (required)")
	askCmd.Flags().StringVarP(&codeFlag, "code", "c", "", "Twitch authorization code")
	rootCmd.AddCommand(askCmd)

	// titles subcommand
	titlesCmd := &cobra.Command{
		Use:   "titles",
		Short: "List local dataset game titles",
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := doGet(apiFlag + "/api/games/titles")
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	rootCmd.AddCommand(titlesCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
