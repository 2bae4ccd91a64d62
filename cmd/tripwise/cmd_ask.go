package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/natib-dev/tripwise/pkg/textutil"
)

func askCmd() *cobra.Command {
	var sessionID string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "ask <question>",
		Short: "Ask a single question and print the answer",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger()

			a, store, err := newAssistant(logger)
			if err != nil {
				return fmt.Errorf("ask: building assistant: %w", err)
			}
			defer func() { _ = store.Close() }()

			question := strings.Join(args, " ")
			reply, err := a.Ask(cmd.Context(), sessionID, question)
			if err != nil {
				return fmt.Errorf("ask: %w", err)
			}

			if asJSON {
				out, err := json.MarshalIndent(reply, "", "  ")
				if err != nil {
					return fmt.Errorf("ask: encoding reply: %w", err)
				}
				fmt.Println(string(out))
				return nil
			}

			fmt.Println(textutil.FormatResponse(reply.Answer))
			if reply.Followup != "" {
				fmt.Printf("\n(%s)\n", reply.Followup)
			}
			fmt.Fprintf(os.Stderr, "session: %s\n", reply.SessionID)
			return nil
		},
	}

	cmd.Flags().StringVar(&sessionID, "session", "", "session ID to continue (empty starts a new session)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the full reply as JSON")
	return cmd
}
