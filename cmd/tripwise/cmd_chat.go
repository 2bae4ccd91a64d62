package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/natib-dev/tripwise/pkg/textutil"
)

const chatBanner = `
  TRIPWISE — travel planning assistant

  I can help you with:
  • Destination recommendations
  • Packing suggestions
  • Local attractions and activities
  • Accommodation, budgets, visas, and general travel advice

  Type 'quit' to exit, 'help' for commands, 'summary' for the session state
`

const chatHelp = `
  Available Commands:
  • quit/exit/bye - Exit
  • help          - Show this help message
  • summary       - Show the session summary
  • clear         - Reset the conversation

  Example Questions:
  • "Where should I go for a beach vacation with a $2000 budget?"
  • "What should I pack for a week in Japan in spring?"
  • "What are the best attractions in Paris?"
  • "Do I need a visa for Thailand with a US passport?"
`

func chatCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Start an interactive chat session",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger()

			a, store, err := newAssistant(logger)
			if err != nil {
				return fmt.Errorf("chat: building assistant: %w", err)
			}
			defer func() { _ = store.Close() }()

			fmt.Print(chatBanner + "\n")
			fmt.Println("Assistant: Hello! I'm your travel assistant. How can I help you with your travel plans today?")
			fmt.Println(strings.Repeat("-", 80))

			sessionID := ""
			scanner := bufio.NewScanner(os.Stdin)
			for {
				fmt.Print("\nYou: ")
				if !scanner.Scan() {
					break
				}
				input := strings.TrimSpace(scanner.Text())
				if input == "" {
					continue
				}

				switch strings.ToLower(input) {
				case "quit", "exit", "bye":
					fmt.Println("\nAssistant: Safe travels! Come back if you need more travel advice.")
					return nil
				case "help":
					fmt.Print(chatHelp + "\n")
					continue
				case "summary":
					if sessionID == "" {
						fmt.Println("\nNo conversation yet.")
						continue
					}
					summary, err := a.Summarize(cmd.Context(), sessionID)
					if err != nil {
						fmt.Fprintf(os.Stderr, "summary failed: %v\n", err)
						continue
					}
					out, _ := json.MarshalIndent(summary, "", "  ")
					fmt.Printf("\nConversation Summary:\n%s\n", out)
					continue
				case "clear":
					if sessionID != "" {
						if err := a.Reset(cmd.Context(), sessionID); err != nil {
							fmt.Fprintf(os.Stderr, "reset failed: %v\n", err)
							continue
						}
					}
					fmt.Print(chatBanner + "\n")
					fmt.Println("Assistant: Conversation cleared! How can I help you now?")
					continue
				}

				reply, err := a.Ask(cmd.Context(), sessionID, input)
				if err != nil {
					fmt.Fprintf(os.Stderr, "error: %v\n", err)
					fmt.Println("Assistant: I apologize for the technical issue. Please try again.")
					continue
				}
				sessionID = reply.SessionID

				fmt.Printf("\nAssistant: %s\n", textutil.FormatResponse(reply.Answer))
				if reply.Followup != "" {
					fmt.Printf("\n(%s)\n", reply.Followup)
				}
			}
			return scanner.Err()
		},
	}
	return cmd
}
