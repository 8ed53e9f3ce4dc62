package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/leadline-ai/leadline/internal/config"
)

// ChatCmd returns the chat command
func ChatCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Chat with the assistant in the terminal",
		Long:  "Start an interactive session against the indexed knowledge base; type 'exit' or Ctrl-D to quit",
		RunE:  runChat,
	}
}

func runChat(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	rt, err := newRuntime(cmd.Context(), cfg)
	if err != nil {
		return err
	}

	fmt.Println("leadline chat (type 'exit' to quit)")

	sessionID := ""
	scanner := bufio.NewScanner(os.Stdin)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)

	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		message := strings.TrimSpace(scanner.Text())
		if message == "" {
			continue
		}
		if message == "exit" || message == "quit" {
			break
		}

		turn := rt.conversation.ProcessTurn(cmd.Context(), sessionID, message)
		sessionID = turn.SessionID

		fmt.Printf("\n%s\n\n", turn.Answer)
		if turn.LeadCompleted {
			fmt.Println("(lead captured)")
		}
	}

	return scanner.Err()
}
