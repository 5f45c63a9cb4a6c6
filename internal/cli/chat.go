package cli

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/redspider/medqa/internal/agent/generator"
)

var exitWords = map[string]bool{
	"q": true, "退出": true, "再见": true, "bye": true, "quit": true, "exit": true,
}

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Ask questions interactively",
	Long:  `Reads one question per line until an exit word (Q, 退出, 再见, bye, quit, exit) or end of input.`,
	Args:  cobra.NoArgs,
	RunE:  runChat,
}

func init() {
	rootCmd.AddCommand(chatCmd)
}

// isExit reports whether line ends the session.
func isExit(line string) bool {
	return exitWords[strings.ToLower(strings.TrimSpace(line))]
}

func runChat(cmd *cobra.Command, _ []string) error {
	svc, err := ensureService(cmd)
	if err != nil {
		return err
	}

	cmd.Println(generator.Greeting)
	scanner := bufio.NewScanner(cmd.InOrStdin())
	for {
		cmd.Print("> ")
		if !scanner.Scan() {
			break
		}
		line := scanner.Text()
		if isExit(line) {
			break
		}

		resp, err := svc.Answer(cmd.Context(), line)
		if err != nil {
			cmd.PrintErrf("answer failed: %v\n", err)
			continue
		}
		cmd.Println(resp.Answer)
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read input: %w", err)
	}
	cmd.Println()
	return nil
}
