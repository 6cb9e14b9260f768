package commands

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"strings"

	"StockKeeper/internal/assistant"
	"StockKeeper/internal/config"
	"StockKeeper/internal/model"
)

type chatCmd struct{}

func (chatCmd) Name() string { return "chat" }
func (chatCmd) Description() string {
	return "Talk to the warehouse assistant; type confirm/cancel/exit"
}
func (chatCmd) Usage() string { return "chat" }

func (chatCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 0 {
		return ErrUsage
	}
	if cfg.GeminiAPIKey == "" {
		return errors.New("GEMINI_API_KEY is not set")
	}
	a, err := openApp(ctx, cfg)
	if err != nil {
		return err
	}
	defer a.done()
	u, err := a.requireUser()
	if err != nil {
		return err
	}

	client := assistant.NewGeminiClient(cfg.GeminiBaseURL, cfg.GeminiAPIKey, cfg.GeminiModel, a.log)
	bridge := assistant.NewBridge(a.inv, client, a.log)
	for _, msg := range bridge.Messages() {
		printChat(msg)
	}

	scanner := bufio.NewScanner(In)
	fmt.Fprint(Out, "> ")
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		switch strings.ToLower(line) {
		case "":
		case "exit", "quit":
			return nil
		case "confirm":
			if msg, ok := bridge.Confirm(ctx, u.Name); ok {
				printChat(msg)
			} else {
				fmt.Fprintln(Out, "Nothing to confirm")
			}
		case "cancel":
			if msg, ok := bridge.Cancel(); ok {
				printChat(msg)
			} else {
				fmt.Fprintln(Out, "Nothing to cancel")
			}
		default:
			for _, msg := range bridge.Handle(ctx, line) {
				if msg.Role == model.ChatRoleAssistant {
					printChat(msg)
				}
			}
		}
		fmt.Fprint(Out, "> ")
	}
	return scanner.Err()
}

func printChat(msg model.ChatMessage) {
	fmt.Fprintf(Out, "→ %s\n", msg.Text)
}

func init() { RegisterCmd(chatCmd{}) }
