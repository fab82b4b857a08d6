/* bot.go
 * Contains the Bot struct used for running the discord bot. Requires a discord bot token, and APIPtr both of which are
 * passed in from main.go. The bot is a read only view over the CPR data for trainers
 * Authors: Zachary Bower
 */

package bot

import (
	"context"
	"fmt"
	"strings"
	"time"

	"cpr-backend/api/api"
	"cpr-backend/logger"

	"github.com/go-andiamo/splitter"
)

// commandTimeout bounds the database work done for a single command
const commandTimeout = 10 * time.Second

type Bot struct {
	BotToken string
	APIPtr   *api.API
	Log      *logger.Logger
}

func NewBot(botToken string, apiPtr *api.API, log *logger.Logger) (*Bot, error) {
	if botToken == "" {
		return nil, fmt.Errorf("botToken is required but none was provided")
	}
	if apiPtr == nil {
		return nil, fmt.Errorf("apiPtr is required but none was provided")
	}
	if log == nil {
		log = logger.NewNop()
	}

	return &Bot{
		BotToken: botToken,
		APIPtr:   apiPtr,
		Log:      log,
	}, nil
}

func (b *Bot) commandContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), commandTimeout)
}

// Function to split a message into the command and its arguments
// We use splitter here instead of strings.Fields so ids containing spaces can be quoted e.g. $trainer "Team Alpha"
// Preconditions: Receives the raw message content
// Postconditions: Returns the lower cased command (e.g. "$top") and the remaining arguments with quotes removed.
// Returns an empty command if the message could not be split
func parseCommand(content string) (string, []string) {
	spaceSplitter, err := splitter.NewSplitter(' ', splitter.DoubleQuotes, splitter.LeftRightDoubleDoubleQuotes)
	if err != nil {
		return "", nil
	}
	parts, err := spaceSplitter.Split(strings.TrimSpace(content), splitter.TrimSpaces, splitter.IgnoreEmpties)
	if err != nil || len(parts) == 0 {
		return "", nil
	}

	args := make([]string, 0, len(parts)-1)
	for _, part := range parts[1:] {
		args = append(args, strings.Trim(part, "\"“”"))
	}
	return strings.ToLower(parts[0]), args
}

// formatScore prints a score without trailing zeros
func formatScore(score float64) string {
	return fmt.Sprintf("%g", score)
}
