/* handlers.go
 * Contains testable handler methods that accept DiscordSession interface
 * Authors: Zachary Bower
 */

package bot

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"cpr-backend/api/api"
	"cpr-backend/api/shared"

	"github.com/bwmarrin/discordgo"
)

const unexpectedError = "An unexpected error occurred"

// helpMessageHandler handles the $help command with a DiscordSession interface
func (b *Bot) helpMessageHandler(session DiscordSession, message *discordgo.MessageCreate) {
	var res strings.Builder
	res.WriteString("CPR Training Bot\n")
	res.WriteString("`$top <userId>`: shows the user's highest game score\n")
	res.WriteString("`$recent <userId>`: shows the user's most recent game result\n")
	res.WriteString("`$sessions <userId>`: shows the user's last 3 CPR sessions\n")
	res.WriteString("`$leaderboard [limit]`: shows the best score of each of the top users (default 10)\n")
	res.WriteString("`$trainer <trainerId>`: lists the users attached to a trainer\n")
	res.WriteString("Ids that contain spaces need to be encased in \" (e.g. \"Team Alpha\")\n")
	session.ChannelMessageSend(message.ChannelID, res.String())
}

// topScoreHandler handles the $top command with a DiscordSession interface
func (b *Bot) topScoreHandler(session DiscordSession, message *discordgo.MessageCreate, args []string) {
	if len(args) != 1 {
		session.ChannelMessageSend(message.ChannelID, "Usage: `$top <userId>`")
		return
	}
	userID := args[0]
	ctx, cancel := b.commandContext()
	defer cancel()

	score, err := b.APIPtr.TopScore(ctx, userID)
	if err != nil {
		session.ChannelMessageSend(message.ChannelID, b.scoreErrorMessage(userID, err))
		return
	}
	session.ChannelMessageSend(message.ChannelID, fmt.Sprintf("%s's top score is %s", userID, formatScore(score)))
}

// recentScoreHandler handles the $recent command with a DiscordSession interface
func (b *Bot) recentScoreHandler(session DiscordSession, message *discordgo.MessageCreate, args []string) {
	if len(args) != 1 {
		session.ChannelMessageSend(message.ChannelID, "Usage: `$recent <userId>`")
		return
	}
	userID := args[0]
	ctx, cancel := b.commandContext()
	defer cancel()

	result, err := b.APIPtr.RecentScore(ctx, userID)
	if err != nil {
		session.ChannelMessageSend(message.ChannelID, b.scoreErrorMessage(userID, err))
		return
	}
	res := fmt.Sprintf("%s's most recent score is %s in %s (%s)", userID, formatScore(result.GameScore),
		result.GameName, result.CreatedAt.UTC().Format("2006-01-02 15:04 MST"))
	session.ChannelMessageSend(message.ChannelID, res)
}

// sessionsHandler handles the $sessions command with a DiscordSession interface
func (b *Bot) sessionsHandler(session DiscordSession, message *discordgo.MessageCreate, args []string) {
	if len(args) != 1 {
		session.ChannelMessageSend(message.ChannelID, "Usage: `$sessions <userId>`")
		return
	}
	userID := args[0]
	ctx, cancel := b.commandContext()
	defer cancel()

	sessions, err := b.APIPtr.LastNCprSessions(ctx, userID, api.DefaultSessionCount)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			session.ChannelMessageSend(message.ChannelID, b.userNotFoundMessage(userID))
			return
		}
		b.Log.Error("failed to get cpr sessions", "userId", userID, "error", err)
		session.ChannelMessageSend(message.ChannelID, unexpectedError)
		return
	}
	if len(sessions) == 0 {
		session.ChannelMessageSend(message.ChannelID, fmt.Sprintf("%s has not recorded any CPR sessions", userID))
		return
	}

	var res strings.Builder
	res.WriteString(fmt.Sprintf("Last %d CPR sessions for %s:\n", len(sessions), userID))
	for i, s := range sessions {
		mode := "with breaths"
		if s.CompressionOnly {
			mode = "compression only"
		}
		res.WriteString(fmt.Sprintf("%d. rate %s cpm, fraction %s, compression %s, %ss, %s\n", i+1,
			formatScore(s.CprRate), formatScore(s.CprFraction), formatScore(s.Compression), formatScore(s.TotalTime), mode))
	}
	session.ChannelMessageSend(message.ChannelID, res.String())
}

// leaderboardHandler handles the $leaderboard command with a DiscordSession interface
func (b *Bot) leaderboardHandler(session DiscordSession, message *discordgo.MessageCreate, args []string) {
	limit := api.DefaultTopScoresLimit
	if len(args) > 0 {
		parsed, err := strconv.Atoi(args[0])
		if err != nil || parsed <= 0 {
			session.ChannelMessageSend(message.ChannelID, "Usage: `$leaderboard [limit]`, limit must be a positive number")
			return
		}
		limit = parsed
	}
	ctx, cancel := b.commandContext()
	defer cancel()

	entries, err := b.APIPtr.TopScoresAcrossUsers(ctx, limit)
	if err != nil {
		b.Log.Error("failed to get leaderboard", "error", err)
		session.ChannelMessageSend(message.ChannelID, "An error occurred getting the leaderboard")
		return
	}
	if len(entries) == 0 {
		session.ChannelMessageSend(message.ChannelID, "No game results have been recorded yet")
		return
	}

	var res strings.Builder
	res.WriteString("Top scores:\n")
	for i, entry := range entries {
		res.WriteString(fmt.Sprintf("%d. %s - %s (%s)\n", i+1, entry.UserID, formatScore(entry.TopScore.GameScore), entry.TopScore.GameName))
	}
	session.ChannelMessageSend(message.ChannelID, res.String())
}

// trainerHandler handles the $trainer command with a DiscordSession interface
func (b *Bot) trainerHandler(session DiscordSession, message *discordgo.MessageCreate, args []string) {
	if len(args) != 1 {
		session.ChannelMessageSend(message.ChannelID, "Usage: `$trainer <trainerId>`")
		return
	}
	trainerID := args[0]
	ctx, cancel := b.commandContext()
	defer cancel()

	ids, err := b.APIPtr.ListTrainerUsers(ctx, trainerID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			session.ChannelMessageSend(message.ChannelID, fmt.Sprintf("No trainer found with id `%s`", trainerID))
			return
		}
		b.Log.Error("failed to list trainer users", "trainerId", trainerID, "error", err)
		session.ChannelMessageSend(message.ChannelID, unexpectedError)
		return
	}
	if len(ids) == 0 {
		session.ChannelMessageSend(message.ChannelID, fmt.Sprintf("Trainer %s has no users", trainerID))
		return
	}

	var res strings.Builder
	res.WriteString(fmt.Sprintf("Trainer %s has %d users:\n", trainerID, len(ids)))
	for _, id := range ids {
		res.WriteString(fmt.Sprintf("- %s\n", id))
	}
	session.ChannelMessageSend(message.ChannelID, res.String())
}

// scoreErrorMessage builds the reply for a failed $top / $recent lookup
func (b *Bot) scoreErrorMessage(userID string, err error) string {
	if !errors.Is(err, shared.ErrNotFound) {
		b.Log.Error("failed to get score", "userId", userID, "error", err)
		return unexpectedError
	}
	ctx, cancel := b.commandContext()
	defer cancel()
	if _, userErr := b.APIPtr.GetUser(ctx, userID); userErr == nil {
		return fmt.Sprintf("%s has not recorded any game results", userID)
	}
	return b.userNotFoundMessage(userID)
}

// userNotFoundMessage builds a not found reply, with close matches if there are any
func (b *Bot) userNotFoundMessage(userID string) string {
	res := fmt.Sprintf("No user found with id `%s`", userID)

	ctx, cancel := b.commandContext()
	defer cancel()
	suggestions, err := b.APIPtr.SuggestUserIDs(ctx, userID, 3)
	if err != nil {
		b.Log.Warn("failed to suggest user ids", "query", userID, "error", err)
		return res
	}
	if len(suggestions) > 0 {
		res += fmt.Sprintf(". Did you mean: %s?", strings.Join(suggestions, ", "))
	}
	return res
}

// newMessageHandler routes messages to appropriate handlers with a DiscordSession interface
// botUserID is the bot's user ID to prevent self-responses
func (b *Bot) newMessageHandler(session DiscordSession, message *discordgo.MessageCreate, botUserID string) {
	// Prevent bot from responding to its own messages
	if message.Author == nil || message.Author.ID == botUserID {
		return
	}
	if !strings.HasPrefix(message.Content, "$") {
		return
	}

	command, args := parseCommand(message.Content)

	// Route to appropriate handler
	switch command {
	case "$help":
		b.helpMessageHandler(session, message)

	case "$top":
		b.topScoreHandler(session, message, args)

	case "$recent":
		b.recentScoreHandler(session, message, args)

	case "$sessions":
		b.sessionsHandler(session, message, args)

	case "$leaderboard":
		b.leaderboardHandler(session, message, args)

	case "$trainer":
		b.trainerHandler(session, message, args)
	}
}
