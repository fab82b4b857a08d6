/* models.go
 * This file contain the interfaces, constants and helper functions that are used by api consumers
 * Authors: Zachary Bower
 */

package api

import "context"

// Notifier provisions a user in the sibling service once they are attached to a trainer. external.Provisioner
// implements it
type Notifier interface {
	NotifyUserCreated(ctx context.Context, userID string) error
}

const (
	// DefaultTopScoresLimit is used when TopScoresAcrossUsers is called with limit <= 0
	DefaultTopScoresLimit = 10
	// DefaultSessionCount is used when LastNCprSessions is called with n <= 0
	DefaultSessionCount = 3
	// DefaultSuggestions is used when SuggestUserIDs is called with max <= 0
	DefaultSuggestions = 5
)
