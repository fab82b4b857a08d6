/* scores.go
 * Contains the logic for calculating a user's best and latest score, and for building the cross user top scores list
 * Authors: Zachary Bower
 */

package logic

import (
	"sort"

	"cpr-backend/api/store"
)

// MaxScore finds the highest score in a user's game results
// Preconditions: Receives slice of GameResult
// Postconditions: Returns the highest GameScore and true, or 0 and false if the slice is empty
func MaxScore(results []store.GameResult) (float64, bool) {
	if len(results) == 0 {
		return 0, false
	}
	best := results[0].GameScore
	for _, result := range results[1:] {
		if result.GameScore > best {
			best = result.GameScore
		}
	}
	return best, true
}

// Latest returns the most recently appended game result
// Preconditions: Receives slice of GameResult in append order
// Postconditions: Returns the last element and true, or a zero GameResult and false if the slice is empty
func Latest(results []store.GameResult) (store.GameResult, bool) {
	if len(results) == 0 {
		return store.GameResult{}, false
	}
	return results[len(results)-1], true
}

// RankGameEntries flattens every user's game results, sorts them by score descending and keeps the first limit.
// This mirrors the aggregation pipeline the store runs in the database, ties are broken oldest first
// Preconditions: Receives slice of UserRecord and limit
// Postconditions: Returns at most limit entries, a user can appear more than once
func RankGameEntries(users []store.UserRecord, limit int) []store.TopScore {
	entries := []store.TopScore{}
	if limit <= 0 {
		return entries
	}
	for _, user := range users {
		for _, result := range user.GameResults {
			entries = append(entries, store.TopScore{UserID: user.UserID, TopScore: result})
		}
	}

	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i].TopScore, entries[j].TopScore
		if a.GameScore != b.GameScore {
			return a.GameScore > b.GameScore
		}
		return a.CreatedAt.Before(b.CreatedAt)
	})

	if len(entries) > limit {
		entries = entries[:limit]
	}
	return entries
}

// FirstPerUser keeps only the first entry for each user, preserving order. Applied to a list sorted by score this
// leaves each user's highest entry, so the result can be shorter than the input
// Preconditions: Receives slice of TopScore
// Postconditions: Returns a new slice with no repeated UserID
func FirstPerUser(entries []store.TopScore) []store.TopScore {
	seen := make(map[string]bool, len(entries))
	out := make([]store.TopScore, 0, len(entries))
	for _, entry := range entries {
		if seen[entry.UserID] {
			continue
		}
		seen[entry.UserID] = true
		out = append(out, entry)
	}
	return out
}
