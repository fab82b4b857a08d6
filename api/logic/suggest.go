/* suggest.go
 * Contains the logic for suggesting known user ids when a lookup misses
 * Authors: Zachary Bower
 */

package logic

import (
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// SuggestIDs fuzzy matches query against a list of known ids.
// Preconditions: Receives the id the user typed, the list of valid ids and the maximum number of suggestions
// Postconditions: Returns up to max ids ordered best match first. An exact (case insensitive) match is always first
func SuggestIDs(query string, ids []string, max int) []string {
	query = strings.TrimSpace(query)
	if query == "" || max <= 0 || len(ids) == 0 {
		return []string{}
	}

	ranks := fuzzy.RankFindFold(query, ids)
	sort.Sort(ranks)

	suggestions := make([]string, 0, max)
	for _, rank := range ranks {
		if strings.EqualFold(rank.Target, query) {
			suggestions = append([]string{rank.Target}, suggestions...)
		} else {
			suggestions = append(suggestions, rank.Target)
		}
	}

	if len(suggestions) > max {
		suggestions = suggestions[:max]
	}
	return suggestions
}
