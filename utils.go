/* utils.go
 * Utility functions used across the application
 * Authors: Zachary Bower
 */

package main

import (
	"fmt"
	"strings"
)

// parseBoolFlag converts a flag value of true or false into a boolean
// Preconditions: Receives the flag name and its value, which should be true or false (case insensitive)
// Postconditions: Returns boolean value or an error naming the flag if the value is not true or false
func parseBoolFlag(name string, value string) (bool, error) {
	value = strings.TrimSpace(value)
	value = strings.ToLower(value)

	if value == "true" {
		return true, nil
	} else if value == "false" {
		return false, nil
	}
	return false, fmt.Errorf("invalid -%s flag %q: should be true or false", name, value)
}
