package postservice

import (
	"fmt"
	"strings"
)

const wordsPerMinute = 200

// EstimateReadTime approximates a reading duration from the word count of
// content, rounded up to whole minutes. Never returns less than one minute.
func EstimateReadTime(content string) string {
	words := len(strings.Fields(content))

	minutes := (words + wordsPerMinute - 1) / wordsPerMinute
	if minutes < 1 {
		minutes = 1
	}

	return fmt.Sprintf("%d min read", minutes)
}
