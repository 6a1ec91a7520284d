package projection

import (
	"strings"

	rake "github.com/afjoseph/RAKE.Go"
)

// SuggestTopics extracts candidate topic tags from a task's title and
// description. Used when drafting a task record; never applied to records
// we merely consume.
func SuggestTopics(title, description string, max int) (topics []string) {
	candidates := rake.RunRake(title + ". " + description)
	for _, candidate := range candidates {
		if candidate.Value > 4 {
			if len(candidate.Key) < 30 && !strings.Contains(candidate.Key, " ") {
				topics = append(topics, candidate.Key)
			}
		}
		if len(topics) >= max {
			return
		}
	}
	return
}
