package cache

import (
	"fmt"
	"net/url"
	"sort"
	"strings"
)

// Cache keys are built in one place so the write-side invalidation lists
// cannot drift from the read-side key derivation.

// KeyPrompt is the detail-entry key for one prompt.
func KeyPrompt(id string) string {
	return "cache:prompt:" + id
}

// KeyUser is the profile-entry key for one user.
func KeyUser(userID int64) string {
	return fmt.Sprintf("cache:user:%d", userID)
}

// KeyRequest derives the read-through key for a GET request from its path
// and query string. Query parameters are sorted so semantically identical
// URLs share an entry regardless of parameter order. A non-zero principal
// namespaces the entry, keeping personalized responses (e.g. listings that
// include the viewer's own private prompts) out of the shared entry.
func KeyRequest(path string, query url.Values, principal int64) string {
	var b strings.Builder
	b.WriteString("cache:resp:")
	b.WriteString(path)

	if len(query) > 0 {
		params := make([]string, 0, len(query))
		for name, values := range query {
			for _, value := range values {
				params = append(params, name+"="+value)
			}
		}
		sort.Strings(params)
		b.WriteString("?")
		b.WriteString(strings.Join(params, "&"))
	}

	if principal != 0 {
		fmt.Fprintf(&b, "|u:%d", principal)
	}

	return b.String()
}

// Invalidation patterns. Broad by design: a prompt mutation drops every
// cached listing page rather than hunting for the ones it appears on.
const (
	// PatternPromptLists matches every cached listing and search response.
	PatternPromptLists = "cache:resp:/api/prompts*"

	// PatternPrompts matches every prompt detail entry.
	PatternPrompts = "cache:prompt:*"

	// PatternUsers matches every cached user profile entry.
	PatternUsers = "cache:user:*"
)
