package ratelimit

// Named actions, each with an independent counter budget. The action name
// is part of the counter key, so two actions never share a window.
const (
	// ActionGlobal is the outermost per-IP throttle across all routes.
	ActionGlobal = "global"

	// ActionAuth covers register and login attempts.
	ActionAuth = "auth"

	// ActionSocial covers like, follow and save actions.
	ActionSocial = "social"

	// ActionUpload covers proof-attachment uploads.
	ActionUpload = "upload"

	// ActionSearch covers search queries.
	ActionSearch = "search"

	// ActionComment covers comment submissions.
	ActionComment = "comment"

	// ActionPoolCreate covers pool/call creation.
	ActionPoolCreate = "pool_create"
)
