package config

import "time"

// defaultLimits are the production budgets applied wherever the operator
// has not overridden a named limit.
var defaultLimits = map[string]LimitConfig{
	"global":      {Max: 1000, Window: 15 * time.Minute},
	"auth":        {Max: 5, Window: 15 * time.Minute},
	"social":      {Max: 30, Window: time.Minute},
	"upload":      {Max: 50, Window: time.Hour},
	"search":      {Max: 60, Window: time.Minute},
	"comment":     {Max: 10, Window: 5 * time.Minute},
	"pool_create": {Max: 5, Window: time.Hour},
}

// applyDefaults fills every zero-valued named limit with its production
// default. Explicit operator overrides are left untouched.
func (l *Limits) applyDefaults() {
	fill := func(dst *LimitConfig, name string) {
		def := defaultLimits[name]
		if dst.Max == 0 {
			dst.Max = def.Max
		}
		if dst.Window == 0 {
			dst.Window = def.Window
		}
	}

	fill(&l.GlobalIP, "global")
	fill(&l.Auth, "auth")
	fill(&l.Social, "social")
	fill(&l.Upload, "upload")
	fill(&l.Search, "search")
	fill(&l.Comment, "comment")
	fill(&l.PoolCreate, "pool_create")

	if l.PromptCreationCap == 0 {
		l.PromptCreationCap = 3
	}
	if l.PromptCreationLookback == 0 {
		l.PromptCreationLookback = 12 * time.Hour
	}
}
