package main

import (
	"github.com/maxence-charriere/go-app/v10/pkg/app"
)

// emailKey is the single durable client-side key: the last email the user
// voted with. Last writer wins; written only on a successful vote.
const emailKey = "userEmail"

func cachedEmail(ctx app.Context) string {
	var email string
	if err := ctx.LocalStorage().Get(emailKey, &email); err != nil {
		app.Log("email cache read:", err)
		return ""
	}
	return email
}

// emailStore adapts localStorage to the funnel's EmailStore interface.
type emailStore struct {
	ctx app.Context
}

func (s emailStore) SaveEmail(email string) error {
	return s.ctx.LocalStorage().Set(emailKey, email)
}

// pageTracker binds the analytics beacon to the page it fires from, so the
// location is explicit instead of read from ambient globals.
type pageTracker struct {
	ctx app.Context
}

func (t pageTracker) Track(email, action string, details map[string]any) {
	backend.Track(email, action, t.ctx.Page().URL().Path, details)
}
