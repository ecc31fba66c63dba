package api

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"
)

// sessionID tags every tracked action of one page session so the funnel
// analysis can stitch anonymous-to-identified journeys together.
var sessionID = uuid.NewString()

// Track fires an onboarding action event and forgets about it. An empty
// email means anonymous and the call is skipped entirely. The details map is
// augmented with a capture timestamp, the page the action happened on and the
// session id. Delivery failures are logged and never surface to the caller.
func (c *Client) Track(email, action, page string, details map[string]any) {
	if email == "" {
		return
	}

	merged := make(map[string]any, len(details)+3)
	for k, v := range details {
		merged[k] = v
	}
	merged["timestamp"] = time.Now().UTC().Format(time.RFC3339)
	merged["page"] = page
	merged["session_id"] = sessionID

	in := map[string]any{
		"email":   email,
		"action":  action,
		"details": merged,
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := c.post(ctx, "/onboarding/track-action", in, nil); err != nil {
			log.Printf("track action %q: %v", action, err)
		}
	}()
}
