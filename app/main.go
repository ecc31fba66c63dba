package main

import (
	"github.com/maxence-charriere/go-app/v10/pkg/app"

	"github.com/purebite/purebite/internal/api"
)

// backend is the shared gateway client. The serving binary proxies the API
// under the same origin, so the relative root works in the browser.
var backend = api.NewClient(api.DefaultBaseURL)

func main() {
	app.Route("/", func() app.Composer { return &HomeView{} })
	app.Route("/vote", func() app.Composer { return &VotingView{} })
	app.Route("/dashboard", func() app.Composer { return &DashboardView{} })
	app.RunWhenOnBrowser()
}
