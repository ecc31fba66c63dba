package main

import (
	"context"
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/maxence-charriere/go-app/v10/pkg/app"

	"github.com/purebite/purebite/internal/api"
)

// HomeView is the marketing landing page: hero, featured lab reports, the
// how-it-works section with a live voting snippet and community stats. Every
// section renders from whatever data arrived; partial failures degrade to
// defaults instead of blanking the page.
type HomeView struct {
	app.Compo

	data   api.HomeData
	loaded bool
}

func (h *HomeView) OnMount(ctx app.Context) {
	pageTracker{ctx}.Track(cachedEmail(ctx), "view_homepage", nil)
	ctx.Async(func() {
		data := backend.HomeData(context.Background())
		ctx.Dispatch(func(ctx app.Context) {
			h.data = data
			h.loaded = true
		})
	})
}

func (h *HomeView) onVoteClick(ctx app.Context, e app.Event) {
	pageTracker{ctx}.Track(cachedEmail(ctx), "initiate_voting", nil)
	ctx.Navigate("/vote")
}

func (h *HomeView) onDashboardClick(ctx app.Context, e app.Event) {
	ctx.Navigate("/dashboard")
}

func (h *HomeView) Render() app.UI {
	if !h.loaded {
		return app.Div().Class("loading-overlay").Body(
			app.Div().Class("loading-spinner"),
		)
	}

	members := h.data.Community.TotalMembers
	memberLine := "10,000+"
	if members > 0 {
		memberLine = humanize.Comma(int64(members))
	}

	return app.Div().Class("home").Body(
		app.Section().Class("hero").Body(
			app.H1().Text("India's First Parent-Led Food Testing Community"),
			app.P().Class("hero-sub").Text(fmt.Sprintf(
				"Get real lab results on everyday food products. Join %s parents making food safer for our children.",
				memberLine,
			)),
			app.Button().
				Class("btn btn-primary btn-lg").
				Text("Vote for Next Test").
				OnClick(h.onVoteClick),
		),

		app.Section().Class("featured-reports").Body(
			app.H2().Text("Sample Test Results"),
			app.P().Class("section-sub").Text("These are real lab results funded by parents like you"),
			app.If(len(h.data.Featured) == 0, func() app.UI {
				return app.P().Class("empty").Text("Reports are on their way.")
			}).Else(func() app.UI {
				return app.Div().Class("report-grid").Body(
					app.Range(h.data.Featured).Slice(func(i int) app.UI {
						return h.renderReport(h.data.Featured[i])
					}),
				)
			}),
		),

		app.Section().Class("how-it-works").Body(
			app.H2().Text("How It Works"),
			app.Div().Class("steps").Body(
				renderStep("1", "Parents Vote", "Choose products to test"),
				renderStep("2", "We Fund Tests", "Community funds lab testing"),
				renderStep("3", "Get Results", "Transparent lab reports"),
			),
			app.If(len(h.data.Options) > 0, func() app.UI {
				options := h.data.Options
				if len(options) > 2 {
					options = options[:2]
				}
				return app.Div().Class("current-voting").Body(
					app.H3().Text("Current Voting:"),
					app.Range(options).Slice(func(i int) app.UI {
						return h.renderVotingTeaser(options[i])
					}),
				)
			}),
		),

		app.Section().Class("social-proof").Body(
			app.H2().Text(fmt.Sprintf("Join %s Parents Making Food Safer", memberLine)),
			app.Div().Class("stat-row").Body(
				renderStat(humanize.Comma(int64(h.data.Community.CompletedTests)), "Products Tested"),
				renderStat(humanize.Comma(int64(h.data.Community.TotalVotesCast)), "Votes Cast"),
				renderStat(humanize.Comma(int64(h.data.Community.ActiveVotingOptions)), "Active Votes"),
			),
			app.Button().
				Class("btn btn-light").
				Text("Start Voting Now").
				OnClick(h.onVoteClick),
			app.Button().
				Class("btn btn-link").
				Text("Your Dashboard").
				OnClick(h.onDashboardClick),
		),
	)
}

func (h *HomeView) renderReport(r api.FeaturedReport) app.UI {
	badge := "badge badge-safe"
	switch r.SafetyStatus {
	case "Caution":
		badge = "badge badge-caution"
	case "Unsafe":
		badge = "badge badge-unsafe"
	}

	return app.Div().Class("report-card").Body(
		app.Div().Class("report-head").Body(
			app.H3().Text(r.ProductName),
			app.Span().Class(badge).Text(r.SafetyStatus),
		),
		app.Div().Class("purity").Body(
			app.Span().Text("Purity Score"),
			app.Span().Class("purity-score").Text(fmt.Sprintf("%.1f/10", r.PurityScore)),
		),
		app.Div().Class("progress").Body(
			app.Div().Class("progress-fill").Style("width", fmt.Sprintf("%.0f%%", r.PurityScore*10)),
		),
		app.P().Class("finding").Text(r.KeyFinding),
		app.P().Class("meta").Text(fmt.Sprintf("Brand: %s • Category: %s", r.Brand, r.Category)),
	)
}

func (h *HomeView) renderVotingTeaser(o api.VotingOption) app.UI {
	return app.Div().Class("voting-teaser").Body(
		app.Div().Body(
			app.H4().Text(o.ProductName),
			app.P().Class("meta").Text(fmt.Sprintf("%s votes", humanize.Comma(int64(o.Votes)))),
		),
		app.Div().Class("funding").Body(
			app.Span().Text(fmt.Sprintf("₹%s/₹%s funded",
				humanize.Comma(int64(o.FundingRaised)),
				humanize.Comma(int64(o.FundingTarget)),
			)),
			app.Div().Class("progress").Body(
				app.Div().Class("progress-fill").Style("width", fmt.Sprintf("%.0f%%", min(o.FundingPercentage, 100))),
			),
		),
	)
}

func renderStep(n, title, sub string) app.UI {
	return app.Div().Class("step").Body(
		app.Div().Class("step-number").Text(n),
		app.H3().Text(title),
		app.P().Text(sub),
	)
}

func renderStat(value, label string) app.UI {
	return app.Div().Class("stat").Body(
		app.Div().Class("stat-value").Text(value),
		app.Div().Class("stat-label").Text(label),
	)
}
