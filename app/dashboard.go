package main

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"github.com/dustin/go-humanize"
	"github.com/maxence-charriere/go-app/v10/pkg/app"

	"github.com/purebite/purebite/internal/api"
	"github.com/purebite/purebite/internal/payment"
)

// dashboardURL builds the dashboard route with the email passed explicitly,
// so a fresh browser (empty cache) still lands on the right account.
func dashboardURL(email string) string {
	if email == "" {
		return "/dashboard"
	}
	return "/dashboard?email=" + url.QueryEscape(email)
}

// resolveEmail picks the dashboard identity: the query value wins, then the
// durable cache. Empty means there is nothing to show; the dashboard has no
// anonymous view.
func resolveEmail(query url.Values, cached string) string {
	if email := query.Get("email"); email != "" {
		return email
	}
	return cached
}

// DashboardView aggregates the per-user snapshot, subscription status and
// upgrade prompts into one screen, and owns the premium upgrade side flow.
type DashboardView struct {
	app.Compo

	email       string
	data        *api.DashboardData
	loading     bool
	loadFailed  bool
	showUpgrade bool
	upgradeBusy bool
	notice      string
	profileName string

	gateway payment.Gateway
}

func (d *DashboardView) OnMount(ctx app.Context) {
	d.gateway = payment.Simulated{}
	d.loading = true

	d.email = resolveEmail(ctx.Page().URL().Query(), cachedEmail(ctx))
	if d.email == "" {
		ctx.Navigate("/")
		return
	}

	pageTracker{ctx}.Track(d.email, "view_dashboard", nil)
	d.load(ctx)
}

// load fetches the full dashboard bundle. It is also the post-action
// consistency mechanism: anything that could change the snapshot re-runs it
// instead of patching counters locally.
func (d *DashboardView) load(ctx app.Context) {
	ctx.Async(func() {
		data, err := backend.DashboardData(context.Background(), d.email)
		ctx.Dispatch(func(ctx app.Context) {
			d.loading = false
			if err != nil {
				d.applyLoadError(ctx, err)
				return
			}
			d.data = data
			d.loadFailed = false
			if data.Dashboard.UpgradePrompt.Show {
				d.showUpgrade = true
			}
		})
	})
}

func (d *DashboardView) applyLoadError(ctx app.Context, err error) {
	var limit *api.LimitReachedError
	if errors.As(err, &limit) {
		d.showUpgrade = true
		return
	}
	var se *api.StatusError
	if errors.As(err, &se) && se.Status == 404 {
		// Unknown user: nothing to show here.
		ctx.Navigate("/")
		return
	}
	app.Log("dashboard load:", err)
	d.loadFailed = true
}

func (d *DashboardView) onOpenUpgrade(ctx app.Context, e app.Event) {
	d.showUpgrade = true
}

func (d *DashboardView) onCloseUpgrade(ctx app.Context) {
	d.showUpgrade = false
}

func (d *DashboardView) onStartTrial(ctx app.Context) {
	if d.upgradeBusy {
		return
	}
	d.upgradeBusy = true
	ctx.Async(func() {
		_, err := backend.StartTrial(context.Background(), d.email)
		ctx.Dispatch(func(ctx app.Context) {
			d.upgradeBusy = false
			if err != nil {
				d.notice = trialFailureNotice(err)
				return
			}
			pageTracker{ctx}.Track(d.email, "start_trial", nil)
			d.showUpgrade = false
			d.notice = "Premium trial started! You now have unlimited access for 7 days."
			d.loading = true
			d.load(ctx)
		})
	})
}

func trialFailureNotice(err error) string {
	var se *api.StatusError
	if errors.As(err, &se) && se.Detail != "" {
		return se.Detail
	}
	return "Failed to start trial"
}

func (d *DashboardView) onUpgrade(ctx app.Context) {
	if d.upgradeBusy {
		return
	}
	d.upgradeBusy = true
	pageTracker{ctx}.Track(d.email, "initiate_payment", nil)
	ctx.Async(func() {
		_, err := payment.Upgrade(context.Background(), backend, d.gateway, d.email, "premium")
		ctx.Dispatch(func(ctx app.Context) {
			d.upgradeBusy = false
			switch {
			case errors.Is(err, payment.ErrVerification):
				d.notice = "Payment verification failed. Please contact support."
			case err != nil:
				app.Log("payment:", err)
				d.notice = "Failed to initiate payment. Please try again."
			default:
				pageTracker{ctx}.Track(d.email, "complete_payment", nil)
				d.showUpgrade = false
				d.notice = "Payment successful! Premium features activated."
				d.loading = true
				d.load(ctx)
			}
		})
	})
}

func (d *DashboardView) onVoteMore(ctx app.Context, e app.Event) {
	pageTracker{ctx}.Track(d.email, "navigate_to_voting", nil)
	ctx.Navigate("/vote")
}

func (d *DashboardView) onDismissNotice(ctx app.Context, e app.Event) {
	d.notice = ""
}

func (d *DashboardView) Render() app.UI {
	if d.loading {
		return app.Div().Class("loading-overlay").Body(
			app.Div().Class("loading-spinner"),
			app.P().Text("Loading your dashboard..."),
		)
	}

	if d.loadFailed || d.data == nil {
		// The limit classification arrives without a snapshot; the upgrade
		// modal must still open here, not only on the data-present path.
		return app.Div().Class("load-failed").Body(
			app.H2().Text("Dashboard not found"),
			app.Button().
				Class("btn btn-primary").
				Text("Go to Home").
				OnClick(func(ctx app.Context, e app.Event) { ctx.Navigate("/") }),
			app.If(d.showUpgrade, func() app.UI {
				return &UpgradeModal{
					Email:        d.email,
					Busy:         d.upgradeBusy,
					OnClose:      d.onCloseUpgrade,
					OnStartTrial: d.onStartTrial,
					OnUpgrade:    d.onUpgrade,
				}
			}),
		)
	}

	snap := d.data.Dashboard
	status := d.data.Status

	return app.Div().Class("dashboard").Body(
		app.If(d.notice != "", func() app.UI {
			return app.Div().Class("notice").Body(
				app.Span().Text(d.notice),
				app.Button().Class("notice-close").Text("×").OnClick(d.onDismissNotice),
			)
		}),

		app.Div().Class("dash-header").Body(
			app.Div().Body(
				app.H1().Text(welcomeLine(snap.UserInfo.Name)),
				app.P().Class("meta").Text("Member since "+snap.UserInfo.MemberSince.Format("Jan 2, 2006")),
			),
			app.If(status != nil && status.IsPremium, func() app.UI {
				label := "Premium Member"
				if status.DaysRemaining > 0 {
					label = fmt.Sprintf("Premium Member · %d days remaining", status.DaysRemaining)
				}
				return app.Div().Class("premium-badge").Text(label)
			}).Else(func() app.UI {
				return app.Button().
					Class("btn btn-primary").
					Text("Upgrade to Premium").
					OnClick(d.onOpenUpgrade)
			}),
		),

		d.renderStats(snap),
		app.If(!snap.Stats.IsPremium, func() app.UI {
			return d.renderLimits(snap)
		}),
		app.Div().Class("dash-columns").Body(
			d.renderVotes(snap),
			d.renderActivity(snap),
		),
		app.If(snap.UserInfo.Name == "", func() app.UI {
			return d.renderProfileNudge()
		}),

		app.If(d.showUpgrade, func() app.UI {
			return &UpgradeModal{
				Email:        d.email,
				Status:       d.data.Status,
				Prompts:      d.data.Prompts,
				Busy:         d.upgradeBusy,
				OnClose:      d.onCloseUpgrade,
				OnStartTrial: d.onStartTrial,
				OnUpgrade:    d.onUpgrade,
			}
		}),
	)
}

func welcomeLine(name string) string {
	if name == "" {
		return "Welcome!"
	}
	return "Welcome, " + name + "!"
}

func (d *DashboardView) renderStats(snap *api.DashboardSnapshot) app.UI {
	viewsLeft := humanize.Comma(int64(snap.Stats.ReportViewsRemaining))
	if snap.Stats.IsPremium {
		viewsLeft = "∞"
	}
	return app.Div().Class("stat-cards").Body(
		renderStat(humanize.Comma(int64(snap.Stats.VotesCast)), "Votes Cast"),
		renderStat(humanize.Comma(int64(snap.Stats.TestsInfluenced)), "Tests Influenced"),
		renderStat(humanize.Comma(int64(snap.Stats.CommunityImpact)), "Parents Helped"),
		renderStat(viewsLeft, "Report Views Left"),
	)
}

func (d *DashboardView) renderLimits(snap *api.DashboardSnapshot) app.UI {
	return app.Div().Class("limits-card").Body(
		app.H2().Text("Your Usage This Month"),
		renderLimitBar("Report Views", snap.Limits.ReportViews),
		renderLimitBar("Votes", snap.Limits.Votes),
		app.If(snap.Limits.ReportViews.Remaining == 0 || snap.Limits.Votes.Remaining == 0, func() app.UI {
			return app.Div().Class("limit-warning").Body(
				app.P().Text("You've reached your free limits! Upgrade to Premium for unlimited access."),
				app.Button().
					Class("btn btn-warning").
					Text("Upgrade Now").
					OnClick(d.onOpenUpgrade),
			)
		}),
	)
}

func renderLimitBar(label string, u api.LimitUsage) app.UI {
	cls := "progress-fill"
	switch {
	case u.Remaining == 0:
		cls += " danger"
	case u.Remaining <= 1:
		cls += " warning"
	}
	pct := 0.0
	if u.Limit > 0 {
		pct = float64(u.Used) / float64(u.Limit) * 100
	}
	return app.Div().Class("limit-bar").Body(
		app.Div().Class("limit-label").Body(
			app.Span().Text(label),
			app.Span().Class("meta").Text(fmt.Sprintf("%d/%d", u.Used, u.Limit)),
		),
		app.Div().Class("progress").Body(
			app.Div().Class(cls).Style("width", fmt.Sprintf("%.0f%%", pct)),
		),
	)
}

func (d *DashboardView) renderVotes(snap *api.DashboardSnapshot) app.UI {
	return app.Div().Class("panel").Body(
		app.Div().Class("panel-head").Body(
			app.H2().Text("Your Votes"),
			app.Button().Class("btn btn-link").Text("Vote More →").OnClick(d.onVoteMore),
		),
		app.If(len(snap.RecentVotes) == 0, func() app.UI {
			return app.Div().Class("empty").Body(
				app.P().Text("You haven't voted yet"),
				app.Button().
					Class("btn btn-primary").
					Text("Cast Your First Vote").
					OnClick(d.onVoteMore),
			)
		}).Else(func() app.UI {
			return app.Range(snap.RecentVotes).Slice(func(i int) app.UI {
				v := snap.RecentVotes[i]
				return app.Div().Class("vote-row").Body(
					app.Div().Body(
						app.H3().Text(v.ProductName),
						app.P().Class("meta").Text(fmt.Sprintf("%d total votes", v.Votes)),
					),
					app.Div().Class("vote-status").Body(
						app.Span().Class("tag tag-"+v.Status).Text(v.Status),
						app.Span().Class("meta").Text(fmt.Sprintf("%.0f%% funded", v.FundingProgress)),
					),
				)
			})
		}),
	)
}

func (d *DashboardView) renderActivity(snap *api.DashboardSnapshot) app.UI {
	return app.Div().Class("panel").Body(
		app.H2().Text("Community Activity"),
		app.Range(snap.RecentActivity).Slice(func(i int) app.UI {
			a := snap.RecentActivity[i]
			return app.Div().Class("activity-row").Body(
				app.P().Text(a.Message),
				app.P().Class("meta").Text(a.Timestamp.Format("Jan 2, 2006")),
			)
		}),
	)
}

func (d *DashboardView) onProfileNameInput(ctx app.Context, e app.Event) {
	d.profileName = ctx.JSSrc().Get("value").String()
}

func (d *DashboardView) onCompleteProfile(ctx app.Context, e app.Event) {
	e.PreventDefault()
	name := d.profileName
	if name == "" {
		return
	}
	ctx.Async(func() {
		err := backend.CompleteProfile(context.Background(), d.email, api.ProfileCompletion{Name: name})
		ctx.Dispatch(func(ctx app.Context) {
			if err != nil {
				app.Log("complete profile:", err)
				d.notice = "Could not save your profile. Please try again."
				return
			}
			pageTracker{ctx}.Track(d.email, "complete_profile", map[string]any{"has_name": true})
			d.notice = "Profile completed!"
			d.loading = true
			d.load(ctx)
		})
	})
}

func (d *DashboardView) renderProfileNudge() app.UI {
	return app.Div().Class("profile-nudge").Body(
		app.Div().Body(
			app.H3().Text("Complete Your Profile"),
			app.P().Text("Add your name and get personalized recommendations"),
		),
		app.Form().OnSubmit(d.onCompleteProfile).Body(
			app.Input().
				Type("text").
				Placeholder("Your name").
				Value(d.profileName).
				OnInput(d.onProfileNameInput),
			app.Button().
				Type("submit").
				Class("btn btn-primary").
				Text("Complete Profile"),
		),
	)
}
