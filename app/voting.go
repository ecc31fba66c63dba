package main

import (
	"context"
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/maxence-charriere/go-app/v10/pkg/app"

	"github.com/purebite/purebite/internal/funnel"
)

// VotingView renders the three-step voting wizard around a funnel instance.
// The wizard resets on every visit to the route; only the email survives, in
// localStorage.
type VotingView struct {
	app.Compo

	funnel     *funnel.Funnel
	email      string
	loaded     bool
	submitting bool
}

func (v *VotingView) OnMount(ctx app.Context) {
	v.reset(ctx)
}

func (v *VotingView) OnNav(ctx app.Context) {
	if v.funnel != nil && v.funnel.Step() == funnel.StepConfirmed {
		v.reset(ctx)
	}
}

func (v *VotingView) reset(ctx app.Context) {
	v.funnel = funnel.New(backend, emailStore{ctx}, pageTracker{ctx})
	v.email = cachedEmail(ctx)
	v.funnel.SetEmail(v.email)
	v.loaded = false
	v.submitting = false

	pageTracker{ctx}.Track(cachedEmail(ctx), "view_voting_page", nil)

	ctx.Async(func() {
		options, err := backend.VotingOptions(context.Background(), "voting")
		if err != nil {
			app.Log("voting options:", err)
		}
		ctx.Dispatch(func(ctx app.Context) {
			v.funnel.SetOptions(options)
			v.loaded = true
		})
	})
}

func (v *VotingView) onSelect(ctx app.Context, id string) {
	v.funnel.Select(id)
}

func (v *VotingView) onBack(ctx app.Context, e app.Event) {
	v.funnel.Back()
}

func (v *VotingView) onEmailInput(ctx app.Context, e app.Event) {
	v.email = ctx.JSSrc().Get("value").String()
}

func (v *VotingView) onSubmit(ctx app.Context, e app.Event) {
	e.PreventDefault()
	if v.submitting {
		return
	}
	v.submitting = true
	v.funnel.SetEmail(v.email)
	ctx.Async(func() {
		v.funnel.Submit(context.Background())
		ctx.Dispatch(func(ctx app.Context) {
			v.submitting = false
		})
	})
}

func (v *VotingView) onGoDashboard(ctx app.Context, e app.Event) {
	pageTracker{ctx}.Track(v.funnel.Email(), "navigate_to_dashboard", nil)
	ctx.Navigate(dashboardURL(v.funnel.Email()))
}

func (v *VotingView) onGoHome(ctx app.Context, e app.Event) {
	ctx.Navigate("/")
}

func (v *VotingView) Render() app.UI {
	if !v.loaded {
		return app.Div().Class("loading-overlay").Body(
			app.Div().Class("loading-spinner"),
			app.P().Text("Loading voting options..."),
		)
	}

	return app.Div().Class("voting-page").Body(
		app.H1().Text("Vote for Next Test"),
		app.P().Class("section-sub").Text("Which product should we test next? Your vote helps prioritize community testing."),
		v.renderProgress(),
		app.If(v.funnel.Step() == funnel.StepSelectProduct, func() app.UI {
			return v.renderSelect()
		}).ElseIf(v.funnel.Step() == funnel.StepEnterEmail, func() app.UI {
			return v.renderEmail()
		}).Else(func() app.UI {
			return v.renderConfirmed()
		}),
	)
}

func (v *VotingView) renderProgress() app.UI {
	dot := func(n int, step funnel.Step) app.UI {
		cls := "progress-dot"
		if v.funnel.Step() >= step {
			cls += " active"
		}
		return app.Div().Class(cls).Text(fmt.Sprintf("%d", n))
	}
	return app.Div().Class("wizard-progress").Body(
		dot(1, funnel.StepSelectProduct),
		dot(2, funnel.StepEnterEmail),
		dot(3, funnel.StepConfirmed),
	)
}

func (v *VotingView) renderSelect() app.UI {
	options := v.funnel.Options()
	if len(options) == 0 {
		return app.P().Class("empty").Text("No products are open for voting right now.")
	}

	return app.Div().Class("option-list").Body(
		app.H2().Text("Choose a product to test:"),
		app.Range(options).Slice(func(i int) app.UI {
			o := options[i]
			return app.Div().
				Class("option-card").
				OnClick(func(ctx app.Context, e app.Event) {
					v.onSelect(ctx, o.ID)
				}).
				Body(
					app.Div().Class("option-head").Body(
						app.H3().Text(o.ProductName),
						app.Span().Class("tag").Text(o.Category),
					),
					app.P().Text(o.Description),
					app.Div().Class("option-meta").Body(
						app.Span().Text(fmt.Sprintf("%s votes", humanize.Comma(int64(o.Votes)))),
						app.Span().Text(fmt.Sprintf("%.0f%% funded", o.FundingPercentage)),
						app.If(o.EstimatedTestDate != "", func() app.UI {
							return app.Span().Text("Est. " + o.EstimatedTestDate)
						}),
					),
					app.Div().Class("progress").Body(
						app.Div().Class("progress-fill").Style("width", fmt.Sprintf("%.0f%%", min(o.FundingPercentage, 100))),
					),
					app.Div().Class("meta").Text(fmt.Sprintf("₹%s/₹%s",
						humanize.Comma(int64(o.FundingRaised)),
						humanize.Comma(int64(o.FundingTarget)),
					)),
				)
		}),
	)
}

func (v *VotingView) renderEmail() app.UI {
	selected := v.funnel.Selected()
	canSubmit := funnel.ValidEmail(v.email) && !v.submitting

	submitLabel := "Vote Now"
	if v.submitting {
		submitLabel = "Voting..."
	}

	return app.Div().Class("email-step").Body(
		app.H2().Text("Cast Your Vote"),
		app.If(selected != nil, func() app.UI {
			return app.Div().Class("selected-summary").Body(
				app.H3().Text(selected.ProductName),
				app.P().Text(selected.Description),
			)
		}),
		app.Form().OnSubmit(v.onSubmit).Body(
			app.Label().For("email").Text("Email Address"),
			app.Input().
				ID("email").
				Type("email").
				Value(v.email).
				Placeholder("your@email.com").
				OnInput(v.onEmailInput),
			app.P().Class("hint").Text("We'll notify you when test results are ready"),
			app.If(v.funnel.ErrorMessage() != "", func() app.UI {
				return app.P().Class("error").Text(v.funnel.ErrorMessage())
			}),
			app.If(v.funnel.LimitReached(), func() app.UI {
				return app.P().Class("upgrade-nudge").Body(
					app.Text("Premium members vote without limits. "),
					app.A().Href(dashboardURL(v.email)).Text("See upgrade options"),
				)
			}),
			app.Div().Class("form-actions").Body(
				app.Button().
					Type("button").
					Class("btn btn-secondary").
					Text("Back").
					OnClick(v.onBack),
				app.Button().
					Type("submit").
					Class("btn btn-primary").
					Disabled(!canSubmit).
					Text(submitLabel),
			),
		),
		app.P().Class("hint").Text(fmt.Sprintf(
			"Join %s+ parents making food safer",
			humanize.Comma(int64(v.funnel.TotalVotes())),
		)),
	)
}

func (v *VotingView) renderConfirmed() app.UI {
	res := v.funnel.Result()
	if res == nil {
		return app.Div()
	}

	return app.Div().Class("confirm-step").Body(
		app.Div().Class("confirm-icon").Text("✓"),
		app.H2().Text("Vote Counted Successfully!"),
		app.Div().Class("confirm-box").Body(
			app.P().Text(fmt.Sprintf("Your vote for %s has been counted", res.ProductVoted)),
			app.P().Class("meta").Text(fmt.Sprintf("Total votes: %d", res.TotalVotes)),
		),
		app.If(res.IsNewUser, func() app.UI {
			return app.Div().Class("welcome-box").Body(
				app.H3().Text("Welcome to PureBite!"),
				app.P().Text(fmt.Sprintf("We'll notify you when %s test results are ready.", res.ProductVoted)),
			)
		}),
		app.Button().
			Class("btn btn-primary btn-block").
			Text("View Your Dashboard").
			OnClick(v.onGoDashboard),
		app.Button().
			Class("btn btn-secondary btn-block").
			Text("Back to Home").
			OnClick(v.onGoHome),
		app.If(res.VotesRemaining != nil && *res.VotesRemaining > 0, func() app.UI {
			return app.P().Class("hint").Text(fmt.Sprintf(
				"You have %d votes remaining this month", *res.VotesRemaining,
			))
		}),
	)
}
