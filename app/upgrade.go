package main

import (
	"fmt"

	"github.com/maxence-charriere/go-app/v10/pkg/app"

	"github.com/purebite/purebite/internal/api"
)

var premiumFeatures = []string{
	"Unlimited test result access",
	"Detailed lab parameters",
	"Unlimited voting",
	"Priority voting on new tests",
	"Expert Q&A sessions",
	"Early access to new features",
}

// UpgradeModal is the premium upsell dialog. The parent owns the flow; the
// modal only renders state and forwards the three actions.
type UpgradeModal struct {
	app.Compo

	Email   string
	Status  *api.SubscriptionStatus
	Prompts []api.UpgradePrompt
	Busy    bool

	OnClose      func(app.Context)
	OnStartTrial func(app.Context)
	OnUpgrade    func(app.Context)
}

func (m *UpgradeModal) Render() app.UI {
	title := "Upgrade to Premium"
	message := ""
	if p := api.PrimaryPrompt(m.Prompts); p != nil {
		title = p.Title
		message = p.Message
	}

	trialLabel := "Start 7-Day Free Trial"
	upgradeLabel := "Upgrade to Premium"
	if m.Busy {
		trialLabel = "Starting Trial..."
		upgradeLabel = "Processing..."
	}

	return app.Div().Class("modal-backdrop").Body(
		app.Div().Class("modal").Body(
			app.Div().Class("modal-head").Body(
				app.H2().Text(title),
				app.Button().
					Class("modal-close").
					Text("×").
					OnClick(func(ctx app.Context, e app.Event) { m.OnClose(ctx) }),
			),
			app.If(message != "", func() app.UI {
				return app.P().Class("modal-message").Text(message)
			}),

			app.If(m.Status != nil && !m.Status.IsPremium, func() app.UI {
				return app.Div().Class("current-plan").Body(
					app.H3().Text("Current Plan: Free"),
					renderUsageRow("Report Views", m.Status.UsageStats.ReportViews),
					renderUsageRow("Votes", m.Status.UsageStats.Votes),
				)
			}),

			app.Div().Class("features").Body(
				app.H3().Text("Premium Features"),
				app.Range(premiumFeatures).Slice(func(i int) app.UI {
					return app.Div().Class("feature").Body(
						app.Span().Class("check").Text("✓"),
						app.Span().Text(premiumFeatures[i]),
					)
				}),
			),

			app.Div().Class("pricing").Body(
				app.Div().Class("price").Text("₹99"),
				app.Div().Class("meta").Text("per month"),
				app.Div().Class("meta").Text("Cancel anytime"),
			),

			app.Div().Class("modal-actions").Body(
				app.If(m.Status != nil && m.Status.TrialAvailable, func() app.UI {
					return app.Button().
						Class("btn btn-primary btn-block").
						Disabled(m.Busy).
						Text(trialLabel).
						OnClick(func(ctx app.Context, e app.Event) { m.OnStartTrial(ctx) })
				}),
				app.Button().
					Class("btn btn-primary btn-block").
					Disabled(m.Busy).
					Text(upgradeLabel).
					OnClick(func(ctx app.Context, e app.Event) { m.OnUpgrade(ctx) }),
				app.Button().
					Class("btn btn-secondary btn-block").
					Text("Continue with Free Plan").
					OnClick(func(ctx app.Context, e app.Event) { m.OnClose(ctx) }),
			),
		),
	)
}

func renderUsageRow(label string, u api.Usage) app.UI {
	return app.Div().Class("usage-row").Body(
		app.Span().Text(label+":"),
		app.Span().Text(fmt.Sprintf("%d/%s", u.Used, u.Limit)),
	)
}
