// Package api is the typed gateway to the PureBite backend. Every method
// wraps exactly one REST call, decodes the {success, message, data} envelope
// into an explicit schema and classifies rejections into typed errors.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// DefaultBaseURL is the same-origin API root the serving binary proxies.
const DefaultBaseURL = "/api/v2"

type Client struct {
	base string
	http *http.Client
}

func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		base: baseURL,
		http: &http.Client{Timeout: 10 * time.Second},
	}
}

// do issues one call and decodes the envelope's data field into out.
// out may be nil when the caller only cares about success.
func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("api: marshal %s %s: %w", method, path, err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base+path, body)
	if err != nil {
		return fmt.Errorf("api: build %s %s: %w", method, path, err)
	}
	req.Header.Set("Content-Type", "application/json")

	log.Printf("api request: %s %s", method, path)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("api: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("api: read %s %s: %w", method, path, err)
	}

	log.Printf("api response: %d %s", resp.StatusCode, path)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return classify(resp.StatusCode, raw)
	}
	if out == nil {
		return nil
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return fmt.Errorf("api: decode %s %s: %w", method, path, err)
	}
	if !env.Success {
		return &StatusError{Status: resp.StatusCode, Detail: env.Message}
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("api: decode %s %s data: %w", method, path, err)
	}
	return nil
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) post(ctx context.Context, path string, in, out any) error {
	return c.do(ctx, http.MethodPost, path, in, out)
}

// Samples

func (c *Client) FeaturedReports(ctx context.Context) ([]FeaturedReport, error) {
	var d featuredReportsData
	if err := c.get(ctx, "/samples/featured", &d); err != nil {
		return nil, err
	}
	return d.FeaturedReports, nil
}

func (c *Client) SampleReports(ctx context.Context, f ReportFilter) ([]SampleReport, error) {
	q := url.Values{}
	if f.Category != "" {
		q.Set("category", f.Category)
	}
	if f.Status != "" {
		q.Set("status", f.Status)
	}
	if f.Page > 0 {
		q.Set("page", strconv.Itoa(f.Page))
	}
	if f.PerPage > 0 {
		q.Set("per_page", strconv.Itoa(f.PerPage))
	}
	path := "/samples/reports"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}
	var d sampleReportsData
	if err := c.get(ctx, path, &d); err != nil {
		return nil, err
	}
	return d.Reports, nil
}

func (c *Client) ReportDetail(ctx context.Context, reportID string) (*SampleReport, error) {
	var r SampleReport
	if err := c.get(ctx, "/samples/reports/"+url.PathEscape(reportID), &r); err != nil {
		return nil, err
	}
	return &r, nil
}

func (c *Client) Categories(ctx context.Context) ([]string, error) {
	var d categoriesData
	if err := c.get(ctx, "/samples/categories", &d); err != nil {
		return nil, err
	}
	return d.Categories, nil
}

func (c *Client) SampleStats(ctx context.Context) (*SampleStats, error) {
	var s SampleStats
	if err := c.get(ctx, "/samples/stats", &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// Voting

func (c *Client) VotingOptions(ctx context.Context, status string) ([]VotingOption, error) {
	if status == "" {
		status = "voting"
	}
	var d votingOptionsData
	if err := c.get(ctx, "/voting/options?status="+url.QueryEscape(status), &d); err != nil {
		return nil, err
	}
	return d.VotingOptions, nil
}

func (c *Client) CastVote(ctx context.Context, email, optionID string) (*VoteResult, error) {
	in := map[string]string{
		"email":            email,
		"voting_option_id": optionID,
	}
	var r VoteResult
	if err := c.post(ctx, "/voting/cast-vote", in, &r); err != nil {
		return nil, err
	}
	return &r, nil
}

func (c *Client) UserVotes(ctx context.Context, email string) (*UserVotes, error) {
	var v UserVotes
	if err := c.get(ctx, "/voting/user-votes/"+url.PathEscape(email), &v); err != nil {
		return nil, err
	}
	return &v, nil
}

func (c *Client) VotingStats(ctx context.Context) (*VotingStats, error) {
	var s VotingStats
	if err := c.get(ctx, "/voting/stats", &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// Users

func (c *Client) Dashboard(ctx context.Context, email string) (*DashboardSnapshot, error) {
	var d DashboardSnapshot
	if err := c.get(ctx, "/users/dashboard/"+url.PathEscape(email), &d); err != nil {
		return nil, err
	}
	return &d, nil
}

func (c *Client) CompleteProfile(ctx context.Context, email string, p ProfileCompletion) error {
	return c.post(ctx, "/users/complete-profile/"+url.PathEscape(email), p, nil)
}

// TrackReportView records a report view against the user's free-tier quota.
// A quota overrun comes back as *LimitReachedError.
func (c *Client) TrackReportView(ctx context.Context, email, reportID string) (*ReportView, error) {
	in := map[string]string{"report_id": reportID}
	var v ReportView
	if err := c.post(ctx, "/users/track-report-view/"+url.PathEscape(email), in, &v); err != nil {
		return nil, err
	}
	return &v, nil
}

func (c *Client) Profile(ctx context.Context, email string) (*Profile, error) {
	var p Profile
	if err := c.get(ctx, "/users/profile/"+url.PathEscape(email), &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *Client) CommunityStats(ctx context.Context) (*CommunityStats, error) {
	var s CommunityStats
	if err := c.get(ctx, "/users/community-stats", &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// Subscriptions

func (c *Client) Tiers(ctx context.Context) ([]Tier, error) {
	var d tiersData
	if err := c.get(ctx, "/subscriptions/tiers", &d); err != nil {
		return nil, err
	}
	return d.Tiers, nil
}

func (c *Client) StartTrial(ctx context.Context, email string) (*TrialActivation, error) {
	in := map[string]string{"email": email}
	var t TrialActivation
	if err := c.post(ctx, "/subscriptions/start-trial", in, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

func (c *Client) SubscriptionStatus(ctx context.Context, email string) (*SubscriptionStatus, error) {
	var s SubscriptionStatus
	if err := c.get(ctx, "/subscriptions/status/"+url.PathEscape(email), &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (c *Client) CreatePaymentOrder(ctx context.Context, email, tierID string) (*PaymentOrder, error) {
	in := map[string]string{"email": email, "tier_id": tierID}
	var o PaymentOrder
	if err := c.post(ctx, "/subscriptions/create-payment-order", in, &o); err != nil {
		return nil, err
	}
	return &o, nil
}

func (c *Client) VerifyPayment(ctx context.Context, orderID, paymentID, signature string) (*PaymentConfirmation, error) {
	in := map[string]string{
		"order_id":   orderID,
		"payment_id": paymentID,
		"signature":  signature,
	}
	var p PaymentConfirmation
	if err := c.post(ctx, "/subscriptions/verify-payment", in, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *Client) UpgradePrompts(ctx context.Context, email string) ([]UpgradePrompt, error) {
	var d upgradePromptsData
	if err := c.get(ctx, "/subscriptions/upgrade-prompts/"+url.PathEscape(email), &d); err != nil {
		return nil, err
	}
	return d.Prompts, nil
}

// Onboarding

func (c *Client) CompleteOnboarding(ctx context.Context, email string) error {
	in := map[string]string{"email": email}
	return c.post(ctx, "/onboarding/complete-onboarding", in, nil)
}

// FunnelStats is admin-only; no end-user view consumes it.
func (c *Client) FunnelStats(ctx context.Context) (*FunnelStats, error) {
	var s FunnelStats
	if err := c.get(ctx, "/onboarding/funnel-stats", &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// UserJourney is admin-only; no end-user view consumes it.
func (c *Client) UserJourney(ctx context.Context, email string) (*UserJourney, error) {
	var j UserJourney
	if err := c.get(ctx, "/onboarding/user-journey/"+url.PathEscape(email), &j); err != nil {
		return nil, err
	}
	return &j, nil
}
