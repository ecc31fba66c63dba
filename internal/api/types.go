package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// envelope is the response wrapper every backend endpoint uses.
type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// Limit is a usage cap that the backend reports either as a number or as
// the string "unlimited" for premium users.
type Limit struct {
	Unlimited bool
	N         int
}

func (l *Limit) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		if s != "unlimited" {
			return fmt.Errorf("unexpected limit value %q", s)
		}
		l.Unlimited = true
		l.N = 0
		return nil
	}
	l.Unlimited = false
	return json.Unmarshal(b, &l.N)
}

func (l Limit) MarshalJSON() ([]byte, error) {
	if l.Unlimited {
		return json.Marshal("unlimited")
	}
	return json.Marshal(l.N)
}

func (l Limit) String() string {
	if l.Unlimited {
		return "unlimited"
	}
	return fmt.Sprintf("%d", l.N)
}

// VotingOption is a candidate product open for community voting.
type VotingOption struct {
	ID                string  `json:"id"`
	ProductName       string  `json:"product_name"`
	Category          string  `json:"category"`
	Description       string  `json:"description"`
	Votes             int     `json:"votes"`
	FundingRaised     int     `json:"funding_raised"`
	FundingTarget     int     `json:"funding_target"`
	FundingPercentage float64 `json:"funding_percentage"`
	EstimatedTestDate string  `json:"estimated_test_date,omitempty"`
	Status            string  `json:"status"`
}

type votingOptionsData struct {
	VotingOptions []VotingOption `json:"voting_options"`
	Total         int            `json:"total"`
}

// VoteResult is the outcome of a successful cast-vote call.
type VoteResult struct {
	UserID         string `json:"user_id"`
	Email          string `json:"email"`
	ProductVoted   string `json:"product_voted"`
	TotalVotes     int    `json:"total_votes"`
	IsNewUser      bool   `json:"is_new_user"`
	VotesRemaining *int   `json:"votes_remaining,omitempty"`
}

// VoteHistoryEntry is one row of a user's voting history.
type VoteHistoryEntry struct {
	ID                string  `json:"id"`
	ProductName       string  `json:"product_name"`
	Category          string  `json:"category"`
	CurrentVotes      int     `json:"current_votes"`
	FundingProgress   float64 `json:"funding_progress"`
	Status            string  `json:"status"`
	EstimatedTestDate string  `json:"estimated_test_date,omitempty"`
}

// UserVotes is a user's history plus aggregate stats.
type UserVotes struct {
	VotesHistory []VoteHistoryEntry `json:"votes_history"`
	UserStats    struct {
		TotalVotesCast int  `json:"total_votes_cast"`
		VotesRemaining int  `json:"votes_remaining"`
		IsPremium      bool `json:"is_premium"`
	} `json:"user_stats"`
}

// VotingStats is the community-wide voting aggregate.
type VotingStats struct {
	TotalVotes            int     `json:"total_votes"`
	TotalFundingRaised    int     `json:"total_funding_raised"`
	ActiveVotingOptions   int     `json:"active_voting_options"`
	UniqueVoters          int     `json:"unique_voters"`
	AverageVotesPerOption float64 `json:"average_votes_per_option"`
}

// FeaturedReport is a published lab result shown on the home page.
type FeaturedReport struct {
	ID           string  `json:"id"`
	ProductName  string  `json:"product_name"`
	Brand        string  `json:"brand"`
	Category     string  `json:"category"`
	PurityScore  float64 `json:"purity_score"`
	SafetyStatus string  `json:"safety_status"`
	KeyFinding   string  `json:"key_finding"`
}

type featuredReportsData struct {
	FeaturedReports []FeaturedReport `json:"featured_reports"`
	Total           int              `json:"total"`
}

// SampleReport is a full lab report record.
type SampleReport struct {
	ID           string   `json:"id"`
	ProductName  string   `json:"product_name"`
	Brand        string   `json:"brand"`
	Category     string   `json:"category"`
	PurityScore  float64  `json:"purity_score"`
	KeyFindings  []string `json:"key_findings"`
	SafetyStatus string   `json:"safety_status"`
	TestDate     string   `json:"test_date,omitempty"`
	LabName      string   `json:"lab_name,omitempty"`
}

type sampleReportsData struct {
	Reports []SampleReport `json:"reports"`
	Total   int            `json:"total"`
}

type categoriesData struct {
	Categories []string `json:"categories"`
}

// SampleStats summarizes the published report corpus.
type SampleStats struct {
	TotalReports       int     `json:"total_reports"`
	FeaturedReports    int     `json:"featured_reports"`
	AveragePurityScore float64 `json:"average_purity_score"`
}

// ReportFilter narrows the paginated report listing.
type ReportFilter struct {
	Category string
	Status   string
	Page     int
	PerPage  int
}

// Activity is one entry of a community or user activity feed.
type Activity struct {
	Type      string    `json:"type"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// RecentVote is a condensed vote row on the dashboard.
type RecentVote struct {
	ProductName     string  `json:"product_name"`
	Status          string  `json:"status"`
	Votes           int     `json:"votes"`
	FundingProgress float64 `json:"funding_progress"`
}

// LimitUsage is a used/limit/remaining triple for one capped resource.
type LimitUsage struct {
	Used      int `json:"used"`
	Limit     int `json:"limit"`
	Remaining int `json:"remaining"`
}

// DashboardSnapshot is the aggregated per-user dashboard payload.
type DashboardSnapshot struct {
	UserInfo struct {
		Email          string    `json:"email"`
		Name           string    `json:"name"`
		MemberSince    time.Time `json:"member_since"`
		LastActive     time.Time `json:"last_active"`
		OnboardingStep int       `json:"onboarding_step"`
	} `json:"user_info"`
	Stats struct {
		VotesCast            int  `json:"votes_cast"`
		TestsInfluenced      int  `json:"tests_influenced"`
		CommunityImpact      int  `json:"community_impact"`
		ReportViewsRemaining int  `json:"report_views_remaining"`
		IsPremium            bool `json:"is_premium"`
	} `json:"stats"`
	RecentVotes    []RecentVote `json:"recent_votes"`
	RecentActivity []Activity   `json:"recent_activity"`
	Limits         struct {
		ReportViews LimitUsage `json:"report_views"`
		Votes       LimitUsage `json:"votes"`
	} `json:"limits"`
	UpgradePrompt struct {
		Show   bool   `json:"show"`
		Reason string `json:"reason"`
	} `json:"upgrade_prompt"`
}

// Usage pairs consumed quota with its cap, which may be unlimited.
type Usage struct {
	Used  int   `json:"used"`
	Limit Limit `json:"limit"`
}

// SubscriptionStatus is the user's current plan state. Read-only here.
type SubscriptionStatus struct {
	Email              string `json:"email"`
	IsPremium          bool   `json:"is_premium"`
	DaysRemaining      int    `json:"days_remaining"`
	TrialUsed          bool   `json:"trial_used"`
	TrialAvailable     bool   `json:"trial_available"`
	UpgradeRecommended bool   `json:"upgrade_recommended"`
	UsageStats         struct {
		ReportViews Usage `json:"report_views"`
		Votes       Usage `json:"votes"`
		ForumPosts  Usage `json:"forum_posts"`
	} `json:"usage_stats"`
}

// Tier is one subscription plan definition.
type Tier struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Price          int      `json:"price"`
	DurationDays   int      `json:"duration_days"`
	Features       []string `json:"features"`
	IsTrial        bool     `json:"is_trial"`
	Popular        bool     `json:"popular"`
	TrialAvailable bool     `json:"trial_available,omitempty"`
	TrialDays      int      `json:"trial_days,omitempty"`
}

type tiersData struct {
	Tiers []Tier `json:"tiers"`
}

// TrialActivation confirms a started premium trial.
type TrialActivation struct {
	Email            string    `json:"email"`
	TrialEnd         time.Time `json:"trial_end"`
	DaysRemaining    int       `json:"days_remaining"`
	FeaturesUnlocked []string  `json:"features_unlocked"`
}

// PaymentOrder is what the payment widget needs to open a checkout.
type PaymentOrder struct {
	OrderID    string `json:"order_id"`
	Amount     int    `json:"amount"`
	Currency   string `json:"currency"`
	TierID     string `json:"tier_id"`
	GatewayKey string `json:"gateway_key"`
}

// PaymentConfirmation confirms a verified payment.
type PaymentConfirmation struct {
	Email               string    `json:"email"`
	TierID              string    `json:"tier_id"`
	SubscriptionExpires time.Time `json:"subscription_expires"`
	FeaturesUnlocked    []string  `json:"features_unlocked"`
}

// UpgradePrompt is a candidate message for the upgrade modal.
type UpgradePrompt struct {
	Type     string `json:"type"`
	Title    string `json:"title"`
	Message  string `json:"message"`
	CTA      string `json:"cta"`
	Urgency  string `json:"urgency"`
	Discount int    `json:"discount,omitempty"`
}

type upgradePromptsData struct {
	Prompts []UpgradePrompt `json:"prompts"`
}

// Profile is a user's full profile record.
type Profile struct {
	Email           string    `json:"email"`
	Name            string    `json:"name"`
	Mobile          string    `json:"mobile,omitempty"`
	Location        string    `json:"location,omitempty"`
	Role            string    `json:"role"`
	MemberSince     time.Time `json:"member_since"`
	IsPremium       bool      `json:"is_premium"`
	TrialUsed       bool      `json:"trial_used"`
	OnboardingStep  int       `json:"onboarding_step"`
	ProfileComplete bool      `json:"profile_complete"`
	EngagementScore int       `json:"engagement_score"`
}

// ProfileCompletion carries the optional profile fields a user fills in.
type ProfileCompletion struct {
	Name     string `json:"name"`
	Mobile   string `json:"mobile,omitempty"`
	Location string `json:"location,omitempty"`
}

// ReportView acknowledges a recorded report view and reports quota left.
type ReportView struct {
	ViewsUsed         int   `json:"views_used"`
	ViewsRemaining    Limit `json:"views_remaining"`
	IsPremium         bool  `json:"is_premium"`
	ShowUpgradePrompt bool  `json:"show_upgrade_prompt"`
}

// CommunityStats is the public community aggregate for the home page.
type CommunityStats struct {
	TotalMembers        int        `json:"total_members"`
	TotalVotesCast      int        `json:"total_votes_cast"`
	CompletedTests      int        `json:"completed_tests"`
	ActiveVotingOptions int        `json:"active_voting_options"`
	RecentActivity      []Activity `json:"recent_activity"`
}

// FunnelStats is the admin-only onboarding funnel aggregate.
type FunnelStats struct {
	TotalUsers      int            `json:"total_users"`
	StepCounts      map[string]int `json:"step_counts"`
	ConversionRates map[string]any `json:"conversion_rates"`
}

// UserJourney is the admin-only per-user action trail.
type UserJourney struct {
	Email   string `json:"email"`
	Actions []struct {
		Timestamp time.Time      `json:"timestamp"`
		Action    string         `json:"action"`
		Details   map[string]any `json:"details"`
	} `json:"actions"`
}
