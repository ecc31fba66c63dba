package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCastVoteDecodesEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/voting/cast-vote", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var in map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		assert.Equal(t, "parent@example.com", in["email"])
		assert.Equal(t, "opt-1", in["voting_option_id"])

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"success": true,
			"message": "Vote cast",
			"data": {
				"user_id": "u-1",
				"email": "parent@example.com",
				"product_voted": "Honey Brand A",
				"total_votes": 121,
				"is_new_user": true,
				"votes_remaining": 3
			}
		}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	res, err := c.CastVote(context.Background(), "parent@example.com", "opt-1")

	require.NoError(t, err)
	assert.Equal(t, "Honey Brand A", res.ProductVoted)
	assert.Equal(t, 121, res.TotalVotes)
	assert.True(t, res.IsNewUser)
	require.NotNil(t, res.VotesRemaining)
	assert.Equal(t, 3, *res.VotesRemaining)
}

func TestCastVoteAlreadyVoted(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"detail": "You have already voted for this option"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	res, err := c.CastVote(context.Background(), "parent@example.com", "opt-1")

	assert.Nil(t, res)
	var se *StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, 400, se.Status)
	assert.Equal(t, "You have already voted for this option", se.Detail)
}

func TestCastVoteLimitMarker(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"detail": {
			"error": "view_limit_reached",
			"message": "Monthly votes exhausted",
			"views_used": 3,
			"views_limit": 3
		}}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	_, err := c.CastVote(context.Background(), "parent@example.com", "opt-1")

	var limit *LimitReachedError
	require.ErrorAs(t, err, &limit)
	assert.Equal(t, "Monthly votes exhausted", limit.Message)
	assert.Equal(t, 3, limit.ViewsUsed)
	assert.Equal(t, 3, limit.ViewsLimit)
}

func TestClassify(t *testing.T) {
	cases := []struct {
		name   string
		status int
		body   string
		want   error
	}{
		{
			"string detail", 404, `{"detail": "User not found"}`,
			&StatusError{Status: 404, Detail: "User not found"},
		},
		{
			"object detail without marker", 403, `{"detail": {"error": "forbidden", "message": "No access"}}`,
			&StatusError{Status: 403, Detail: "No access"},
		},
		{
			"marker on non-403 stays a status error", 400, `{"detail": {"error": "view_limit_reached", "message": "nope"}}`,
			&StatusError{Status: 400, Detail: "nope"},
		},
		{
			"empty body", 500, ``,
			&StatusError{Status: 500},
		},
		{
			"non-json body", 502, `Bad Gateway`,
			&StatusError{Status: 502},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, classify(tc.status, []byte(tc.body)))
		})
	}
}

func TestEnvelopeFailureBecomesStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success": false, "message": "Something went wrong", "data": null}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	_, err := c.VotingStats(context.Background())

	var se *StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, 200, se.Status)
	assert.Equal(t, "Something went wrong", se.Detail)
}

func TestVotingOptionsDefaultStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/voting/options", r.URL.Path)
		assert.Equal(t, "voting", r.URL.Query().Get("status"))
		w.Write([]byte(`{"success": true, "data": {"voting_options": [
			{"id": "opt-1", "product_name": "Honey Brand A", "votes": 120}
		], "total": 1}}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	options, err := c.VotingOptions(context.Background(), "")

	require.NoError(t, err)
	require.Len(t, options, 1)
	assert.Equal(t, "Honey Brand A", options[0].ProductName)
}

func TestDashboardDecodesSnapshot(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/users/dashboard/parent@example.com", r.URL.Path)
		w.Write([]byte(`{"success": true, "data": {
			"user_info": {"email": "parent@example.com", "name": "Asha"},
			"stats": {"votes_cast": 4, "is_premium": false},
			"limits": {
				"report_views": {"used": 2, "limit": 3, "remaining": 1},
				"votes": {"used": 1, "limit": 3, "remaining": 2}
			},
			"upgrade_prompt": {"show": true, "reason": "approaching_limit"}
		}}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	snap, err := c.Dashboard(context.Background(), "parent@example.com")

	require.NoError(t, err)
	assert.Equal(t, "Asha", snap.UserInfo.Name)
	assert.Equal(t, 4, snap.Stats.VotesCast)
	assert.Equal(t, 1, snap.Limits.ReportViews.Remaining)
	assert.True(t, snap.UpgradePrompt.Show)
}

func TestSubscriptionStatusParsesLimits(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success": true, "data": {
			"email": "parent@example.com",
			"is_premium": false,
			"trial_available": true,
			"usage_stats": {
				"report_views": {"used": 2, "limit": 3},
				"votes": {"used": 0, "limit": "unlimited"},
				"forum_posts": {"used": 0, "limit": 5}
			}
		}}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	status, err := c.SubscriptionStatus(context.Background(), "parent@example.com")

	require.NoError(t, err)
	assert.True(t, status.TrialAvailable)
	assert.Equal(t, 3, status.UsageStats.ReportViews.Limit.N)
	assert.True(t, status.UsageStats.Votes.Limit.Unlimited)
	assert.Equal(t, "unlimited", status.UsageStats.Votes.Limit.String())
}

func TestTransportFailurePassesThrough(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // refuse connections

	c := NewClient(srv.URL)
	_, err := c.VotingStats(context.Background())

	require.Error(t, err)
	var se *StatusError
	assert.False(t, errors.As(err, &se))
}

func TestCompleteProfileSendsFields(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/users/complete-profile/parent@example.com", r.URL.Path)
		var in ProfileCompletion
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		assert.Equal(t, "Asha", in.Name)
		w.Write([]byte(`{"success": true, "data": {}}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	err := c.CompleteProfile(context.Background(), "parent@example.com", ProfileCompletion{Name: "Asha"})

	assert.NoError(t, err)
}

func TestLimitRoundTrip(t *testing.T) {
	var u Usage
	require.NoError(t, json.Unmarshal([]byte(`{"used": 2, "limit": "unlimited"}`), &u))
	assert.True(t, u.Limit.Unlimited)

	b, err := json.Marshal(u)
	require.NoError(t, err)
	assert.JSONEq(t, `{"used": 2, "limit": "unlimited"}`, string(b))

	require.NoError(t, json.Unmarshal([]byte(`{"used": 2, "limit": 3}`), &u))
	assert.False(t, u.Limit.Unlimited)
	assert.Equal(t, 3, u.Limit.N)

	assert.Error(t, json.Unmarshal([]byte(`"sometimes"`), &u.Limit))
}
