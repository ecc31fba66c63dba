package api

import (
	"context"
	"log"
	"sync"
)

// HomeData is everything the home page renders. Sections are independent:
// a failed fetch leaves its section zero-valued and the page degrades.
type HomeData struct {
	Featured  []FeaturedReport
	Options   []VotingOption
	Community CommunityStats
}

// HomeData issues the three home-page reads concurrently. It never fails;
// per-section errors are logged and the section stays empty.
func (c *Client) HomeData(ctx context.Context) HomeData {
	var (
		d  HomeData
		wg sync.WaitGroup
	)

	wg.Add(3)
	go func() {
		defer wg.Done()
		reports, err := c.FeaturedReports(ctx)
		if err != nil {
			log.Printf("home: featured reports: %v", err)
			return
		}
		d.Featured = reports
	}()
	go func() {
		defer wg.Done()
		options, err := c.VotingOptions(ctx, "voting")
		if err != nil {
			log.Printf("home: voting options: %v", err)
			return
		}
		d.Options = options
	}()
	go func() {
		defer wg.Done()
		stats, err := c.CommunityStats(ctx)
		if err != nil {
			log.Printf("home: community stats: %v", err)
			return
		}
		d.Community = *stats
	}()
	wg.Wait()

	return d
}

// DashboardData is the dashboard view model: snapshot, plan state and the
// upgrade prompt candidates.
type DashboardData struct {
	Dashboard *DashboardSnapshot
	Status    *SubscriptionStatus
	Prompts   []UpgradePrompt
}

// DashboardData issues the three dashboard reads concurrently and settles
// once all have finished. Unlike the home page, a failure of any read fails
// the whole aggregate; the caller decides between redirect (404), the upgrade
// surface (limit reached) and a load-failed state.
func (c *Client) DashboardData(ctx context.Context, email string) (*DashboardData, error) {
	var (
		d    DashboardData
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs []error
	)

	fail := func(err error) {
		mu.Lock()
		errs = append(errs, err)
		mu.Unlock()
	}

	wg.Add(3)
	go func() {
		defer wg.Done()
		snap, err := c.Dashboard(ctx, email)
		if err != nil {
			fail(err)
			return
		}
		d.Dashboard = snap
	}()
	go func() {
		defer wg.Done()
		status, err := c.SubscriptionStatus(ctx, email)
		if err != nil {
			fail(err)
			return
		}
		d.Status = status
	}()
	go func() {
		defer wg.Done()
		prompts, err := c.UpgradePrompts(ctx, email)
		if err != nil {
			fail(err)
			return
		}
		d.Prompts = prompts
	}()
	wg.Wait()

	if len(errs) > 0 {
		return nil, errs[0]
	}
	return &d, nil
}
