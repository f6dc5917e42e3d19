package server

import (
	"context"
	"strings"

	"github.com/jonathan/team-survey/internal/db"
	"github.com/jonathan/team-survey/internal/survey"
	"github.com/jonathan/team-survey/internal/types"
	"golang.org/x/sync/errgroup"
)

// AllValues is the filter value that means "no constraint".
const AllValues = "all"

// Filter selects the submissions a dashboard covers. Empty fields and
// AllValues match everything.
type Filter struct {
	Department string
	Location   string
}

func (f Filter) storeFilter() db.ResponseFilter {
	clean := func(v string) string {
		v = strings.TrimSpace(v)
		if v == AllValues {
			return ""
		}
		return v
	}
	return db.ResponseFilter{
		Department: clean(f.Department),
		Location:   clean(f.Location),
	}
}

// StatsService builds dashboards from stored submissions.
type StatsService struct {
	store      Store
	aggregator *survey.Aggregator
}

// NewStatsService creates a StatsService.
func NewStatsService(store Store, aggregator *survey.Aggregator) *StatsService {
	return &StatsService{store: store, aggregator: aggregator}
}

// DashboardStats aggregates the submissions matching f. When no department
// is selected the result also carries each department's overall score,
// computed over the rows matching the location filter alone.
func (s *StatsService) DashboardStats(ctx context.Context, f Filter) (*survey.Dashboard, error) {
	filter := f.storeFilter()
	rows, err := s.store.ListAnswerRows(ctx, filter)
	if err != nil {
		return nil, &ErrStore{Op: "list responses", Err: err}
	}
	if len(rows) == 0 {
		return survey.EmptyDashboard(), nil
	}

	all := make([]survey.Answers, len(rows))
	for i, row := range rows {
		all[i] = row.Answers
	}
	dashboard := &survey.Dashboard{
		TotalSubmissions: len(rows),
		Summary:          s.aggregator.Aggregate(all),
	}

	// With no department filter the rows already match the location filter
	// alone, so they are grouped directly.
	if filter.Department == "" {
		byDept := make(map[string][]survey.Answers)
		for _, row := range rows {
			byDept[row.Department] = append(byDept[row.Department], row.Answers)
		}
		dashboard.PerformanceByDept = make(map[string]int, len(byDept))
		for dept, group := range byDept {
			dashboard.PerformanceByDept[dept] = s.aggregator.Aggregate(group).OverallScore
		}
	}
	return dashboard, nil
}

// FilterOptions returns the distinct departments and locations, sorted.
func (s *StatsService) FilterOptions(ctx context.Context) (*types.FilterOptions, error) {
	opts := &types.FilterOptions{}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		departments, err := s.store.DistinctDepartments(gctx)
		if err != nil {
			return &ErrStore{Op: "list departments", Err: err}
		}
		opts.Departments = departments
		return nil
	})
	g.Go(func() error {
		locations, err := s.store.DistinctLocations(gctx)
		if err != nil {
			return &ErrStore{Op: "list locations", Err: err}
		}
		opts.Locations = locations
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if opts.Departments == nil {
		opts.Departments = []string{}
	}
	if opts.Locations == nil {
		opts.Locations = []string{}
	}
	return opts, nil
}
