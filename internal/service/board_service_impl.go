package service

import (
	"context"
	"time"

	"github.com/alexanderramin/tidsplan/internal/domain"
	"github.com/alexanderramin/tidsplan/internal/metrics"
	"github.com/alexanderramin/tidsplan/internal/pipeline"
	"github.com/alexanderramin/tidsplan/internal/repository"
	"github.com/alexanderramin/tidsplan/internal/timeline"
)

type boardService struct {
	tasks    repository.TaskRepo
	clock    Clock
	observer UseCaseObserver
}

func NewBoardService(tasks repository.TaskRepo, clock Clock, observers ...UseCaseObserver) BoardService {
	if clock == nil {
		clock = time.Now
	}
	return &boardService{tasks: tasks, clock: clock, observer: useCaseObserverOrNoop(observers)}
}

func (s *boardService) Board(ctx context.Context, owner string, opts pipeline.Options) (b *Board, err error) {
	fields := map[string]any{"owner": owner, "filters": opts.Filters.ActiveCount()}
	done := useCase(ctx, s.observer, "board", fields)
	defer func() { done(err) }()

	tasks, err := s.tasks.List(ctx, owner, false)
	if err != nil {
		return nil, err
	}
	if opts.Today.IsZero() {
		opts.Today = s.clock()
	}
	groups := pipeline.Process(tasks, opts)
	b = &Board{
		Groups: groups,
		Facets: pipeline.CollectFacets(tasks),
		Total:  len(tasks),
		Shown:  len(pipeline.Flatten(groups)),
	}
	fields["shown"] = b.Shown
	return b, nil
}

func (s *boardService) snapshot(ctx context.Context, owner string, includeDeleted bool, warningDays int) (*metrics.Snapshot, error) {
	tasks, err := s.tasks.List(ctx, owner, includeDeleted)
	if err != nil {
		return nil, err
	}
	return metrics.Build(tasks, s.clock(), warningDays), nil
}

func (s *boardService) Dashboard(ctx context.Context, owner string, warningDays int) (sum *metrics.Summary, err error) {
	done := useCase(ctx, s.observer, "dashboard", map[string]any{"owner": owner})
	defer func() { done(err) }()

	snap, err := s.snapshot(ctx, owner, true, warningDays)
	if err != nil {
		return nil, err
	}
	summary := snap.Summary()
	return &summary, nil
}

func (s *boardService) Workload(ctx context.Context, owner string, role domain.Role, warningDays int) (report *metrics.WorkloadReport, err error) {
	fields := map[string]any{"owner": owner, "role": string(role)}
	done := useCase(ctx, s.observer, "workload", fields)
	defer func() { done(err) }()

	snap, err := s.snapshot(ctx, owner, false, warningDays)
	if err != nil {
		return nil, err
	}
	r := snap.Workload(role)
	fields["people"] = len(r.People)
	return &r, nil
}

func (s *boardService) Workloads(ctx context.Context, owner string, warningDays int) (reports []metrics.WorkloadReport, err error) {
	done := useCase(ctx, s.observer, "workloads", map[string]any{"owner": owner})
	defer func() { done(err) }()

	snap, err := s.snapshot(ctx, owner, false, warningDays)
	if err != nil {
		return nil, err
	}
	return snap.Workloads(), nil
}

func (s *boardService) Drilldown(ctx context.Context, owner, person string) (d *Drilldown, err error) {
	fields := map[string]any{"owner": owner, "person": person}
	done := useCase(ctx, s.observer, "drilldown", fields)
	defer func() { done(err) }()

	snap, err := s.snapshot(ctx, owner, false, domain.DefaultWarningDays)
	if err != nil {
		return nil, err
	}
	rows := snap.PersonRows(person)
	fields["rows"] = len(rows)
	return &Drilldown{Person: person, Rows: rows, Priority: metrics.Distribution(rows)}, nil
}

// Timeline runs the board pipeline and lays the result out between from and
// to. Zero bounds fall back to the zoom's default window around today.
func (s *boardService) Timeline(ctx context.Context, owner string, opts pipeline.Options, zoom domain.Zoom, from, to time.Time) (chart *timeline.Chart, err error) {
	fields := map[string]any{"owner": owner, "zoom": string(zoom)}
	done := useCase(ctx, s.observer, "timeline", fields)
	defer func() { done(err) }()

	tasks, err := s.tasks.List(ctx, owner, false)
	if err != nil {
		return nil, err
	}
	today := s.clock()
	if opts.Today.IsZero() {
		opts.Today = today
	}
	if from.IsZero() || to.IsZero() {
		from, to = timeline.Window(zoom, today)
	}
	c := timeline.Build(pipeline.Flatten(pipeline.Process(tasks, opts)), zoom, from, to, today)
	fields["bars"] = len(c.Bars)
	return &c, nil
}
