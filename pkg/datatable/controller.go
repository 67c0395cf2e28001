package datatable

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/go-faster/errors"
	"github.com/sirupsen/logrus"

	"github.com/iota-uz/boxoffice/pkg/constants"
)

// FetchFailedMessage is the notification shown when a refetch fails.
const FetchFailedMessage = "Failed to fetch data"

var (
	ErrControlDisabled = errors.New("datatable: control disabled")
	ErrNoLocation      = errors.New("datatable: location is required")
	ErrNoRefetch       = errors.New("datatable: refetch function is required")
	ErrNotSortable     = errors.New("datatable: column is not sortable")
)

// Notifier surfaces user-facing messages.
type Notifier interface {
	Error(ctx context.Context, message string)
}

type SyncResult int

const (
	// SyncNoop means URL and state already agree.
	SyncNoop SyncResult = iota
	// SyncSkipped means a refetch was already in flight.
	SyncSkipped
	// SyncURLOnly means the URL was rewritten without a refetch.
	SyncURLOnly
	SyncFetched
	SyncFailed
)

func (r SyncResult) String() string {
	switch r {
	case SyncNoop:
		return "noop"
	case SyncSkipped:
		return "skipped"
	case SyncURLOnly:
		return "url_only"
	case SyncFetched:
		return "fetched"
	case SyncFailed:
		return "failed"
	default:
		return "unknown"
	}
}

type Options[T any] struct {
	TableID     string
	Columns     ColumnsFunc[T]
	InitialData Page[T]
	InitialSort *Sort
	Refetch     RefetchFunc[T]
	Location    Location
	Notifier    Notifier
	// Params are the route parameters of the page hosting the table.
	Params     map[string]string
	ActionPath string
	Labels     Labels
	ClassName  string
	Logger     *logrus.Entry
}

// State is a snapshot of the controller.
type State[T any] struct {
	Data       Page[T]
	Sort       *Sort
	Pagination Pagination
	Loading    bool
}

type Controller[T any] struct {
	mu sync.Mutex

	id         string
	columns    ColumnsFunc[T]
	refetch    RefetchFunc[T]
	location   Location
	notifier   Notifier
	params     map[string]string
	actionPath string
	labels     Labels
	className  string
	logger     *logrus.Entry

	data       Page[T]
	sort       *Sort
	syncedSort *Sort
	pagination Pagination
	loading    bool
}

func New[T any](opts Options[T]) (*Controller[T], error) {
	if opts.TableID == "" {
		return nil, errors.New("datatable: table id is required")
	}
	if opts.Location == nil {
		return nil, ErrNoLocation
	}
	if opts.Refetch == nil {
		return nil, ErrNoRefetch
	}
	columns := opts.Columns
	if columns == nil {
		columns = func(ColumnContext) []Column[T] { return nil }
	}
	actionPath := opts.ActionPath
	if actionPath == "" {
		actionPath = "/tables/" + opts.TableID
	}
	logger := opts.Logger
	if logger == nil {
		logger = logrus.NewEntry(logrus.StandardLogger())
	}
	pageIndex := opts.InitialData.CurrentPage - 1
	if pageIndex < 0 {
		pageIndex = 0
	}
	return &Controller[T]{
		id:         opts.TableID,
		columns:    columns,
		refetch:    opts.Refetch,
		location:   opts.Location,
		notifier:   opts.Notifier,
		params:     opts.Params,
		actionPath: actionPath,
		labels:     opts.Labels.withDefaults(),
		className:  opts.ClassName,
		logger:     logger.WithField("table", opts.TableID),
		data:       opts.InitialData,
		sort:       opts.InitialSort.clone(),
		syncedSort: opts.InitialSort.clone(),
		pagination: Pagination{
			PageIndex: pageIndex,
			PageSize:  opts.InitialData.PageSize,
		},
	}, nil
}

func (c *Controller[T]) ID() string {
	return c.id
}

// Mount runs the first synchronization.
func (c *Controller[T]) Mount(ctx context.Context) SyncResult {
	return c.Sync(ctx)
}

// Bind swaps the Location, typically for the URL of the current request.
func (c *Controller[T]) Bind(loc Location) {
	if loc == nil {
		return
	}
	c.mu.Lock()
	c.location = loc
	c.mu.Unlock()
}

func (c *Controller[T]) Location() Location {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.location
}

func (c *Controller[T]) State() State[T] {
	c.mu.Lock()
	defer c.mu.Unlock()
	return State[T]{
		Data:       c.data,
		Sort:       c.sort.clone(),
		Pagination: c.pagination,
		Loading:    c.loading,
	}
}

func (c *Controller[T]) CanNext() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.canNext()
}

func (c *Controller[T]) CanPrevious() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.canPrevious()
}

func (c *Controller[T]) canNext() bool {
	return !c.loading && c.data.CurrentPage < c.data.LastPage
}

func (c *Controller[T]) canPrevious() bool {
	return !c.loading && c.data.CurrentPage > 1
}

func (c *Controller[T]) Next(ctx context.Context) error {
	c.mu.Lock()
	if !c.canNext() {
		c.mu.Unlock()
		return ErrControlDisabled
	}
	c.pagination.PageIndex++
	c.mu.Unlock()
	c.Sync(ctx)
	return nil
}

func (c *Controller[T]) Previous(ctx context.Context) error {
	c.mu.Lock()
	if !c.canPrevious() {
		c.mu.Unlock()
		return ErrControlDisabled
	}
	c.pagination.PageIndex--
	c.mu.Unlock()
	c.Sync(ctx)
	return nil
}

// SetSort replaces the sort spec and synchronizes.
func (c *Controller[T]) SetSort(ctx context.Context, s *Sort) error {
	c.mu.Lock()
	if c.loading {
		c.mu.Unlock()
		return ErrControlDisabled
	}
	c.sort = s.clone()
	c.mu.Unlock()
	c.Sync(ctx)
	return nil
}

// SortBy applies the header toggle for columnID. Only columns marked
// Sortable accept it.
func (c *Controller[T]) SortBy(ctx context.Context, columnID string) error {
	c.mu.Lock()
	cc := c.columnContext()
	next := NextSort(c.sort, columnID)
	c.mu.Unlock()
	if !sortable(c.columns(cc), columnID) {
		return errors.Wrapf(ErrNotSortable, "%q", columnID)
	}
	return c.SetSort(ctx, next)
}

func sortable[T any](cols []Column[T], columnID string) bool {
	for _, col := range cols {
		if col.ID == columnID {
			return col.Sortable
		}
	}
	return false
}

// Sync reconciles state with the URL, refetching when the page or sort
// disagree with an existing page parameter.
func (c *Controller[T]) Sync(ctx context.Context) SyncResult {
	c.mu.Lock()
	if c.loading {
		c.mu.Unlock()
		return SyncSkipped
	}

	// A request that binds while the refetch runs must not receive this
	// sync's URL rewrite.
	loc := c.location
	pageKey, sortKey := PageKey(c.id), SortKey(c.id)
	page := strconv.Itoa(c.pagination.PageIndex + 1)
	sortParam := EncodeSort(c.sort)

	urlPage, hasPage := loc.Get(pageKey)
	urlSort, _ := loc.Get(sortKey)
	if urlPage == page && urlSort == sortParam {
		c.mu.Unlock()
		return SyncNoop
	}

	if !hasPage {
		loc.Replace(map[string]string{pageKey: page, sortKey: sortParam})
		c.mu.Unlock()
		return SyncURLOnly
	}

	args := RefetchArgs{Page: page, Sorting: c.sort.clone()}
	refetch := c.refetch
	c.loading = true
	c.mu.Unlock()

	start := time.Now()
	data, err := refetch(ctx, args)
	c.observe(err, time.Since(start))

	c.mu.Lock()
	c.loading = false
	if err != nil {
		c.pagination.PageIndex = c.data.CurrentPage - 1
		if c.pagination.PageIndex < 0 {
			c.pagination.PageIndex = 0
		}
		c.sort = c.syncedSort.clone()
		c.mu.Unlock()

		c.loggerFor(ctx).WithError(err).WithFields(logrus.Fields{
			"page": args.Page,
			"sort": EncodeSort(args.Sorting),
		}).Error("datatable: refetch failed")
		if c.notifier != nil {
			c.notifier.Error(ctx, FetchFailedMessage)
		}
		return SyncFailed
	}

	if vErr := data.Validate(); vErr != nil {
		c.loggerFor(ctx).WithError(vErr).Warn("datatable: page envelope out of bounds")
	}
	c.data = data
	c.pagination.PageIndex = data.CurrentPage - 1
	if c.pagination.PageIndex < 0 {
		c.pagination.PageIndex = 0
	}
	c.pagination.PageSize = data.PageSize
	c.syncedSort = c.sort.clone()
	loc.Replace(map[string]string{
		pageKey: strconv.Itoa(c.pagination.PageIndex + 1),
		sortKey: EncodeSort(c.sort),
	})
	c.mu.Unlock()
	return SyncFetched
}

func (c *Controller[T]) observe(err error, elapsed time.Duration) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	m := metricsSingleton()
	m.refetchTotal.WithLabelValues(c.id, result).Inc()
	m.refetchLatency.WithLabelValues(c.id, result).Observe(elapsed.Seconds())
}

func (c *Controller[T]) loggerFor(ctx context.Context) *logrus.Entry {
	if entry, ok := ctx.Value(constants.LoggerKey).(*logrus.Entry); ok && entry != nil {
		return entry.WithField("table", c.id)
	}
	return c.logger
}
