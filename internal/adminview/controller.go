// Package adminview holds the admin console's state: the password gate,
// the current role, page and search, the selected record and the delete
// flow. It drives the API on every state change and drops responses that
// arrive after the state they were requested for has moved on.
//
// The controller renders nothing; callers read Snapshot after each call.
package adminview

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/dalemusser/consultadmin/internal/adminclient"
	"github.com/dalemusser/consultadmin/internal/app/system/paging"
	"github.com/dalemusser/consultadmin/internal/domain/models"
	"go.uber.org/zap"
)

var (
	ErrWrongPassword    = errors.New("wrong password")
	ErrLocked           = errors.New("console is locked")
	ErrNoSelection      = errors.New("no record selected")
	ErrDeleteInProgress = errors.New("a delete is already in progress")
	ErrDeleteCanceled   = errors.New("delete canceled")
)

// API is the server surface the controller needs. *adminclient.Client
// implements it.
type API interface {
	List(ctx context.Context, q adminclient.ListQuery) (adminclient.Page, error)
	Detail(ctx context.Context, role models.Role, id string) (models.Record, error)
	Delete(ctx context.Context, role models.Role, id string) error
}

// ConfirmFunc asks the operator to confirm deleting rec. rec is zero when
// the detail has not loaded.
type ConfirmFunc func(ctx context.Context, role models.Role, id string, rec models.Record) bool

// State is the controller's dominant activity.
type State int

const (
	Unauthenticated State = iota
	Idle
	ListLoading
	DetailLoading
	Deleting
)

func (s State) String() string {
	switch s {
	case Unauthenticated:
		return "unauthenticated"
	case ListLoading:
		return "loading"
	case DetailLoading:
		return "loading detail"
	case Deleting:
		return "deleting"
	default:
		return "idle"
	}
}

// NoticeLevel separates confirmations from failures.
type NoticeLevel int

const (
	NoticeInfo NoticeLevel = iota
	NoticeError
)

// Notice is a user-facing notification.
type Notice struct {
	Level NoticeLevel
	Text  string
	Err   error
}

// Options configures a Controller.
type Options struct {
	API     API
	Gate    Gate
	Limit   int         // page size; 0 means paging.PageSize
	Confirm ConfirmFunc // nil: deletes are never confirmed
	Notify  func(Notice)
	Log     *zap.Logger
}

// Snapshot is a copy of the controller's state for rendering.
type Snapshot struct {
	State      State
	Role       models.Role
	Page       int
	Limit      int
	Query      string
	Items      []models.Record
	Total      int64
	SelectedID string
	Detail     models.Record // zero when nothing is loaded
}

type listTag struct {
	role models.Role
	page int
	q    string
	seq  uint64
}

type detailTag struct {
	role models.Role
	id   string
	seq  uint64
}

// Controller is safe for concurrent use. No lock is held across API calls.
type Controller struct {
	api     API
	gate    Gate
	limit   int
	confirm ConfirmFunc
	notify  func(Notice)
	log     *zap.Logger

	mu       sync.Mutex
	unlocked bool
	role     models.Role
	page     int
	q        string
	items    []models.Record
	total    int64
	selected string
	detail   models.Record

	listSeq       uint64
	detailSeq     uint64
	listLoading   bool
	detailLoading bool
	confirming    bool // confirmation prompt is up; not yet Deleting
	deleting      bool
}

// New builds a locked Controller.
func New(opts Options) *Controller {
	c := &Controller{
		api:     opts.API,
		gate:    opts.Gate,
		limit:   opts.Limit,
		confirm: opts.Confirm,
		notify:  opts.Notify,
		log:     opts.Log,
		role:    models.RoleEmployer,
		page:    1,
	}
	if c.limit <= 0 {
		c.limit = paging.PageSize
	}
	if c.notify == nil {
		c.notify = func(Notice) {}
	}
	if c.log == nil {
		c.log = zap.NewNop()
	}
	return c
}

// State reports the dominant state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stateLocked()
}

func (c *Controller) stateLocked() State {
	switch {
	case !c.unlocked:
		return Unauthenticated
	case c.deleting:
		return Deleting
	case c.listLoading:
		return ListLoading
	case c.detailLoading:
		return DetailLoading
	}
	return Idle
}

// Snapshot returns a copy of the current state.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	items := make([]models.Record, len(c.items))
	copy(items, c.items)
	return Snapshot{
		State:      c.stateLocked(),
		Role:       c.role,
		Page:       c.page,
		Limit:      c.limit,
		Query:      c.q,
		Items:      items,
		Total:      c.total,
		SelectedID: c.selected,
		Detail:     c.detail,
	}
}

// Unlock opens the console and loads the first employer page.
func (c *Controller) Unlock(ctx context.Context, password string) error {
	if !c.gate.Check(password) {
		c.notify(Notice{Level: NoticeError, Text: "wrong password", Err: ErrWrongPassword})
		return ErrWrongPassword
	}
	c.mu.Lock()
	c.unlocked = true
	c.role = models.RoleEmployer
	c.page = 1
	c.q = ""
	c.clearSelectionLocked()
	c.mu.Unlock()
	return c.loadList(ctx)
}

// SetRole switches collections and returns to page 1.
func (c *Controller) SetRole(ctx context.Context, role models.Role) error {
	return c.mutate(ctx, func() {
		c.role = role
		c.page = 1
	})
}

// Search filters by q and returns to page 1.
func (c *Controller) Search(ctx context.Context, q string) error {
	q = strings.Join(strings.Fields(q), " ")
	return c.mutate(ctx, func() {
		c.q = q
		c.page = 1
	})
}

// SetPage jumps to page n (minimum 1).
func (c *Controller) SetPage(ctx context.Context, n int) error {
	if n < 1 {
		n = 1
	}
	return c.mutate(ctx, func() { c.page = n })
}

// NextPage advances unless the current page is the last.
func (c *Controller) NextPage(ctx context.Context) error {
	c.mu.Lock()
	last := !paging.HasNext(c.page, c.limit, c.total)
	next := c.page + 1
	c.mu.Unlock()
	if last {
		return nil
	}
	return c.SetPage(ctx, next)
}

// PrevPage goes back unless already on page 1.
func (c *Controller) PrevPage(ctx context.Context) error {
	c.mu.Lock()
	prev := c.page - 1
	c.mu.Unlock()
	if prev < 1 {
		return nil
	}
	return c.SetPage(ctx, prev)
}

// Reload refetches the current page, keeping the selection.
func (c *Controller) Reload(ctx context.Context) error {
	c.mu.Lock()
	unlocked := c.unlocked
	c.mu.Unlock()
	if !unlocked {
		return ErrLocked
	}
	return c.loadList(ctx)
}

func (c *Controller) mutate(ctx context.Context, fn func()) error {
	c.mu.Lock()
	if !c.unlocked {
		c.mu.Unlock()
		return ErrLocked
	}
	fn()
	c.clearSelectionLocked()
	c.mu.Unlock()
	return c.loadList(ctx)
}

// clearSelectionLocked also invalidates any detail request in flight.
func (c *Controller) clearSelectionLocked() {
	c.selected = ""
	c.detail = models.Record{}
	c.detailSeq++
	c.detailLoading = false
}

func (c *Controller) loadList(ctx context.Context) error {
	c.mu.Lock()
	c.listSeq++
	tag := listTag{role: c.role, page: c.page, q: c.q, seq: c.listSeq}
	c.listLoading = true
	c.mu.Unlock()

	res, err := c.api.List(ctx, adminclient.ListQuery{
		Role:  tag.role,
		Page:  tag.page,
		Limit: c.limit,
		Q:     tag.q,
	})

	c.mu.Lock()
	if tag != (listTag{role: c.role, page: c.page, q: c.q, seq: c.listSeq}) {
		c.mu.Unlock()
		c.log.Debug("discarding stale list response",
			zap.String("role", tag.role.String()),
			zap.Int("page", tag.page),
			zap.Uint64("seq", tag.seq))
		return nil
	}
	c.listLoading = false
	if err != nil {
		c.mu.Unlock()
		c.notify(Notice{Level: NoticeError, Text: "load failed", Err: err})
		return err
	}
	c.items = res.Items
	c.total = res.Total
	c.mu.Unlock()
	return nil
}

// Select marks id as selected and loads its detail.
func (c *Controller) Select(ctx context.Context, id string) error {
	c.mu.Lock()
	if !c.unlocked {
		c.mu.Unlock()
		return ErrLocked
	}
	c.selected = id
	c.detail = models.Record{}
	c.detailSeq++
	tag := detailTag{role: c.role, id: id, seq: c.detailSeq}
	c.detailLoading = true
	c.mu.Unlock()

	rec, err := c.api.Detail(ctx, tag.role, tag.id)

	c.mu.Lock()
	if tag != (detailTag{role: c.role, id: c.selected, seq: c.detailSeq}) {
		c.mu.Unlock()
		c.log.Debug("discarding stale detail response", zap.String("id", tag.id))
		return nil
	}
	c.detailLoading = false
	if err != nil {
		c.detail = models.Record{}
		c.mu.Unlock()
		c.notify(Notice{Level: NoticeError, Text: "detail load failed", Err: err})
		return err
	}
	c.detail = rec
	c.mu.Unlock()
	return nil
}

// Delete removes the selected record after confirmation, then reloads the
// same page.
func (c *Controller) Delete(ctx context.Context) error {
	c.mu.Lock()
	switch {
	case !c.unlocked:
		c.mu.Unlock()
		return ErrLocked
	case c.deleting, c.confirming:
		c.mu.Unlock()
		return ErrDeleteInProgress
	case c.selected == "":
		c.mu.Unlock()
		return ErrNoSelection
	}
	role, id, rec := c.role, c.selected, c.detail
	c.confirming = true
	c.mu.Unlock()

	ok := c.confirm != nil && c.confirm(ctx, role, id, rec)

	c.mu.Lock()
	c.confirming = false
	if !ok {
		c.mu.Unlock()
		return ErrDeleteCanceled
	}
	c.deleting = true
	c.mu.Unlock()

	err := c.api.Delete(ctx, role, id)

	c.mu.Lock()
	c.deleting = false
	if err != nil {
		c.mu.Unlock()
		c.notify(Notice{Level: NoticeError, Text: "delete failed", Err: err})
		return err
	}
	if c.selected == id {
		c.clearSelectionLocked()
	}
	c.mu.Unlock()

	c.log.Info("consultation deleted", zap.String("role", role.String()), zap.String("id", id))
	c.notify(Notice{Level: NoticeInfo, Text: "deleted"})
	return c.loadList(ctx)
}
