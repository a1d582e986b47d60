package admin

import (
	"context"
	"fmt"
	"sync"

	"github.com/mdouchement/cmsadmin/pkg/libcms"
	"github.com/pkg/errors"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Detail states.
const (
	DetailLoading DetailState = iota
	DetailError
	DetailViewing
	DetailEditing
	DetailDeleting
	DetailDeleted
)

// A DetailState is the state of a Detail view.
type DetailState int

func (s DetailState) String() string {
	switch s {
	case DetailLoading:
		return "loading"
	case DetailError:
		return "error"
	case DetailViewing:
		return "viewing"
	case DetailEditing:
		return "editing"
	case DetailDeleting:
		return "deleting"
	case DetailDeleted:
		return "deleted"
	}
	return "unknown"
}

type detailConfig[T any, D comparable] struct {
	kind   string
	route  Route
	fetch  func(ctx context.Context, id string) (*T, error)
	update func(ctx context.Context, id string, draft D) error
	remove func(ctx context.Context, id string) error
	draft  func(entity T) D
}

// A Detail is the detail/edit view of one entity.
//
//	Loading -> Error | Viewing
//	Viewing <-> Editing
//	Viewing | Editing -> Deleting -> Deleted | Viewing
//
// Updates and deletion share a single-slot guard so they never interleave.
type Detail[T any, D comparable] struct {
	ioc     IOC
	id      string
	cfg     detailConfig[T, D]
	guard   Guard
	confirm Confirm

	mu     sync.RWMutex
	state  DetailState
	entity *T
	draft  D
	err    error
}

func newDetail[T any, D comparable](ioc IOC, id string, cfg detailConfig[T, D]) *Detail[T, D] {
	return &Detail[T, D]{
		ioc:   ioc,
		id:    id,
		cfg:   cfg,
		state: DetailLoading,
	}
}

// ID returns the identifier of the entity.
func (d *Detail[T, D]) ID() string {
	return d.id
}

// Load fetches the entity. A missing entity or a failure moves the view to the error state
// and drops any pending deletion.
func (d *Detail[T, D]) Load(ctx context.Context) error {
	entity, err := d.cfg.fetch(ctx, d.id)
	if err == nil && entity == nil {
		err = libcms.ErrNotFound
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if err != nil {
		d.ioc.logger().WithError(err).Warnf("could not fetch %s %s", d.cfg.kind, d.id)
		d.confirm.Cancel()
		d.state = DetailError
		d.err = err
		return errors.Wrapf(err, "could not load %s", d.cfg.kind)
	}

	// A pending deletion stays pending until the confirmation is resolved.
	if d.state != DetailDeleting {
		d.state = DetailViewing
	}
	d.entity = entity
	d.draft = d.cfg.draft(*entity)
	d.err = nil
	return nil
}

// State returns the current state.
func (d *Detail[T, D]) State() DetailState {
	d.mu.RLock()
	defer d.mu.RUnlock()

	return d.state
}

// Err returns the error that moved the view to the error state.
func (d *Detail[T, D]) Err() error {
	d.mu.RLock()
	defer d.mu.RUnlock()

	return d.err
}

// Entity returns the last fetched server values.
func (d *Detail[T, D]) Entity() (T, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.entity == nil {
		var zero T
		return zero, false
	}
	return *d.entity, true
}

// Draft returns the current draft.
func (d *Detail[T, D]) Draft() D {
	d.mu.RLock()
	defer d.mu.RUnlock()

	return d.draft
}

// SetDraft replaces the draft. Only allowed while editing.
func (d *Detail[T, D]) SetDraft(draft D) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.state != DetailEditing {
		return ErrInvalidState
	}
	d.draft = draft
	return nil
}

// Busy returns true while an update or a deletion is in flight.
func (d *Detail[T, D]) Busy() bool {
	return d.guard.Busy()
}

// Confirm returns the confirmation gate of the deletion.
func (d *Detail[T, D]) Confirm() *Confirm {
	return &d.confirm
}

// BeginEdit enters the edit mode with a draft initialized from the server values.
func (d *Detail[T, D]) BeginEdit() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.state != DetailViewing {
		return ErrInvalidState
	}
	d.state = DetailEditing
	d.draft = d.cfg.draft(*d.entity)
	return nil
}

// CancelEdit discards the draft edits and returns to the read-only mode.
func (d *Detail[T, D]) CancelEdit() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.state != DetailEditing || d.guard.Busy() {
		return ErrInvalidState
	}
	d.reset()
	return nil
}

// Save sends the draft to the backend and fetches the entity again on success.
// On failure the view stays in edit mode with the draft intact.
func (d *Detail[T, D]) Save(ctx context.Context) error {
	if !d.guard.Acquire() {
		return ErrBusy
	}
	defer d.guard.Release()

	d.mu.RLock()
	state, draft := d.state, d.draft
	d.mu.RUnlock()

	if state != DetailEditing {
		return ErrInvalidState
	}

	if err := d.cfg.update(ctx, d.id, draft); err != nil {
		if IsValidation(err) {
			d.ioc.notifier().Error(err.Error())
			return err
		}

		failure := fmt.Sprintf("Failed to update %s", d.cfg.kind)
		d.ioc.logger().WithError(err).Warn(failure)
		d.ioc.notifier().Error(libcms.Message(err, failure))
		return errors.Wrapf(err, "could not update %s", d.cfg.kind)
	}

	d.ioc.notifier().Success(fmt.Sprintf("%s updated successfully", capitalize(d.cfg.kind)))
	return d.Load(ctx)
}

// RequestDelete opens the confirmation gate. Nothing is deleted until the gate is accepted.
func (d *Detail[T, D]) RequestDelete() error {
	if d.guard.Busy() {
		return ErrBusy
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if d.state != DetailViewing && d.state != DetailEditing {
		return ErrInvalidState
	}
	if !d.confirm.Open(fmt.Sprintf("Are you sure you want to delete this %s?", d.cfg.kind)) {
		return ErrInvalidState
	}
	d.state = DetailDeleting
	return nil
}

// CancelDelete closes the confirmation gate and returns to the read-only mode.
func (d *Detail[T, D]) CancelDelete() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.state != DetailDeleting || !d.confirm.Cancel() {
		return ErrInvalidState
	}
	d.reset()
	return nil
}

// ConfirmDelete accepts the confirmation gate and deletes the entity.
// On success the view navigates back to the list, on failure it returns to the read-only mode.
func (d *Detail[T, D]) ConfirmDelete(ctx context.Context) error {
	d.mu.RLock()
	state := d.state
	d.mu.RUnlock()

	if state != DetailDeleting {
		return ErrInvalidState
	}
	if !d.guard.Acquire() {
		return ErrBusy
	}
	defer d.guard.Release()

	if !d.confirm.Accept() {
		return ErrInvalidState
	}

	err := d.cfg.remove(ctx, d.id)

	d.mu.Lock()
	if err != nil {
		d.reset()
		d.mu.Unlock()

		failure := fmt.Sprintf("Failed to delete %s", d.cfg.kind)
		d.ioc.logger().WithError(err).Warn(failure)
		d.ioc.notifier().Error(libcms.Message(err, failure))
		return errors.Wrapf(err, "could not delete %s", d.cfg.kind)
	}
	d.state = DetailDeleted
	d.mu.Unlock()

	d.ioc.notifier().Success(fmt.Sprintf("%s deleted successfully", capitalize(d.cfg.kind)))
	d.ioc.navigate(d.cfg.route)
	return nil
}

// reset returns to the read-only mode with a draft derived from the server values.
// d.mu must be held.
func (d *Detail[T, D]) reset() {
	d.state = DetailViewing
	d.draft = d.cfg.draft(*d.entity)
}

func capitalize(s string) string {
	return cases.Title(language.English).String(s)
}
