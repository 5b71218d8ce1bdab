package console

import (
	"context"
	"errors"
)

// DialogState is the lifecycle of a modal editing session.
type DialogState int

const (
	DialogClosed DialogState = iota
	DialogOpen
	DialogSubmitting
)

// ErrDialogClosed is returned when submitting with no open session.
var ErrDialogClosed = errors.New("no open dialog")

// Dialog manages a single open-at-a-time add/edit form session bound either
// to "create new" (no backing record) or "edit existing" (prefilled).
//
// Validation runs synchronously before submission; a failing draft issues no
// network call. A failed submit keeps the dialog open with the draft and
// error retained so the operator can correct and retry.
type Dialog[T any] struct {
	state   DialogState
	draft   T
	editing bool
	err     error

	validate   func(T) error
	submitNew  func(context.Context, T) error
	submitEdit func(context.Context, T) error
}

// NewDialog wires a dialog to its validator and submit delegates, usually a
// Collection's Create and Update.
func NewDialog[T any](validate func(T) error, submitNew, submitEdit func(context.Context, T) error) *Dialog[T] {
	return &Dialog[T]{validate: validate, submitNew: submitNew, submitEdit: submitEdit}
}

// State returns the current dialog state.
func (d *Dialog[T]) State() DialogState { return d.state }

// Draft returns the working copy of the form fields.
func (d *Dialog[T]) Draft() T { return d.draft }

// Editing reports whether the session is bound to an existing record.
func (d *Dialog[T]) Editing() bool { return d.editing }

// Err returns the message shown next to the form, if any.
func (d *Dialog[T]) Err() error { return d.err }

// OpenNew starts a create session with the given initial draft.
func (d *Dialog[T]) OpenNew(draft T) {
	d.state = DialogOpen
	d.draft = draft
	d.editing = false
	d.err = nil
}

// OpenEdit starts an edit session prefilled from the record.
func (d *Dialog[T]) OpenEdit(record T) {
	d.state = DialogOpen
	d.draft = record
	d.editing = true
	d.err = nil
}

// SetDraft replaces the draft on a field edit. Ignored unless open.
func (d *Dialog[T]) SetDraft(draft T) {
	if d.state != DialogOpen {
		return
	}
	d.draft = draft
}

// Cancel discards the draft and closes without side effect.
func (d *Dialog[T]) Cancel() {
	var zero T
	d.state = DialogClosed
	d.draft = zero
	d.editing = false
	d.err = nil
}

// Submit validates the draft and delegates to the bound Collection
// operation. Success closes the dialog; failure keeps it open with the
// draft and error retained.
func (d *Dialog[T]) Submit(ctx context.Context) error {
	if d.state != DialogOpen {
		return ErrDialogClosed
	}
	if d.validate != nil {
		if err := d.validate(d.draft); err != nil {
			d.err = err
			return err
		}
	}
	d.state = DialogSubmitting
	submit := d.submitNew
	if d.editing {
		submit = d.submitEdit
	}
	if err := submit(ctx, d.draft); err != nil {
		d.state = DialogOpen
		d.err = err
		return err
	}
	var zero T
	d.state = DialogClosed
	d.draft = zero
	d.editing = false
	d.err = nil
	return nil
}
