// Package forms drives the storefront's forms: read the fields, validate,
// send one request (or a fixed short chain), then map the outcome onto a
// notification, navigation, modal close, form reset or list refresh.
package forms

import (
	"context"
	"errors"
	"sync"

	"github.com/dmitrijs2005/storefront/internal/client/api"
	"github.com/dmitrijs2005/storefront/internal/client/view"
	"github.com/dmitrijs2005/storefront/internal/common"
	"github.com/dmitrijs2005/storefront/internal/logging"
)

// State of a form submission.
type State int

const (
	Idle State = iota
	Submitting
	Succeeded
	FailedValidation
	FailedTransport
	FailedResponse
	Canceled
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Submitting:
		return "submitting"
	case Succeeded:
		return "succeeded"
	case FailedValidation:
		return "failed-validation"
	case FailedTransport:
		return "failed-transport"
	case FailedResponse:
		return "failed-response"
	case Canceled:
		return "canceled"
	}
	return "unknown"
}

// Success lists the effects of a successful submission. They are applied
// in field order; NavigateTo always comes last.
type Success struct {
	Message    string
	CloseModal string
	ResetForm  bool
	Refresh    func(ctx context.Context) error
	NavigateTo string
}

// Spec describes one form.
type Spec struct {
	Name       string
	Fields     []string
	Checkboxes []string
	// InlineFields are cleared before every attempt.
	InlineFields []string

	Validate func(f Fields) error
	// Confirm, when set, is asked after validation. A "no" cancels quietly.
	Confirm string
	Submit  func(ctx context.Context, f Fields) (Success, error)

	// FailureMessage is shown when the backend rejects the request without
	// a message of its own, or always when FixedFailure is set.
	FailureMessage string
	FixedFailure   bool
	// TransportMessage is shown when no response arrived. Defaults to
	// common.MsgGenericError.
	TransportMessage string
	// FailureField, when set, shows failures inline in that field instead
	// of as a notification.
	FailureField string
}

// Outcome is the result of Submit.
type Outcome struct {
	State   State
	Message string
}

// Controller runs a Spec against a UI. One submission at a time.
type Controller struct {
	spec  Spec
	ui    view.UI
	store view.FieldStore
	log   logging.Logger

	mu    sync.Mutex
	state State
}

func NewController(spec Spec, ui view.UI, store view.FieldStore, log logging.Logger) *Controller {
	if log == nil {
		log = logging.Nop()
	}
	return &Controller{spec: spec, ui: ui, store: store, log: log.With("form", spec.Name)}
}

// State reports Idle or Submitting.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Store returns the field store the controller reads from.
func (c *Controller) Store() view.FieldStore { return c.store }

// Submit runs the form once. A call made while another is still running
// returns common.ErrSubmitInFlight without touching the UI.
func (c *Controller) Submit(ctx context.Context) (Outcome, error) {
	c.mu.Lock()
	if c.state == Submitting {
		c.mu.Unlock()
		return Outcome{State: Submitting}, common.ErrSubmitInFlight
	}
	c.state = Submitting
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		c.state = Idle
		c.mu.Unlock()
	}()

	return c.submit(ctx)
}

func (c *Controller) submit(ctx context.Context) (Outcome, error) {
	for _, f := range c.spec.InlineFields {
		c.ui.ShowFieldError(f, "")
	}

	fields := ReadFields(c.store, c.spec.Fields, c.spec.Checkboxes)

	if c.spec.Validate != nil {
		if err := c.spec.Validate(fields); err != nil {
			return c.invalid(ctx, err)
		}
	}

	if c.spec.Confirm != "" && !c.ui.Confirm(c.spec.Confirm) {
		return Outcome{State: Canceled}, nil
	}

	succ, err := c.spec.Submit(ctx, fields)
	if err != nil {
		return c.fail(ctx, err)
	}

	c.log.Debug(ctx, "submitted")
	c.apply(ctx, succ)
	return Outcome{State: Succeeded, Message: succ.Message}, nil
}

func (c *Controller) invalid(ctx context.Context, err error) (Outcome, error) {
	var ve *ValidationError
	if !errors.As(err, &ve) {
		return c.fail(ctx, err)
	}
	if ve.Inline {
		c.ui.ShowFieldError(ve.Field, ve.Message)
	} else {
		c.ui.Notify(ve.Message)
	}
	return Outcome{State: FailedValidation, Message: ve.Message}, err
}

// fail classifies err and shows exactly one message for it.
func (c *Controller) fail(ctx context.Context, err error) (Outcome, error) {
	state, msg := c.classify(ctx, err)

	if c.spec.FailureField != "" {
		c.ui.ShowFieldError(c.spec.FailureField, msg)
	} else {
		c.ui.Notify(msg)
	}
	return Outcome{State: state, Message: msg}, err
}

func (c *Controller) classify(ctx context.Context, err error) (State, string) {
	var (
		fe     *FailureError
		apiErr *api.APIError
	)

	switch {
	case errors.As(err, &fe):
		c.log.Warn(ctx, "rejected", "err", err)
		return FailedResponse, fe.Message

	case errors.As(err, &apiErr):
		c.log.Warn(ctx, "rejected", "status", apiErr.Status, "err", err)
		if apiErr.LoginRequired {
			return FailedResponse, common.MsgLoginRequired
		}
		if apiErr.Message != "" && !c.spec.FixedFailure {
			return FailedResponse, apiErr.Message
		}
		return FailedResponse, c.failureMessage()

	case errors.Is(err, common.ErrUnavailable),
		errors.Is(err, context.Canceled),
		errors.Is(err, context.DeadlineExceeded):
		c.log.Warn(ctx, "no response", "err", err)
		if c.spec.TransportMessage != "" {
			return FailedTransport, c.spec.TransportMessage
		}
		return FailedTransport, common.MsgGenericError
	}

	c.log.Error(ctx, "unexpected failure", "err", err)
	return FailedResponse, common.MsgGenericError
}

func (c *Controller) failureMessage() string {
	if c.spec.FailureMessage != "" {
		return c.spec.FailureMessage
	}
	return common.MsgGenericError
}

func (c *Controller) apply(ctx context.Context, s Success) {
	if s.Message != "" {
		c.ui.Notify(s.Message)
	}
	if s.CloseModal != "" {
		c.ui.CloseModal(s.CloseModal)
	}
	if s.ResetForm {
		c.store.Reset()
	}
	if s.Refresh != nil {
		if err := s.Refresh(ctx); err != nil {
			c.log.Warn(ctx, "refresh failed", "err", err)
		}
	}
	if s.NavigateTo != "" {
		c.ui.Navigate(s.NavigateTo)
	}
}
