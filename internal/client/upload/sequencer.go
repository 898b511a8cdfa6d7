// Package upload runs the image upload sequence: obtain a pre-signed write
// URL, PUT the bytes straight to storage, then bind the resulting object
// key into the attachment list.
package upload

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/storefront/internal/client/attachments"
	"github.com/dmitrijs2005/storefront/internal/client/models"
	"github.com/dmitrijs2005/storefront/internal/client/view"
	"github.com/dmitrijs2005/storefront/internal/common"
	"github.com/dmitrijs2005/storefront/internal/logging"
	"github.com/dmitrijs2005/storefront/internal/netx"
	"golang.org/x/sync/errgroup"
)

// Step names the part of the sequence a failure happened in.
type Step string

const (
	StepPresign  Step = "presign"
	StepTransfer Step = "transfer"
	StepBind     Step = "bind"
)

// Result is the outcome of one file's sequence. Step is only meaningful
// when Err is set.
type Result struct {
	SlotID     string
	File       string
	Attachment models.Attachment
	Preview    string
	Step       Step
	Err        error
}

func (r Result) OK() bool { return r.Err == nil }

// Sequencer runs upload sequences against one attachment list.
type Sequencer struct {
	presigner   Presigner
	transferer  Transferer
	list        *attachments.List
	notifier    view.Notifier
	log         logging.Logger
	concurrency int
}

func NewSequencer(p Presigner, t Transferer, list *attachments.List, n view.Notifier, log logging.Logger, concurrency int) *Sequencer {
	if concurrency < 1 {
		concurrency = 1
	}
	if log == nil {
		log = logging.Nop()
	}
	return &Sequencer{presigner: p, transferer: t, list: list, notifier: n, log: log, concurrency: concurrency}
}

// List returns the attachment list the sequencer binds into.
func (s *Sequencer) List() *attachments.List { return s.list }

// run performs presign then transfer. Nothing is bound.
func (s *Sequencer) run(ctx context.Context, f models.UploadFile) Result {
	res := Result{File: f.Name}

	ps, err := s.presigner.PresignPut(ctx, f.Name)
	if err != nil {
		return s.failed(res, StepPresign, err)
	}

	key := ps.Key
	if key == "" {
		if key, err = netx.ObjectKeyFromURL(ps.URL); err != nil {
			return s.failed(res, StepPresign, err)
		}
	}

	if err := s.transferer.Put(ctx, ps.URL, f); err != nil {
		return s.failed(res, StepTransfer, err)
	}

	res.Attachment = models.Attachment{FileName: f.Name, FileKey: key}
	res.Preview = netx.StripQuery(ps.URL)
	return res
}

func (s *Sequencer) failed(res Result, step Step, err error) Result {
	res.Step = step
	if errors.Is(err, common.ErrUploadFailed) {
		res.Err = fmt.Errorf("%s %s: %w", step, res.File, err)
	} else {
		res.Err = fmt.Errorf("%w: %s %s: %w", common.ErrUploadFailed, step, res.File, err)
	}
	return res
}

// report tells the user about a failed result, once.
func (s *Sequencer) report(ctx context.Context, res Result) {
	if res.OK() {
		return
	}
	s.log.Warn(ctx, "upload failed", "file", res.File, "step", string(res.Step), "err", res.Err)
	if s.notifier != nil {
		s.notifier.Notify(common.MsgUploadFailed)
	}
}

// UploadThumbnail uploads f and makes it the thumbnail. On failure the
// previous thumbnail is kept.
func (s *Sequencer) UploadThumbnail(ctx context.Context, f models.UploadFile) Result {
	res := s.run(ctx, f)
	if res.OK() {
		s.list.SetThumbnail(res.Attachment, res.Preview)
	}
	s.report(ctx, res)
	return res
}

// UploadContent uploads f into the slot with slotID. When that slot was
// the last one a fresh empty slot is appended. On failure the slot stays
// as it was.
func (s *Sequencer) UploadContent(ctx context.Context, slotID string, f models.UploadFile) Result {
	if _, ok := s.list.Get(slotID); !ok {
		res := s.failed(Result{SlotID: slotID, File: f.Name}, StepBind, common.ErrSlotNotFound)
		s.report(ctx, res)
		return res
	}

	res := s.run(ctx, f)
	res.SlotID = slotID
	if res.OK() {
		res = s.bind(res)
	}
	s.report(ctx, res)
	return res
}

func (s *Sequencer) bind(res Result) Result {
	if err := s.list.Bind(res.SlotID, res.Attachment, res.Preview); err != nil {
		return s.failed(res, StepBind, err)
	}
	if s.list.IsLast(res.SlotID) {
		s.list.Append()
	}
	return res
}

// UploadContentBatch runs one independent sequence per pending upload,
// at most concurrency at a time. Results come back in input order and are
// bound in that order once all transfers finish. A pending upload with an
// empty SlotID goes into whatever slot is last when its turn comes.
func (s *Sequencer) UploadContentBatch(ctx context.Context, pending []models.PendingUpload) []Result {
	results := make([]Result, len(pending))

	var g errgroup.Group
	g.SetLimit(s.concurrency)
	for i, p := range pending {
		if p.SlotID != "" {
			if _, ok := s.list.Get(p.SlotID); !ok {
				results[i] = s.failed(Result{SlotID: p.SlotID, File: p.File.Name}, StepBind, common.ErrSlotNotFound)
				continue
			}
		}
		g.Go(func() error {
			res := s.run(ctx, p.File)
			res.SlotID = p.SlotID
			results[i] = res
			return nil
		})
	}
	_ = g.Wait()

	for i := range results {
		if results[i].OK() {
			if results[i].SlotID == "" {
				results[i].SlotID = s.list.Last().ID
			}
			results[i] = s.bind(results[i])
		}
		s.report(ctx, results[i])
	}
	return results
}
