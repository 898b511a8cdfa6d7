// Package attachments keeps the product images picked for upload: a single
// thumbnail and an ordered list of content-image slots.
//
// Every slot has a stable opaque id. Display positions are derived from the
// order list on each read (1-based, contiguous), so removing or moving a
// slot never leaves a stale identifier behind. The list always ends with an
// empty slot ready for the next upload.
package attachments

import (
	"sync"

	"github.com/dmitrijs2005/storefront/internal/client/models"
	"github.com/dmitrijs2005/storefront/internal/common"
	"github.com/google/uuid"
)

// Direction for Move.
type Direction int

const (
	Up Direction = iota
	Down
)

// Slot is a snapshot of one content-image slot.
type Slot struct {
	ID         string
	Position   int
	Attachment models.Attachment
	// Preview is the public URL of the uploaded object, if any.
	Preview string
}

// Empty reports whether nothing has been uploaded into the slot.
func (s Slot) Empty() bool { return s.Attachment.Empty() }

type entry struct {
	att     models.Attachment
	preview string
}

// List is safe for concurrent use.
type List struct {
	mu    sync.Mutex
	order []string
	slots map[string]*entry
	thumb *entry
	newID func() string
}

// New returns a list holding one empty slot and no thumbnail.
func New() *List {
	l := &List{
		slots: make(map[string]*entry),
		newID: func() string { return uuid.NewString() },
	}
	l.appendLocked()
	return l
}

func (l *List) appendLocked() string {
	id := l.newID()
	l.order = append(l.order, id)
	l.slots[id] = &entry{}
	return id
}

func (l *List) snapshotLocked(i int) Slot {
	id := l.order[i]
	e := l.slots[id]
	att := e.att
	att.Position = i + 1
	return Slot{ID: id, Position: i + 1, Attachment: att, Preview: e.preview}
}

func (l *List) indexLocked(id string) int {
	for i, v := range l.order {
		if v == id {
			return i
		}
	}
	return -1
}

// Append adds an empty slot at the end. Its position is the previous
// maximum plus one.
func (l *List) Append() Slot {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.appendLocked()
	return l.snapshotLocked(len(l.order) - 1)
}

// Remove deletes a slot and renumbers the rest. The only remaining slot and
// the trailing empty slot are reset in place instead, so one empty slot is
// always there to pick the next file.
func (l *List) Remove(id string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	i := l.indexLocked(id)
	if i < 0 {
		return common.ErrSlotNotFound
	}

	last := i == len(l.order)-1
	if len(l.order) == 1 || (last && l.slots[id].att.Empty()) {
		l.slots[id] = &entry{}
		return nil
	}

	l.order = append(l.order[:i], l.order[i+1:]...)
	delete(l.slots, id)

	if l.slots[l.order[len(l.order)-1]].att.Empty() {
		return nil
	}
	l.appendLocked()
	return nil
}

// Move swaps a slot with its neighbour. Moving past either end is a no-op,
// and the trailing empty slot neither moves nor is swapped with.
func (l *List) Move(id string, dir Direction) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	i := l.indexLocked(id)
	if i < 0 {
		return common.ErrSlotNotFound
	}

	movable := len(l.order)
	if l.slots[l.order[movable-1]].att.Empty() {
		movable--
	}

	j := i - 1
	if dir == Down {
		j = i + 1
	}
	if i >= movable || j < 0 || j >= movable {
		return nil
	}
	l.order[i], l.order[j] = l.order[j], l.order[i]
	return nil
}

// Bind stores an uploaded attachment in the slot. It does not append a new
// slot; callers do that once the whole upload sequence has succeeded.
func (l *List) Bind(id string, att models.Attachment, preview string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	e, ok := l.slots[id]
	if !ok {
		return common.ErrSlotNotFound
	}
	att.Position = 0
	e.att = att
	e.preview = preview
	return nil
}

// IsLast reports whether id is the final slot.
func (l *List) IsLast(id string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.order) > 0 && l.order[len(l.order)-1] == id
}

// Slots returns every slot in display order.
func (l *List) Slots() []Slot {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]Slot, len(l.order))
	for i := range l.order {
		out[i] = l.snapshotLocked(i)
	}
	return out
}

// ByPosition looks a slot up by its 1-based display position.
func (l *List) ByPosition(pos int) (Slot, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if pos < 1 || pos > len(l.order) {
		return Slot{}, false
	}
	return l.snapshotLocked(pos - 1), true
}

// Get returns the slot with the given id.
func (l *List) Get(id string) (Slot, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	i := l.indexLocked(id)
	if i < 0 {
		return Slot{}, false
	}
	return l.snapshotLocked(i), true
}

func (l *List) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.order)
}

// Last returns the trailing slot.
func (l *List) Last() Slot {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.snapshotLocked(len(l.order) - 1)
}

// Attachments returns the bound content images in display order, numbered
// 1..n with empty slots skipped.
func (l *List) Attachments() []models.Attachment {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]models.Attachment, 0, len(l.order))
	for _, id := range l.order {
		att := l.slots[id].att
		if att.Empty() {
			continue
		}
		att.Position = len(out) + 1
		out = append(out, att)
	}
	return out
}

func (l *List) SetThumbnail(att models.Attachment, preview string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	att.Position = 0
	l.thumb = &entry{att: att, preview: preview}
}

func (l *List) ClearThumbnail() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.thumb = nil
}

// Thumbnail returns the thumbnail and its preview URL, if one is set.
func (l *List) Thumbnail() (models.Attachment, string, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.thumb == nil {
		return models.Attachment{}, "", false
	}
	return l.thumb.att, l.thumb.preview, true
}

// Clear drops the thumbnail and every slot, leaving one empty slot.
func (l *List) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.thumb = nil
	l.order = l.order[:0]
	l.slots = make(map[string]*entry)
	l.appendLocked()
}
