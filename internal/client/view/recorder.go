package view

import "sync"

// Recorder is a UI that remembers every call, for tests. Confirm answers
// with Answer.
type Recorder struct {
	mu          sync.Mutex
	Answer      bool
	Notices     []string
	Questions   []string
	Navigations []string
	Closed      []string
	FieldErrors map[string]string
}

func NewRecorder(answer bool) *Recorder {
	return &Recorder{Answer: answer, FieldErrors: map[string]string{}}
}

func (r *Recorder) Notify(msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Notices = append(r.Notices, msg)
}

func (r *Recorder) Confirm(q string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Questions = append(r.Questions, q)
	return r.Answer
}

func (r *Recorder) Navigate(path string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Navigations = append(r.Navigations, path)
}

func (r *Recorder) CloseModal(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Closed = append(r.Closed, id)
}

func (r *Recorder) ShowFieldError(field, msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if msg == "" {
		delete(r.FieldErrors, field)
		return
	}
	r.FieldErrors[field] = msg
}

// LastNotice returns the most recent notification or "".
func (r *Recorder) LastNotice() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.Notices) == 0 {
		return ""
	}
	return r.Notices[len(r.Notices)-1]
}
