// Package batch keeps the per-session list of scanned items that have not
// been submitted to the intake API yet.
package batch

import (
	"sync"
	"time"

	"cdx-web-scan/domain"
	"cdx-web-scan/pkg/barcode"
)

// PageSize is the fixed number of items rendered per batch page.
const PageSize = 5

type (
	// Store maps a web session id to its in-progress batch. Mutations on one
	// session are serialized by a per-session mutex; the store makes no
	// ordering promise between two simultaneous requests of the same session
	// beyond that. A single operator drives one session serially, so this is
	// a documented limitation rather than a supported mode.
	Store struct {
		mu       sync.Mutex
		sessions map[string]*sessionBatch
	}

	sessionBatch struct {
		mu       sync.Mutex
		items    []domain.BatchItem
		page     int
		lastSeen time.Time
	}
)

func NewStore() *Store {
	return &Store{sessions: make(map[string]*sessionBatch)}
}

func (s *Store) session(sessionID string) *sessionBatch {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.sessions[sessionID]
	if !ok {
		b = &sessionBatch{page: 1}
		s.sessions[sessionID] = b
	}
	b.lastSeen = time.Now()
	return b
}

// Append adds one item to the session's batch and jumps the remembered page
// to the last page so the new item is visible. The code is expected to be
// already normalized. Returns false when the code is already present; the
// batch is left untouched in that case (first occurrence wins).
func (s *Store) Append(sessionID, code, source, title string) bool {
	b := s.session(sessionID)
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, item := range b.items {
		if item.Code == code {
			return false
		}
	}

	if title == "" {
		title = domain.TitleSentinel
	}
	b.items = append(b.items, domain.BatchItem{
		Code:       code,
		Source:     source,
		CapturedAt: time.Now().UTC(),
		Title:      title,
		Format:     barcode.Classify(code),
	})
	b.page = totalPages(len(b.items))
	return true
}

// Delete removes the first item whose code matches. Absent codes are a
// no-op, not an error.
func (s *Store) Delete(sessionID, code string) bool {
	b := s.session(sessionID)
	b.mu.Lock()
	defer b.mu.Unlock()

	for i, item := range b.items {
		if item.Code == code {
			b.items = append(b.items[:i], b.items[i+1:]...)
			if b.page > totalPages(len(b.items)) {
				b.page = totalPages(len(b.items))
			}
			return true
		}
	}
	return false
}

// Clear empties the session's batch and resets the remembered page.
func (s *Store) Clear(sessionID string) {
	b := s.session(sessionID)
	b.mu.Lock()
	defer b.mu.Unlock()
	b.items = nil
	b.page = 1
}

// Page returns one page of the batch. When explicit is false the session's
// remembered page is used; either way the resolved page is clamped into
// [1, total] and remembered for the next request. OlStart is the 1-based
// ordinal of the first returned item, for display numbering.
func (s *Store) Page(sessionID string, requested int, explicit bool) domain.BatchPageResponse {
	b := s.session(sessionID)
	b.mu.Lock()
	defer b.mu.Unlock()

	backfillFormats(b.items)

	total := totalPages(len(b.items))
	page := b.page
	if explicit {
		page = requested
	}
	if page < 1 {
		page = 1
	}
	if page > total {
		page = total
	}
	b.page = page

	start := (page - 1) * PageSize
	end := start + PageSize
	if end > len(b.items) {
		end = len(b.items)
	}
	items := make([]domain.BatchItem, end-start)
	copy(items, b.items[start:end])

	return domain.BatchPageResponse{
		Items:      items,
		Page:       page,
		TotalPages: total,
		OlStart:    start + 1,
		Count:      len(b.items),
	}
}

// Snapshot copies the session's full batch, oldest first.
func (s *Store) Snapshot(sessionID string) []domain.BatchItem {
	b := s.session(sessionID)
	b.mu.Lock()
	defer b.mu.Unlock()

	backfillFormats(b.items)
	items := make([]domain.BatchItem, len(b.items))
	copy(items, b.items)
	return items
}

func (s *Store) Len(sessionID string) int {
	b := s.session(sessionID)
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.items)
}

// PruneIdle drops batches that have not been touched for maxIdle, matching
// the cookie store's own expiry. Returns how many sessions were dropped.
func (s *Store) PruneIdle(maxIdle time.Duration) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := time.Now().Add(-maxIdle)
	pruned := 0
	for id, b := range s.sessions {
		if b.lastSeen.Before(cutoff) {
			delete(s.sessions, id)
			pruned++
		}
	}
	return pruned
}

// backfillFormats tags legacy items that predate format classification.
// Idempotent; runs before every read.
func backfillFormats(items []domain.BatchItem) {
	for i := range items {
		if items[i].Format == "" {
			items[i].Format = barcode.Classify(items[i].Code)
		}
	}
}

func totalPages(count int) int {
	if count == 0 {
		return 1
	}
	return (count + PageSize - 1) / PageSize
}
