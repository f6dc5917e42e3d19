package server

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/jonathan/team-survey/internal/db"
	"github.com/jonathan/team-survey/internal/sheets"
)

// fakeStore is an in-memory Store.
type fakeStore struct {
	mu        sync.Mutex
	responses []db.Response
	nextID    int64

	insertErr error
	listErr   error
	distErr   error
	lastList  []db.ResponseFilter
}

func newFakeStore() *fakeStore {
	return &fakeStore{nextID: 1}
}

func (f *fakeStore) InsertResponse(_ context.Context, r *db.Response) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.insertErr != nil {
		return 0, f.insertErr
	}
	r.ID = f.nextID
	r.SubmittedAt = time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)
	f.nextID++
	f.responses = append(f.responses, *r)
	return r.ID, nil
}

func (f *fakeStore) ListAnswerRows(_ context.Context, filter db.ResponseFilter) ([]db.AnswerRow, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastList = append(f.lastList, filter)
	if f.listErr != nil {
		return nil, f.listErr
	}
	var rows []db.AnswerRow
	for _, r := range f.responses {
		if filter.Department != "" && r.Department != filter.Department {
			continue
		}
		if filter.Location != "" && r.Location != filter.Location {
			continue
		}
		rows = append(rows, db.AnswerRow{Department: r.Department, Answers: r.Answers})
	}
	return rows, nil
}

func (f *fakeStore) DistinctDepartments(context.Context) ([]string, error) {
	return f.distinct(func(r db.Response) string { return r.Department })
}

func (f *fakeStore) DistinctLocations(context.Context) ([]string, error) {
	return f.distinct(func(r db.Response) string { return r.Location })
}

func (f *fakeStore) distinct(field func(db.Response) string) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.distErr != nil {
		return nil, f.distErr
	}
	seen := map[string]bool{}
	var out []string
	for _, r := range f.responses {
		if v := field(r); !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	sort.Strings(out)
	return out, nil
}

// recordingMirror captures enqueued entries.
type recordingMirror struct {
	mu      sync.Mutex
	entries []sheets.Entry
	accept  bool
}

func (m *recordingMirror) Enqueue(e sheets.Entry) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append(m.entries, e)
	return m.accept
}
