package application_test

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/Stuart1162/fizzyjuice/internal/public/application"
	"github.com/Stuart1162/fizzyjuice/internal/public/domain"
)

var fixedNow = time.Date(2025, 3, 20, 12, 0, 0, 0, time.UTC)

func clock() time.Time { return fixedNow }

func daysAgo(n int) *time.Time {
	t := fixedNow.Add(-time.Duration(n) * 24 * time.Hour)
	return &t
}

// ── Jobs ───────────────────────────────────────────────────────────────────

type fakeJobs struct {
	mu     sync.Mutex
	order  []string
	byID   map[string]domain.Job
	nextID int
	writes int
}

func newFakeJobs(jobs ...domain.Job) *fakeJobs {
	f := &fakeJobs{byID: map[string]domain.Job{}}
	for _, job := range jobs {
		f.order = append(f.order, job.ID)
		f.byID[job.ID] = job
	}
	return f
}

func (f *fakeJobs) List(_ context.Context, q application.JobQuery) ([]domain.Job, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.Job
	for _, id := range f.order {
		job, ok := f.byID[id]
		if !ok {
			continue
		}
		if q.Draft != nil && job.Draft != *q.Draft {
			continue
		}
		if q.CreatedBy != "" && job.CreatedBy != q.CreatedBy {
			continue
		}
		out = append(out, job.Clone())
	}
	return out, nil
}

func (f *fakeJobs) FindByID(_ context.Context, id string) (*domain.Job, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	job, ok := f.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	clone := job.Clone()
	return &clone, nil
}

func (f *fakeJobs) FindByRef(_ context.Context, ref string) (*domain.Job, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, id := range f.order {
		if job, ok := f.byID[id]; ok && job.Ref == ref {
			clone := job.Clone()
			return &clone, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeJobs) RefExists(ctx context.Context, ref string) (bool, error) {
	_, err := f.FindByRef(ctx, ref)
	return err == nil, nil
}

func (f *fakeJobs) Create(_ context.Context, job *domain.Job) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	job.ID = fmt.Sprintf("job-%d", f.nextID)
	f.order = append(f.order, job.ID)
	f.byID[job.ID] = job.Clone()
	f.writes++
	return nil
}

func (f *fakeJobs) Update(_ context.Context, job *domain.Job) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.byID[job.ID]; !ok {
		return domain.ErrNotFound
	}
	f.byID[job.ID] = job.Clone()
	f.writes++
	return nil
}

func (f *fakeJobs) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.byID[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.byID, id)
	f.writes++
	return nil
}

// ── Profiles ───────────────────────────────────────────────────────────────

type fakeProfiles struct {
	mu       sync.Mutex
	profiles map[string]domain.Profile
	prefs    map[string]domain.Preferences
}

func newFakeProfiles() *fakeProfiles {
	return &fakeProfiles{profiles: map[string]domain.Profile{}, prefs: map[string]domain.Preferences{}}
}

func (f *fakeProfiles) FindProfile(_ context.Context, uid string) (*domain.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.profiles[uid]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (f *fakeProfiles) UpsertProfile(_ context.Context, p *domain.Profile) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, existed := f.profiles[p.UserID]
	f.profiles[p.UserID] = *p
	return !existed, nil
}

func (f *fakeProfiles) FindPreferences(_ context.Context, uid string) (*domain.Preferences, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.prefs[uid]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (f *fakeProfiles) SavePreferences(_ context.Context, uid string, p domain.Preferences) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.prefs[uid] = p
	return nil
}

// ── Saved jobs & metrics ───────────────────────────────────────────────────

type fakeSaved struct {
	mu     sync.Mutex
	items  map[string]domain.SavedJob
	writes int
}

func newFakeSaved() *fakeSaved {
	return &fakeSaved{items: map[string]domain.SavedJob{}}
}

func savedKey(uid, jobID string) string { return uid + "/" + jobID }

func (f *fakeSaved) List(_ context.Context, uid string) ([]domain.SavedJob, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.SavedJob
	for _, item := range f.items {
		if item.UserID == uid {
			out = append(out, item)
		}
	}
	return out, nil
}

func (f *fakeSaved) Find(_ context.Context, uid, jobID string) (*domain.SavedJob, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	item, ok := f.items[savedKey(uid, jobID)]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &item, nil
}

func (f *fakeSaved) Save(_ context.Context, snapshot domain.SavedJob, at time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := savedKey(snapshot.UserID, snapshot.JobID)
	if current, ok := f.items[key]; ok {
		snapshot.Applied = current.Applied
		snapshot.AppliedAt = current.AppliedAt
	}
	snapshot.Saved = true
	snapshot.SavedAt = &at
	f.items[key] = snapshot
	f.writes++
	return nil
}

func (f *fakeSaved) Remove(_ context.Context, uid, jobID string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := savedKey(uid, jobID)
	_, ok := f.items[key]
	delete(f.items, key)
	f.writes++
	return ok, nil
}

func (f *fakeSaved) SetApplied(_ context.Context, uid, jobID string, applied bool, at time.Time) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := savedKey(uid, jobID)
	item, ok := f.items[key]
	if !ok {
		return false, domain.ErrNotFound
	}
	changed := item.Applied != applied
	item.Applied = applied
	if applied {
		item.AppliedAt = &at
	} else {
		item.AppliedAt = nil
	}
	f.items[key] = item
	f.writes++
	return changed, nil
}

func (f *fakeSaved) DeleteByJob(_ context.Context, jobID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for key, item := range f.items {
		if item.JobID == jobID {
			delete(f.items, key)
		}
	}
	return nil
}

type fakeMetrics struct {
	mu       sync.Mutex
	counters map[string]*domain.JobMetrics
	err      error
}

func newFakeMetrics() *fakeMetrics {
	return &fakeMetrics{counters: map[string]*domain.JobMetrics{}}
}

func (f *fakeMetrics) Increment(_ context.Context, jobID string, kind domain.MetricKind, delta int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	m, ok := f.counters[jobID]
	if !ok {
		m = &domain.JobMetrics{JobID: jobID}
		f.counters[jobID] = m
	}
	switch kind {
	case domain.MetricViews:
		m.Views += delta
	case domain.MetricSaves:
		m.Saves += delta
	case domain.MetricApplies:
		m.Applies += delta
	}
	return nil
}

func (f *fakeMetrics) Find(_ context.Context, jobID string) (*domain.JobMetrics, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	m, ok := f.counters[jobID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	copied := *m
	return &copied, nil
}

func (f *fakeMetrics) Delete(_ context.Context, jobID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.counters, jobID)
	return nil
}

func (f *fakeMetrics) get(jobID string) domain.JobMetrics {
	f.mu.Lock()
	defer f.mu.Unlock()
	if m, ok := f.counters[jobID]; ok {
		return *m
	}
	return domain.JobMetrics{JobID: jobID}
}

// ── Pending posts & checkout ───────────────────────────────────────────────

type fakePending struct {
	mu    sync.Mutex
	posts map[string]domain.PendingPost
}

func newFakePending() *fakePending {
	return &fakePending{posts: map[string]domain.PendingPost{}}
}

func (f *fakePending) Create(_ context.Context, post *domain.PendingPost) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.posts[post.SessionID] = *post
	return nil
}

func (f *fakePending) Find(_ context.Context, id string) (*domain.PendingPost, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	post, ok := f.posts[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &post, nil
}

func (f *fakePending) Claim(_ context.Context, id string, at time.Time) (*domain.PendingPost, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	post, ok := f.posts[id]
	if !ok || post.Status != domain.PendingAwaitingPayment {
		return nil, domain.ErrNotFound
	}
	post.Status = domain.PendingCreated
	post.UpdatedAt = at
	f.posts[id] = post
	return &post, nil
}

func (f *fakePending) AttachJob(_ context.Context, id, jobID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	post := f.posts[id]
	post.JobID = jobID
	f.posts[id] = post
	return nil
}

func (f *fakePending) Release(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	post := f.posts[id]
	post.Status = domain.PendingAwaitingPayment
	f.posts[id] = post
	return nil
}

func (f *fakePending) Cancel(_ context.Context, id string, at time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	post := f.posts[id]
	post.Status = domain.PendingCancelled
	post.UpdatedAt = at
	f.posts[id] = post
	return nil
}

type fakeGateway struct {
	mu       sync.Mutex
	paid     map[string]bool
	requests []domain.CheckoutRequest
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{paid: map[string]bool{}}
}

func (f *fakeGateway) CreateSession(_ context.Context, req domain.CheckoutRequest) (*domain.CheckoutSession, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, req)
	id := fmt.Sprintf("cs_test_%d", len(f.requests))
	f.paid[id] = false
	return &domain.CheckoutSession{ID: id, URL: "https://checkout.example/" + id}, nil
}

func (f *fakeGateway) GetSession(_ context.Context, id string) (*domain.CheckoutSession, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	paid, ok := f.paid[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &domain.CheckoutSession{ID: id, Paid: paid}, nil
}

func (f *fakeGateway) markPaid(id string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.paid[id] = true
}

// ── Events & notifications ─────────────────────────────────────────────────

type fakeEvents struct {
	mu     sync.Mutex
	events []domain.JobEvent
}

func (f *fakeEvents) Publish(_ context.Context, e domain.JobEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, e)
	return nil
}

func (f *fakeEvents) types() []domain.JobEventType {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]domain.JobEventType, 0, len(f.events))
	for _, e := range f.events {
		out = append(out, e.Type)
	}
	return out
}

type fakeNotifier struct {
	users  chan domain.Profile
	drafts chan domain.Job
}

func newFakeNotifier() *fakeNotifier {
	return &fakeNotifier{users: make(chan domain.Profile, 8), drafts: make(chan domain.Job, 8)}
}

func (f *fakeNotifier) UserCreated(_ context.Context, p domain.Profile) { f.users <- p }
func (f *fakeNotifier) DraftJobCreated(_ context.Context, j domain.Job) { f.drafts <- j }

// ── Wiring ─────────────────────────────────────────────────────────────────

type harness struct {
	jobs     *fakeJobs
	profiles *fakeProfiles
	saved    *fakeSaved
	metrics  *fakeMetrics
	events   *fakeEvents
	notifier *fakeNotifier
	deps     application.JobDeps
}

func newHarness(jobs ...domain.Job) *harness {
	h := &harness{
		jobs:     newFakeJobs(jobs...),
		profiles: newFakeProfiles(),
		saved:    newFakeSaved(),
		metrics:  newFakeMetrics(),
		events:   &fakeEvents{},
		notifier: newFakeNotifier(),
	}
	h.deps = application.JobDeps{
		Jobs:      h.jobs,
		Profiles:  h.profiles,
		SavedJobs: h.saved,
		Metrics:   h.metrics,
		Events:    h.events,
		Notifier:  h.notifier,
		Refs:      domain.NewRefGenerator(h.jobs.RefExists, nil),
		Now:       clock,
	}
	return h
}
