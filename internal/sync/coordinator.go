// Package sync keeps the local document and the remote store consistent:
// the local store is authoritative for every immediate read, the remote
// store becomes authoritative whenever it is reachable. Writes land
// locally first and are pushed after a debounce window; pulls happen at
// bootstrap and on demand.
package sync

import (
	"context"
	"log/slog"
	stdsync "sync"
	"time"

	"github.com/babithbhoop/sparklespace/internal/domain"
	"github.com/babithbhoop/sparklespace/internal/localstore"
	"github.com/babithbhoop/sparklespace/internal/remote"
)

// DefaultDebounce is the quiet period after the last mutation before a
// push fires. Rapid edits inside the window coalesce into one round trip.
const DefaultDebounce = 1500 * time.Millisecond

// Remote is the slice of the remote client the coordinator drives. It is
// an interface so tests can stand in a fake store.
type Remote interface {
	Configured() bool
	ListJobs(ctx context.Context) ([]domain.Job, error)
	UpsertJob(ctx context.Context, job domain.Job) (domain.Job, error)
	DeleteJob(ctx context.Context, remoteID string) error
	LoadSettings(ctx context.Context) (*domain.Settings, error)
	SaveSettings(ctx context.Context, settings domain.Settings) error
}

// Status is the connectivity snapshot shown in the UI header.
type Status struct {
	Connected bool `json:"connected"`
	Syncing   bool `json:"syncing"`
}

// Coordinator owns the in-memory document. Every mutation goes through it:
// applied under the lock, persisted to the local store synchronously, and
// scheduled for a debounced remote push. At most one push is in flight;
// a mutation that lands while one is running records a rerun intent that
// triggers exactly one follow-up push after the current one settles.
type Coordinator struct {
	store    *localstore.Store
	logger   *slog.Logger
	debounce time.Duration

	mu        stdsync.Mutex
	remote    Remote
	doc       domain.Document
	connected bool
	syncing   bool
	timer     *time.Timer
	pushing   bool
	rerun     bool
}

// New creates a coordinator seeded from the local store.
func New(store *localstore.Store, rc Remote, logger *slog.Logger, debounce time.Duration) *Coordinator {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &Coordinator{
		store:    store,
		remote:   rc,
		logger:   logger,
		debounce: debounce,
		doc:      store.LoadDocument(),
	}
}

// Bootstrap performs the initial pull. Failure is not fatal: the local
// cache keeps serving and the connectivity flag goes false.
func (c *Coordinator) Bootstrap(ctx context.Context) {
	if err := c.Refresh(ctx); err != nil {
		c.logger.Warn("Remote bootstrap failed, serving local cache",
			slog.String("error", err.Error()),
		)
	}
}

// Refresh fetches the full job list and settings and reconciles them into
// the document. A non-empty remote job list replaces the local one; an
// empty list keeps local jobs so a first run with an empty remote does not
// wipe data created before the remote was configured. Settings merge with
// remote-key priority.
func (c *Coordinator) Refresh(ctx context.Context) error {
	c.mu.Lock()
	rc := c.remote
	if rc == nil || !rc.Configured() {
		c.mu.Unlock()
		return remote.ErrNotConfigured
	}
	c.syncing = true
	c.mu.Unlock()

	var (
		wg       stdsync.WaitGroup
		jobs     []domain.Job
		settings *domain.Settings
		jobsErr  error
		setErr   error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		jobs, jobsErr = rc.ListJobs(ctx)
	}()
	go func() {
		defer wg.Done()
		settings, setErr = rc.LoadSettings(ctx)
	}()
	wg.Wait()

	c.mu.Lock()
	defer c.mu.Unlock()
	c.syncing = false

	if jobsErr != nil || setErr != nil {
		c.connected = false
		if jobsErr != nil {
			return jobsErr
		}
		return setErr
	}

	if len(jobs) > 0 {
		c.doc.Jobs = jobs
	}
	if settings != nil {
		c.doc.Settings = c.doc.Settings.Merge(*settings)
	}
	c.connected = true
	c.store.SaveDocument(c.doc)
	return nil
}

// Status returns the connectivity snapshot.
func (c *Coordinator) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Status{Connected: c.connected, Syncing: c.syncing}
}

// Document returns a deep copy of the current document.
func (c *Coordinator) Document() domain.Document {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.doc.Clone()
}

// Job returns a copy of one job by local id.
func (c *Coordinator) Job(id string) (domain.Job, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	j := c.doc.Job(id)
	if j == nil {
		return domain.Job{}, domain.ErrJobNotFound
	}
	one := domain.Document{Jobs: []domain.Job{*j}}
	snap := one.Clone()
	return snap.Jobs[0], nil
}

// Settings returns a copy of the current settings.
func (c *Coordinator) Settings() domain.Settings {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.doc.Settings
}

// Update applies an arbitrary document mutation under the lock, persists,
// and schedules a push.
func (c *Coordinator) Update(fn func(*domain.Document)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fn(&c.doc)
	c.saveAndSchedule()
}

// AddJob prepends a job (newest first), persists, and schedules a push.
func (c *Coordinator) AddJob(job domain.Job) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.doc.Jobs = append([]domain.Job{job}, c.doc.Jobs...)
	c.saveAndSchedule()
}

// UpdateJob applies a mutation to one job under the lock, persists, and
// schedules a push. The mutation returning an error aborts without saving.
func (c *Coordinator) UpdateJob(id string, fn func(*domain.Job) error) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	j := c.doc.Job(id)
	if j == nil {
		return domain.ErrJobNotFound
	}
	if err := fn(j); err != nil {
		return err
	}
	c.saveAndSchedule()
	return nil
}

// UpdateSettings applies a settings mutation, persists, and schedules.
func (c *Coordinator) UpdateSettings(fn func(*domain.Settings)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fn(&c.doc.Settings)
	c.saveAndSchedule()
}

// DeleteJob removes a job from the local list immediately. When the job
// had a remote row and the remote is configured, a best-effort remote
// delete fires in the background; its failure is logged and the local
// deletion is never rolled back.
func (c *Coordinator) DeleteJob(id string) error {
	c.mu.Lock()
	j := c.doc.Job(id)
	if j == nil {
		c.mu.Unlock()
		return domain.ErrJobNotFound
	}
	remoteID := j.RemoteID
	rc := c.remote
	c.doc.RemoveJob(id)
	c.store.SaveDocument(c.doc)
	c.mu.Unlock()

	if remoteID != "" && rc != nil && rc.Configured() {
		go func() {
			if err := rc.DeleteJob(context.Background(), remoteID); err != nil {
				c.logger.Warn("Remote delete failed, local deletion stands",
					slog.String("job_id", id),
					slog.String("remote_id", remoteID),
					slog.String("error", err.Error()),
				)
			}
		}()
	}
	return nil
}

// SetRemote swaps the remote client, e.g. after the user edits the
// connection settings. The connectivity flag resets until the next
// successful exchange.
func (c *Coordinator) SetRemote(rc Remote) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.remote = rc
	c.connected = false
}

// Flush cancels any pending debounce timer and pushes the current state
// synchronously. Called on shutdown so edits inside the debounce window
// are not lost. A push already in flight is waited out first: its
// snapshot may predate the latest edits, so the final push runs here
// with the current document.
func (c *Coordinator) Flush(ctx context.Context) {
	c.mu.Lock()
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	rc := c.remote
	if rc == nil || !rc.Configured() {
		c.mu.Unlock()
		return
	}
	for c.pushing {
		// This push supersedes any recorded rerun intent.
		c.rerun = false
		c.mu.Unlock()
		select {
		case <-ctx.Done():
			return
		case <-time.After(10 * time.Millisecond):
		}
		c.mu.Lock()
	}
	c.pushing = true
	c.syncing = true
	snapshot := c.doc.Clone()
	c.mu.Unlock()

	c.runPush(ctx, rc, snapshot)
}

// saveAndSchedule persists the document and resets the debounce timer.
// Callers hold the lock. Only one timer is ever pending; a new mutation
// inside the window restarts it.
func (c *Coordinator) saveAndSchedule() {
	c.store.SaveDocument(c.doc)
	if c.remote == nil || !c.remote.Configured() {
		return
	}
	if c.timer != nil {
		c.timer.Stop()
	}
	c.timer = time.AfterFunc(c.debounce, c.pushNow)
}

// pushNow starts a push unless one is already in flight, in which case it
// records the intent to run again once the current push settles.
func (c *Coordinator) pushNow() {
	c.mu.Lock()
	rc := c.remote
	if rc == nil || !rc.Configured() {
		c.mu.Unlock()
		return
	}
	if c.pushing {
		c.rerun = true
		c.mu.Unlock()
		return
	}
	c.pushing = true
	c.syncing = true
	snapshot := c.doc.Clone()
	c.mu.Unlock()

	c.runPush(context.Background(), rc, snapshot)
}

// runPush upserts every job of the snapshot in parallel, each failure
// caught per job so one bad row never blocks the rest, then saves the
// settings, and finally reconciles store-assigned row ids back into the
// live document in one step.
func (c *Coordinator) runPush(ctx context.Context, rc Remote, snapshot domain.Document) {
	results := make([]domain.Job, len(snapshot.Jobs))
	var wg stdsync.WaitGroup
	for i := range snapshot.Jobs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			job := snapshot.Jobs[i]
			pushed, err := rc.UpsertJob(ctx, job)
			if err != nil {
				c.logger.Warn("Job push failed, keeping local copy",
					slog.String("job_id", job.ID),
					slog.String("error", err.Error()),
				)
				results[i] = job
				return
			}
			results[i] = pushed
		}(i)
	}
	wg.Wait()

	if err := rc.SaveSettings(ctx, snapshot.Settings); err != nil {
		c.logger.Warn("Settings push failed",
			slog.String("error", err.Error()),
		)
	}

	c.mu.Lock()
	for _, pushed := range results {
		if pushed.RemoteID == "" {
			continue
		}
		if cur := c.doc.Job(pushed.ID); cur != nil {
			cur.RemoteID = pushed.RemoteID
		}
	}
	c.connected = true
	c.syncing = false
	c.pushing = false
	rerun := c.rerun
	c.rerun = false
	c.store.SaveDocument(c.doc)
	c.mu.Unlock()

	if rerun {
		c.pushNow()
	}
}
