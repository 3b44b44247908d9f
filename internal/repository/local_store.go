package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/alexanderramin/tidsplan/internal/domain"
)

// LocalStore keeps tasks and settings in a single JSON file. It backs the
// offline demo mode and serves the same repository interfaces as SQLite.
// An empty path keeps everything in memory.
type LocalStore struct {
	mu   sync.Mutex
	path string
	log  *slog.Logger
	now  func() time.Time
	data localData
}

type localData struct {
	Tasks    map[string][]domain.Task              `json:"tasks"`
	Settings map[string]map[string]json.RawMessage `json:"settings"`
}

// OpenLocalStore loads the store at path, starting empty if the file does
// not exist yet.
func OpenLocalStore(path string, log *slog.Logger) (*LocalStore, error) {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	s := &LocalStore{
		path: path,
		log:  log,
		now:  nowUTC,
		data: localData{
			Tasks:    map[string][]domain.Task{},
			Settings: map[string]map[string]json.RawMessage{},
		},
	}
	if path == "" {
		return s, nil
	}
	raw, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading local store: %w", err)
	}
	if len(raw) == 0 {
		return s, nil
	}
	if err := json.Unmarshal(raw, &s.data); err != nil {
		return nil, fmt.Errorf("decoding local store %s: %w", path, err)
	}
	if s.data.Tasks == nil {
		s.data.Tasks = map[string][]domain.Task{}
	}
	if s.data.Settings == nil {
		s.data.Settings = map[string]map[string]json.RawMessage{}
	}
	return s, nil
}

// Tasks returns the task repository view of the store.
func (s *LocalStore) Tasks() *LocalTaskRepo { return &LocalTaskRepo{s: s} }

// Settings returns the settings repository view of the store.
func (s *LocalStore) Settings() *LocalSettingsRepo { return &LocalSettingsRepo{s: s} }

// persist writes the file through a temp file and rename. Callers hold mu.
func (s *LocalStore) persist() error {
	if s.path == "" {
		return nil
	}
	raw, err := json.MarshalIndent(s.data, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding local store: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("creating local store directory: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o600); err != nil {
		return fmt.Errorf("writing local store: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replacing local store: %w", err)
	}
	return nil
}

func (s *LocalStore) index(owner, id string) int {
	for i, t := range s.data.Tasks[owner] {
		if t.ID == id {
			return i
		}
	}
	return -1
}

// LocalTaskRepo implements TaskRepo on a LocalStore.
type LocalTaskRepo struct {
	s *LocalStore
}

func (r *LocalTaskRepo) List(_ context.Context, owner string, includeDeleted bool) ([]domain.Task, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	tasks := []domain.Task{}
	for _, t := range r.s.data.Tasks[owner] {
		if t.Deleted && !includeDeleted {
			continue
		}
		tasks = append(tasks, normalizeRead(r.s.log, t))
	}
	return tasks, nil
}

func (r *LocalTaskRepo) Get(_ context.Context, owner, id string) (domain.Task, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	i := r.s.index(owner, id)
	if i < 0 {
		return domain.Task{}, fmt.Errorf("task %s: %w", id, ErrNotFound)
	}
	return normalizeRead(r.s.log, r.s.data.Tasks[owner][i]), nil
}

func (r *LocalTaskRepo) Create(_ context.Context, t domain.Task) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if r.s.index(t.Owner, t.ID) >= 0 {
		return fmt.Errorf("inserting task: id %s already exists", t.ID)
	}
	r.s.data.Tasks[t.Owner] = append(r.s.data.Tasks[t.Owner], prepareCreate(t, r.s.now()))
	return r.s.persist()
}

func (r *LocalTaskRepo) Update(_ context.Context, owner, id string, patch domain.TaskPatch) (domain.Task, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	i := r.s.index(owner, id)
	if i < 0 {
		return domain.Task{}, fmt.Errorf("task %s: %w", id, ErrNotFound)
	}
	current := normalizeRead(r.s.log, r.s.data.Tasks[owner][i])
	next := applyUpdate(current, patch, r.s.now())
	r.s.data.Tasks[owner][i] = next
	if err := r.s.persist(); err != nil {
		return domain.Task{}, err
	}
	return next, nil
}

func (r *LocalTaskRepo) SoftDelete(_ context.Context, owner, id string, at time.Time) error {
	return r.mutate(owner, id, func(t *domain.Task) { t.MarkDeleted(at.UTC()) })
}

func (r *LocalTaskRepo) Restore(_ context.Context, owner, id string, at time.Time) error {
	return r.mutate(owner, id, func(t *domain.Task) { t.Restore(at.UTC()) })
}

func (r *LocalTaskRepo) PermanentlyDelete(_ context.Context, owner, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	i := r.s.index(owner, id)
	if i < 0 {
		return fmt.Errorf("task %s: %w", id, ErrNotFound)
	}
	tasks := r.s.data.Tasks[owner]
	r.s.data.Tasks[owner] = append(tasks[:i:i], tasks[i+1:]...)
	return r.s.persist()
}

func (r *LocalTaskRepo) PurgeDeletedBefore(_ context.Context, cutoff time.Time) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	purged := 0
	for owner, tasks := range r.s.data.Tasks {
		kept := tasks[:0:0]
		for _, t := range tasks {
			if t.Deleted && t.DeletedAt != nil && t.DeletedAt.Before(cutoff) {
				purged++
				continue
			}
			kept = append(kept, t)
		}
		r.s.data.Tasks[owner] = kept
	}
	if purged == 0 {
		return 0, nil
	}
	return purged, r.s.persist()
}

func (r *LocalTaskRepo) mutate(owner, id string, fn func(*domain.Task)) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	i := r.s.index(owner, id)
	if i < 0 {
		return fmt.Errorf("task %s: %w", id, ErrNotFound)
	}
	t := normalizeRead(r.s.log, r.s.data.Tasks[owner][i])
	fn(&t)
	r.s.data.Tasks[owner][i] = t
	return r.s.persist()
}

// LocalSettingsRepo implements SettingsRepo on a LocalStore.
type LocalSettingsRepo struct {
	s *LocalStore
}

func (r *LocalSettingsRepo) Get(_ context.Context, owner, key string) (json.RawMessage, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	v, ok := r.s.data.Settings[owner][key]
	if !ok {
		return nil, fmt.Errorf("setting %s: %w", key, ErrNotFound)
	}
	return append(json.RawMessage(nil), v...), nil
}

func (r *LocalSettingsRepo) Set(_ context.Context, owner, key string, value json.RawMessage) error {
	if !json.Valid(value) {
		return fmt.Errorf("setting %s: value is not valid JSON", key)
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if r.s.data.Settings[owner] == nil {
		r.s.data.Settings[owner] = map[string]json.RawMessage{}
	}
	r.s.data.Settings[owner][key] = append(json.RawMessage(nil), value...)
	return r.s.persist()
}

func (r *LocalSettingsRepo) Delete(_ context.Context, owner, key string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	delete(r.s.data.Settings[owner], key)
	return r.s.persist()
}
