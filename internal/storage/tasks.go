package storage

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"strconv"
	"time"

	"taskflow/internal/task"
)

const (
	// TasksKey holds the serialized task list.
	TasksKey = "taskflow_tasks"

	saveTimeout = 5 * time.Second
)

// record is the persisted shape of a task. Removing is never written.
type record struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Tag   string `json:"tag"`
	Done  bool   `json:"done"`
	Date  string `json:"date"`
}

// TaskRepo mirrors the task list to a single key of a KV. Load and Save never
// return errors: failures are logged and the caller keeps its in-memory list.
type TaskRepo struct {
	kv     KV
	key    string
	logger *log.Logger

	// LastErr records the most recent persistence failure, or nil.
	LastErr error
}

// NewTaskRepo stores tasks under key, TasksKey when empty. A nil logger
// discards diagnostics.
func NewTaskRepo(kv KV, key string, logger *log.Logger) *TaskRepo {
	if key == "" {
		key = TasksKey
	}
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &TaskRepo{kv: kv, key: key, logger: logger}
}

// Load returns the stored list, or an empty list when the blob is absent,
// unreadable, or not an array of task records.
func (r *TaskRepo) Load(ctx context.Context) []task.Task {
	data, err := r.kv.Get(ctx, r.key)
	if errors.Is(err, ErrNotFound) {
		return []task.Task{}
	}
	if err != nil {
		r.fail(PersistenceError{Op: "read", Key: r.key, Err: err})
		return []task.Task{}
	}

	tasks, err := Decode(data)
	if err != nil {
		r.logger.Printf("discarding stored tasks under %s: %v", r.key, err)
		return []task.Task{}
	}
	return tasks
}

// Save implements task.Persister.
func (r *TaskRepo) Save(tasks []task.Task) {
	ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
	defer cancel()
	r.SaveContext(ctx, tasks)
}

// SaveContext writes tasks, skipping any that are inside their undo window.
func (r *TaskRepo) SaveContext(ctx context.Context, tasks []task.Task) {
	data, err := Encode(tasks)
	if err != nil {
		r.fail(PersistenceError{Op: "encode", Key: r.key, Err: err})
		return
	}
	if err := r.kv.Set(ctx, r.key, data); err != nil {
		r.fail(PersistenceError{Op: "write", Key: r.key, Err: err})
		return
	}
	r.LastErr = nil
}

func (r *TaskRepo) fail(err error) {
	r.LastErr = err
	r.logger.Printf("%v", err)
}

// Encode serializes tasks in the persisted layout, dropping removing tasks.
func Encode(tasks []task.Task) ([]byte, error) {
	records := make([]record, 0, len(tasks))
	for _, t := range tasks {
		if t.Removing {
			continue
		}
		records = append(records, record{
			ID:    t.ID,
			Title: t.Title,
			Tag:   string(t.Tag),
			Done:  t.Done,
			Date:  t.Date,
		})
	}
	return json.Marshal(records)
}

// Decode parses the persisted layout. Any malformed entry rejects the whole blob.
func Decode(data []byte) ([]task.Task, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	tasks := make([]task.Task, 0, len(raw))
	seen := make(map[string]struct{}, len(raw))
	for i, item := range raw {
		var rec record
		if err := json.Unmarshal(item, &rec); err != nil {
			return nil, &decodeError{index: i, reason: err.Error()}
		}
		if rec.ID == "" {
			return nil, &decodeError{index: i, reason: "missing id"}
		}
		if _, dup := seen[rec.ID]; dup {
			return nil, &decodeError{index: i, reason: "duplicate id " + rec.ID}
		}
		seen[rec.ID] = struct{}{}
		tasks = append(tasks, task.Task{
			ID:    rec.ID,
			Title: rec.Title,
			Tag:   task.Tag(rec.Tag),
			Done:  rec.Done,
			Date:  rec.Date,
		})
	}
	return tasks, nil
}

type decodeError struct {
	index  int
	reason string
}

func (e *decodeError) Error() string {
	return "entry " + strconv.Itoa(e.index) + ": " + e.reason
}
