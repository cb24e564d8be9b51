package task

import (
	"errors"
	"fmt"
	"reflect"
	"testing"
	"time"
)

const day = "2026-02-28"

type recordingPersister struct {
	saves [][]Task
}

func (r *recordingPersister) Save(tasks []Task) {
	r.saves = append(r.saves, tasks)
}

func (r *recordingPersister) last() []Task {
	if len(r.saves) == 0 {
		return nil
	}
	return r.saves[len(r.saves)-1]
}

func sequentialIDs() func(time.Time, func(string) bool) string {
	n := 0
	return func(_ time.Time, exists func(string) bool) string {
		for {
			n++
			id := fmt.Sprintf("t%d", n)
			if !exists(id) {
				return id
			}
		}
	}
}

func newTestStore(tasks ...Task) (*Store, *recordingPersister) {
	p := &recordingPersister{}
	return NewStore(tasks, WithPersister(p), WithIDFunc(sequentialIDs())), p
}

func TestAddPrependsToDate(t *testing.T) {
	s, p := newTestStore()

	titles := []string{"first", "  second  ", "third"}
	for i, title := range titles {
		before := len(s.TasksForDate(day))
		created, err := s.Add(title, TagGeneral, day)
		if err != nil {
			t.Fatalf("Add(%q) failed: %v", title, err)
		}
		got := s.TasksForDate(day)
		if len(got) != before+1 {
			t.Fatalf("after add %d: len = %d, want %d", i, len(got), before+1)
		}
		if got[0].ID != created.ID {
			t.Errorf("new task is not first: got %q, want %q", got[0].ID, created.ID)
		}
	}

	if got := s.TasksForDate(day)[1].Title; got != "second" {
		t.Errorf("title not trimmed: %q", got)
	}
	if len(p.saves) != 3 {
		t.Errorf("saves = %d, want 3", len(p.saves))
	}
}

func TestAddRejectsBlankTitle(t *testing.T) {
	s, p := newTestStore(Task{ID: "a", Title: "keep", Tag: TagGeneral, Date: day})

	for _, title := range []string{"", "   ", "\t\n"} {
		if _, err := s.Add(title, TagGeneral, day); !errors.Is(err, ErrEmptyTitle) {
			t.Errorf("Add(%q) err = %v, want ErrEmptyTitle", title, err)
		}
	}
	if s.Len() != 1 {
		t.Errorf("collection changed: len = %d", s.Len())
	}
	if len(p.saves) != 0 {
		t.Errorf("rejected add persisted %d times", len(p.saves))
	}
}

func TestAddValidatesTagAndDate(t *testing.T) {
	s, _ := newTestStore()

	created, err := s.Add("no tag", "", day)
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if created.Tag != DefaultTag {
		t.Errorf("Tag = %q, want %q", created.Tag, DefaultTag)
	}

	var tagErr InvalidTagError
	if _, err := s.Add("x", Tag("Chores"), day); !errors.As(err, &tagErr) {
		t.Errorf("err = %v, want InvalidTagError", err)
	}
	var dateErr InvalidDateError
	if _, err := s.Add("x", TagGeneral, "2026-02-30"); !errors.As(err, &dateErr) {
		t.Errorf("err = %v, want InvalidDateError", err)
	}
}

func TestGeneratedIDsAreUnique(t *testing.T) {
	s := NewStore(nil)
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		created, err := s.Add(fmt.Sprintf("task %d", i), TagGeneral, day)
		if err != nil {
			t.Fatalf("Add failed: %v", err)
		}
		if seen[created.ID] {
			t.Fatalf("duplicate id %q", created.ID)
		}
		seen[created.ID] = true
	}
}

func TestToggleIsInvolution(t *testing.T) {
	s, _ := newTestStore(Task{ID: "a", Title: "x", Tag: TagGeneral, Date: day})

	first, err := s.Toggle("a")
	if err != nil {
		t.Fatalf("Toggle failed: %v", err)
	}
	if !first.Task.Done || !first.Completed {
		t.Errorf("first toggle = %+v, want done and completed", first)
	}

	second, err := s.Toggle("a")
	if err != nil {
		t.Fatalf("Toggle failed: %v", err)
	}
	if second.Task.Done || second.Completed {
		t.Errorf("second toggle = %+v, want not done and not completed", second)
	}
}

func TestToggleUnknownID(t *testing.T) {
	s, p := newTestStore()
	_, err := s.Toggle("missing")
	var nf NotFoundError
	if !errors.As(err, &nf) || nf.ID != "missing" {
		t.Errorf("err = %v, want NotFoundError{missing}", err)
	}
	if len(p.saves) != 0 {
		t.Error("failed toggle should not persist")
	}
}

func TestSoftDeleteHidesFromViews(t *testing.T) {
	s, p := newTestStore(
		Task{ID: "a", Title: "a", Tag: TagGeneral, Date: day},
		Task{ID: "b", Title: "b", Tag: TagGeneral, Date: "2026-03-01"},
	)

	h, err := s.SoftDelete("b")
	if err != nil {
		t.Fatalf("SoftDelete failed: %v", err)
	}
	if h.Index != 1 || h.Task.ID != "b" || h.Task.Removing {
		t.Errorf("handle = %+v", h)
	}
	if s.Len() != 2 {
		t.Errorf("soft delete dropped the task: len = %d", s.Len())
	}
	if got := s.TasksForDate("2026-03-01"); len(got) != 0 {
		t.Errorf("removing task still visible: %v", got)
	}
	if _, ok := s.DatesWithTasks()["2026-03-01"]; ok {
		t.Error("removing task still marks its date")
	}
	if n := s.PendingCountForDate("2026-03-01"); n != 0 {
		t.Errorf("pending = %d, want 0", n)
	}
	for _, saved := range p.last() {
		if saved.ID == "b" && !saved.Removing {
			// The store hands the full list over; filtering is the adapter's job.
			t.Error("persisted copy lost its removing flag")
		}
	}
}

func TestSoftDeleteThenRestore(t *testing.T) {
	s, _ := newTestStore(
		Task{ID: "a", Title: "a", Tag: TagGeneral, Date: day},
		Task{ID: "b", Title: "b", Tag: TagDesign, Date: day, Done: true},
		Task{ID: "c", Title: "c", Tag: TagGeneral, Date: day},
	)
	before := s.TasksForDate(day)

	h, err := s.SoftDelete("b")
	if err != nil {
		t.Fatalf("SoftDelete failed: %v", err)
	}
	if !s.Restore(h) {
		t.Fatal("Restore reported no change")
	}
	if got := s.TasksForDate(day); !reflect.DeepEqual(got, before) {
		t.Errorf("after restore = %v, want %v", got, before)
	}
	if s.Restore(h) {
		t.Error("second Restore should be a no-op")
	}
	if s.Len() != 3 {
		t.Errorf("len = %d, want 3", s.Len())
	}
}

func TestRestoreReinsertsAtClampedIndex(t *testing.T) {
	s, _ := newTestStore(
		Task{ID: "a", Title: "a", Tag: TagGeneral, Date: day},
		Task{ID: "b", Title: "b", Tag: TagGeneral, Date: day},
		Task{ID: "c", Title: "c", Tag: TagGeneral, Date: day},
	)

	hb, _ := s.SoftDelete("b")
	s.CommitDelete("b")
	if !s.Restore(hb) {
		t.Fatal("Restore of committed task failed")
	}
	if got := ids(s.Tasks()); !reflect.DeepEqual(got, []string{"a", "b", "c"}) {
		t.Errorf("order = %v", got)
	}

	hc, _ := s.SoftDelete("c")
	s.CommitDelete("c")
	hb2, _ := s.SoftDelete("b")
	s.CommitDelete("b")
	s.Restore(hc)
	if got := ids(s.Tasks()); !reflect.DeepEqual(got, []string{"a", "c"}) {
		t.Errorf("order after clamped restore = %v", got)
	}
	s.Restore(hb2)
	if got := ids(s.Tasks()); !reflect.DeepEqual(got, []string{"a", "b", "c"}) {
		t.Errorf("order = %v", got)
	}
}

func TestCommitDeleteIsIdempotent(t *testing.T) {
	s, p := newTestStore(Task{ID: "a", Title: "a", Tag: TagGeneral, Date: day})

	if s.CommitDelete("a") {
		t.Error("CommitDelete removed a task that was not marked removing")
	}
	if _, err := s.SoftDelete("a"); err != nil {
		t.Fatalf("SoftDelete failed: %v", err)
	}
	saves := len(p.saves)
	if !s.CommitDelete("a") {
		t.Fatal("CommitDelete did not remove the task")
	}
	if s.CommitDelete("a") {
		t.Error("second CommitDelete should be a no-op")
	}
	if len(p.saves) != saves+1 {
		t.Errorf("saves = %d, want %d", len(p.saves), saves+1)
	}
	if s.Len() != 0 {
		t.Errorf("len = %d, want 0", s.Len())
	}
}

func TestStreak(t *testing.T) {
	s, _ := newTestStore(
		Task{ID: "1", Date: "2026-02-28", Done: true},
		Task{ID: "2", Date: "2026-02-27", Done: true},
		Task{ID: "3", Date: "2026-02-27", Done: false},
		Task{ID: "4", Date: "2026-02-26", Done: true},
		Task{ID: "5", Date: "2026-02-25", Done: false},
		Task{ID: "6", Date: "2026-02-24", Done: true},
	)
	tests := []struct {
		ref  string
		want int
	}{
		{"2026-02-28", 3},
		{"2026-02-26", 1},
		{"2026-02-25", 0},
		{"2026-03-01", 0},
		{"garbage", 0},
	}
	for _, tt := range tests {
		t.Run(tt.ref, func(t *testing.T) {
			if got := s.Streak(tt.ref); got != tt.want {
				t.Errorf("Streak(%s) = %d, want %d", tt.ref, got, tt.want)
			}
		})
	}
}

func TestStreakCountsRemovingTasks(t *testing.T) {
	s, _ := newTestStore(Task{ID: "1", Date: day, Done: true})
	if _, err := s.SoftDelete("1"); err != nil {
		t.Fatalf("SoftDelete failed: %v", err)
	}
	if got := s.Streak(day); got != 1 {
		t.Errorf("Streak = %d, want 1", got)
	}
}

func TestStreakIsBounded(t *testing.T) {
	var tasks []Task
	d := time.Date(2026, 2, 28, 0, 0, 0, 0, time.Local)
	for i := 0; i < MaxStreakDays+30; i++ {
		key := d.AddDate(0, 0, -i).Format("2006-01-02")
		tasks = append(tasks, Task{ID: key, Date: key, Done: true})
	}
	s, _ := newTestStore(tasks...)
	if got := s.Streak(day); got != MaxStreakDays {
		t.Errorf("Streak = %d, want %d", got, MaxStreakDays)
	}
}

func TestProgress(t *testing.T) {
	s, _ := newTestStore(
		Task{ID: "1", Date: day, Done: true},
		Task{ID: "2", Date: day},
		Task{ID: "3", Date: day},
		Task{ID: "4", Date: "2026-03-01", Done: true},
	)
	got := s.Progress(day)
	want := Progress{Total: 3, Completed: 1, Percent: 33, Complete: false}
	if got != want {
		t.Errorf("Progress = %+v, want %+v", got, want)
	}

	if got := s.Progress("2026-03-01"); !got.Complete || got.Percent != 100 {
		t.Errorf("Progress = %+v, want complete", got)
	}
	if got := s.Progress("2026-01-01"); got != (Progress{}) {
		t.Errorf("empty day Progress = %+v", got)
	}

	s.Toggle("2")
	if got := s.Progress(day); got.Percent != 67 {
		t.Errorf("Percent = %d, want 67", got.Percent)
	}
}

func TestBuyMilkScenario(t *testing.T) {
	s, _ := newTestStore()

	created, err := s.Add("Buy milk", TagGeneral, day)
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	got := s.TasksForDate(day)
	if len(got) != 1 || got[0].Title != "Buy milk" || got[0].Done {
		t.Fatalf("TasksForDate = %+v", got)
	}

	if _, err := s.Toggle(created.ID); err != nil {
		t.Fatalf("Toggle failed: %v", err)
	}
	if n := s.PendingCountForDate(day); n != 0 {
		t.Errorf("pending = %d, want 0", n)
	}

	h, err := s.SoftDelete(created.ID)
	if err != nil {
		t.Fatalf("SoftDelete failed: %v", err)
	}
	s.Restore(h)
	got = s.TasksForDate(day)
	if len(got) != 1 || !got[0].Done {
		t.Errorf("after undo = %+v, want done task", got)
	}
}

func TestParseTag(t *testing.T) {
	tests := []struct {
		in      string
		want    Tag
		wantErr bool
	}{
		{"", TagGeneral, false},
		{"meeting", TagMeeting, false},
		{" Design ", TagDesign, false},
		{"chores", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseTag(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseTag(%q) err = %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseTag(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
	if NextTag(TagMeeting) != TagGeneral {
		t.Error("NextTag should wrap")
	}
}

func ids(tasks []Task) []string {
	out := make([]string, len(tasks))
	for i, t := range tasks {
		out[i] = t.ID
	}
	return out
}
