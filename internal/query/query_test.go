package query

import (
	"reflect"
	"testing"

	"taskflow/internal/task"
)

func sample() []task.Task {
	return []task.Task{
		{ID: "1", Title: "Team meeting", Date: "2026-02-28"},
		{ID: "2", Title: "Buy milk", Date: "2026-02-28"},
		{ID: "3", Title: "Meet the designer", Date: "2026-02-28"},
	}
}

func TestFilterBlankIsIdentity(t *testing.T) {
	in := sample()
	for _, term := range []string{"", "   "} {
		if got := Filter(in, term); !reflect.DeepEqual(got, in) {
			t.Errorf("Filter(%q) = %v, want input unchanged", term, got)
		}
	}
}

func TestFilterCaseInsensitive(t *testing.T) {
	tests := []struct {
		term string
		want []string
	}{
		{"MEET", []string{"1", "3"}},
		{"milk", []string{"2"}},
		{"team m", []string{"1"}},
		{"xyz", nil},
	}
	for _, tt := range tests {
		t.Run(tt.term, func(t *testing.T) {
			var got []string
			for _, task := range Filter(sample(), tt.term) {
				got = append(got, task.ID)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Filter(%q) = %v, want %v", tt.term, got, tt.want)
			}
		})
	}
}

func TestDayScopesBeforeFiltering(t *testing.T) {
	s := task.NewStore([]task.Task{
		{ID: "a", Title: "Team meeting", Tag: task.TagMeeting, Date: "2026-02-28"},
		{ID: "b", Title: "Team meeting", Tag: task.TagMeeting, Date: "2026-03-01"},
	})
	got := Day(s, "2026-02-28", "meeting")
	if len(got) != 1 || got[0].ID != "a" {
		t.Errorf("Day = %v", got)
	}
}
