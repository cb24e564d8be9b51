package task

import "taskflow/internal/dates"

// MaxStreakDays bounds the backward walk of Streak.
const MaxStreakDays = 365

// Streak counts consecutive days, walking back from referenceDate inclusive,
// that have at least one done task. Tasks inside their undo window still
// count: completion history outlives a delete that may yet be undone.
func (s *Store) Streak(referenceDate string) int {
	day, err := dates.Parse(referenceDate)
	if err != nil {
		return 0
	}
	completed := make(map[string]struct{})
	for _, t := range s.tasks {
		if t.Done {
			completed[t.Date] = struct{}{}
		}
	}

	streak := 0
	for streak < MaxStreakDays {
		if _, ok := completed[dates.FromTime(day)]; !ok {
			break
		}
		streak++
		day = day.AddDate(0, 0, -1)
	}
	return streak
}

// Progress summarises one day's visible tasks.
type Progress struct {
	Total     int
	Completed int
	Percent   int
	Complete  bool
}

// Progress returns the completion ratio of the visible tasks on date.
func (s *Store) Progress(date string) Progress {
	var p Progress
	for _, t := range s.tasks {
		if t.Date != date || t.Removing {
			continue
		}
		p.Total++
		if t.Done {
			p.Completed++
		}
	}
	if p.Total > 0 {
		p.Percent = (p.Completed*200 + p.Total) / (p.Total * 2)
		p.Complete = p.Completed == p.Total
	}
	return p
}
