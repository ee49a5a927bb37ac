// Package stats aggregates finished rounds in memory. Old rounds are folded
// into groups so a long session keeps a bounded number of records.
package stats

import (
	"sort"
	"sync"
	"time"

	"gridsnake/game"
)

// DefaultGroupSize is how many records of one level fold into one record of
// the next level.
const DefaultGroupSize = 100

// Record describes one round, or a group of rounds when Level > 0.
type Record struct {
	Start  time.Time `json:"start"`
	End    time.Time `json:"end"`
	Level  int       `json:"level"`
	Rounds int       `json:"rounds"`

	AvgScore    float64 `json:"avgScore"`
	MedianScore float64 `json:"medianScore"`
	MaxScore    int     `json:"maxScore"`
	MinScore    int     `json:"minScore"`

	AvgTicks float64 `json:"avgTicks"`
	MaxTicks uint64  `json:"maxTicks"`
	MinTicks uint64  `json:"minTicks"`

	Causes map[string]int `json:"causes"`
}

// Tracker turns the view stream of one game into round records. Observe is
// meant to be a runner subscriber; the getters are safe from other goroutines.
type Tracker struct {
	mutex     sync.RWMutex
	records   []Record
	groupSize int
	now       func() time.Time

	roundStart     time.Time
	roundStartTick uint64
	lastScore      int
}

func NewTracker(groupSize int) *Tracker {
	if groupSize < 2 {
		groupSize = DefaultGroupSize
	}
	return &Tracker{
		groupSize:  groupSize,
		now:        time.Now,
		roundStart: time.Now(),
	}
}

// Observe consumes the view of one tick. A reset view closes the round that
// was running before it; its score is the last one seen in that round.
func (t *Tracker) Observe(v game.View) {
	if !v.Reset {
		t.lastScore = v.Score
		return
	}

	end := t.now()
	t.add(v.Cause, t.lastScore, t.roundStart, end, v.Tick-t.roundStartTick)
	t.roundStart = end
	t.roundStartTick = v.Tick
	t.lastScore = 0
}

func (t *Tracker) add(cause string, score int, start, end time.Time, ticks uint64) {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	t.records = append(t.records, Record{
		Start:       start,
		End:         end,
		Rounds:      1,
		AvgScore:    float64(score),
		MedianScore: float64(score),
		MaxScore:    score,
		MinScore:    score,
		AvgTicks:    float64(ticks),
		MaxTicks:    ticks,
		MinTicks:    ticks,
		Causes:      map[string]int{cause: 1},
	})
	t.fold()
}

// fold merges every full run of groupSize records of a level into one record
// of the next level, cascading upwards.
func (t *Tracker) fold() {
	defer func() {
		sort.SliceStable(t.records, func(i, j int) bool {
			if t.records[i].Level != t.records[j].Level {
				return t.records[i].Level < t.records[j].Level
			}
			return t.records[i].Start.Before(t.records[j].Start)
		})
	}()

	for level := 0; ; level++ {
		var same, rest []Record
		for _, r := range t.records {
			if r.Level == level {
				same = append(same, r)
			} else {
				rest = append(rest, r)
			}
		}
		if len(same) < t.groupSize {
			return
		}

		var merged []Record
		for i := 0; i < len(same); i += t.groupSize {
			if i+t.groupSize > len(same) {
				merged = append(merged, same[i:]...)
				break
			}
			merged = append(merged, merge(same[i:i+t.groupSize], level+1))
		}
		t.records = append(rest, merged...)
	}
}

func merge(group []Record, level int) Record {
	out := Record{
		Start:    group[0].Start,
		End:      group[0].End,
		Level:    level,
		MaxScore: group[0].MaxScore,
		MinScore: group[0].MinScore,
		MaxTicks: group[0].MaxTicks,
		MinTicks: group[0].MinTicks,
		Causes:   make(map[string]int),
	}

	var totalScore, totalTicks float64
	medians := make([]float64, 0, len(group))
	for _, r := range group {
		out.MaxScore = max(out.MaxScore, r.MaxScore)
		out.MinScore = min(out.MinScore, r.MinScore)
		out.MaxTicks = max(out.MaxTicks, r.MaxTicks)
		out.MinTicks = min(out.MinTicks, r.MinTicks)
		if r.Start.Before(out.Start) {
			out.Start = r.Start
		}
		if r.End.After(out.End) {
			out.End = r.End
		}
		totalScore += r.AvgScore * float64(r.Rounds)
		totalTicks += r.AvgTicks * float64(r.Rounds)
		out.Rounds += r.Rounds
		for i := 0; i < r.Rounds; i++ {
			medians = append(medians, r.MedianScore)
		}
		for cause, n := range r.Causes {
			out.Causes[cause] += n
		}
	}

	out.AvgScore = totalScore / float64(out.Rounds)
	out.AvgTicks = totalTicks / float64(out.Rounds)
	out.MedianScore = median(medians)
	return out
}

func median(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sort.Float64s(values)
	mid := len(values) / 2
	if len(values)%2 == 0 {
		return (values[mid-1] + values[mid]) / 2
	}
	return values[mid]
}

// Records returns a copy of the current records, lowest level first.
func (t *Tracker) Records() []Record {
	t.mutex.RLock()
	defer t.mutex.RUnlock()

	out := make([]Record, len(t.records))
	copy(out, t.records)
	return out
}

// Summary is the aggregate over every finished round.
type Summary struct {
	Rounds      int            `json:"rounds"`
	AvgScore    float64        `json:"avgScore"`
	MedianScore float64        `json:"medianScore"`
	MaxScore    int            `json:"maxScore"`
	AvgTicks    float64        `json:"avgTicks"`
	MaxTicks    uint64         `json:"maxTicks"`
	Causes      map[string]int `json:"causes"`
}

func (t *Tracker) Summary() Summary {
	t.mutex.RLock()
	defer t.mutex.RUnlock()

	s := Summary{Causes: make(map[string]int)}
	if len(t.records) == 0 {
		return s
	}

	var totalScore, totalTicks float64
	medians := make([]float64, 0)
	for _, r := range t.records {
		s.Rounds += r.Rounds
		s.MaxScore = max(s.MaxScore, r.MaxScore)
		s.MaxTicks = max(s.MaxTicks, r.MaxTicks)
		totalScore += r.AvgScore * float64(r.Rounds)
		totalTicks += r.AvgTicks * float64(r.Rounds)
		for i := 0; i < r.Rounds; i++ {
			medians = append(medians, r.MedianScore)
		}
		for cause, n := range r.Causes {
			s.Causes[cause] += n
		}
	}
	s.AvgScore = totalScore / float64(s.Rounds)
	s.AvgTicks = totalTicks / float64(s.Rounds)
	s.MedianScore = median(medians)
	return s
}
