package jobs

import (
	"context"
	"sync"
	"time"

	"github.com/Akash114/SarthiAI/internal/reminder"
	"github.com/Akash114/SarthiAI/internal/rollingwave"
	"github.com/Akash114/SarthiAI/internal/types"
)

// MemorySource is an in-memory WeeklySource and ReminderSource. The
// worker uses it until a persistence integration supplies real
// sources; tests use it directly.
type MemorySource struct {
	mu        sync.Mutex
	users     map[types.ID]*memoryUser
	weekPlans map[types.ID]*rollingwave.WeekPlan
}

type memoryUser struct {
	prefs Preferences
	goals []string
	stats rollingwave.WeeklyStats
	tasks []reminder.TaskRef
}

// NewMemorySource creates an empty MemorySource.
func NewMemorySource() *MemorySource {
	return &MemorySource{
		users:     make(map[types.ID]*memoryUser),
		weekPlans: make(map[types.ID]*rollingwave.WeekPlan),
	}
}

// AddUser registers a user with goals and trailing-week stats.
func (s *MemorySource) AddUser(userID types.ID, goals []string, stats rollingwave.WeeklyStats) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[userID] = &memoryUser{
		prefs: DefaultPreferences(),
		goals: goals,
		stats: stats,
	}
}

// SetPreferences overrides a user's preferences.
func (s *MemorySource) SetPreferences(userID types.ID, prefs Preferences) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u, ok := s.users[userID]; ok {
		u.prefs = prefs
	}
}

// AddTask registers a scheduled task for the reminder job.
func (s *MemorySource) AddTask(task reminder.TaskRef) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[task.UserID]
	if !ok {
		u = &memoryUser{prefs: DefaultPreferences()}
		s.users[task.UserID] = u
	}
	u.tasks = append(u.tasks, task)
}

// WeekPlan returns the last saved week plan for a user.
func (s *MemorySource) WeekPlan(userID types.ID) (*rollingwave.WeekPlan, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	week, ok := s.weekPlans[userID]
	return week, ok
}

// ActiveUsers implements WeeklySource.
func (s *MemorySource) ActiveUsers(ctx context.Context) ([]types.ID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := make([]types.ID, 0, len(s.users))
	for id := range s.users {
		ids = append(ids, id)
	}
	return ids, nil
}

// Preferences implements WeeklySource and ReminderSource.
func (s *MemorySource) Preferences(ctx context.Context, userID types.ID) (Preferences, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u, ok := s.users[userID]; ok {
		return u.prefs, nil
	}
	return DefaultPreferences(), nil
}

// WeeklyInput implements WeeklySource.
func (s *MemorySource) WeeklyInput(ctx context.Context, userID types.ID) (rollingwave.Input, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	in := rollingwave.Input{UserID: userID}
	if u, ok := s.users[userID]; ok {
		in.Stats = u.stats
		in.GoalTitles = append([]string(nil), u.goals...)
	}
	return in, nil
}

// SaveWeekPlan implements WeeklySource.
func (s *MemorySource) SaveWeekPlan(ctx context.Context, userID types.ID, week *rollingwave.WeekPlan) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.weekPlans[userID] = week
	return nil
}

// UpcomingTasks implements ReminderSource.
func (s *MemorySource) UpcomingTasks(ctx context.Context, windowStart, windowEnd time.Time) ([]reminder.TaskRef, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []reminder.TaskRef
	for _, u := range s.users {
		for _, task := range u.tasks {
			if task.ScheduledAt.Before(windowStart) || task.ScheduledAt.After(windowEnd) {
				continue
			}
			out = append(out, task)
		}
	}
	return out, nil
}

// GoalTitles implements ReminderSource.
func (s *MemorySource) GoalTitles(ctx context.Context, userID types.ID) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u, ok := s.users[userID]; ok {
		titles := u.goals
		if len(titles) > 3 {
			titles = titles[:3]
		}
		return append([]string(nil), titles...), nil
	}
	return nil, nil
}

// MarkReminded implements ReminderSource.
func (s *MemorySource) MarkReminded(ctx context.Context, taskID types.ID, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		for i := range u.tasks {
			if u.tasks[i].ID == taskID {
				stamp := at
				u.tasks[i].RemindedAt = &stamp
				return nil
			}
		}
	}
	return nil
}
