package models

// Aggregate views produced by the analytics layer. All of them are
// derived read-only from the developers and tasks tables; field names
// match the JSON the dashboard consumes.

type StatusCount struct {
	Status TaskStatus `json:"status" db:"status"`
	Count  int        `json:"count" db:"count"`
}

type PriorityCount struct {
	Priority TaskPriority `json:"priority" db:"priority"`
	Count    int          `json:"count" db:"count"`
}

type TeamOverview struct {
	TotalTasks      int     `json:"total_tasks"`
	CompletedTasks  int     `json:"completed_tasks"`
	InProgressTasks int     `json:"in_progress_tasks"`
	TotalDevelopers int     `json:"total_developers"`
	CompletionRate  float64 `json:"completion_rate"`
}

type TeamPerformance struct {
	AvgCompletionTime float64 `json:"avg_completion_time"`
	TotalHoursLogged  float64 `json:"total_hours_logged"`
}

type TeamMetrics struct {
	Overview        TeamOverview    `json:"overview"`
	TasksByStatus   []StatusCount   `json:"tasks_by_status"`
	TasksByPriority []PriorityCount `json:"tasks_by_priority"`
	Performance     TeamPerformance `json:"performance"`
}

// SprintVelocity is one velocity group; difficulty doubles as story
// points here.
type SprintVelocity struct {
	SprintNumber         int `json:"sprint_number" db:"sprint_number"`
	TotalTasks           int `json:"total_tasks" db:"total_tasks"`
	CompletedTasks       int `json:"completed_tasks" db:"completed_tasks"`
	StoryPointsCompleted int `json:"story_points_completed" db:"story_points_completed"`
	TotalStoryPoints     int `json:"total_story_points" db:"total_story_points"`
}

// BottleneckTask is a task stuck in review/testing past the threshold,
// with the assignee name attached (nil when unassigned).
type BottleneckTask struct {
	Task
	DeveloperName *string `json:"developer_name" db:"developer_name"`
	DaysStuck     int     `json:"days_stuck" db:"-"`
}

// LeaderboardEntry ranks a developer by all-time completed tasks, then
// current streak. CompletedThisSprint intentionally carries no sprint
// filter; it is the all-time completed count of currently assigned
// tasks, kept under the name the dashboard expects.
type LeaderboardEntry struct {
	ID                  string        `json:"id" db:"id"`
	Name                string        `json:"name" db:"name"`
	AvatarURL           string        `json:"avatar_url" db:"avatar_url"`
	Role                DeveloperRole `json:"role" db:"role"`
	Skills              SkillMap      `json:"skills" db:"skills"`
	AchievementBadges   BadgeList     `json:"achievement_badges" db:"achievement_badges"`
	TotalTasksCompleted int           `json:"total_tasks_completed" db:"total_tasks_completed"`
	CurrentStreak       int           `json:"current_streak" db:"current_streak"`
	FocusTimeToday      int           `json:"focus_time_today" db:"focus_time_today"`
	ActiveTasks         int           `json:"active_tasks" db:"active_tasks"`
	CompletedThisSprint int           `json:"completed_this_sprint" db:"completed_this_sprint"`
	Rank                int           `json:"rank" db:"-"`
}

// DeveloperLoad is one row of the per-developer task distribution.
type DeveloperLoad struct {
	Name            string  `json:"name" db:"name"`
	AvatarURL       string  `json:"avatar_url" db:"avatar_url"`
	TotalTasks      int     `json:"total_tasks" db:"total_tasks"`
	Completed       int     `json:"completed" db:"completed"`
	InProgress      int     `json:"in_progress" db:"in_progress"`
	Pending         int     `json:"pending" db:"pending"`
	AvgHoursPerTask float64 `json:"avg_hours_per_task" db:"avg_hours_per_task"`
}

// StatusHours is a per-status count with summed actual hours, used by
// the developer stats endpoint.
type StatusHours struct {
	Status     TaskStatus `json:"status" db:"status"`
	Count      int        `json:"count" db:"count"`
	TotalHours float64    `json:"total_hours" db:"total_hours"`
}

type DeveloperStats struct {
	Developer        Developer     `json:"developer"`
	TasksByStatus    []StatusHours `json:"tasks_by_status"`
	TotalHoursLogged float64       `json:"total_hours_logged"`
}
