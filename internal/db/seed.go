package db

import (
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"devflow/internal/models"
)

// Seed loads a small demo team into an empty database so a fresh local
// install renders a non-empty dashboard. It is a no-op when any
// developer already exists.
func Seed(db *sqlx.DB) error {
	var count int
	if err := db.Get(&count, "SELECT COUNT(*) FROM developers"); err != nil {
		return fmt.Errorf("checking for existing data: %w", err)
	}
	if count > 0 {
		return nil
	}
	log.Printf("[db][seed] empty database, loading demo data")

	now := time.Now().UTC()
	developers := []models.Developer{
		{
			ID:        uuid.New().String(),
			Name:      "Alex Johnson",
			Email:     "alex@devflow.com",
			AvatarURL: "https://api.dicebear.com/7.x/avataaars/svg?seed=Alex",
			Role:      models.RoleFullstack,
			Skills:    models.SkillMap{"react": 9, "nodejs": 8, "python": 7, "docker": 6},
			JoinedDate: time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
			TotalTasksCompleted: 45,
			CurrentStreak:       7,
			AchievementBadges:   models.BadgeList{"Bug Hunter", "Sprint Champion", "Code Reviewer"},
			FocusTimeToday:      180,
		},
		{
			ID:        uuid.New().String(),
			Name:      "Sarah Chen",
			Email:     "sarah@devflow.com",
			AvatarURL: "https://api.dicebear.com/7.x/avataaars/svg?seed=Sarah",
			Role:      models.RoleFrontend,
			Skills:    models.SkillMap{"react": 10, "vue": 8, "css": 9, "typescript": 7},
			JoinedDate: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
			TotalTasksCompleted: 38,
			CurrentStreak:       5,
			AchievementBadges:   models.BadgeList{"UI Master", "Fast Coder"},
			FocusTimeToday:      120,
		},
		{
			ID:        uuid.New().String(),
			Name:      "Marcus Williams",
			Email:     "marcus@devflow.com",
			AvatarURL: "https://api.dicebear.com/7.x/avataaars/svg?seed=Marcus",
			Role:      models.RoleBackend,
			Skills:    models.SkillMap{"nodejs": 9, "python": 10, "postgresql": 8, "aws": 7},
			JoinedDate: time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC),
			TotalTasksCompleted: 52,
			CurrentStreak:       10,
			AchievementBadges:   models.BadgeList{"API Architect", "Database Wizard", "Performance King"},
			FocusTimeToday:      200,
		},
		{
			ID:        uuid.New().String(),
			Name:      "Emily Rodriguez",
			Email:     "emily@devflow.com",
			AvatarURL: "https://api.dicebear.com/7.x/avataaars/svg?seed=Emily",
			Role:      models.RoleDevOps,
			Skills:    models.SkillMap{"kubernetes": 9, "docker": 10, "jenkins": 8, "terraform": 7},
			JoinedDate: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
			TotalTasksCompleted: 30,
			CurrentStreak:       3,
			AchievementBadges:   models.BadgeList{"Deploy Master", "CI/CD Hero"},
			FocusTimeToday:      90,
		},
	}

	for _, dev := range developers {
		_, err := db.Exec(`
			INSERT INTO developers (id, name, email, avatar_url, role, skills, joined_date,
			                        total_tasks_completed, current_streak, achievement_badges, focus_time_today)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			dev.ID, dev.Name, dev.Email, dev.AvatarURL, dev.Role, dev.Skills, dev.JoinedDate,
			dev.TotalTasksCompleted, dev.CurrentStreak, dev.AchievementBadges, dev.FocusTimeToday,
		)
		if err != nil {
			return fmt.Errorf("seeding developer %s: %w", dev.Name, err)
		}
	}

	days := func(n int) time.Time { return now.Add(time.Duration(n) * 24 * time.Hour) }
	sprint := func(n int) *int { return &n }

	tasks := []models.Task{
		{
			Title:          "Implement User Authentication",
			Description:    "Add JWT-based authentication with refresh tokens",
			Status:         models.StatusInProgress,
			Priority:       models.PriorityHigh,
			Difficulty:     4,
			TechStack:      models.TechStack{"Node.js", "JWT", "bcrypt"},
			AssignedTo:     &developers[2].ID,
			CreatedAt:      now,
			UpdatedAt:      now,
			EstimatedHours: 16,
			ActualHours:    8,
			SprintNumber:   sprint(5),
		},
		{
			Title:          "Design Dashboard UI",
			Description:    "Create responsive dashboard with analytics widgets",
			Status:         models.StatusReview,
			Priority:       models.PriorityHigh,
			Difficulty:     3,
			TechStack:      models.TechStack{"React", "Tailwind", "Recharts"},
			AssignedTo:     &developers[1].ID,
			CreatedAt:      days(-2),
			UpdatedAt:      now,
			EstimatedHours: 12,
			ActualHours:    10,
			SprintNumber:   sprint(5),
		},
		{
			Title:          "Setup CI/CD Pipeline",
			Description:    "Configure GitHub Actions for automated testing and deployment",
			Status:         models.StatusTodo,
			Priority:       models.PriorityMedium,
			Difficulty:     4,
			TechStack:      models.TechStack{"GitHub Actions", "Docker", "AWS"},
			AssignedTo:     &developers[3].ID,
			CreatedAt:      now,
			UpdatedAt:      now,
			EstimatedHours: 20,
			SprintNumber:   sprint(5),
		},
		{
			Title:          "Optimize Database Queries",
			Description:    "Add indexes and optimize slow queries",
			Status:         models.StatusBacklog,
			Priority:       models.PriorityMedium,
			Difficulty:     3,
			TechStack:      models.TechStack{"PostgreSQL", "SQL"},
			AssignedTo:     &developers[2].ID,
			CreatedAt:      now,
			UpdatedAt:      now,
			EstimatedHours: 8,
			SprintNumber:   sprint(6),
		},
		{
			Title:          "Fix Mobile Responsive Issues",
			Description:    "Fix layout issues on mobile devices",
			Status:         models.StatusTesting,
			Priority:       models.PriorityHigh,
			Difficulty:     2,
			TechStack:      models.TechStack{"CSS", "Tailwind"},
			AssignedTo:     &developers[1].ID,
			CreatedAt:      days(-1),
			UpdatedAt:      now,
			EstimatedHours: 4,
			ActualHours:    3,
			SprintNumber:   sprint(5),
		},
		{
			Title:          "Implement Real-time Notifications",
			Description:    "Add WebSocket support for real-time updates",
			Status:         models.StatusDone,
			Priority:       models.PriorityMedium,
			Difficulty:     5,
			TechStack:      models.TechStack{"WebSocket", "Socket.io", "Redis"},
			AssignedTo:     &developers[0].ID,
			CreatedAt:      days(-5),
			UpdatedAt:      days(-1),
			EstimatedHours: 24,
			ActualHours:    22,
			SprintNumber:   sprint(4),
		},
	}

	for _, task := range tasks {
		due := task.UpdatedAt.Add(3 * 24 * time.Hour)
		_, err := db.Exec(`
			INSERT INTO tasks (id, title, description, status, priority, difficulty, tech_stack,
			                   assigned_to, created_by, created_at, updated_at, estimated_hours,
			                   actual_hours, due_date, code_snippet, sprint_number)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			uuid.New().String(), task.Title, task.Description, task.Status, task.Priority,
			task.Difficulty, task.TechStack, task.AssignedTo, developers[0].ID,
			task.CreatedAt, task.UpdatedAt, task.EstimatedHours, task.ActualHours,
			due, task.CodeSnippet, task.SprintNumber,
		)
		if err != nil {
			return fmt.Errorf("seeding task %q: %w", task.Title, err)
		}
	}

	log.Printf("[db][seed] loaded %d developers and %d tasks", len(developers), len(tasks))
	return nil
}
