package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// DeveloperRole defines the possible roles for a developer.
type DeveloperRole string

const (
	RoleFrontend  DeveloperRole = "Frontend"
	RoleBackend   DeveloperRole = "Backend"
	RoleFullstack DeveloperRole = "Fullstack"
	RoleDevOps    DeveloperRole = "DevOps"
)

func (r DeveloperRole) Valid() bool {
	switch r {
	case RoleFrontend, RoleBackend, RoleFullstack, RoleDevOps:
		return true
	}
	return false
}

// SkillMap maps a skill name to a proficiency level (1-10).
// Stored as a JSON object inside a text column.
type SkillMap map[string]int

func (m SkillMap) Value() (driver.Value, error) {
	if m == nil {
		m = SkillMap{}
	}
	b, err := json.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("encoding skills: %w", err)
	}
	return string(b), nil
}

func (m *SkillMap) Scan(src interface{}) error {
	return scanJSONColumn(src, m, "skills")
}

// BadgeList holds unlocked achievement badge names.
// Stored as a JSON array inside a text column.
type BadgeList []string

func (l BadgeList) Value() (driver.Value, error) {
	if l == nil {
		l = BadgeList{}
	}
	b, err := json.Marshal(l)
	if err != nil {
		return nil, fmt.Errorf("encoding achievement badges: %w", err)
	}
	return string(b), nil
}

func (l *BadgeList) Scan(src interface{}) error {
	return scanJSONColumn(src, l, "achievement badges")
}

// Developer represents a team member on the board.
type Developer struct {
	ID                  string        `json:"id" db:"id"`
	Name                string        `json:"name" db:"name"`
	Email               string        `json:"email" db:"email"`
	AvatarURL           string        `json:"avatar_url" db:"avatar_url"`
	Role                DeveloperRole `json:"role" db:"role"`
	Skills              SkillMap      `json:"skills" db:"skills"`
	JoinedDate          time.Time     `json:"joined_date" db:"joined_date"`
	TotalTasksCompleted int           `json:"total_tasks_completed" db:"total_tasks_completed"`
	CurrentStreak       int           `json:"current_streak" db:"current_streak"`
	AchievementBadges   BadgeList     `json:"achievement_badges" db:"achievement_badges"`
	FocusTimeToday      int           `json:"focus_time_today" db:"focus_time_today"`
}

// DeveloperPatch lists exactly the mutable developer fields. Absent
// fields (nil pointers) are left untouched by an update.
type DeveloperPatch struct {
	Name                *string        `json:"name,omitempty"`
	Email               *string        `json:"email,omitempty"`
	AvatarURL           *string        `json:"avatar_url,omitempty"`
	Role                *DeveloperRole `json:"role,omitempty"`
	Skills              *SkillMap      `json:"skills,omitempty"`
	TotalTasksCompleted *int           `json:"total_tasks_completed,omitempty"`
	CurrentStreak       *int           `json:"current_streak,omitempty"`
	AchievementBadges   *BadgeList     `json:"achievement_badges,omitempty"`
	FocusTimeToday      *int           `json:"focus_time_today,omitempty"`
}

func (p DeveloperPatch) Empty() bool {
	return p.Name == nil && p.Email == nil && p.AvatarURL == nil &&
		p.Role == nil && p.Skills == nil && p.TotalTasksCompleted == nil &&
		p.CurrentStreak == nil && p.AchievementBadges == nil && p.FocusTimeToday == nil
}

// scanJSONColumn decodes a JSON text column into dst. NULL and empty
// text leave dst at its zero value.
func scanJSONColumn(src, dst interface{}, what string) error {
	if src == nil {
		return nil
	}
	var data []byte
	switch v := src.(type) {
	case string:
		data = []byte(v)
	case []byte:
		data = v
	default:
		return fmt.Errorf("decoding %s: unexpected column type %T", what, src)
	}
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("decoding %s: %w", what, err)
	}
	return nil
}
