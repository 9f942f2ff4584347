package services

import (
	"context"
	"fmt"
	"time"

	"github.com/huangang/boardmaster/internal/models"
	"github.com/huangang/boardmaster/pkg/logger"
	"gorm.io/gorm"
)

var demoUsers = []models.User{
	{
		Email:    "sarah.mitchell@example.com",
		FullName: "Sarah Mitchell",
		JobTitle: "Senior Full-Stack Developer",
		Bio:      "Passionate about building scalable web applications with React and Node.js. 8+ years of experience in software development.",
	},
	{
		Email:    "james.rodriguez@example.com",
		FullName: "James Rodriguez",
		JobTitle: "Backend Engineer",
		Bio:      "Specialized in microservices architecture and API design. Love working with databases and optimization.",
	},
	{
		Email:    "emily.zhang@example.com",
		FullName: "Emily Zhang",
		JobTitle: "Frontend Developer",
		Bio:      "UI/UX enthusiast with a focus on creating beautiful, accessible interfaces. React and TypeScript expert.",
	},
	{
		Email:    "michael.oconnor@example.com",
		FullName: "Michael O'Connor",
		JobTitle: "DevOps Engineer",
		Bio:      "Infrastructure automation and CI/CD pipeline specialist. Making deployments smooth and reliable.",
	},
	{
		Email:    "priya.patel@example.com",
		FullName: "Priya Patel",
		JobTitle: "Product Manager",
		Bio:      "Bridging the gap between business and technology. Agile advocate and user-centric product enthusiast.",
	},
}

type demoMember struct {
	user     int
	role     string
	roleName string
}

// The first demo user owns the demo project.
var demoTeam = []demoMember{
	{user: 1, role: models.MemberRoleAdmin, roleName: "Scrum Master"},
	{user: 2, role: models.MemberRoleMember, roleName: "Frontend Developer"},
	{user: 3, role: models.MemberRoleMember, roleName: "Backend Developer"},
	{user: 4, role: models.MemberRoleViewer},
}

type seedTask struct {
	board       int
	title       string
	description string
	priority    string
}

var demoTasks = []seedTask{
	{0, "Add authentication with JWT", "Implement user login/signup using JWT in backend", models.TaskPriorityHigh},
	{0, "Create product search component", "Add search bar with autocomplete for grocery items", models.TaskPriorityMedium},
	{0, "Optimize bundle size", "Configure code splitting for better load performance", models.TaskPriorityMedium},
	{1, "Define data models", "Define User, Product, and List models", models.TaskPriorityHigh},
	{1, "Develop shopping list board", "Kanban-style list management", models.TaskPriorityMedium},
	{2, "Set up project structure", "Create monorepo structure with frontend and backend folders", models.TaskPriorityMedium},
	{2, "Initialize repository", "Configure repository with CI/CD pipeline", models.TaskPriorityLow},
}

var welcomeTasks = []seedTask{
	{0, "Welcome!", "Open this card to see how tasks work. You can edit the title, description, priority, and due date.", models.TaskPriorityMedium},
	{0, "Try moving tasks", "Move this card to \"In Progress\" or \"Done\" to change its stage.", models.TaskPriorityHigh},
	{0, "Create your first task", "Add a task of your own to this board.", models.TaskPriorityMedium},
	{1, "Organize your work", "Use this board to organize your tasks and track progress on your projects.", models.TaskPriorityMedium},
	{2, "Explore the features", "You've completed the tour! Now create your own projects and start managing your tasks.", models.TaskPriorityLow},
}

// SeedResult reports what SeedDemoData created.
type SeedResult struct {
	Skipped          bool
	Users            []models.User
	DemoProjectID    string
	WelcomeProjectID string
}

// SeedDemoData creates demo users, a demo project with a bound team and a
// welcome project in one transaction. It does nothing when the demo
// project already exists.
func SeedDemoData(ctx context.Context, db *gorm.DB) (*SeedResult, error) {
	result := &SeedResult{}
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing int64
		err := tx.Model(&models.Project{}).
			Joins("JOIN users u ON u.id = projects.owner_id").
			Where("projects.name = ? AND u.email = ?", demoProjectName, demoUsers[0].Email).
			Count(&existing).Error
		if err != nil {
			return err
		}
		if existing > 0 {
			result.Skipped = true
			return nil
		}
		return seedAll(ctx, tx, result)
	})
	if err != nil {
		return nil, err
	}
	if result.Skipped {
		logger.Info().Msg("demo data already present, skipping seed")
		return result, nil
	}

	logger.Info().
		Int("users", len(result.Users)).
		Str("demo_project_id", result.DemoProjectID).
		Str("welcome_project_id", result.WelcomeProjectID).
		Msg("demo data seeded")
	return result, nil
}

const demoProjectName = "SmartGrocery"

func seedAll(ctx context.Context, tx *gorm.DB, result *SeedResult) error {
	users := NewUserService(tx)
	projects := NewProjectService(tx)

	for _, u := range demoUsers {
		created, err := users.FirstOrCreate(ctx, &u)
		if err != nil {
			return fmt.Errorf("seed user %s: %w", u.Email, err)
		}
		result.Users = append(result.Users, *created)
	}
	owner := result.Users[0]

	desc := "A full-stack app that lets users create, share, and optimize grocery lists."
	demo, err := projects.Create(ctx, owner.ID, &CreateProjectRequest{Name: demoProjectName, Description: &desc})
	if err != nil {
		return fmt.Errorf("seed demo project: %w", err)
	}
	result.DemoProjectID = demo.ID

	if err := seedTeam(ctx, tx, demo.ID, result.Users); err != nil {
		return err
	}
	if err := seedTasks(ctx, tx, demo.ID, owner.ID, demoTasks); err != nil {
		return err
	}

	welcomeDesc := "This is a sample project to help you get started. Feel free to explore, edit, or delete it!"
	welcome, err := projects.Create(ctx, owner.ID, &CreateProjectRequest{Name: "Welcome to BoardMaster", Description: &welcomeDesc})
	if err != nil {
		return fmt.Errorf("seed welcome project: %w", err)
	}
	result.WelcomeProjectID = welcome.ID
	return seedTasks(ctx, tx, welcome.ID, owner.ID, welcomeTasks)
}

func seedTeam(ctx context.Context, db *gorm.DB, projectID string, users []models.User) error {
	roles, err := NewRoleService(db).List(ctx, projectID)
	if err != nil {
		return err
	}
	byName := make(map[string]string, len(roles))
	for _, r := range roles {
		byName[r.Name] = r.ID
	}

	for _, m := range demoTeam {
		member := models.ProjectMember{ProjectID: projectID, UserID: users[m.user].ID, Role: m.role}
		if id, ok := byName[m.roleName]; ok {
			member.ProjectRoleID = &id
		}
		if err := db.WithContext(ctx).Create(&member).Error; err != nil {
			return fmt.Errorf("seed member %s: %w", users[m.user].Email, err)
		}
	}
	return nil
}

func seedTasks(ctx context.Context, db *gorm.DB, projectID, createdBy string, tasks []seedTask) error {
	boards, err := NewBoardService(db).List(ctx, projectID)
	if err != nil {
		return err
	}

	positions := make(map[int]int)
	due := time.Now().AddDate(0, 0, 7)
	for _, t := range tasks {
		if t.board >= len(boards) {
			continue
		}
		desc := t.description
		task := models.Task{
			BoardID:     boards[t.board].ID,
			Title:       t.title,
			Description: &desc,
			Priority:    t.priority,
			Status:      statusForBoard(t.board),
			Position:    positions[t.board],
			CreatedBy:   createdBy,
		}
		if t.board == 0 {
			task.DueDate = &due
		}
		positions[t.board]++
		if err := db.WithContext(ctx).Create(&task).Error; err != nil {
			return fmt.Errorf("seed task %q: %w", t.title, err)
		}
	}
	return nil
}

func statusForBoard(board int) string {
	switch board {
	case 1:
		return models.TaskStatusInProgress
	case 2:
		return models.TaskStatusDone
	}
	return models.TaskStatusTodo
}
