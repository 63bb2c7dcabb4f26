package tracker

import (
	"errors"
	"fmt"

	domain "github.com/example/minipm/domain/tracker"
	"gorm.io/gorm"
)

var (
	// ErrProjectNotFound is returned when a project does not exist or is
	// owned by a different user. The two cases are indistinguishable on
	// purpose.
	ErrProjectNotFound = errors.New("project not found")
	// ErrTaskNotFound is returned when a task does not exist or belongs
	// to a project owned by a different user.
	ErrTaskNotFound = errors.New("task not found")
)

// Repository provides owner-scoped access to project and task storage.
// Every lookup filters by the owning user in the query itself, so a
// record owned by someone else is never materialized.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new Repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// CreateProject saves a new project.
func (r *Repository) CreateProject(project *domain.Project) error {
	if err := r.db.Create(project).Error; err != nil {
		return fmt.Errorf("failed to create project: %w", err)
	}
	return nil
}

// ListProjects retrieves all projects owned by the user, newest first.
func (r *Repository) ListProjects(userID string) ([]*domain.Project, error) {
	var projects []*domain.Project
	err := r.db.
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&projects).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	return projects, nil
}

// FindOwnedProject retrieves a project by id scoped to its owner.
func (r *Repository) FindOwnedProject(id, userID string) (*domain.Project, error) {
	var project domain.Project
	err := r.db.First(&project, "id = ? AND user_id = ?", id, userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}
	return &project, nil
}

// FindOwnedProjectWithTasks retrieves a project and its tasks scoped to
// the owner.
func (r *Repository) FindOwnedProjectWithTasks(id, userID string) (*domain.Project, error) {
	var project domain.Project
	err := r.db.
		Preload("Tasks").
		First(&project, "id = ? AND user_id = ?", id, userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}
	return &project, nil
}

// DeleteOwnedProject removes a project and, through the cascade
// constraint, all of its tasks.
func (r *Repository) DeleteOwnedProject(id, userID string) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		result := tx.
			Where("id = ? AND user_id = ?", id, userID).
			Delete(&domain.Project{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrProjectNotFound
		}
		// SQLite enforces the cascade only with foreign keys on; delete
		// the tasks explicitly so orphans cannot survive a misconfigured
		// pragma.
		return tx.Where("project_id = ?", id).Delete(&domain.Task{}).Error
	})
	if err != nil {
		if errors.Is(err, ErrProjectNotFound) {
			return err
		}
		return fmt.Errorf("failed to delete project: %w", err)
	}
	return nil
}

// CreateTask saves a new task.
func (r *Repository) CreateTask(task *domain.Task) error {
	if err := r.db.Create(task).Error; err != nil {
		return fmt.Errorf("failed to create task: %w", err)
	}
	return nil
}

// FindOwnedTask retrieves a task by id scoped through its project to
// the owning user in a single joined query.
func (r *Repository) FindOwnedTask(id, userID string) (*domain.Task, error) {
	var task domain.Task
	err := r.db.
		Joins("JOIN projects ON projects.id = tasks.project_id").
		Where("tasks.id = ? AND projects.user_id = ?", id, userID).
		First(&task).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	return &task, nil
}

// UpdateTask persists changes to a task.
func (r *Repository) UpdateTask(task *domain.Task) error {
	err := r.db.Model(&domain.Task{}).
		Where("id = ?", task.ID).
		Select("Title", "DueDate", "IsCompleted").
		Updates(task).Error
	if err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}
	return nil
}

// DeleteOwnedTask removes a task scoped through its project to the owner.
func (r *Repository) DeleteOwnedTask(id, userID string) error {
	result := r.db.
		Where("id = ? AND project_id IN (?)",
			id,
			r.db.Model(&domain.Project{}).Select("id").Where("user_id = ?", userID),
		).
		Delete(&domain.Task{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete task: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrTaskNotFound
	}
	return nil
}

// ToggleOwnedTask flips a task's completion flag. The read and write run
// in one transaction so concurrent toggles cannot lose an update.
func (r *Repository) ToggleOwnedTask(id, userID string) (*domain.Task, error) {
	var task domain.Task
	err := r.db.Transaction(func(tx *gorm.DB) error {
		err := tx.
			Joins("JOIN projects ON projects.id = tasks.project_id").
			Where("tasks.id = ? AND projects.user_id = ?", id, userID).
			First(&task).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrTaskNotFound
			}
			return err
		}
		task.IsCompleted = !task.IsCompleted
		return tx.Model(&domain.Task{}).
			Where("id = ?", task.ID).
			Update("is_completed", task.IsCompleted).Error
	})
	if err != nil {
		if errors.Is(err, ErrTaskNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to toggle task: %w", err)
	}
	return &task, nil
}
