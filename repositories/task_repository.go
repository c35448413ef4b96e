package repositories

import (
	"context"

	"salesproject-backend/apperr"
	"salesproject-backend/database"
	"salesproject-backend/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type TaskRepository struct{ db *gorm.DB }

func NewTaskRepository(db *gorm.DB) *TaskRepository { return &TaskRepository{db: db} }

func (r *TaskRepository) ListByProject(ctx context.Context, projectID uint) ([]models.Task, error) {
	var out []models.Task
	err := database.Conn(ctx, r.db).Where("project_id = ?", projectID).Order("id ASC").Find(&out).Error
	return out, apperr.Wrap(err, "list tasks")
}

func (r *TaskRepository) Create(ctx context.Context, t *models.Task) error {
	err := database.Conn(ctx, r.db).Omit(clause.Associations).Create(t).Error
	return apperr.Wrap(err, "create task")
}

// Detach removes the task from its project. A task cannot exist without a project, so it is deleted.
func (r *TaskRepository) Detach(ctx context.Context, projectID, taskID uint) error {
	res := database.Conn(ctx, r.db).Where("id = ? AND project_id = ?", taskID, projectID).Delete(&models.Task{})
	if res.Error != nil {
		return apperr.Wrap(res.Error, "detach task")
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("task %d not found in project %d", taskID, projectID)
	}
	return nil
}
