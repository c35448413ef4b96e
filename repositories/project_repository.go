package repositories

import (
	"context"
	"errors"

	"salesproject-backend/apperr"
	"salesproject-backend/database"
	"salesproject-backend/models"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ProjectSummary is the id/name/status projection of a project.
type ProjectSummary struct {
	ID     uint                 `json:"id"`
	Name   string               `json:"name"`
	Status models.ProjectStatus `json:"status"`
}

type ProjectRepository struct{ db *gorm.DB }

func NewProjectRepository(db *gorm.DB) *ProjectRepository { return &ProjectRepository{db: db} }

// FindPage returns one page of projects ordered by id. A nil status disables the filter.
func (r *ProjectRepository) FindPage(ctx context.Context, req PageRequest, status *models.ProjectStatus) (Page[models.Project], error) {
	req = req.Normalize()
	base := func() *gorm.DB {
		q := database.Conn(ctx, r.db).Model(&models.Project{})
		if status != nil {
			q = q.Where("status = ?", *status)
		}
		return q
	}

	var total int64
	if err := base().Count(&total).Error; err != nil {
		return Page[models.Project]{}, apperr.Wrap(err, "count projects")
	}
	var out []models.Project
	if err := base().Order("id ASC").Limit(req.Size).Offset(req.Offset()).Find(&out).Error; err != nil {
		return Page[models.Project]{}, apperr.Wrap(err, "find projects")
	}
	return NewPage(out, req, total), nil
}

// FindPageStatusNot projects every project whose status differs from status.
func (r *ProjectRepository) FindPageStatusNot(ctx context.Context, status models.ProjectStatus, req PageRequest) (Page[ProjectSummary], error) {
	req = req.Normalize()
	base := func() *gorm.DB {
		return database.Conn(ctx, r.db).Model(&models.Project{}).Where("status <> ?", status)
	}

	var total int64
	if err := base().Count(&total).Error; err != nil {
		return Page[ProjectSummary]{}, apperr.Wrap(err, "count projects")
	}
	var out []ProjectSummary
	if err := base().Select("id", "name", "status").Order("id ASC").Limit(req.Size).Offset(req.Offset()).Find(&out).Error; err != nil {
		return Page[ProjectSummary]{}, apperr.Wrap(err, "find projects")
	}
	return NewPage(out, req, total), nil
}

// FindIDsByTaskPriority returns the distinct ids of projects owning a task with the given priority.
func (r *ProjectRepository) FindIDsByTaskPriority(ctx context.Context, priority models.TaskPriority, req PageRequest) (Page[uint], error) {
	req = req.Normalize()
	conn := database.Conn(ctx, r.db)

	var total int64
	if err := conn.Raw(`SELECT COUNT(DISTINCT project_id) FROM tasks WHERE priority = ?`, priority).
		Scan(&total).Error; err != nil {
		return Page[uint]{}, apperr.Wrap(err, "count projects by task priority")
	}
	var ids []uint
	if err := conn.Raw(`SELECT DISTINCT project_id FROM tasks WHERE priority = ? ORDER BY project_id LIMIT ? OFFSET ?`,
		priority, req.Size, req.Offset()).Scan(&ids).Error; err != nil {
		return Page[uint]{}, apperr.Wrap(err, "find projects by task priority")
	}
	return NewPage(ids, req, total), nil
}

// FindLatestWithin returns the project inside [start, end] with the greatest end date.
// A non-empty taskName restricts the search to projects owning a task with that name.
func (r *ProjectRepository) FindLatestWithin(ctx context.Context, start, end datatypes.Date, taskName string) (*models.Project, error) {
	q := database.Conn(ctx, r.db).Model(&models.Project{}).Select("projects.*").
		Where("projects.start_date >= ? AND projects.end_date <= ?", start, end)
	if taskName != "" {
		q = q.Joins("JOIN tasks ON tasks.project_id = projects.id").Where("tasks.name = ?", taskName)
	}

	var p models.Project
	if err := q.Order("projects.end_date DESC, projects.id DESC").Take(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("no project found in the given period")
		}
		return nil, apperr.Wrap(err, "find latest project")
	}
	return &p, nil
}

func (r *ProjectRepository) FindByID(ctx context.Context, id uint) (*models.Project, error) {
	var p models.Project
	if err := database.Conn(ctx, r.db).First(&p, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("project %d not found", id)
		}
		return nil, apperr.Wrap(err, "find project")
	}
	return &p, nil
}

// Save creates or updates p and cascades tasks: each task is stored under p, and tasks
// p owned before but missing from the set are deleted. A nil tasks slice leaves them alone.
func (r *ProjectRepository) Save(ctx context.Context, p *models.Project, tasks []models.Task) error {
	err := database.Conn(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(p).Error; err != nil {
			return err
		}
		if tasks == nil {
			return nil
		}

		var existingIDs []uint
		for _, t := range tasks {
			if t.ID != 0 {
				existingIDs = append(existingIDs, t.ID)
			}
		}
		if len(existingIDs) > 0 {
			var foreign int64
			if err := tx.Model(&models.Task{}).
				Where("id IN ? AND project_id <> ?", existingIDs, p.ID).
				Count(&foreign).Error; err != nil {
				return err
			}
			if foreign > 0 {
				return apperr.InvalidField("tasks", "task belongs to another project")
			}
		}

		keep := make([]uint, 0, len(tasks))
		for i := range tasks {
			tasks[i].ProjectID = p.ID
			if err := tx.Omit(clause.Associations).Save(&tasks[i]).Error; err != nil {
				return err
			}
			keep = append(keep, tasks[i].ID)
		}

		orphans := tx.Where("project_id = ?", p.ID)
		if len(keep) > 0 {
			orphans = orphans.Where("id NOT IN ?", keep)
		}
		return orphans.Delete(&models.Task{}).Error
	})
	return apperr.Wrap(err, "save project")
}

// DeleteByID removes the project together with its tasks.
func (r *ProjectRepository) DeleteByID(ctx context.Context, id uint) error {
	err := database.Conn(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("project_id = ?", id).Delete(&models.Task{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.Project{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return apperr.NotFound("project %d not found", id)
		}
		return nil
	})
	return apperr.Wrap(err, "delete project")
}

// Update writes the given columns of one project.
func (r *ProjectRepository) Update(ctx context.Context, id uint, fields map[string]any) error {
	res := database.Conn(ctx, r.db).Model(&models.Project{}).Where("id = ?", id).Updates(fields)
	return apperr.Wrap(res.Error, "update project")
}
