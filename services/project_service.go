package services

import (
	"context"
	"strings"

	"salesproject-backend/apperr"
	"salesproject-backend/database"
	"salesproject-backend/dto"
	"salesproject-backend/models"
	"salesproject-backend/repositories"
	"salesproject-backend/utils"

	zlog "github.com/rs/zerolog/log"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type ProjectStore interface {
	FindPage(ctx context.Context, req repositories.PageRequest, status *models.ProjectStatus) (repositories.Page[models.Project], error)
	FindPageStatusNot(ctx context.Context, status models.ProjectStatus, req repositories.PageRequest) (repositories.Page[repositories.ProjectSummary], error)
	FindIDsByTaskPriority(ctx context.Context, priority models.TaskPriority, req repositories.PageRequest) (repositories.Page[uint], error)
	FindLatestWithin(ctx context.Context, start, end datatypes.Date, taskName string) (*models.Project, error)
	FindByID(ctx context.Context, id uint) (*models.Project, error)
	Save(ctx context.Context, p *models.Project, tasks []models.Task) error
	Update(ctx context.Context, id uint, fields map[string]any) error
	DeleteByID(ctx context.Context, id uint) error
}

type TaskStore interface {
	ListByProject(ctx context.Context, projectID uint) ([]models.Task, error)
	Create(ctx context.Context, t *models.Task) error
	Detach(ctx context.Context, projectID, taskID uint) error
}

type ProjectService struct {
	db       *gorm.DB
	projects ProjectStore
	tasks    TaskStore
}

// NewProjectService wires the stores. db may be nil, in which case detail reads
// run without a surrounding transaction.
func NewProjectService(db *gorm.DB, projects ProjectStore, tasks TaskStore) *ProjectService {
	return &ProjectService{db: db, projects: projects, tasks: tasks}
}

// ParseProjectStatus validates a status name. "" means no status.
func ParseProjectStatus(s string) (*models.ProjectStatus, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "" {
		return nil, nil
	}
	st := models.ProjectStatus(s)
	if !st.Valid() {
		return nil, apperr.InvalidField("status", "must be one of REFINE WIP REVIEW COMPLETED")
	}
	return &st, nil
}

func ParseTaskPriority(s string) (models.TaskPriority, error) {
	p := models.TaskPriority(strings.ToUpper(strings.TrimSpace(s)))
	if !p.Valid() {
		return "", apperr.InvalidField("priority", "must be one of LOW MID HIGH")
	}
	return p, nil
}

// FindAll pages projects, reduced to the lazy view so descriptions and tasks are never loaded.
func (s *ProjectService) FindAll(ctx context.Context, req repositories.PageRequest, status *models.ProjectStatus) (repositories.Page[dto.ProjectLazyView], error) {
	page, err := s.projects.FindPage(ctx, req, status)
	if err != nil {
		return repositories.Page[dto.ProjectLazyView]{}, err
	}
	return repositories.MapPage(page, dto.ProjectLazyViewFrom), nil
}

// FindByID loads the full project and its tasks from one read-only transaction.
func (s *ProjectService) FindByID(ctx context.Context, id uint) (dto.ProjectView, error) {
	var view dto.ProjectView
	err := s.readOnly(ctx, func(ctx context.Context) error {
		p, err := s.projects.FindByID(ctx, id)
		if err != nil {
			return err
		}
		tasks, err := s.tasks.ListByProject(ctx, id)
		if err != nil {
			return err
		}
		view = dto.ProjectViewFrom(*p, tasks)
		return nil
	})
	return view, err
}

func (s *ProjectService) FindStatusNot(ctx context.Context, status models.ProjectStatus, req repositories.PageRequest) (repositories.Page[repositories.ProjectSummary], error) {
	return s.projects.FindPageStatusNot(ctx, status, req)
}

func (s *ProjectService) FindIDsByTaskPriority(ctx context.Context, priority models.TaskPriority, req repositories.PageRequest) (repositories.Page[uint], error) {
	return s.projects.FindIDsByTaskPriority(ctx, priority, req)
}

// FindLatestWithin returns the project inside the period with the latest end date.
func (s *ProjectService) FindLatestWithin(ctx context.Context, start, end, taskName string) (dto.ProjectView, error) {
	var fields []apperr.FieldError
	from, err := dto.ParseDate(start)
	if err != nil || start == "" {
		fields = append(fields, apperr.FieldError{Field: "start", Message: "must be a date in the format 2006-01-02"})
	}
	to, err := dto.ParseDate(end)
	if err != nil || end == "" {
		fields = append(fields, apperr.FieldError{Field: "end", Message: "must be a date in the format 2006-01-02"})
	}
	if len(fields) > 0 {
		return dto.ProjectView{}, apperr.Validation(fields...)
	}

	p, err := s.projects.FindLatestWithin(ctx, from, to, strings.TrimSpace(taskName))
	if err != nil {
		return dto.ProjectView{}, err
	}
	return dto.ProjectViewFrom(*p, nil), nil
}

func (s *ProjectService) Create(ctx context.Context, in dto.ProjectInput) (dto.ProjectView, error) {
	var p models.Project
	if err := applyInput(&p, in); err != nil {
		return dto.ProjectView{}, err
	}
	tasks := dto.ToTasks(in.Tasks)
	for _, t := range tasks {
		if t.ID != 0 {
			return dto.ProjectView{}, apperr.InvalidField("tasks", "new projects cannot adopt existing tasks")
		}
	}
	if err := s.projects.Save(ctx, &p, tasks); err != nil {
		return dto.ProjectView{}, err
	}
	zlog.Info().Uint("project_id", p.ID).Int("tasks", len(tasks)).Msg("project created")
	return dto.ProjectViewFrom(p, tasks), nil
}

// Update replaces every field of the project. Tasks are replaced only when the
// input carries a task list.
func (s *ProjectService) Update(ctx context.Context, id uint, in dto.ProjectInput) (dto.ProjectView, error) {
	p, err := s.projects.FindByID(ctx, id)
	if err != nil {
		return dto.ProjectView{}, err
	}
	if err := applyInput(p, in); err != nil {
		return dto.ProjectView{}, err
	}
	if err := s.projects.Save(ctx, p, dto.ToTasks(in.Tasks)); err != nil {
		return dto.ProjectView{}, err
	}
	return s.FindByID(ctx, id)
}

// Patch changes only the supplied fields.
func (s *ProjectService) Patch(ctx context.Context, id uint, patch dto.ProjectPatch) (dto.ProjectView, error) {
	if _, err := s.projects.FindByID(ctx, id); err != nil {
		return dto.ProjectView{}, err
	}

	utils.NormalizePtrDTO(&patch)
	fields := utils.PatchFields(&patch, nil)
	for _, key := range []string{"start_date", "end_date"} {
		raw, ok := fields[key].(string)
		if !ok {
			continue
		}
		d, err := dto.ParseDate(raw)
		if err != nil {
			return dto.ProjectView{}, apperr.InvalidField(key, "must be a date in the format 2006-01-02")
		}
		fields[key] = d
	}
	if raw, ok := fields["status"].(string); ok {
		st, err := ParseProjectStatus(raw)
		if err != nil {
			return dto.ProjectView{}, err
		}
		if st == nil {
			fields["status"] = ""
		} else {
			fields["status"] = *st
		}
	}

	if len(fields) > 0 {
		if err := s.projects.Update(ctx, id, fields); err != nil {
			return dto.ProjectView{}, err
		}
	}
	return s.FindByID(ctx, id)
}

func (s *ProjectService) DeleteByID(ctx context.Context, id uint) error {
	if err := s.projects.DeleteByID(ctx, id); err != nil {
		return err
	}
	zlog.Info().Uint("project_id", id).Msg("project deleted")
	return nil
}

func (s *ProjectService) AddTask(ctx context.Context, projectID uint, in dto.TaskInput) (dto.TaskView, error) {
	if _, err := s.projects.FindByID(ctx, projectID); err != nil {
		return dto.TaskView{}, err
	}
	t := models.Task{Name: strings.TrimSpace(in.Name), Priority: models.TaskPriority(in.Priority), ProjectID: projectID}
	if err := s.tasks.Create(ctx, &t); err != nil {
		return dto.TaskView{}, err
	}
	return dto.TaskViewFrom(t), nil
}

// RemoveTask detaches the task from its project, which deletes it.
func (s *ProjectService) RemoveTask(ctx context.Context, projectID, taskID uint) error {
	return s.tasks.Detach(ctx, projectID, taskID)
}

func (s *ProjectService) readOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	if s.db == nil {
		return fn(ctx)
	}
	return database.ReadOnly(ctx, s.db, fn)
}

func applyInput(p *models.Project, in dto.ProjectInput) error {
	utils.NormalizeDTO(&in)
	start, err := dto.ParseDate(in.StartDate)
	if err != nil {
		return apperr.InvalidField("start_date", "must be a date in the format 2006-01-02")
	}
	end, err := dto.ParseDate(in.EndDate)
	if err != nil {
		return apperr.InvalidField("end_date", "must be a date in the format 2006-01-02")
	}
	status, err := ParseProjectStatus(in.Status)
	if err != nil {
		return err
	}

	p.Name = in.Name
	p.Description = in.Description
	p.StartDate = start
	p.EndDate = end
	p.Status = ""
	if status != nil {
		p.Status = *status
	}
	return nil
}
