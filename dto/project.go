package dto

import (
	"time"

	"salesproject-backend/models"

	"gorm.io/datatypes"
)

const DateLayout = "2006-01-02"

// ProjectLazyView is the list shape: no description, status or tasks.
type ProjectLazyView struct {
	ID        uint   `json:"id"`
	Name      string `json:"name"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

type ProjectView struct {
	ID          uint       `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	StartDate   string     `json:"start_date"`
	EndDate     string     `json:"end_date"`
	Status      string     `json:"status"`
	Tasks       []TaskView `json:"tasks"`
}

type TaskView struct {
	ID       uint   `json:"id"`
	Name     string `json:"name"`
	Priority string `json:"priority"`
}

type TaskInput struct {
	ID       uint   `json:"id"`
	Name     string `json:"name" validate:"required,max=140"`
	Priority string `json:"priority" validate:"omitempty,oneof=LOW MID HIGH"`
}

// ProjectInput is the body of POST and PUT /project.
type ProjectInput struct {
	Name        string      `json:"name" validate:"required,max=140"`
	Description string      `json:"description"`
	StartDate   string      `json:"start_date" validate:"omitempty,datetime=2006-01-02"`
	EndDate     string      `json:"end_date" validate:"omitempty,datetime=2006-01-02"`
	Status      string      `json:"status" validate:"omitempty,oneof=REFINE WIP REVIEW COMPLETED"`
	Tasks       []TaskInput `json:"tasks" validate:"omitempty,dive"`
}

// ProjectPatch carries only the fields a PATCH request supplied.
type ProjectPatch struct {
	Name        *string `json:"name" validate:"omitempty,min=1,max=140"`
	Description *string `json:"description"`
	StartDate   *string `json:"start_date" validate:"omitempty,datetime=2006-01-02"`
	EndDate     *string `json:"end_date" validate:"omitempty,datetime=2006-01-02"`
	Status      *string `json:"status" validate:"omitempty,oneof=REFINE WIP REVIEW COMPLETED"`
}

func FormatDate(d datatypes.Date) string {
	t := time.Time(d)
	if t.IsZero() {
		return ""
	}
	return t.Format(DateLayout)
}

// ParseDate turns "2006-01-02" into a date; "" is the zero date.
func ParseDate(s string) (datatypes.Date, error) {
	if s == "" {
		return datatypes.Date{}, nil
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return datatypes.Date{}, err
	}
	return datatypes.Date(t), nil
}

func ProjectLazyViewFrom(p models.Project) ProjectLazyView {
	return ProjectLazyView{
		ID:        p.ID,
		Name:      p.Name,
		StartDate: FormatDate(p.StartDate),
		EndDate:   FormatDate(p.EndDate),
	}
}

func ProjectViewFrom(p models.Project, tasks []models.Task) ProjectView {
	views := make([]TaskView, 0, len(tasks))
	for _, t := range tasks {
		views = append(views, TaskViewFrom(t))
	}
	return ProjectView{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		StartDate:   FormatDate(p.StartDate),
		EndDate:     FormatDate(p.EndDate),
		Status:      string(p.Status),
		Tasks:       views,
	}
}

func TaskViewFrom(t models.Task) TaskView {
	return TaskView{ID: t.ID, Name: t.Name, Priority: string(t.Priority)}
}

// ToTasks converts the inputs into tasks. A nil input gives a nil slice, which
// leaves an existing task set untouched on save.
func ToTasks(in []TaskInput) []models.Task {
	if in == nil {
		return nil
	}
	out := make([]models.Task, 0, len(in))
	for _, t := range in {
		out = append(out, models.Task{ID: t.ID, Name: t.Name, Priority: models.TaskPriority(t.Priority)})
	}
	return out
}
