package models

import (
	"gorm.io/datatypes"
)

type ProjectStatus string

const (
	ProjectRefine    ProjectStatus = "REFINE"
	ProjectWIP       ProjectStatus = "WIP"
	ProjectReview    ProjectStatus = "REVIEW"
	ProjectCompleted ProjectStatus = "COMPLETED"
)

var ProjectStatuses = []ProjectStatus{ProjectRefine, ProjectWIP, ProjectReview, ProjectCompleted}

func (s ProjectStatus) Valid() bool {
	for _, v := range ProjectStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// Project owns its tasks through Task.ProjectID only; the task set is loaded on demand.
type Project struct {
	ID          uint           `json:"id" gorm:"primaryKey"`
	Name        string         `json:"name" gorm:"size:140;not null"`
	Description string         `json:"description" gorm:"type:text"`
	StartDate   datatypes.Date `json:"start_date"`
	EndDate     datatypes.Date `json:"end_date"`
	Status      ProjectStatus  `json:"status" gorm:"type:varchar(20);index"`
}
