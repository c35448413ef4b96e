package models

type TaskPriority string

const (
	PriorityLow  TaskPriority = "LOW"
	PriorityMid  TaskPriority = "MID"
	PriorityHigh TaskPriority = "HIGH"
)

var TaskPriorities = []TaskPriority{PriorityLow, PriorityMid, PriorityHigh}

func (p TaskPriority) Valid() bool {
	for _, v := range TaskPriorities {
		if p == v {
			return true
		}
	}
	return false
}

type Task struct {
	ID        uint         `json:"id" gorm:"primaryKey"`
	Name      string       `json:"name" gorm:"size:140;not null"`
	Priority  TaskPriority `json:"priority" gorm:"type:varchar(10)"`
	ProjectID uint         `json:"project_id" gorm:"not null;index"`
	Project   *Project     `json:"-" gorm:"foreignKey:ProjectID;references:ID;constraint:OnDelete:CASCADE"`
}
