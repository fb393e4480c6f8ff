package models

import (
	"time"

	"github.com/google/uuid"
)

type GenerationStatus string

// The pipeline currently only ever writes StatusDone: records are created
// after the simulated processing step has already succeeded. Pending and
// Failed stay in the schema for an asynchronous pipeline to use.
const (
	StatusPending GenerationStatus = "pending"
	StatusDone    GenerationStatus = "done"
	StatusFailed  GenerationStatus = "failed"
)

// Generation is one prompt + input artifact + derived result, owned by the
// submitting user. Immutable once written.
type Generation struct {
	ID         uuid.UUID        `json:"id" gorm:"type:uuid;primaryKey"`
	UserID     uuid.UUID        `json:"userId" gorm:"type:uuid;index;not null"`
	Prompt     string           `json:"prompt"`
	InputPath  string           `json:"inputPath" gorm:"not null"`
	ResultPath string           `json:"resultPath"`
	Status     GenerationStatus `json:"status" gorm:"type:varchar(16);not null;default:'done'"`
	CreatedAt  time.Time        `json:"createdAt" gorm:"autoCreateTime"`
}
