package db_models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Itinerary is written once after a successful generation and never updated,
// so it skips BaseModel's update bookkeeping and soft delete.
type Itinerary struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey"`
	AppName     string         `gorm:"size:64;not null"`
	Destination string         `gorm:"index"`
	Trip        datatypes.JSON `gorm:"type:jsonb;not null"`
	CreatedAt   time.Time      `gorm:"index"`
}

type StatusCheck struct {
	BaseModel
	ClientName string `gorm:"not null"`
}
