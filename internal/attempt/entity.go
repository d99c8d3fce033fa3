package attempt

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Attempt struct {
	ID         uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID     string         `gorm:"type:text;not null;index" json:"userId"`
	SessionID  string         `gorm:"type:text;not null;index" json:"sessionId"`
	FileName   string         `gorm:"type:text" json:"fileName"`
	Difficulty string         `gorm:"type:text" json:"difficulty"`
	Correct    int            `gorm:"not null" json:"correct"`
	Total      int            `gorm:"not null" json:"total"`
	Percentage int            `gorm:"not null" json:"percentage"`
	Results    datatypes.JSON `gorm:"type:jsonb;not null" json:"results"`
	CreatedAt  time.Time      `gorm:"autoCreateTime;index" json:"createdAt"`
}

func (a *Attempt) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
