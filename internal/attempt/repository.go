package attempt

import (
	"errors"

	"gorm.io/gorm"
)

type AttemptRepository interface {
	Create(a *Attempt) error
	GetByID(id string) (*Attempt, error)
	ListByUser(userID string) ([]*Attempt, error)
}

type attemptRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) AttemptRepository {
	return &attemptRepository{db: db}
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Attempt{})
}

func (r *attemptRepository) Create(a *Attempt) error {
	return r.db.Create(a).Error
}

func (r *attemptRepository) GetByID(id string) (*Attempt, error) {
	var a Attempt
	if err := r.db.First(&a, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &a, nil
}

func (r *attemptRepository) ListByUser(userID string) ([]*Attempt, error) {
	var attempts []*Attempt
	if err := r.db.
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&attempts).Error; err != nil {
		return nil, err
	}
	return attempts, nil
}
