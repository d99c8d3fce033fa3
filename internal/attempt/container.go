package attempt

import "gorm.io/gorm"

type AttemptContainer struct {
	Repo    AttemptRepository
	Service AttemptService
	Handler *Handler
}

func NewAttemptContainer(db *gorm.DB) *AttemptContainer {
	repo := NewRepository(db)
	service := NewService(repo)
	handler := NewHandler(service)

	return &AttemptContainer{
		Repo:    repo,
		Service: service,
		Handler: handler,
	}
}
