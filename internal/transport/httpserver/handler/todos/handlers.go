package todos

import (
	todosdomain "todo-app-go/internal/domain/todos"
	"todo-app-go/pkg/logger"
)

type Handlers struct {
	Tasks *todosdomain.Service
	log   logger.Logger
}

func New(tasks *todosdomain.Service, log logger.Logger) *Handlers {
	return &Handlers{
		Tasks: tasks,
		log:   log,
	}
}
