package handler

import (
	commonhandler "todo-app-go/internal/transport/httpserver/handler/common"
	todoshandler "todo-app-go/internal/transport/httpserver/handler/todos"
)

type Handlers struct {
	Common *commonhandler.Handlers
	Todos  *todoshandler.Handlers
}

func New(common *commonhandler.Handlers, todos *todoshandler.Handlers) *Handlers {
	return &Handlers{
		Common: common,
		Todos:  todos,
	}
}
