package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/wobot-todo/backend/internal/errs"
	"github.com/wobot-todo/backend/internal/model"
	"github.com/wobot-todo/backend/internal/service"
)

type TodoHandler struct {
	svc *service.TodoService
	log *zap.Logger
}

func NewTodoHandler(svc *service.TodoService, log *zap.Logger) *TodoHandler {
	return &TodoHandler{svc: svc, log: log}
}

// CreateTodo godoc
// @Summary Create a todo owned by the caller
// @Tags todos
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body model.TodoRequest true "Todo"
// @Success 201 {object} model.Todo
// @Failure 400 {object} model.ErrorResponse
// @Failure 401 {object} model.ErrorResponse
// @Router /todos [post]
func (h *TodoHandler) CreateTodo(c *gin.Context) {
	identity, ok := GetIdentity(c)
	if !ok {
		writeError(c, h.log, errs.ErrUnauthenticated)
		return
	}

	var req model.TodoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.ErrorResponse{Error: "invalid request"})
		return
	}

	todo, err := h.svc.Create(c.Request.Context(), identity, req)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, todo)
}

// ListTodos godoc
// @Summary List the caller's todos
// @Tags todos
// @Produce json
// @Security BearerAuth
// @Param skip query int false "Offset" default(0)
// @Param limit query int false "Page size (max 100)" default(10)
// @Success 200 {array} model.Todo
// @Failure 400 {object} model.ErrorResponse
// @Failure 401 {object} model.ErrorResponse
// @Router /todos [get]
func (h *TodoHandler) ListTodos(c *gin.Context) {
	identity, ok := GetIdentity(c)
	if !ok {
		writeError(c, h.log, errs.ErrUnauthenticated)
		return
	}

	var page model.TodoPage
	if err := c.ShouldBindQuery(&page); err != nil {
		c.JSON(http.StatusBadRequest, model.ErrorResponse{Error: "invalid query"})
		return
	}

	todos, err := h.svc.List(c.Request.Context(), identity, page)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, todos)
}

// GetTodo godoc
// @Summary Get a todo
// @Tags todos
// @Produce json
// @Security BearerAuth
// @Param id path string true "Todo ID"
// @Success 200 {object} model.Todo
// @Failure 401 {object} model.ErrorResponse
// @Failure 403 {object} model.ErrorResponse
// @Failure 404 {object} model.ErrorResponse
// @Router /todos/{id} [get]
func (h *TodoHandler) GetTodo(c *gin.Context) {
	identity, ok := GetIdentity(c)
	if !ok {
		writeError(c, h.log, errs.ErrUnauthenticated)
		return
	}

	todo, err := h.svc.Get(c.Request.Context(), identity, c.Param("id"))
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, todo)
}

// UpdateTodo godoc
// @Summary Update a todo
// @Tags todos
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Todo ID"
// @Param request body model.TodoRequest true "Todo"
// @Success 200 {object} model.Todo
// @Failure 400 {object} model.ErrorResponse
// @Failure 401 {object} model.ErrorResponse
// @Failure 403 {object} model.ErrorResponse
// @Failure 404 {object} model.ErrorResponse
// @Router /todos/{id} [put]
func (h *TodoHandler) UpdateTodo(c *gin.Context) {
	identity, ok := GetIdentity(c)
	if !ok {
		writeError(c, h.log, errs.ErrUnauthenticated)
		return
	}

	var req model.TodoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.ErrorResponse{Error: "invalid request"})
		return
	}

	todo, err := h.svc.Update(c.Request.Context(), identity, c.Param("id"), req)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, todo)
}

// DeleteTodo godoc
// @Summary Delete a todo
// @Tags todos
// @Security BearerAuth
// @Param id path string true "Todo ID"
// @Success 204
// @Failure 401 {object} model.ErrorResponse
// @Failure 403 {object} model.ErrorResponse
// @Failure 404 {object} model.ErrorResponse
// @Router /todos/{id} [delete]
func (h *TodoHandler) DeleteTodo(c *gin.Context) {
	identity, ok := GetIdentity(c)
	if !ok {
		writeError(c, h.log, errs.ErrUnauthenticated)
		return
	}

	if err := h.svc.Delete(c.Request.Context(), identity, c.Param("id")); err != nil {
		writeError(c, h.log, err)
		return
	}
	c.Status(http.StatusNoContent)
}
