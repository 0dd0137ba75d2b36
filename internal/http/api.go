package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"todo-server/internal/auth"
	"todo-server/internal/domain"
	"todo-server/internal/repository"
	"todo-server/internal/service"
)

// Handler wires HTTP routes to domain services.
type Handler struct {
	users  service.UserService
	todos  service.TodoService
	tokens *auth.Manager
	logger *logrus.Logger
	debug  bool
}

func NewHandler(users service.UserService, todos service.TodoService, tokens *auth.Manager, logger *logrus.Logger, debug bool) *Handler {
	return &Handler{
		users:  users,
		todos:  todos,
		tokens: tokens,
		logger: logger,
		debug:  debug,
	}
}

func (h *Handler) RegisterRoutes(router *gin.Engine, authLimiter gin.HandlerFunc) {
	router.Use(corsMiddleware())

	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "To-Do App API",
			"version": "1.0.0",
			"endpoints": gin.H{
				"auth":  "/auth",
				"todos": "/todos",
			},
		})
	})
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	authGroup := router.Group("/auth")
	if authLimiter != nil {
		authGroup.Use(authLimiter)
	}
	{
		authGroup.POST("/register", h.register)
		authGroup.POST("/login", h.login)
	}

	todos := router.Group("/todos")
	todos.Use(h.requireAuth())
	{
		todos.GET("", h.listTodos)
		todos.POST("", h.createTodo)
		todos.PUT("/:id", h.updateTodo)
		todos.DELETE("/:id", h.deleteTodo)
	}

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Route not found"})
	})
}

type credentialsRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type createTodoRequest struct {
	Text string `json:"text" binding:"required"`
}

type updateTodoRequest struct {
	Text      *string `json:"text"`
	Completed *bool   `json:"completed"`
}

type userResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

type todoResponse struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

func (h *Handler) register(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Email and password are required"})
		return
	}

	if _, err := h.users.Register(c.Request.Context(), req.Email, req.Password); err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "User registered successfully"})
}

func (h *Handler) login(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Email and password are required"})
		return
	}

	user, err := h.users.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.writeError(c, err)
		return
	}

	token, err := h.tokens.Issue(user.ID)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user":  userResponse{ID: user.ID, Email: user.Email},
	})
}

func (h *Handler) listTodos(c *gin.Context) {
	ownerID, ok := subjectFrom(c)
	if !ok {
		writeUnauthorized(c)
		return
	}

	todos, err := h.todos.List(c.Request.Context(), ownerID)
	if err != nil {
		h.writeError(c, err)
		return
	}

	resp := make([]todoResponse, len(todos))
	for i := range todos {
		resp[i] = todoToResponse(todos[i])
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) createTodo(c *gin.Context) {
	ownerID, ok := subjectFrom(c)
	if !ok {
		writeUnauthorized(c)
		return
	}

	var req createTodoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Text is required and cannot be empty"})
		return
	}

	todo, err := h.todos.Create(c.Request.Context(), ownerID, req.Text)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, todoToResponse(*todo))
}

func (h *Handler) updateTodo(c *gin.Context) {
	ownerID, ok := subjectFrom(c)
	if !ok {
		writeUnauthorized(c)
		return
	}

	var req updateTodoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	todo, err := h.todos.Update(c.Request.Context(), ownerID, c.Param("id"), domain.TodoUpdate{
		Text:      req.Text,
		Completed: req.Completed,
	})
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, todoToResponse(*todo))
}

func (h *Handler) deleteTodo(c *gin.Context) {
	ownerID, ok := subjectFrom(c)
	if !ok {
		writeUnauthorized(c)
		return
	}

	if err := h.todos.Delete(c.Request.Context(), ownerID, c.Param("id")); err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Todo deleted successfully"})
}

// writeError maps domain failures to the response taxonomy. Anything
// unrecognized is a 500 with detail suppressed outside debug mode.
func (h *Handler) writeError(c *gin.Context, err error) {
	var validationErr *service.ValidationError
	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, gin.H{"message": validationErr.Message})
	case errors.Is(err, service.ErrInvalidCredentials):
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid credentials"})
	case errors.Is(err, service.ErrUserAlreadyExists):
		c.JSON(http.StatusBadRequest, gin.H{"message": "User already exists"})
	case errors.Is(err, repository.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": "Todo not found"})
	case errors.Is(err, context.DeadlineExceeded):
		h.logger.Warnf("storage timeout on %s %s: %v", c.Request.Method, c.FullPath(), err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"message": "Service temporarily unavailable"})
	default:
		h.logger.Errorf("%s %s: %v", c.Request.Method, c.FullPath(), err)
		if h.debug {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal Server Error", "error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal Server Error"})
	}
}

func todoToResponse(todo domain.Todo) todoResponse {
	return todoResponse{
		ID:        todo.ID,
		Text:      todo.Text,
		Completed: todo.Completed,
		CreatedAt: todo.CreatedAt.Format(time.RFC3339),
		UpdatedAt: todo.UpdatedAt.Format(time.RFC3339),
	}
}
