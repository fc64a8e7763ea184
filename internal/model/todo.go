package model

import "time"

// Todo is a task owned by exactly one user. OwnerEmail is fixed at creation.
type Todo struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	OwnerEmail  string    `json:"user_email"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TodoRequest is the body of create and update calls.
type TodoRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
}

// TodoPage bounds a todo listing.
type TodoPage struct {
	Skip  int `form:"skip"`
	Limit int `form:"limit"`
}
