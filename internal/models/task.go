package models

import "time"

type Task struct {
	ID        int64
	UserID    string
	Title     string
	Content   string
	Done      bool
	CreatedAt time.Time
}
