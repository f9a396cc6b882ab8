package domain

import "time"

type Category struct {
	ID        string
	UserID    string
	Name      string
	Color     string
	CreatedAt time.Time
}
