package domain

import "time"

type Comment struct {
	ID        string
	BlogID    string
	AuthorID  string
	Text      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Message struct {
	ID        string
	UserID    string
	Text      string
	CreatedAt time.Time
}
