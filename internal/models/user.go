package models

import "time"

type User struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Password  string    `json:"-"` // Don't return password hash in JSON
	CreatedAt time.Time `json:"created_at"`
}
