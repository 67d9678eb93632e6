package models

import "time"

// Note is a single saved revision of a user's notebook. Rows are only ever
// appended; the highest id per user is the current note.
type Note struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"userId"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}
