package domain

import "time"

type Message struct {
	ID        int64     `db:"id"`
	Name      string    `db:"name"`
	Text      string    `db:"text"`
	CreatedAt time.Time `db:"timestamp"`
}
