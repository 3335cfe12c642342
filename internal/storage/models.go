package storage

import "time"

// MainStateKey identifies the single local player's save.
const MainStateKey = "main_user"

// Backup is a saved snapshot taken before a destructive operation.
type Backup struct {
	ID        int64
	Key       string
	Reason    string
	Level     int
	Note      *string
	CreatedAt time.Time
	Data      []byte
}
