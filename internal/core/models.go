package core

import (
	"time"
)

// ProfileModel mirrors one remote account. The DID is the natural key:
// it never changes, while the handle and the rest of the attributes may.
type ProfileModel struct {
	ID uint `gorm:"primarykey"`

	DID            string `gorm:"uniqueIndex;not null"`
	Handle         string `gorm:"not null"`
	DisplayName    *string
	Description    *string
	FollowsCount   int64
	FollowersCount int64
	PostsCount     int64
	IndexedAt      time.Time
}

func (ProfileModel) TableName() string {
	return "profiles"
}

// PostModel mirrors one remote post, keyed by its at-uri. Text, author and
// creation time are immutable once recorded; the interaction counters and
// the indexed timestamp are refreshed on every re-observation.
type PostModel struct {
	ID uint `gorm:"primarykey"`

	URI       string `gorm:"uniqueIndex;not null"`
	CID       string `gorm:"uniqueIndex"`
	URL       string `gorm:"uniqueIndex"`
	ProfileID uint   `gorm:"index;not null"`
	AuthorDID string
	Text      string
	CreatedAt time.Time

	ReplyCount  int64
	RepostCount int64
	LikeCount   int64
	IndexedAt   time.Time
}

func (PostModel) TableName() string {
	return "posts"
}

// CursorModel stores the resume point of a streaming source, one row per
// source name.
type CursorModel struct {
	Service string `gorm:"primarykey"`
	Cursor  int64
}

func (CursorModel) TableName() string {
	return "cursors"
}
