package core

import (
	"time"

	"github.com/aarondl/opt/omit"
	"github.com/aarondl/opt/omitnull"
)

// ptr flattens an option-typed value to a plain pointer: the value when
// set, nil when null or unset.
func ptr[T any](v omitnull.Val[T]) *T {
	n, _ := v.GetNull()
	return n.Ptr()
}

// ProfileFields is the write payload for a profile upsert. Every field but
// the natural key is option-typed: an unset field is absent from the write,
// it is never coerced to a zero value. A minimal payload (did and handle
// only) is enough to create the row a dependent post can reference.
type ProfileFields struct {
	DID            string
	Handle         omit.Val[string]
	DisplayName    omitnull.Val[string]
	Description    omitnull.Val[string]
	FollowsCount   omit.Val[int64]
	FollowersCount omit.Val[int64]
	PostsCount     omit.Val[int64]
	IndexedAt      omit.Val[time.Time]
}

// Assignments returns the mutable columns present in the payload, in the
// shape the conflict-update clause wants them.
func (f ProfileFields) Assignments() map[string]any {
	m := map[string]any{}
	if f.Handle.IsValue() {
		m["handle"] = f.Handle.GetOrZero()
	}
	if !f.DisplayName.IsUnset() {
		m["display_name"] = ptr(f.DisplayName)
	}
	if !f.Description.IsUnset() {
		m["description"] = ptr(f.Description)
	}
	if f.FollowsCount.IsValue() {
		m["follows_count"] = f.FollowsCount.GetOrZero()
	}
	if f.FollowersCount.IsValue() {
		m["followers_count"] = f.FollowersCount.GetOrZero()
	}
	if f.PostsCount.IsValue() {
		m["posts_count"] = f.PostsCount.GetOrZero()
	}
	if f.IndexedAt.IsValue() {
		m["indexed_at"] = f.IndexedAt.GetOrZero()
	}
	return m
}

// Row materializes the payload into a fresh model for the insert half of
// the upsert. Unset fields stay at their zero value.
func (f ProfileFields) Row() ProfileModel {
	return ProfileModel{
		DID:            f.DID,
		Handle:         f.Handle.GetOrZero(),
		DisplayName:    ptr(f.DisplayName),
		Description:    ptr(f.Description),
		FollowsCount:   f.FollowsCount.GetOrZero(),
		FollowersCount: f.FollowersCount.GetOrZero(),
		PostsCount:     f.PostsCount.GetOrZero(),
		IndexedAt:      f.IndexedAt.GetOrZero(),
	}
}

// PostFields is the write payload for a post upsert. URI is the natural
// key; ProfileID must already point at a stored profile. Only the counters
// and the indexed timestamp ever make it into the update half.
type PostFields struct {
	URI       string
	CID       omit.Val[string]
	URL       omit.Val[string]
	ProfileID omit.Val[uint]
	AuthorDID omit.Val[string]
	Text      omit.Val[string]
	CreatedAt omit.Val[time.Time]

	ReplyCount  omit.Val[int64]
	RepostCount omit.Val[int64]
	LikeCount   omit.Val[int64]
	IndexedAt   omit.Val[time.Time]
}

// Assignments returns the volatile columns present in the payload. Text,
// author and creation time are deliberately excluded: they are immutable
// once recorded.
func (f PostFields) Assignments() map[string]any {
	m := map[string]any{}
	if f.ReplyCount.IsValue() {
		m["reply_count"] = f.ReplyCount.GetOrZero()
	}
	if f.RepostCount.IsValue() {
		m["repost_count"] = f.RepostCount.GetOrZero()
	}
	if f.LikeCount.IsValue() {
		m["like_count"] = f.LikeCount.GetOrZero()
	}
	if f.IndexedAt.IsValue() {
		m["indexed_at"] = f.IndexedAt.GetOrZero()
	}
	return m
}

func (f PostFields) Row() PostModel {
	return PostModel{
		URI:         f.URI,
		CID:         f.CID.GetOrZero(),
		URL:         f.URL.GetOrZero(),
		ProfileID:   f.ProfileID.GetOrZero(),
		AuthorDID:   f.AuthorDID.GetOrZero(),
		Text:        f.Text.GetOrZero(),
		CreatedAt:   f.CreatedAt.GetOrZero(),
		ReplyCount:  f.ReplyCount.GetOrZero(),
		RepostCount: f.RepostCount.GetOrZero(),
		LikeCount:   f.LikeCount.GetOrZero(),
		IndexedAt:   f.IndexedAt.GetOrZero(),
	}
}
