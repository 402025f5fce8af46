package entities

import (
	"time"
)

// Patch types carry partial updates. A nil field is "leave as is", a non-nil
// field overwrites the target's field when the values differ.

// UserPatch ...
type UserPatch struct {
	Email          *string
	Password       *string
	ProfilePicture *string
	LastLogin      *time.Time
}

// PostPatch ...
type PostPatch struct {
	Title   *string
	Content *string
	Image   *string
}

// CommentPatch ...
type CommentPatch struct {
	Content *string
}

// MergeUser applies patch to u and reports whether any field actually
// changed. UserName is immutable and is not patchable. ModifiedAt is not
// touched, the caller bumps it only when changed is true.
func MergeUser(u User, patch UserPatch) (User, bool) {
	changed := false

	if patch.Email != nil && *patch.Email != u.Email {
		u.Email = *patch.Email
		changed = true
	}
	if patch.Password != nil && *patch.Password != u.Password {
		u.Password = *patch.Password
		changed = true
	}
	if patch.ProfilePicture != nil && *patch.ProfilePicture != u.ProfilePicture {
		u.ProfilePicture = *patch.ProfilePicture
		changed = true
	}
	if patch.LastLogin != nil && (u.LastLogin == nil || !patch.LastLogin.Equal(*u.LastLogin)) {
		t := *patch.LastLogin
		u.LastLogin = &t
		changed = true
	}

	return u, changed
}

// MergePost applies patch to p and reports whether any field actually changed.
func MergePost(p Post, patch PostPatch) (Post, bool) {
	changed := false

	if patch.Title != nil && *patch.Title != p.Title {
		p.Title = *patch.Title
		changed = true
	}
	if patch.Content != nil && *patch.Content != p.Content {
		p.Content = *patch.Content
		changed = true
	}
	if patch.Image != nil && *patch.Image != p.Image {
		p.Image = *patch.Image
		changed = true
	}

	return p, changed
}

// MergeComment applies patch to c and reports whether any field actually
// changed. Only content is mutable, the tree position of a comment is fixed
// at creation.
func MergeComment(c Comment, patch CommentPatch) (Comment, bool) {
	changed := false

	if patch.Content != nil && *patch.Content != c.Content {
		c.Content = *patch.Content
		changed = true
	}

	return c, changed
}
