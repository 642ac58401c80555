package model

import "strings"

// CreateCommentRequest identifies the author by email; user_id is resolved server-side.
// place_id stays a string so a malformed id is reported like an unknown place.
type CreateCommentRequest struct {
	Content   string `json:"content"`
	UserEmail string `json:"user_email"`
	PlaceID   string `json:"place_id"`
}

func (r *CreateCommentRequest) Normalize() {
	r.Content = strings.TrimSpace(r.Content)
	r.UserEmail = strings.TrimSpace(r.UserEmail)
	r.PlaceID = strings.TrimSpace(r.PlaceID)
}
