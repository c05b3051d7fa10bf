package dto

import "time"

// UserProfileResponse defines the structure for a user's profile information.
// @Description User profile with the tier currently held
type UserProfileResponse struct {
	ID            string     `json:"id"`
	Email         string     `json:"email"`
	Name          string     `json:"name,omitempty"`
	ImageURL      string     `json:"image_url,omitempty"`
	Tier          string     `json:"tier"`
	TierExpiresAt *time.Time `json:"tier_expires_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

// ChapterResponse is one chapter of the study guide.
type ChapterResponse struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Order       int    `json:"order"`
}
