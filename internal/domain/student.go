package domain

import "time"

// Student is a registered user of the tree programme
type Student struct {
	ID          string    `json:"id"`
	Username    string    `json:"username"`
	Email       string    `json:"email"`
	DisplayName string    `json:"display_name"`
	TimeZone    string    `json:"time_zone,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// RegisterStudentInput carries the data collected at sign-up
type RegisterStudentInput struct {
	Username    string
	Email       string
	DisplayName string
	TimeZone    string
}
