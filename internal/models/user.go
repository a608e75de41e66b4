package models

import "github.com/google/uuid"

const (
	LearnerRole    = "learner"
	InstructorRole = "instructor"
	AdminRole      = "admin"
)

type User struct {
	ID       uuid.UUID
	Username string
	Password string
	Email    string
	Roles    []string
}
