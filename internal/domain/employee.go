package domain

import "time"

// Employee is a staff record. Code is the human-assigned employee number
// (e.g. "EMP-001") and is unique, as is the lowercased email.
type Employee struct {
	EmployeeID string    `json:"id" dynamodbav:"employee_id"`
	Code       string    `json:"employee_code" dynamodbav:"employee_code"`
	FullName   string    `json:"full_name" dynamodbav:"full_name"`
	Email      string    `json:"email" dynamodbav:"email"`
	Department string    `json:"department" dynamodbav:"department"`
	CreatedAt  time.Time `json:"created" dynamodbav:"created_at"`
	UpdatedAt  time.Time `json:"updated" dynamodbav:"updated_at"`
}

type CreateEmployeeRequest struct {
	Code       string `json:"employee_code" validate:"required"`
	FullName   string `json:"full_name" validate:"required"`
	Email      string `json:"email" validate:"required,email"`
	Department string `json:"department" validate:"required"`
}
