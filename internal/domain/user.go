package domain

import "time"

// RoleAdmin is the only role in the system. Every seeded account gets it.
const RoleAdmin = "admin"

// User is a login account. Accounts are seeded out of band (cmd/seed);
// there is no self-registration.
type User struct {
	UserID    string    `json:"id" dynamodbav:"user_id"`
	Email     string    `json:"email" dynamodbav:"email"`
	Phone     *string   `json:"phone,omitempty" dynamodbav:"phone"`
	Role      string    `json:"role" dynamodbav:"role"`
	CreatedAt time.Time `json:"created" dynamodbav:"created_at"`
	UpdatedAt time.Time `json:"updated" dynamodbav:"updated_at"`
}
