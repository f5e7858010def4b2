package domain

import "time"

// Attendance statuses.
const (
	StatusPresent = "Present"
	StatusAbsent  = "Absent"
)

// Attendance is one employee's record for one calendar day.
// PK: employee_id, SK: date — at most one record per employee per day;
// re-marking the same day overwrites the status in place.
type Attendance struct {
	EmployeeID string    `json:"employee_id" dynamodbav:"employee_id"`
	Date       string    `json:"date" dynamodbav:"date"` // YYYY-MM-DD
	Status     string    `json:"status" dynamodbav:"status"`
	CreatedAt  time.Time `json:"created" dynamodbav:"created_at"`
	UpdatedAt  time.Time `json:"updated" dynamodbav:"updated_at"`
	Employee   *Employee `json:"employee,omitempty" dynamodbav:"-"`
}

type MarkAttendanceRequest struct {
	EmployeeID string `json:"employee_id" validate:"required"`
	Date       string `json:"date" validate:"required,datetime=2006-01-02"`
	Status     string `json:"status" validate:"required,oneof=Present Absent"`
}
