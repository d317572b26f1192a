package attendance

import "time"

// SessionStatus enum
type SessionStatus string

const (
	SessionOpen      SessionStatus = "open"
	SessionCompleted SessionStatus = "completed"
)

// ClockSession - canonical per-(employee, work_date) attendance row.
// Up to two in/out pairs; exactly one row per work date. Photo and
// geolocation metadata is opaque to the engine and travels with its
// clock slot during midnight repair.
type ClockSession struct {
	ID         string
	CompanyID  string
	EmployeeID string
	WorkDate   time.Time

	ClockIn1  *time.Time
	ClockOut1 *time.Time
	ClockIn2  *time.Time
	ClockOut2 *time.Time

	ClockIn1Meta  *string
	ClockOut1Meta *string
	ClockIn2Meta  *string
	ClockOut2Meta *string

	Status        SessionStatus
	WorkedMinutes int

	CreatedAt time.Time
	UpdatedAt time.Time
}

// HasAnyData reports whether any clock slot besides ClockIn1 is set.
func (s ClockSession) HasDataBeyondFirstIn() bool {
	return s.ClockOut1 != nil || s.ClockIn2 != nil || s.ClockOut2 != nil
}

// IsOpen reports whether the session has a first clock-in and no final
// clock-out, i.e. the shape a midnight-crossing shift leaves behind.
func (s ClockSession) IsOpen() bool {
	return s.ClockIn1 != nil && s.ClockOut2 == nil
}
