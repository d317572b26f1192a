package attendance

import "errors"

var (
	ErrSessionNotFound     = errors.New("clock session not found")
	ErrSessionFull         = errors.New("clock session already has four punches")
	ErrPunchOutOfOrder     = errors.New("punch is earlier than the previous punch")
	ErrSessionDateConflict = errors.New("clock session already exists for this work date")
)
