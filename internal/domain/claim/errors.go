package claim

import "errors"

var (
	ErrClaimNotFound      = errors.New("claim not found")
	ErrClaimAlreadyLinked = errors.New("claim already linked to a payroll item")
)
