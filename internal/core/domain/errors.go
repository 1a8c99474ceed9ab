package domain

import "errors"

var (
	// ErrInvalidCredentials covers both unknown identifier and wrong password
	// so the two cases are indistinguishable on the wire.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrUserExists signals a duplicate email or username at registration.
	ErrUserExists   = errors.New("user already exists")
	ErrUserNotFound = errors.New("user not found")
	// ErrAccountDisabled is returned for institutional admins whose active
	// flag is off. Distinct from ErrInvalidCredentials: the institutional
	// site reports disabled accounts as 403, not 401.
	ErrAccountDisabled = errors.New("account disabled")
	ErrAdminNotFound   = errors.New("admin not found")
	ErrAdminExists     = errors.New("admin already exists")
	// ErrSelfRoleChange rejects an admin mutating its own role.
	ErrSelfRoleChange = errors.New("cannot change own role")
	ErrInvalidRole    = errors.New("invalid role")
	ErrForbidden      = errors.New("access forbidden")
	ErrPostNotFound   = errors.New("post not found")
	ErrInvalidInput   = errors.New("invalid input")
)
