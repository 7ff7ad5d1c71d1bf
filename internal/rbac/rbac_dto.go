package rbac

import "github.com/YugandharPise/SME-HR/internal/store"

// Identity is what a verified token says about the caller.
type Identity struct {
	UserID     int64
	Role       store.Role
	EmployeeID *int64
}

type EnforceRequest struct {
	Role      store.Role `json:"role"`
	Operation Operation  `json:"operation"`
}
