package employee

import "github.com/YugandharPise/SME-HR/internal/store"

type CreateEmployeeRequest struct {
	FirstName  string  `json:"first_name" binding:"required"`
	LastName   string  `json:"last_name" binding:"required"`
	Email      string  `json:"email" binding:"required,email"`
	Department string  `json:"department"`
	Position   string  `json:"position"`
	Salary     float64 `json:"salary" binding:"gte=0"`
}

// UpdateEmployeeRequest overwrites only the fields that are present.
type UpdateEmployeeRequest struct {
	FirstName  *string  `json:"first_name" binding:"omitempty,min=1"`
	LastName   *string  `json:"last_name" binding:"omitempty,min=1"`
	Email      *string  `json:"email" binding:"omitempty,email"`
	Department *string  `json:"department"`
	Position   *string  `json:"position"`
	Salary     *float64 `json:"salary" binding:"omitempty,gte=0"`
}

type EmployeeResponse struct {
	ID         int64   `json:"id"`
	UserID     *int64  `json:"user_id,omitempty"`
	FirstName  string  `json:"first_name"`
	LastName   string  `json:"last_name"`
	Email      string  `json:"email"`
	Department string  `json:"department"`
	Position   string  `json:"position"`
	Salary     float64 `json:"salary"`
}

type EmployeeOptionResponse struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	Department string `json:"department,omitempty"`
}

func mapToResponse(e store.Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:         e.ID,
		UserID:     e.UserID,
		FirstName:  e.FirstName,
		LastName:   e.LastName,
		Email:      e.Email,
		Department: e.Department,
		Position:   e.Position,
		Salary:     e.Salary,
	}
}

func mapToListResponse(emps []store.Employee) []EmployeeResponse {
	res := make([]EmployeeResponse, len(emps))
	for i, e := range emps {
		res[i] = mapToResponse(e)
	}
	return res
}
