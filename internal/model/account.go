package model

import "time"

// Role account role
type Role string

const (
	RoleAdmin     Role = "ADMIN"
	RoleOrganizer Role = "ORGANIZER"
	RoleAttendee  Role = "ATTENDEE"
	RoleOthers    Role = "OTHERS"
)

// IsValid reports whether the role is one of the known roles
func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleOrganizer, RoleAttendee, RoleOthers:
		return true
	}
	return false
}

type Gender string

const (
	GenderMale   Gender = "Male"
	GenderFemale Gender = "Female"
)

func (g Gender) IsValid() bool {
	return g == "" || g == GenderMale || g == GenderFemale
}

type AccountStatus string

const (
	AccountStatusActive      AccountStatus = "active"
	AccountStatusDeactivated AccountStatus = "deactivated"
)

// Account user account
type Account struct {
	ID                  int       `json:"id" db:"id"`
	Username            string    `json:"username" db:"username"`
	Email               string    `json:"email" db:"email"`
	FirstName           string    `json:"fname" db:"first_name"`
	LastName            string    `json:"lname" db:"last_name"`
	Gender              Gender    `json:"gender" db:"gender"`
	Role                Role      `json:"role" db:"role"`
	IsActive            bool      `json:"is_active" db:"is_active"`
	IsStaff             bool      `json:"is_staff" db:"is_staff"`
	IsAdmin             bool      `json:"is_admin" db:"is_admin"`
	PasswordHash        string    `json:"-" db:"password_hash"`
	ForgetPasswordToken *string   `json:"-" db:"forget_password_token"`
	DateJoined          time.Time `json:"date_joined" db:"date_joined"`
	LastLogin           time.Time `json:"last_login" db:"last_login"`
}

func (a *Account) Status() AccountStatus {
	if a.IsActive {
		return AccountStatusActive
	}
	return AccountStatusDeactivated
}

// FullName used in reminder emails
func (a *Account) FullName() string {
	switch {
	case a.FirstName == "" && a.LastName == "":
		return a.Username
	case a.LastName == "":
		return a.FirstName
	case a.FirstName == "":
		return a.LastName
	}
	return a.FirstName + " " + a.LastName
}

// ApplyRoleFlags sets the staff/admin flags implied by the role
func (a *Account) ApplyRoleFlags() {
	a.IsStaff = a.Role == RoleOrganizer || a.Role == RoleAdmin
	a.IsAdmin = a.Role == RoleAdmin
}

type UpdateAccountParams struct {
	Email     *string
	FirstName *string
	LastName  *string
	Gender    *Gender
	Role      *Role
	IsActive  *bool
}

func (p UpdateAccountParams) IsEmpty() bool {
	return p.Email == nil && p.FirstName == nil && p.LastName == nil &&
		p.Gender == nil && p.Role == nil && p.IsActive == nil
}

// CreateAccountRequest registration request
type CreateAccountRequest struct {
	Username  string `json:"username" binding:"required,max=30"`
	Email     string `json:"email" binding:"required,email,max=60"`
	Password  string `json:"password" binding:"required,min=4"`
	FirstName string `json:"fname" binding:"max=30"`
	LastName  string `json:"lname" binding:"max=30"`
	Gender    Gender `json:"gender"`
	Role      Role   `json:"role"`
}

// UpdateAccountRequest partial update request (PUT and PATCH)
type UpdateAccountRequest struct {
	Email     *string `json:"email" binding:"omitempty,email,max=60"`
	FirstName *string `json:"fname" binding:"omitempty,max=30"`
	LastName  *string `json:"lname" binding:"omitempty,max=30"`
	Gender    *Gender `json:"gender"`
	Role      *Role   `json:"role"`
	IsActive  *bool   `json:"is_active"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	Account   *Account  `json:"account"`
}

type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=4"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type ResetPasswordRequest struct {
	Password string `json:"password" binding:"required,min=4"`
}
