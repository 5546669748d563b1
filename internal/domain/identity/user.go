package identity

import (
	"strings"
	"time"

	"github.com/willy-peters/SmartPOS/internal/domain/shared"
	"github.com/google/uuid"
)

// Role is the capability level attached to every authenticated request
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleCashier Role = "cashier"
)

// IsValid checks if the role is a known Role
func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleCashier:
		return true
	}
	return false
}

// String returns the string representation of Role
func (r Role) String() string {
	return string(r)
}

// CanViewAllSales reports whether the role may read sales owned by others
func (r Role) CanViewAllSales() bool {
	return r == RoleAdmin
}

// CanViewReports reports whether the role may run aggregate reports
func (r Role) CanViewReports() bool {
	return r == RoleAdmin
}

// CanManageCatalog reports whether the role may create or edit products
func (r Role) CanManageCatalog() bool {
	return r == RoleAdmin
}

// Principal is the identity attached to a request: who is acting and with
// what capability. It is passed explicitly into every permission-sensitive
// operation rather than read from ambient state.
type Principal struct {
	UserID   uuid.UUID
	Username string
	Role     Role
}

// User is a system account. Authentication mechanics live at the edge; the
// core only consumes the resulting principal.
type User struct {
	shared.BaseEntity
	Username     string `gorm:"type:varchar(150);not null;uniqueIndex"`
	Email        string `gorm:"type:varchar(254);not null;uniqueIndex"`
	PasswordHash string `gorm:"type:varchar(255);not null"`
	FirstName    string `gorm:"type:varchar(150)"`
	LastName     string `gorm:"type:varchar(150)"`
	Role         Role   `gorm:"type:varchar(20);not null;default:'cashier'"`
}

// TableName returns the table name for GORM
func (User) TableName() string {
	return "users"
}

// NewUser creates a new user account with the given, already hashed, password
func NewUser(username, email, passwordHash string, role Role) (*User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, shared.NewDomainError("INVALID_USERNAME", "Username cannot be empty")
	}
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" {
		return nil, shared.NewDomainError("INVALID_EMAIL", "Email cannot be empty")
	}
	if passwordHash == "" {
		return nil, shared.NewDomainError("INVALID_PASSWORD", "Password hash cannot be empty")
	}
	if !role.IsValid() {
		return nil, shared.NewDomainError("INVALID_ROLE", "Role must be admin or cashier")
	}

	return &User{
		BaseEntity:   shared.NewBaseEntity(),
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
		Role:         role,
	}, nil
}

// FullName returns the display name, falling back to the username
func (u *User) FullName() string {
	name := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if name == "" {
		return u.Username
	}
	return name
}

// Principal returns the principal this user acts as
func (u *User) Principal() Principal {
	return Principal{UserID: u.ID, Username: u.Username, Role: u.Role}
}

// Touch updates the modification timestamp
func (u *User) Touch() {
	u.UpdatedAt = time.Now()
}
