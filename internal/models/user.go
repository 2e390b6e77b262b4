package models

// Roles a user can hold.
const (
	RoleAdmin    = "Admin"
	RoleCustomer = "Customer"
)

// User represents a user of the store.
type User struct {
	ID           uint   `json:"id" gorm:"primaryKey"`
	Name         string `json:"name" gorm:"type:varchar(100);not null"`
	Username     string `json:"username" gorm:"type:varchar(100);uniqueIndex;not null"`
	PasswordHash string `json:"-" gorm:"type:varchar(255);not null"` // never serialized
	Role         string `json:"role" gorm:"type:varchar(20);not null"`
}

// CreateUserDto carries the registration data.
type CreateUserDto struct {
	Name     string `json:"name" validate:"required,max=100"`
	Username string `json:"username" validate:"required,min=3,max=100"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role" validate:"required,oneof=Admin Customer"`
}

// UserLoginDto carries login credentials.
type UserLoginDto struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// UserDataDto is the public view of a user.
type UserDataDto struct {
	ID       uint   `json:"id"`
	Name     string `json:"name"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// UserLoginResponseDto is the outcome of a login attempt. A failed attempt
// leaves User nil and Token empty.
type UserLoginResponseDto struct {
	User      *UserDataDto `json:"user"`
	Token     string       `json:"token"`
	ExpiresAt int64        `json:"expires_at,omitempty"`
}

// Succeeded reports whether the login issued a token.
func (r *UserLoginResponseDto) Succeeded() bool {
	return r != nil && r.User != nil && r.Token != ""
}

// ToUserData strips the password hash.
func (u *User) ToUserData() *UserDataDto {
	if u == nil {
		return nil
	}
	return &UserDataDto{ID: u.ID, Name: u.Name, Username: u.Username, Role: u.Role}
}
