package models

import "time"

// User é o principal de autenticação. Username é sempre o e-mail do aluno.
type User struct {
	ID          int64      `gorm:"primary_key;AUTO_INCREMENT" json:"id"`
	Username    string     `gorm:"not null;unique_index" json:"username"`
	Email       string     `gorm:"not null" json:"email"`
	Password    string     `gorm:"not null" json:"-"`
	FirstName   string     `gorm:"default:''" json:"first_name"`
	IsSuperuser bool       `gorm:"not null;default:false" json:"is_superuser"`
	IsActive    bool       `gorm:"not null;default:true" json:"is_active"`
	LastLogin   *time.Time `json:"last_login"`
	CreatedAt   *time.Time `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at"`
}

func (User) TableName() string { return "users" }

// AuthToken is the opaque API token handed out on signup and login.
// A user holds at most one.
type AuthToken struct {
	Key       string     `gorm:"column:token_key;primary_key;size:64" json:"token"`
	UserID    int64      `gorm:"not null;unique_index" json:"-"`
	CreatedAt *time.Time `json:"created_at"`
}

func (AuthToken) TableName() string { return "auth_tokens" }

// IsExpired reports whether the token is older than ttl. A zero ttl never expires.
func (t AuthToken) IsExpired(now time.Time, ttl time.Duration) bool {
	if ttl <= 0 || t.CreatedAt == nil {
		return false
	}
	return now.After(t.CreatedAt.Add(ttl))
}
