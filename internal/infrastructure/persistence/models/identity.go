package models

import (
	"time"

	"github.com/projecthub/backend/internal/domain/identity"
)

// UserModel is the persistence model for the User domain entity.
type UserModel struct {
	AggregateModel
	Username       string              `gorm:"type:varchar(100);not null;uniqueIndex"`
	Email          string              `gorm:"type:varchar(200);not null;uniqueIndex"`
	PasswordHash   string              `gorm:"type:varchar(255);not null"`
	DisplayName    string              `gorm:"type:varchar(200)"`
	Status         identity.UserStatus `gorm:"type:varchar(20);not null;default:'active'"`
	LastLoginAt    *time.Time          `gorm:"index"`
	LastLoginIP    string              `gorm:"type:varchar(45)"`
	FailedAttempts int                 `gorm:"not null;default:0"`
	LockedUntil    *time.Time
}

// TableName returns the table name for GORM
func (UserModel) TableName() string {
	return "users"
}

// ToDomain converts the persistence model to a domain User entity.
func (m *UserModel) ToDomain() *identity.User {
	return &identity.User{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		Username:          m.Username,
		Email:             m.Email,
		PasswordHash:      m.PasswordHash,
		DisplayName:       m.DisplayName,
		Status:            m.Status,
		LastLoginAt:       m.LastLoginAt,
		LastLoginIP:       m.LastLoginIP,
		FailedAttempts:    m.FailedAttempts,
		LockedUntil:       m.LockedUntil,
	}
}

// FromDomain populates the persistence model from a domain User entity.
func (m *UserModel) FromDomain(u *identity.User) {
	m.FromDomainAggregateRoot(u.BaseAggregateRoot)
	m.Username = u.Username
	m.Email = u.Email
	m.PasswordHash = u.PasswordHash
	m.DisplayName = u.DisplayName
	m.Status = u.Status
	m.LastLoginAt = u.LastLoginAt
	m.LastLoginIP = u.LastLoginIP
	m.FailedAttempts = u.FailedAttempts
	m.LockedUntil = u.LockedUntil
}

// UserModelFromDomain creates a new persistence model from a domain User entity.
func UserModelFromDomain(u *identity.User) *UserModel {
	m := &UserModel{}
	m.FromDomain(u)
	return m
}
