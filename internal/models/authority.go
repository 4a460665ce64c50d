package models

import (
	"strings"

	"gorm.io/gorm"
)

// Authority is a local authority that schemes and users belong to.
type Authority struct {
	Model
	Name string `gorm:"uniqueIndex:authority_name"`
}

// BeforeSave trims whitespace from the name.
func (a *Authority) BeforeSave(_ *gorm.DB) error {
	a.Name = strings.TrimSpace(a.Name)
	return nil
}

// User may report on schemes for an authority.
type User struct {
	Model
	Email       string    `gorm:"uniqueIndex:user_email_authority"`
	AuthorityID uint      `gorm:"uniqueIndex:user_email_authority"`
	Authority   Authority `json:"-"`
}

// BeforeSave normalizes the email address.
func (u *User) BeforeSave(_ *gorm.DB) error {
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	return nil
}

// BeforeCreate verifies that the authority exists.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	return tx.First(&Authority{}, u.AuthorityID).Error
}
