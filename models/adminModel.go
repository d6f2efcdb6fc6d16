package models

import "gorm.io/gorm"

type Admin struct {
	gorm.Model
	Username     string `json:"username" gorm:"size:100;uniqueIndex"`
	PasswordHash string `json:"-"`
	Email        string `json:"email"`
}

type LoginData struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}
