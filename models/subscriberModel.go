package models

import "gorm.io/gorm"

type Newsletter struct {
	gorm.Model
	Email      string `json:"email" gorm:"size:200;uniqueIndex"`
	Subscribed bool   `json:"subscribed" gorm:"default:true"`
}

type Contact struct {
	gorm.Model
	Name      string `json:"name"`
	Email     string `json:"email"`
	Subject   string `json:"subject"`
	Message   string `json:"message"`
	Responded bool   `json:"responded"`
}
