package models

import "time"

type Users struct {
	ID       int64  `gorm:"column:id;primaryKey" json:"id"`
	Account  string `gorm:"column:account;type:varchar(64);not null;uniqueIndex:uk_account" json:"account"`
	Password string `gorm:"column:password;type:varchar(128);not null" json:"-"`
	Nickname string `gorm:"column:nickname;type:varchar(64)" json:"nickname"`
	Avatar   string `gorm:"column:avatar;type:varchar(512)" json:"avatar"`
	Profile  string `gorm:"column:profile;type:varchar(512)" json:"profile"`
	// 角色 user / admin
	Role      string    `gorm:"column:role;type:varchar(16);not null;default:'user'" json:"role"`
	CreatedAt time.Time `gorm:"column:created_at;not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;not null" json:"updated_at"`
}

func (Users) TableName() string {
	return "users"
}
