package models

import "time"

type Picture struct {
	ID           int64  `gorm:"column:id;primaryKey" json:"id"`
	Url          string `gorm:"column:url;type:varchar(1024)" json:"url"`
	Name         string `gorm:"column:name;type:varchar(128);not null;default:''" json:"name"`
	Introduction string `gorm:"column:introduction;type:varchar(800)" json:"introduction"`
	Category     string `gorm:"column:category;type:varchar(64)" json:"category"`
	// 标签 JSON 数组字符串，如 ["热门","高清"]
	Tags      string  `gorm:"column:tags;type:json" json:"tags"`
	PicSize   int64   `gorm:"column:pic_size;not null;default:0" json:"pic_size"`
	PicWidth  int     `gorm:"column:pic_width;not null;default:0" json:"pic_width"`
	PicHeight int     `gorm:"column:pic_height;not null;default:0" json:"pic_height"`
	PicScale  float64 `gorm:"column:pic_scale;not null;default:0" json:"pic_scale"`
	PicFormat string  `gorm:"column:pic_format;type:varchar(32)" json:"pic_format"`
	UserID    int64   `gorm:"column:user_id;not null;index:idx_user_status,priority:1" json:"user_id"`

	ReviewStatus  int        `gorm:"column:review_status;not null;default:0;index:idx_user_status,priority:2" json:"review_status"`
	ReviewMessage string     `gorm:"column:review_message;type:varchar(512)" json:"review_message"`
	ReviewerID    int64      `gorm:"column:reviewer_id" json:"reviewer_id"`
	ReviewTime    *time.Time `gorm:"column:review_time" json:"review_time"`

	EditTime  *time.Time `gorm:"column:edit_time" json:"edit_time"`
	CreatedAt time.Time  `gorm:"column:created_at;not null;index:idx_created_at" json:"created_at"`
	UpdatedAt time.Time  `gorm:"column:updated_at;not null" json:"updated_at"`
}

func (Picture) TableName() string {
	return "picture"
}
