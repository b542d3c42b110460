package dao

import (
	"context"

	"PicCloud/models"

	"gorm.io/gorm"
)

type PictureDAO struct {
	Repo[models.Picture]
}

func NewPictureDAO(db *gorm.DB) *PictureDAO {
	return &PictureDAO{Repo: NewRepo[models.Picture](db)}
}

// Create 新增图片记录
func (d *PictureDAO) Create(ctx context.Context, pic *models.Picture) error {
	return d.Db.WithContext(ctx).Create(pic).Error
}

// Save 按主键整行保存（重新上传场景覆盖存储派生字段）
func (d *PictureDAO) Save(ctx context.Context, pic *models.Picture) error {
	return d.Db.WithContext(ctx).Save(pic).Error
}

// UpdateById 按主键更新指定字段
func (d *PictureDAO) UpdateById(ctx context.Context, id int64, data map[string]any) error {
	if id <= 0 {
		return gorm.ErrRecordNotFound
	}
	return d.Db.WithContext(ctx).
		Model(&models.Picture{}).
		Where("id = ?", id).
		Updates(data).Error
}

// DeleteById 硬删除
func (d *PictureDAO) DeleteById(ctx context.Context, id int64) (bool, error) {
	res := d.Db.WithContext(ctx).Where("id = ?", id).Delete(&models.Picture{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// FindPage 应用条件集合分页查询，返回记录和总数
func (d *PictureDAO) FindPage(ctx context.Context, q *QueryClauses, current, pageSize int) ([]*models.Picture, int64, error) {
	tx := d.Db.WithContext(ctx).Model(&models.Picture{})
	for _, c := range q.Wheres {
		tx = tx.Where(c.Cond, c.Args...)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if q.Order != "" {
		tx = tx.Order(q.Order)
	}

	var pics []*models.Picture
	err := tx.Limit(pageSize).
		Offset((current - 1) * pageSize).
		Find(&pics).Error
	return pics, total, err
}
