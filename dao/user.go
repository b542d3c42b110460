package dao

import (
	"context"

	"PicCloud/models"

	"gorm.io/gorm"
)

type Users struct {
	Repo[models.Users]
}

func NewUsers(db *gorm.DB) *Users {
	return &Users{
		Repo: NewRepo[models.Users](db),
	}
}

// FindByAccount 账号查询
func (u *Users) FindByAccount(ctx context.Context, account string) (*models.Users, error) {
	return u.Repo.FindByWhere(ctx, "account = ?", account)
}

// IsAccountExist 判断账号是否已注册
func (u *Users) IsAccountExist(ctx context.Context, account string) bool {
	exist, _ := u.Repo.IsExist(ctx, "account = ?", account)
	return exist
}

// Create 创建用户
func (u *Users) Create(ctx context.Context, user *models.Users) error {
	return u.Db.WithContext(ctx).Create(user).Error
}

// FindByIDs 批量查询，用于分页列表补充上传者信息
func (u *Users) FindByIDs(ctx context.Context, ids []int64) ([]*models.Users, error) {
	if len(ids) == 0 {
		return []*models.Users{}, nil
	}
	var users []*models.Users
	err := u.Db.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&users).Error
	return users, err
}

// FindPage 应用条件集合分页查询
func (u *Users) FindPage(ctx context.Context, q *QueryClauses, current, pageSize int) ([]*models.Users, int64, error) {
	tx := u.Db.WithContext(ctx).Model(&models.Users{})
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

	var users []*models.Users
	err := tx.Limit(pageSize).
		Offset((current - 1) * pageSize).
		Find(&users).Error
	return users, total, err
}
