package service

import (
	"context"
	"errors"
	"time"

	"PicCloud/config"
	"PicCloud/dao"
	"PicCloud/models"
	"PicCloud/pkg/jwt"
	"PicCloud/pkg/response"
	"PicCloud/pkg/snowflake"
	"PicCloud/types"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var _ IUserService = (*UserService)(nil)

type IUserService interface {
	Register(ctx context.Context, req *types.UserRegisterRequest) (int64, error)
	Login(ctx context.Context, req *types.UserLoginRequest) (*types.LoginUserVO, error)
	GetById(ctx context.Context, id int64) (*models.Users, error)
	// ListVOPage 管理端用户分页
	ListVOPage(ctx context.Context, req *types.UserQueryRequest) (*types.UserVOPage, error)
}

type UserService struct {
	UserDAO *dao.Users
	Config  *config.Config
}

func (s *UserService) Register(ctx context.Context, req *types.UserRegisterRequest) (int64, error) {
	if req == nil || req.Account == "" || req.Password == "" || req.CheckPassword == "" {
		return 0, response.ParamsError("参数不能为空")
	}
	if len(req.Account) < 4 {
		return 0, response.ParamsError("账号长度不能小于4")
	}
	if len(req.Password) < 8 {
		return 0, response.ParamsError("密码长度不能小于8")
	}
	if req.Password != req.CheckPassword {
		return 0, response.ParamsError("两次输入的密码不一致")
	}
	if s.UserDAO.IsAccountExist(ctx, req.Account) {
		return 0, response.ParamsError("账号已存在")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return 0, response.SystemError("注册失败")
	}

	now := time.Now()
	user := &models.Users{
		ID:        snowflake.GenUserID(),
		Account:   req.Account,
		Password:  string(hashed),
		Nickname:  "用户" + req.Account,
		Role:      types.RoleUser,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.UserDAO.Create(ctx, user); err != nil {
		return 0, response.OperationError("注册失败")
	}
	return user.ID, nil
}

func (s *UserService) Login(ctx context.Context, req *types.UserLoginRequest) (*types.LoginUserVO, error) {
	if req == nil || req.Account == "" || req.Password == "" {
		return nil, response.ParamsError("参数不能为空")
	}

	user, err := s.UserDAO.FindByAccount(ctx, req.Account)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.ParamsError("用户不存在或密码错误")
		}
		return nil, response.SystemError(err.Error())
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)) != nil {
		return nil, response.ParamsError("用户不存在或密码错误")
	}

	expire := time.Duration(s.Config.Jwt.ExpireHours) * time.Hour
	if expire <= 0 {
		expire = 24 * time.Hour
	}
	token, err := jwt.GenerateToken([]byte(s.Config.Jwt.Secret), user.ID, user.Role, "access", expire)
	if err != nil {
		return nil, response.SystemError("登录失败")
	}

	return &types.LoginUserVO{
		ID:        user.ID,
		Account:   user.Account,
		Nickname:  user.Nickname,
		Avatar:    user.Avatar,
		Profile:   user.Profile,
		Role:      user.Role,
		Token:     token,
		CreatedAt: user.CreatedAt,
	}, nil
}

func (s *UserService) GetById(ctx context.Context, id int64) (*models.Users, error) {
	user, err := s.UserDAO.FindById(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NotFoundError("用户不存在")
		}
		return nil, response.SystemError(err.Error())
	}
	return user, nil
}

func (s *UserService) ListVOPage(ctx context.Context, req *types.UserQueryRequest) (*types.UserVOPage, error) {
	if req == nil {
		req = &types.UserQueryRequest{}
	}
	current, pageSize := normalizePage(req.Current, req.PageSize)

	users, total, err := s.UserDAO.FindPage(ctx, dao.BuildUserQuery(req), current, pageSize)
	if err != nil {
		return nil, response.SystemError(err.Error())
	}

	page := &types.UserVOPage{
		Records:  make([]*types.UserVO, 0, len(users)),
		Total:    total,
		Current:  current,
		PageSize: pageSize,
	}
	for _, user := range users {
		page.Records = append(page.Records, userToVO(user))
	}
	return page, nil
}

func userToVO(user *models.Users) *types.UserVO {
	if user == nil {
		return nil
	}
	return &types.UserVO{
		ID:       user.ID,
		Account:  user.Account,
		Nickname: user.Nickname,
		Avatar:   user.Avatar,
		Role:     user.Role,
	}
}
