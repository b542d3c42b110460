package handler

import (
	"PicCloud/config"
	"PicCloud/middleware"
	"PicCloud/pkg/context"
	"PicCloud/pkg/response"
	"PicCloud/service"
	"PicCloud/types"

	"github.com/gin-gonic/gin"
)

type User struct {
	UserService service.IUserService
	Config      *config.Config
}

func (h *User) RegisterRouter(r gin.IRouter) {
	secret := []byte(h.Config.Jwt.Secret)
	authorize := middleware.Auth(secret)
	admin := middleware.AdminOnly()

	g := r.Group("/v1/user")
	g.POST("/register", context.Wrap(h.Register))
	g.POST("/login", context.Wrap(h.Login))
	g.GET("/current", authorize, context.Wrap(h.Current))
	g.POST("/list/page", authorize, admin, context.Wrap(h.ListByPage))
}

func (h *User) Register(c *gin.Context) error {
	var req types.UserRegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return response.ParamsError("参数格式错误: " + err.Error())
	}

	id, err := h.UserService.Register(c.Request.Context(), &req)
	if err != nil {
		return err
	}
	response.Success(c, id)
	return nil
}

func (h *User) Login(c *gin.Context) error {
	var req types.UserLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return response.ParamsError("参数格式错误: " + err.Error())
	}

	vo, err := h.UserService.Login(c.Request.Context(), &req)
	if err != nil {
		return err
	}
	response.Success(c, vo)
	return nil
}

// Current 当前登录用户信息
func (h *User) Current(c *gin.Context) error {
	uid, err := context.GetUserID(c)
	if err != nil {
		return response.NotLoginError("未登录")
	}

	user, err := h.UserService.GetById(c.Request.Context(), uid)
	if err != nil {
		return err
	}
	response.Success(c, types.LoginUserVO{
		ID:        user.ID,
		Account:   user.Account,
		Nickname:  user.Nickname,
		Avatar:    user.Avatar,
		Profile:   user.Profile,
		Role:      user.Role,
		CreatedAt: user.CreatedAt,
	})
	return nil
}

func (h *User) ListByPage(c *gin.Context) error {
	var req types.UserQueryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return response.ParamsError("参数格式错误: " + err.Error())
	}

	page, err := h.UserService.ListVOPage(c.Request.Context(), &req)
	if err != nil {
		return err
	}
	response.Success(c, page)
	return nil
}
