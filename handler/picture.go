package handler

import (
	"fmt"
	"io"
	"strconv"

	"PicCloud/config"
	"PicCloud/middleware"
	"PicCloud/pkg/context"
	"PicCloud/pkg/response"
	"PicCloud/service"
	"PicCloud/types"

	"github.com/gin-gonic/gin"
)

type Picture struct {
	PictureService service.IPictureService
	Config         *config.Config
}

func (h *Picture) RegisterRouter(r gin.IRouter) {
	secret := []byte(h.Config.Jwt.Secret)
	authorize := middleware.Auth(secret)
	optional := middleware.OptionalAuth(secret)
	admin := middleware.AdminOnly()

	g := r.Group("/v1/picture")
	g.POST("/upload", authorize, context.Wrap(h.UploadPicture))
	g.POST("/upload/url", authorize, context.Wrap(h.UploadPictureByURL))
	g.POST("/edit", authorize, context.Wrap(h.EditPicture))
	g.POST("/update", authorize, admin, context.Wrap(h.UpdatePicture))
	g.POST("/delete", authorize, context.Wrap(h.DeletePicture))
	g.GET("/get", authorize, admin, context.Wrap(h.GetPictureById))
	g.GET("/get/vo", context.Wrap(h.GetPictureVOById))
	g.POST("/list/page", authorize, admin, context.Wrap(h.ListPictureByPage))
	g.POST("/list/page/vo", optional, context.Wrap(h.ListPictureVOByPage))
	g.POST("/review", authorize, admin, context.Wrap(h.DoPictureReview))
	g.GET("/download", authorize, context.Wrap(h.DownloadPicture))
	g.GET("/url/sign", authorize, context.Wrap(h.SignPictureURL))
	g.GET("/tag_category", context.Wrap(h.ListPictureTagCategory))
}

// currentActor 从请求上下文取身份，未登录返回 nil
func currentActor(c *gin.Context) *types.Actor {
	uid, err := context.GetUserID(c)
	if err != nil {
		return nil
	}
	return &types.Actor{ID: uid, Role: context.GetUserRole(c)}
}

// UploadPicture 表单文件上传，携带 id 时为重新上传
func (h *Picture) UploadPicture(c *gin.Context) error {
	header, err := c.FormFile("file")
	if err != nil {
		return response.ParamsError("文件不能为空")
	}

	req := &types.PictureUploadRequest{
		PicName: c.PostForm("pic_name"),
	}
	if idStr := c.PostForm("id"); idStr != "" {
		id, err := strconv.ParseInt(idStr, 10, 64)
		if err != nil {
			return response.ParamsError("id 格式错误")
		}
		req.ID = id
	}

	vo, err := h.PictureService.Upload(c.Request.Context(), service.NewFileSource(header), req, currentActor(c))
	if err != nil {
		return err
	}
	response.Success(c, vo)
	return nil
}

// UploadPictureByURL 通过远程地址上传
func (h *Picture) UploadPictureByURL(c *gin.Context) error {
	var req types.PictureUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return response.ParamsError("参数格式错误: " + err.Error())
	}

	vo, err := h.PictureService.Upload(c.Request.Context(), service.NewURLSource(req.FileURL), &req, currentActor(c))
	if err != nil {
		return err
	}
	response.Success(c, vo)
	return nil
}

func (h *Picture) EditPicture(c *gin.Context) error {
	var req types.PictureEditRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return response.ParamsError("参数格式错误: " + err.Error())
	}

	if err := h.PictureService.Edit(c.Request.Context(), &req, currentActor(c)); err != nil {
		return err
	}
	response.Success(c, true)
	return nil
}

func (h *Picture) UpdatePicture(c *gin.Context) error {
	var req types.PictureUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return response.ParamsError("参数格式错误: " + err.Error())
	}

	if err := h.PictureService.Update(c.Request.Context(), &req, currentActor(c)); err != nil {
		return err
	}
	response.Success(c, true)
	return nil
}

func (h *Picture) DeletePicture(c *gin.Context) error {
	var req types.DeleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return response.ParamsError("参数格式错误: " + err.Error())
	}

	if err := h.PictureService.Delete(c.Request.Context(), req.ID, currentActor(c)); err != nil {
		return err
	}
	response.Success(c, true)
	return nil
}

// GetPictureById 管理端查看原始记录
func (h *Picture) GetPictureById(c *gin.Context) error {
	id, err := strconv.ParseInt(c.Query("id"), 10, 64)
	if err != nil || id <= 0 {
		return response.ParamsError("参数错误：ID必须大于0")
	}

	pic, err := h.PictureService.GetById(c.Request.Context(), id)
	if err != nil {
		return err
	}
	response.Success(c, pic)
	return nil
}

func (h *Picture) GetPictureVOById(c *gin.Context) error {
	id, err := strconv.ParseInt(c.Query("id"), 10, 64)
	if err != nil || id <= 0 {
		return response.ParamsError("参数错误：ID必须大于0")
	}

	vo, err := h.PictureService.GetVOById(c.Request.Context(), id)
	if err != nil {
		return err
	}
	response.Success(c, vo)
	return nil
}

// ListPictureByPage 管理端分页，不过滤审核状态
func (h *Picture) ListPictureByPage(c *gin.Context) error {
	var req types.PictureQueryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return response.ParamsError("参数格式错误: " + err.Error())
	}

	pics, total, err := h.PictureService.ListPage(c.Request.Context(), &req)
	if err != nil {
		return err
	}
	response.Success(c, gin.H{
		"records":   pics,
		"total":     total,
		"current":   req.Current,
		"page_size": req.PageSize,
	})
	return nil
}

func (h *Picture) ListPictureVOByPage(c *gin.Context) error {
	var req types.PictureQueryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return response.ParamsError("参数格式错误: " + err.Error())
	}

	page, err := h.PictureService.ListVOPage(c.Request.Context(), &req, currentActor(c))
	if err != nil {
		return err
	}
	response.Success(c, page)
	return nil
}

func (h *Picture) DoPictureReview(c *gin.Context) error {
	var req types.PictureReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return response.ParamsError("参数格式错误: " + err.Error())
	}

	if err := h.PictureService.DoReview(c.Request.Context(), &req, currentActor(c)); err != nil {
		return err
	}
	response.Success(c, true)
	return nil
}

// DownloadPicture 代理下载原图
func (h *Picture) DownloadPicture(c *gin.Context) error {
	id, err := strconv.ParseInt(c.Query("id"), 10, 64)
	if err != nil || id <= 0 {
		return response.ParamsError("参数错误：ID必须大于0")
	}

	reader, filename, err := h.PictureService.Download(c.Request.Context(), id, currentActor(c))
	if err != nil {
		return err
	}
	defer reader.Close()

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Header("Content-Type", "application/octet-stream")
	if _, err := io.Copy(c.Writer, reader); err != nil {
		return response.SystemError("下载失败")
	}
	return nil
}

// SignPictureURL 生成临时下载地址
func (h *Picture) SignPictureURL(c *gin.Context) error {
	id, err := strconv.ParseInt(c.Query("id"), 10, 64)
	if err != nil || id <= 0 {
		return response.ParamsError("参数错误：ID必须大于0")
	}

	signed, err := h.PictureService.PresignDownload(c.Request.Context(), id, currentActor(c))
	if err != nil {
		return err
	}
	response.Success(c, gin.H{"url": signed})
	return nil
}

// ListPictureTagCategory 预置标签和分类，便于前端筛选
func (h *Picture) ListPictureTagCategory(c *gin.Context) error {
	response.Success(c, types.PictureTagCategory{
		TagList:      []string{"热门", "搞笑", "生活", "高清", "艺术", "校园", "背景", "简历", "创意"},
		CategoryList: []string{"模板", "电商", "表情包", "素材", "海报"},
	})
	return nil
}
