package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"
	"time"

	"PicCloud/dao"
	"PicCloud/dao/cache"
	"PicCloud/models"
	"PicCloud/pkg/log"
	"PicCloud/pkg/response"
	"PicCloud/pkg/snowflake"
	"PicCloud/types"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	urlMaxLength          = 1024
	introductionMaxLength = 800
	// 非管理员分页上限
	maxPageSizeForUser = 20

	autoPassMessage = "管理员自动过审"

	// 临时下载地址有效期
	presignExpireSeconds = 600
)

var _ IPictureService = (*PictureService)(nil)

type IPictureService interface {
	// Upload 上传图片，req.ID 不为 0 时为重新上传
	Upload(ctx context.Context, src UploadSource, req *types.PictureUploadRequest, actor *types.Actor) (*types.PictureVO, error)

	// Edit 普通用户编辑，会触发重新审核
	Edit(ctx context.Context, req *types.PictureEditRequest, actor *types.Actor) error

	// Update 管理员更新
	Update(ctx context.Context, req *types.PictureUpdateRequest, actor *types.Actor) error

	Delete(ctx context.Context, id int64, actor *types.Actor) error

	GetById(ctx context.Context, id int64) (*models.Picture, error)
	GetVOById(ctx context.Context, id int64) (*types.PictureVO, error)

	// DoReview 管理员审核
	DoReview(ctx context.Context, req *types.PictureReviewRequest, actor *types.Actor) error

	// ListPage 管理端分页，不限制审核状态
	ListPage(ctx context.Context, req *types.PictureQueryRequest) ([]*models.Picture, int64, error)

	// ListVOPage 面向用户的分页，非管理员强制只出已过审数据
	ListVOPage(ctx context.Context, req *types.PictureQueryRequest, actor *types.Actor) (*types.PictureVOPage, error)

	// Download 下载原图为流，返回文件名
	Download(ctx context.Context, id int64, actor *types.Actor) (io.ReadCloser, string, error)

	// PresignDownload 生成临时下载地址
	PresignDownload(ctx context.Context, id int64, actor *types.Actor) (string, error)
}

type PictureService struct {
	PictureDAO *dao.PictureDAO
	UserDAO    *dao.Users
	Oss        IOssService
	ListCache  *cache.PictureListStorage
}

func (s *PictureService) Upload(ctx context.Context, src UploadSource, req *types.PictureUploadRequest, actor *types.Actor) (*types.PictureVO, error) {
	if actor == nil || actor.ID <= 0 {
		return nil, response.NotLoginError("未登录")
	}

	var pictureID int64
	if req != nil {
		pictureID = req.ID
	}

	// 重新上传需要校验原图存在且有权限
	var old *models.Picture
	if pictureID > 0 {
		var err error
		old, err = s.GetById(ctx, pictureID)
		if err != nil {
			return nil, err
		}
		if !canOperate(old, actor) {
			return nil, response.NoAuthError("无操作权限")
		}
	}

	// 按用户 id 划分存储目录
	pathPrefix := fmt.Sprintf("public/%d", actor.ID)

	result, err := s.uploadPicture(ctx, src, pathPrefix)
	if err != nil {
		return nil, err
	}
	if err := validPicture(result.Url, ""); err != nil {
		return nil, err
	}

	now := time.Now()
	picName := result.PicName
	if req != nil && req.PicName != "" {
		picName = req.PicName
	}

	var pic *models.Picture
	if old != nil {
		// 重新上传只覆盖存储派生字段，描述与审核字段保持原样
		pic = old
		pic.Url = result.Url
		pic.PicSize = result.PicSize
		pic.PicWidth = result.PicWidth
		pic.PicHeight = result.PicHeight
		pic.PicScale = result.PicScale
		pic.PicFormat = result.PicFormat
		pic.EditTime = &now
		pic.UpdatedAt = now

		if err := s.PictureDAO.Save(ctx, pic); err != nil {
			// 对象已入存储，记录落库失败产生孤儿对象，按 url 可追溯
			log.L.Error("save picture failed after put", zap.String("url", result.Url), zap.Error(err))
			return nil, response.SystemError("图片上传失败")
		}
	} else {
		pic = &models.Picture{
			ID:        snowflake.GenID(),
			Url:       result.Url,
			Name:      picName,
			Tags:      "[]",
			PicSize:   result.PicSize,
			PicWidth:  result.PicWidth,
			PicHeight: result.PicHeight,
			PicScale:  result.PicScale,
			PicFormat: result.PicFormat,
			UserID:    actor.ID,
			CreatedAt: now,
			UpdatedAt: now,
		}
		fillReviewParams(pic, actor, now)

		if err := s.PictureDAO.Create(ctx, pic); err != nil {
			log.L.Error("create picture failed after put", zap.String("url", result.Url), zap.Error(err))
			return nil, response.SystemError("图片上传失败")
		}
	}

	return picToVO(pic, nil), nil
}

func (s *PictureService) Edit(ctx context.Context, req *types.PictureEditRequest, actor *types.Actor) error {
	if actor == nil || actor.ID <= 0 {
		return response.NotLoginError("未登录")
	}
	if req == nil || req.ID <= 0 {
		return response.ParamsError("参数错误：ID不能为空")
	}
	if err := validPicture("", req.Introduction); err != nil {
		return err
	}

	old, err := s.GetById(ctx, req.ID)
	if err != nil {
		return err
	}
	if !canOperate(old, actor) {
		return response.NoAuthError("无编辑权限")
	}

	return s.applyContentUpdate(ctx, req.ID, req.Name, req.Introduction, req.Category, req.Tags, actor)
}

func (s *PictureService) Update(ctx context.Context, req *types.PictureUpdateRequest, actor *types.Actor) error {
	if !actor.IsAdmin() {
		return response.NoAuthError("无操作权限")
	}
	if req == nil || req.ID <= 0 {
		return response.ParamsError("参数错误：ID不能为空")
	}
	if err := validPicture("", req.Introduction); err != nil {
		return err
	}

	if _, err := s.GetById(ctx, req.ID); err != nil {
		return err
	}

	return s.applyContentUpdate(ctx, req.ID, req.Name, req.Introduction, req.Category, req.Tags, actor)
}

// applyContentUpdate 按允许的字段清单更新内容，并补审核参数
// 非管理员编辑会把状态重置为待审核，历史审核人信息保留为陈旧值
func (s *PictureService) applyContentUpdate(ctx context.Context, id int64, name, introduction, category string, tags []string, actor *types.Actor) error {
	if tags == nil {
		tags = []string{}
	}
	tagsJSON, err := json.Marshal(tags)
	if err != nil {
		return response.ParamsError("标签格式错误")
	}

	now := time.Now()
	data := map[string]any{
		"name":         name,
		"introduction": introduction,
		"category":     category,
		"tags":         string(tagsJSON),
		"edit_time":    now,
	}

	reset := &models.Picture{}
	fillReviewParams(reset, actor, now)
	data["review_status"] = reset.ReviewStatus
	if actor.IsAdmin() {
		data["reviewer_id"] = reset.ReviewerID
		data["review_message"] = reset.ReviewMessage
		data["review_time"] = reset.ReviewTime
	}

	if err := s.PictureDAO.UpdateById(ctx, id, data); err != nil {
		return response.OperationError("更新失败")
	}
	return nil
}

func (s *PictureService) Delete(ctx context.Context, id int64, actor *types.Actor) error {
	if actor == nil || actor.ID <= 0 {
		return response.NotLoginError("未登录")
	}
	if id <= 0 {
		return response.ParamsError("参数错误：ID不能为空")
	}

	old, err := s.GetById(ctx, id)
	if err != nil {
		return err
	}
	if !canOperate(old, actor) {
		return response.NoAuthError("无操作权限")
	}

	ok, err := s.PictureDAO.DeleteById(ctx, id)
	if err != nil || !ok {
		return response.OperationError("删除失败")
	}

	// 存储对象尽力清理，失败只记录，记录删除不回滚
	if key, err := objectKeyFromURL(old.Url); err == nil {
		if err := s.Oss.Delete(ctx, key); err != nil {
			log.L.Warn("remove object failed", zap.String("key", key), zap.Error(err))
		}
	}
	log.L.Info("picture deleted", zap.Int64("id", id), zap.String("url", old.Url))
	return nil
}

func (s *PictureService) Download(ctx context.Context, id int64, actor *types.Actor) (io.ReadCloser, string, error) {
	pic, err := s.accessiblePicture(ctx, id, actor)
	if err != nil {
		return nil, "", err
	}
	key, err := objectKeyFromURL(pic.Url)
	if err != nil {
		return nil, "", err
	}
	reader, err := s.Oss.DownloadReader(ctx, key)
	if err != nil {
		log.L.Error("download object failed", zap.String("key", key), zap.Error(err))
		return nil, "", response.SystemError("下载失败")
	}
	filename := pic.Name
	if pic.PicFormat != "" {
		filename = filename + "." + pic.PicFormat
	}
	return reader, filename, nil
}

func (s *PictureService) PresignDownload(ctx context.Context, id int64, actor *types.Actor) (string, error) {
	pic, err := s.accessiblePicture(ctx, id, actor)
	if err != nil {
		return "", err
	}
	key, err := objectKeyFromURL(pic.Url)
	if err != nil {
		return "", err
	}
	signed, err := s.Oss.SignURL(ctx, key, presignExpireSeconds)
	if err != nil {
		log.L.Error("sign url failed", zap.String("key", key), zap.Error(err))
		return "", response.SystemError("生成下载地址失败")
	}
	return signed, nil
}

// accessiblePicture 下载类操作的可见性校验：已过审对所有登录用户可见，
// 未过审仅本人和管理员可见
func (s *PictureService) accessiblePicture(ctx context.Context, id int64, actor *types.Actor) (*models.Picture, error) {
	if actor == nil || actor.ID <= 0 {
		return nil, response.NotLoginError("未登录")
	}
	if id <= 0 {
		return nil, response.ParamsError("参数错误：ID不能为空")
	}
	pic, err := s.GetById(ctx, id)
	if err != nil {
		return nil, err
	}
	if pic.ReviewStatus != types.ReviewStatusPass && !canOperate(pic, actor) {
		return nil, response.NoAuthError("无访问权限")
	}
	return pic, nil
}

// objectKeyFromURL 从外链地址还原存储对象 key
func objectKeyFromURL(raw string) (string, error) {
	parsed, err := url.Parse(raw)
	if err != nil || parsed.Path == "" || parsed.Path == "/" {
		return "", response.ParamsError("图片地址无法解析")
	}
	return strings.TrimPrefix(parsed.Path, "/"), nil
}

func (s *PictureService) GetById(ctx context.Context, id int64) (*models.Picture, error) {
	pic, err := s.PictureDAO.FindById(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NotFoundError("图片不存在")
		}
		return nil, response.SystemError(err.Error())
	}
	return pic, nil
}

func (s *PictureService) GetVOById(ctx context.Context, id int64) (*types.PictureVO, error) {
	pic, err := s.GetById(ctx, id)
	if err != nil {
		return nil, err
	}

	var userVO *types.UserVO
	if pic.UserID > 0 {
		if user, err := s.UserDAO.FindById(ctx, pic.UserID); err == nil {
			userVO = userToVO(user)
		}
	}
	return picToVO(pic, userVO), nil
}

func (s *PictureService) DoReview(ctx context.Context, req *types.PictureReviewRequest, actor *types.Actor) error {
	if !actor.IsAdmin() {
		return response.NoAuthError("无审核权限")
	}
	if req == nil || req.ID <= 0 {
		return response.ParamsError("参数错误")
	}
	old, err := s.GetById(ctx, req.ID)
	if err != nil {
		return err
	}
	if err := checkReviewTransition(old.ReviewStatus, req.ReviewStatus); err != nil {
		return err
	}

	now := time.Now()
	data := map[string]any{
		"review_status":  req.ReviewStatus,
		"review_message": req.ReviewMessage,
		"reviewer_id":    actor.ID,
		"review_time":    now,
	}
	if err := s.PictureDAO.UpdateById(ctx, req.ID, data); err != nil {
		return response.OperationError("审核失败")
	}
	return nil
}

func (s *PictureService) ListPage(ctx context.Context, req *types.PictureQueryRequest) ([]*models.Picture, int64, error) {
	req = normalizeListRequest(req)
	pics, total, err := s.PictureDAO.FindPage(ctx, dao.BuildPictureQuery(req), req.Current, req.PageSize)
	if err != nil {
		return nil, 0, response.SystemError(err.Error())
	}
	return pics, total, nil
}

func (s *PictureService) ListVOPage(ctx context.Context, req *types.PictureQueryRequest, actor *types.Actor) (*types.PictureVOPage, error) {
	req = normalizeListRequest(req)
	if err := applyListGuard(req, actor); err != nil {
		return nil, err
	}
	current, pageSize := req.Current, req.PageSize

	if s.ListCache != nil {
		if page, err := s.ListCache.Get(ctx, req); err == nil && page != nil {
			return page, nil
		}
	}

	pics, total, err := s.PictureDAO.FindPage(ctx, dao.BuildPictureQuery(req), current, pageSize)
	if err != nil {
		return nil, response.SystemError(err.Error())
	}

	page := &types.PictureVOPage{
		Records:  make([]*types.PictureVO, 0, len(pics)),
		Total:    total,
		Current:  current,
		PageSize: pageSize,
	}
	if len(pics) == 0 {
		return page, nil
	}

	// 批量查上传者，避免逐条回查
	idSet := make(map[int64]struct{}, len(pics))
	ids := make([]int64, 0, len(pics))
	for _, pic := range pics {
		if pic.UserID > 0 {
			if _, ok := idSet[pic.UserID]; !ok {
				idSet[pic.UserID] = struct{}{}
				ids = append(ids, pic.UserID)
			}
		}
	}
	userMap := make(map[int64]*types.UserVO, len(ids))
	if users, err := s.UserDAO.FindByIDs(ctx, ids); err == nil {
		for _, user := range users {
			userMap[user.ID] = userToVO(user)
		}
	}

	for _, pic := range pics {
		page.Records = append(page.Records, picToVO(pic, userMap[pic.UserID]))
	}

	if s.ListCache != nil {
		if err := s.ListCache.Set(ctx, req, page); err != nil {
			log.L.Warn("cache list page failed", zap.Error(err))
		}
	}
	return page, nil
}

// ---- 审核与权限规则 ----

// canOperate 仅本人或管理员可操作
func canOperate(pic *models.Picture, actor *types.Actor) bool {
	if pic == nil || actor == nil {
		return false
	}
	return pic.UserID == actor.ID || actor.IsAdmin()
}

// normalizeListRequest 规整分页参数并回写，响应侧回显规整后的值
func normalizeListRequest(req *types.PictureQueryRequest) *types.PictureQueryRequest {
	if req == nil {
		req = &types.PictureQueryRequest{}
	}
	req.Current, req.PageSize = normalizePage(req.Current, req.PageSize)
	return req
}

// applyListGuard 非管理员列表护栏：限制分页大小，强制只看已过审数据（忽略调用方传入的状态）
func applyListGuard(req *types.PictureQueryRequest, actor *types.Actor) error {
	if actor.IsAdmin() {
		return nil
	}
	if req.PageSize > maxPageSizeForUser {
		return response.ParamsError("分页大小不能超过20")
	}
	pass := types.ReviewStatusPass
	req.ReviewStatus = &pass
	return nil
}

// checkReviewTransition 审核动作校验：目标状态合法且与当前状态不同
func checkReviewTransition(current, target int) error {
	if err := checkReviewTarget(target); err != nil {
		return err
	}
	if current == target {
		return response.ParamsError("请勿重复审核")
	}
	return nil
}

// checkReviewTarget 审核目标只能是通过或拒绝，"待审核"不是合法目标
func checkReviewTarget(status int) error {
	if !types.ReviewStatusValid(status) || status == types.ReviewStatusReviewing {
		return response.ParamsError("审核状态非法")
	}
	return nil
}

// fillReviewParams 创建/编辑时补充审核参数
// 管理员自动过审并署名，普通用户进入待审核
func fillReviewParams(pic *models.Picture, actor *types.Actor, now time.Time) {
	if actor.IsAdmin() {
		pic.ReviewStatus = types.ReviewStatusPass
		pic.ReviewerID = actor.ID
		pic.ReviewMessage = autoPassMessage
		pic.ReviewTime = &now
	} else {
		pic.ReviewStatus = types.ReviewStatusReviewing
	}
}

// validPicture 字段长度约束
func validPicture(url, introduction string) error {
	if len(url) > urlMaxLength {
		return response.ParamsError(fmt.Sprintf("URL长度不能超过%d", urlMaxLength))
	}
	if len([]rune(introduction)) > introductionMaxLength {
		return response.ParamsError(fmt.Sprintf("简介长度不能超过%d", introductionMaxLength))
	}
	return nil
}

func normalizePage(current, pageSize int) (int, int) {
	if current <= 0 {
		current = 1
	}
	if pageSize <= 0 {
		pageSize = 10
	}
	return current, pageSize
}

// picToVO 实体转 VO，标签 JSON 串还原为数组
func picToVO(pic *models.Picture, user *types.UserVO) *types.PictureVO {
	tags := make([]string, 0)
	if pic.Tags != "" {
		_ = json.Unmarshal([]byte(pic.Tags), &tags)
	}
	return &types.PictureVO{
		ID:           pic.ID,
		Url:          pic.Url,
		Name:         pic.Name,
		Introduction: pic.Introduction,
		Category:     pic.Category,
		Tags:         tags,
		PicSize:      pic.PicSize,
		PicWidth:     pic.PicWidth,
		PicHeight:    pic.PicHeight,
		PicScale:     pic.PicScale,
		PicFormat:    pic.PicFormat,
		UserID:       pic.UserID,
		ReviewStatus: pic.ReviewStatus,
		CreatedAt:    pic.CreatedAt,
		EditTime:     pic.EditTime,
		User:         user,
	}
}
