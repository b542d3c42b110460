package service

import (
	"strings"
	"testing"
	"time"

	"PicCloud/models"
	"PicCloud/types"
)

func TestCheckReviewTarget(t *testing.T) {
	if err := checkReviewTarget(types.ReviewStatusPass); err != nil {
		t.Errorf("通过应为合法目标: %v", err)
	}
	if err := checkReviewTarget(types.ReviewStatusReject); err != nil {
		t.Errorf("拒绝应为合法目标: %v", err)
	}
	if err := checkReviewTarget(types.ReviewStatusReviewing); err == nil {
		t.Error("待审核不能作为审核目标")
	}
	if err := checkReviewTarget(99); err == nil {
		t.Error("非法状态值应当报错")
	}
	if err := checkReviewTarget(-1); err == nil {
		t.Error("负数状态值应当报错")
	}
}

func TestFillReviewParams(t *testing.T) {
	now := time.Now()

	admin := &types.Actor{ID: 1, Role: types.RoleAdmin}
	pic := &models.Picture{}
	fillReviewParams(pic, admin, now)
	if pic.ReviewStatus != types.ReviewStatusPass {
		t.Errorf("管理员应自动过审, got %d", pic.ReviewStatus)
	}
	if pic.ReviewerID != admin.ID {
		t.Errorf("审核人应为管理员自己, got %d", pic.ReviewerID)
	}
	if pic.ReviewMessage != autoPassMessage {
		t.Errorf("审核信息错误: %s", pic.ReviewMessage)
	}
	if pic.ReviewTime == nil || !pic.ReviewTime.Equal(now) {
		t.Error("审核时间未填充")
	}

	user := &types.Actor{ID: 2, Role: types.RoleUser}
	pic2 := &models.Picture{}
	fillReviewParams(pic2, user, now)
	if pic2.ReviewStatus != types.ReviewStatusReviewing {
		t.Errorf("普通用户应进入待审核, got %d", pic2.ReviewStatus)
	}
	if pic2.ReviewerID != 0 || pic2.ReviewTime != nil {
		t.Error("普通用户不应填充审核人信息")
	}
}

func TestCanOperate(t *testing.T) {
	pic := &models.Picture{ID: 10, UserID: 2}

	owner := &types.Actor{ID: 2, Role: types.RoleUser}
	admin := &types.Actor{ID: 1, Role: types.RoleAdmin}
	other := &types.Actor{ID: 3, Role: types.RoleUser}

	if !canOperate(pic, owner) {
		t.Error("本人应可操作")
	}
	if !canOperate(pic, admin) {
		t.Error("管理员应可操作")
	}
	if canOperate(pic, other) {
		t.Error("其他用户不可操作")
	}
	if canOperate(nil, owner) || canOperate(pic, nil) {
		t.Error("空入参不可操作")
	}
}

func TestValidPicture(t *testing.T) {
	if err := validPicture("", ""); err != nil {
		t.Errorf("空值应通过: %v", err)
	}
	if err := validPicture(strings.Repeat("a", urlMaxLength), ""); err != nil {
		t.Errorf("刚好到上限应通过: %v", err)
	}
	if err := validPicture(strings.Repeat("a", urlMaxLength+1), ""); err == nil {
		t.Error("URL 超长应报错")
	}
	// 简介按字符数而不是字节数限制
	if err := validPicture("", strings.Repeat("图", introductionMaxLength)); err != nil {
		t.Errorf("800个汉字应通过: %v", err)
	}
	if err := validPicture("", strings.Repeat("图", introductionMaxLength+1)); err == nil {
		t.Error("简介超长应报错")
	}
}

func TestCheckReviewTransition(t *testing.T) {
	ok := []struct{ current, target int }{
		{types.ReviewStatusReviewing, types.ReviewStatusPass},
		{types.ReviewStatusReviewing, types.ReviewStatusReject},
		{types.ReviewStatusPass, types.ReviewStatusReject},
		{types.ReviewStatusReject, types.ReviewStatusPass},
	}
	for _, c := range ok {
		if err := checkReviewTransition(c.current, c.target); err != nil {
			t.Errorf("%d→%d 应当允许: %v", c.current, c.target, err)
		}
	}

	if err := checkReviewTransition(types.ReviewStatusPass, types.ReviewStatusPass); err == nil {
		t.Error("重复审核应报错")
	}
	if err := checkReviewTransition(types.ReviewStatusReject, types.ReviewStatusReject); err == nil {
		t.Error("重复审核应报错")
	}
	if err := checkReviewTransition(types.ReviewStatusPass, types.ReviewStatusReviewing); err == nil {
		t.Error("待审核不能作为审核目标")
	}
}

func TestApplyListGuard(t *testing.T) {
	admin := &types.Actor{ID: 1, Role: types.RoleAdmin}
	user := &types.Actor{ID: 2, Role: types.RoleUser}

	// 管理员不限分页、不强制状态
	req := &types.PictureQueryRequest{PageRequest: types.PageRequest{PageSize: 50}}
	if err := applyListGuard(req, admin); err != nil {
		t.Errorf("管理员大分页应放行: %v", err)
	}
	if req.ReviewStatus != nil {
		t.Error("管理员查询不应强制审核状态")
	}

	// 非管理员未传状态 → 强制已过审
	req = &types.PictureQueryRequest{PageRequest: types.PageRequest{PageSize: 10}}
	if err := applyListGuard(req, user); err != nil {
		t.Fatalf("正常分页应放行: %v", err)
	}
	if req.ReviewStatus == nil || *req.ReviewStatus != types.ReviewStatusPass {
		t.Error("非管理员应被强制为已过审")
	}

	// 非管理员显式传待审核 → 仍被覆盖为已过审
	status := types.ReviewStatusReviewing
	req = &types.PictureQueryRequest{ReviewStatus: &status}
	if err := applyListGuard(req, user); err != nil {
		t.Fatalf("应放行: %v", err)
	}
	if *req.ReviewStatus != types.ReviewStatusPass {
		t.Errorf("传入状态应被忽略, got %d", *req.ReviewStatus)
	}

	// 非管理员超过分页上限
	req = &types.PictureQueryRequest{PageRequest: types.PageRequest{PageSize: maxPageSizeForUser + 1}}
	if err := applyListGuard(req, user); err == nil {
		t.Error("非管理员超限分页应报错")
	}

	// 未登录视同普通用户
	req = &types.PictureQueryRequest{}
	if err := applyListGuard(req, nil); err != nil {
		t.Fatalf("应放行: %v", err)
	}
	if req.ReviewStatus == nil || *req.ReviewStatus != types.ReviewStatusPass {
		t.Error("匿名访问应被强制为已过审")
	}
}

func TestNormalizeListRequest(t *testing.T) {
	req := normalizeListRequest(&types.PictureQueryRequest{})
	if req.Current != 1 || req.PageSize != 10 {
		t.Errorf("零值应回写默认分页: %d/%d", req.Current, req.PageSize)
	}

	req = normalizeListRequest(nil)
	if req == nil || req.Current != 1 || req.PageSize != 10 {
		t.Error("空请求应得到默认分页")
	}

	req = normalizeListRequest(&types.PictureQueryRequest{PageRequest: types.PageRequest{Current: 3, PageSize: 15}})
	if req.Current != 3 || req.PageSize != 15 {
		t.Errorf("合法分页不应被改写: %d/%d", req.Current, req.PageSize)
	}
}

func TestObjectKeyFromURL(t *testing.T) {
	key, err := objectKeyFromURL("https://cdn.example.com/public/2/20260830_abc.png")
	if err != nil {
		t.Fatalf("解析失败: %v", err)
	}
	if key != "public/2/20260830_abc.png" {
		t.Errorf("key 错误: %s", key)
	}

	if _, err := objectKeyFromURL("https://cdn.example.com/"); err == nil {
		t.Error("空路径应当报错")
	}
	if _, err := objectKeyFromURL(""); err == nil {
		t.Error("空地址应当报错")
	}
}

func TestNormalizePage(t *testing.T) {
	cases := []struct {
		current, pageSize         int
		wantCurrent, wantPageSize int
	}{
		{0, 0, 1, 10},
		{-1, -5, 1, 10},
		{3, 20, 3, 20},
	}
	for _, c := range cases {
		cur, size := normalizePage(c.current, c.pageSize)
		if cur != c.wantCurrent || size != c.wantPageSize {
			t.Errorf("normalizePage(%d, %d) = (%d, %d), want (%d, %d)",
				c.current, c.pageSize, cur, size, c.wantCurrent, c.wantPageSize)
		}
	}
}

func TestPicToVO(t *testing.T) {
	now := time.Now()
	pic := &models.Picture{
		ID:           100,
		Url:          "https://cdn.example.com/a.png",
		Name:         "风景",
		Tags:         `["自然","旅行"]`,
		PicWidth:     1920,
		PicHeight:    1080,
		PicScale:     1.78,
		UserID:       2,
		ReviewStatus: types.ReviewStatusPass,
		CreatedAt:    now,
	}

	vo := picToVO(pic, &types.UserVO{ID: 2, Nickname: "张三"})
	if vo.ID != 100 || vo.Name != "风景" {
		t.Error("基础字段转换错误")
	}
	if len(vo.Tags) != 2 || vo.Tags[0] != "自然" || vo.Tags[1] != "旅行" {
		t.Errorf("标签还原错误: %v", vo.Tags)
	}
	if vo.User == nil || vo.User.Nickname != "张三" {
		t.Error("上传者信息未关联")
	}

	// 空标签串还原为空数组而不是 nil
	empty := picToVO(&models.Picture{ID: 1}, nil)
	if empty.Tags == nil || len(empty.Tags) != 0 {
		t.Errorf("空标签应为空数组: %v", empty.Tags)
	}
	// 非法 JSON 不影响转换，标签保持空数组
	bad := picToVO(&models.Picture{ID: 2, Tags: "not json"}, nil)
	if len(bad.Tags) != 0 {
		t.Errorf("非法标签串应得到空数组: %v", bad.Tags)
	}
}
