package dao

import (
	"testing"

	"PicCloud/types"
)

func hasClause(q *QueryClauses, cond string) bool {
	for _, c := range q.Wheres {
		if c.Cond == cond {
			return true
		}
	}
	return false
}

func TestBuildPictureQueryEmpty(t *testing.T) {
	q := BuildPictureQuery(&types.PictureQueryRequest{})
	if len(q.Wheres) != 0 {
		t.Errorf("零值请求不应产生过滤条件: %v", q.Wheres)
	}
	if q.Order != "" {
		t.Errorf("未指定排序字段不应产生排序: %s", q.Order)
	}

	if q := BuildPictureQuery(nil); len(q.Wheres) != 0 {
		t.Error("空请求应返回空条件集")
	}
}

func TestBuildPictureQuerySearchText(t *testing.T) {
	q := BuildPictureQuery(&types.PictureQueryRequest{SearchText: "夕阳"})
	if !hasClause(q, "(name LIKE ? OR introduction LIKE ?)") {
		t.Errorf("综合搜索条件缺失: %v", q.Wheres)
	}
	if q.Wheres[0].Args[0] != "%夕阳%" || q.Wheres[0].Args[1] != "%夕阳%" {
		t.Errorf("综合搜索参数错误: %v", q.Wheres[0].Args)
	}
}

func TestBuildPictureQueryFields(t *testing.T) {
	status := types.ReviewStatusReject
	req := &types.PictureQueryRequest{
		ID:           10,
		UserID:       2,
		Category:     "风景",
		Name:         "晚霞",
		ReviewStatus: &status,
		PicWidth:     1920,
	}
	q := BuildPictureQuery(req)

	for _, cond := range []string{
		"id = ?", "user_id = ?", "category = ?", "name LIKE ?",
		"review_status = ?", "pic_width = ?",
	} {
		if !hasClause(q, cond) {
			t.Errorf("缺少条件 %q: %v", cond, q.Wheres)
		}
	}
	if len(q.Wheres) != 6 {
		t.Errorf("条件数量不符: %d", len(q.Wheres))
	}
}

func TestBuildPictureQueryReviewStatusZero(t *testing.T) {
	// 指针区分"未传"和待审核(0)：显式传 0 也要生成条件
	status := types.ReviewStatusReviewing
	q := BuildPictureQuery(&types.PictureQueryRequest{ReviewStatus: &status})
	if !hasClause(q, "review_status = ?") {
		t.Errorf("显式传入待审核状态应生成条件: %v", q.Wheres)
	}
	if q.Wheres[0].Args[0] != 0 {
		t.Errorf("状态参数错误: %v", q.Wheres[0].Args)
	}
}

func TestBuildPictureQueryTags(t *testing.T) {
	q := BuildPictureQuery(&types.PictureQueryRequest{Tags: []string{"自然", "", "旅行"}})

	var tagArgs []any
	for _, c := range q.Wheres {
		if c.Cond == "tags LIKE ?" {
			tagArgs = append(tagArgs, c.Args[0])
		}
	}
	// 空标签被跳过，每个标签一个独立条件
	if len(tagArgs) != 2 {
		t.Fatalf("标签条件数量不符: %v", tagArgs)
	}
	// 带引号匹配，避免子串误命中
	if tagArgs[0] != `%"自然"%` || tagArgs[1] != `%"旅行"%` {
		t.Errorf("标签匹配格式错误: %v", tagArgs)
	}
}

func TestBuildPictureQuerySort(t *testing.T) {
	q := BuildPictureQuery(&types.PictureQueryRequest{SortField: "pic_size", SortOrder: "ascend"})
	if q.Order != "pic_size ASC" {
		t.Errorf("升序排序错误: %s", q.Order)
	}

	q = BuildPictureQuery(&types.PictureQueryRequest{SortField: "created_at", SortOrder: "descend"})
	if q.Order != "created_at DESC" {
		t.Errorf("降序排序错误: %s", q.Order)
	}

	// ascend 以外的取值一律降序
	q = BuildPictureQuery(&types.PictureQueryRequest{SortField: "id", SortOrder: "whatever"})
	if q.Order != "id DESC" {
		t.Errorf("未知排序方向应降序: %s", q.Order)
	}

	// 白名单外的字段不参与排序
	q = BuildPictureQuery(&types.PictureQueryRequest{SortField: "password; DROP TABLE picture", SortOrder: "ascend"})
	if q.Order != "" {
		t.Errorf("白名单外字段不应产生排序: %s", q.Order)
	}
}

func TestBuildUserQuery(t *testing.T) {
	q := BuildUserQuery(&types.UserQueryRequest{Account: "tom", Role: "admin"})
	if !hasClause(q, "account LIKE ?") || !hasClause(q, "role = ?") {
		t.Errorf("用户查询条件缺失: %v", q.Wheres)
	}

	q = BuildUserQuery(&types.UserQueryRequest{SortField: "created_at", SortOrder: "ascend"})
	if q.Order != "created_at ASC" {
		t.Errorf("用户排序错误: %s", q.Order)
	}
}
