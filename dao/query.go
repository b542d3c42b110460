package dao

import (
	"fmt"

	"PicCloud/types"
)

// Clause 单个过滤条件，占位符写法与 gorm Where 一致
type Clause struct {
	Cond string
	Args []any
}

// QueryClauses 声明式查询条件集合，由 DAO 统一应用，构建过程不触发查询
type QueryClauses struct {
	Wheres []Clause
	// ORDER BY 子句，空字符串表示不排序
	Order string
}

func (q *QueryClauses) where(cond string, args ...any) {
	q.Wheres = append(q.Wheres, Clause{Cond: cond, Args: args})
}

// 排序字段白名单，防止前端传入任意列名拼进 SQL
var pictureSortColumns = map[string]string{
	"id":            "id",
	"name":          "name",
	"category":      "category",
	"pic_size":      "pic_size",
	"pic_width":     "pic_width",
	"pic_height":    "pic_height",
	"pic_scale":     "pic_scale",
	"review_status": "review_status",
	"user_id":       "user_id",
	"created_at":    "created_at",
	"edit_time":     "edit_time",
}

// BuildPictureQuery 将稀疏查询请求转为条件集合
// 零值字段不参与过滤；标签按 JSON 串加引号做包含匹配
func BuildPictureQuery(req *types.PictureQueryRequest) *QueryClauses {
	q := &QueryClauses{}
	if req == nil {
		return q
	}

	// 综合搜索：名称或简介模糊匹配，与其余条件取交
	if req.SearchText != "" {
		like := "%" + req.SearchText + "%"
		q.where("(name LIKE ? OR introduction LIKE ?)", like, like)
	}

	if req.ID > 0 {
		q.where("id = ?", req.ID)
	}
	if req.UserID > 0 {
		q.where("user_id = ?", req.UserID)
	}
	if req.Name != "" {
		q.where("name LIKE ?", "%"+req.Name+"%")
	}
	if req.Introduction != "" {
		q.where("introduction LIKE ?", "%"+req.Introduction+"%")
	}
	if req.PicFormat != "" {
		q.where("pic_format LIKE ?", "%"+req.PicFormat+"%")
	}
	if req.Category != "" {
		q.where("category = ?", req.Category)
	}
	if req.ReviewStatus != nil {
		q.where("review_status = ?", *req.ReviewStatus)
	}
	if req.ReviewMessage != "" {
		q.where("review_message LIKE ?", "%"+req.ReviewMessage+"%")
	}
	if req.ReviewerID > 0 {
		q.where("reviewer_id = ?", req.ReviewerID)
	}
	if req.PicWidth > 0 {
		q.where("pic_width = ?", req.PicWidth)
	}
	if req.PicHeight > 0 {
		q.where("pic_height = ?", req.PicHeight)
	}
	if req.PicSize > 0 {
		q.where("pic_size = ?", req.PicSize)
	}
	if req.PicScale > 0 {
		q.where("pic_scale = ?", req.PicScale)
	}

	// 标签字段是 JSON 数组字符串，带引号匹配避免子串误命中，多个标签取交
	for _, tag := range req.Tags {
		if tag == "" {
			continue
		}
		q.where("tags LIKE ?", fmt.Sprintf("%%%q%%", tag))
	}

	if col, ok := pictureSortColumns[req.SortField]; ok {
		// 仅 ascend 为升序，其余一律降序
		if req.SortOrder == "ascend" {
			q.Order = col + " ASC"
		} else {
			q.Order = col + " DESC"
		}
	}

	return q
}

var userSortColumns = map[string]string{
	"id":         "id",
	"account":    "account",
	"nickname":   "nickname",
	"role":       "role",
	"created_at": "created_at",
}

// BuildUserQuery 管理端用户查询条件
func BuildUserQuery(req *types.UserQueryRequest) *QueryClauses {
	q := &QueryClauses{}
	if req == nil {
		return q
	}

	if req.ID > 0 {
		q.where("id = ?", req.ID)
	}
	if req.Account != "" {
		q.where("account LIKE ?", "%"+req.Account+"%")
	}
	if req.Nickname != "" {
		q.where("nickname LIKE ?", "%"+req.Nickname+"%")
	}
	if req.Role != "" {
		q.where("role = ?", req.Role)
	}

	if col, ok := userSortColumns[req.SortField]; ok {
		if req.SortOrder == "ascend" {
			q.Order = col + " ASC"
		} else {
			q.Order = col + " DESC"
		}
	}

	return q
}
