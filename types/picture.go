package types

import "time"

// 审核状态 0-待审核 1-通过 2-拒绝
const (
	ReviewStatusReviewing = 0
	ReviewStatusPass      = 1
	ReviewStatusReject    = 2
)

// ReviewStatusValid 判断值是否为合法审核状态
func ReviewStatusValid(status int) bool {
	switch status {
	case ReviewStatusReviewing, ReviewStatusPass, ReviewStatusReject:
		return true
	}
	return false
}

// PageRequest 通用分页参数
type PageRequest struct {
	Current  int `json:"current"`
	PageSize int `json:"page_size"`
}

type PictureUploadRequest struct {
	// 图片 id（用于重新上传）
	ID int64 `json:"id"`
	// 图片地址（URL 上传方式）
	FileURL string `json:"file_url"`
	// 图片名称，不填时取原始文件名
	PicName string `json:"pic_name"`
}

// PictureEditRequest 普通用户可修改的字段范围小于管理员的更新请求
type PictureEditRequest struct {
	ID           int64    `json:"id"`
	Name         string   `json:"name"`
	Introduction string   `json:"introduction"`
	Category     string   `json:"category"`
	Tags         []string `json:"tags"`
}

// PictureUpdateRequest 管理员更新请求
type PictureUpdateRequest struct {
	ID           int64    `json:"id"`
	Name         string   `json:"name"`
	Introduction string   `json:"introduction"`
	Category     string   `json:"category"`
	Tags         []string `json:"tags"`
}

type PictureReviewRequest struct {
	ID            int64  `json:"id"`
	ReviewStatus  int    `json:"review_status"`
	ReviewMessage string `json:"review_message"`
}

type DeleteRequest struct {
	ID int64 `json:"id"`
}

// PictureQueryRequest 图片查询请求，零值字段不参与过滤
type PictureQueryRequest struct {
	PageRequest

	ID           int64    `json:"id"`
	Name         string   `json:"name"`
	Introduction string   `json:"introduction"`
	Category     string   `json:"category"`
	Tags         []string `json:"tags"`
	PicSize      int64    `json:"pic_size"`
	PicWidth     int      `json:"pic_width"`
	PicHeight    int      `json:"pic_height"`
	PicScale     float64  `json:"pic_scale"`
	PicFormat    string   `json:"pic_format"`
	// 搜索词，同时匹配名称和简介
	SearchText string `json:"search_text"`
	UserID     int64  `json:"user_id"`
	// 审核状态用指针区分"未传"和 0
	ReviewStatus  *int   `json:"review_status"`
	ReviewMessage string `json:"review_message"`
	ReviewerID    int64  `json:"reviewer_id"`

	SortField string `json:"sort_field"`
	// 仅当取值为 ascend 时升序，其余一律降序
	SortOrder string `json:"sort_order"`
}

type PictureVO struct {
	ID           int64      `json:"id"`
	Url          string     `json:"url"`
	Name         string     `json:"name"`
	Introduction string     `json:"introduction"`
	Category     string     `json:"category"`
	Tags         []string   `json:"tags"`
	PicSize      int64      `json:"pic_size"`
	PicWidth     int        `json:"pic_width"`
	PicHeight    int        `json:"pic_height"`
	PicScale     float64    `json:"pic_scale"`
	PicFormat    string     `json:"pic_format"`
	UserID       int64      `json:"user_id"`
	ReviewStatus int        `json:"review_status"`
	CreatedAt    time.Time  `json:"created_at"`
	EditTime     *time.Time `json:"edit_time,omitempty"`
	User         *UserVO    `json:"user,omitempty"`
}

type PictureVOPage struct {
	Records  []*PictureVO `json:"records"`
	Total    int64        `json:"total"`
	Current  int          `json:"current"`
	PageSize int          `json:"page_size"`
}

type PictureTagCategory struct {
	TagList      []string `json:"tag_list"`
	CategoryList []string `json:"category_list"`
}
