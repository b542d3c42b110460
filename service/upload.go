package service

import (
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"math"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"PicCloud/pkg/log"
	"PicCloud/pkg/response"
	"PicCloud/pkg/strutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
	_ "golang.org/x/image/webp"
)

const maxPictureSize = 2 << 20 // 2MB

var allowedFormats = map[string]bool{
	"jpeg": true,
	"jpg":  true,
	"png":  true,
	"webp": true,
}

// UploadSource 上传来源，两种实现：表单文件、远程 URL
// 校验 → 取原始文件名 → 落到本地临时文件，下游流程不感知来源差异
type UploadSource interface {
	Validate() error
	Filename() string
	SaveTo(ctx context.Context, dst string) error
}

// ---- 表单文件上传 ----

type fileSource struct {
	header *multipart.FileHeader
}

func NewFileSource(header *multipart.FileHeader) UploadSource {
	return &fileSource{header: header}
}

func (f *fileSource) Validate() error {
	if f.header == nil || f.header.Size <= 0 {
		return response.ParamsError("文件不能为空")
	}
	if f.header.Size > maxPictureSize {
		return response.ParamsError("文件大小不能超过 2M")
	}
	ext := pictureExt(f.header.Filename)
	if !allowedFormats[ext] {
		return response.ParamsError("文件类型错误")
	}
	return nil
}

func (f *fileSource) Filename() string {
	return f.header.Filename
}

func (f *fileSource) SaveTo(ctx context.Context, dst string) error {
	src, err := f.header.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	_, err = io.Copy(out, src)
	return err
}

// ---- URL 上传 ----

var urlFetchClient = &http.Client{Timeout: 15 * time.Second}

type urlSource struct {
	rawURL string
}

func NewURLSource(rawURL string) UploadSource {
	return &urlSource{rawURL: rawURL}
}

func (u *urlSource) Validate() error {
	if u.rawURL == "" {
		return response.ParamsError("文件地址不能为空")
	}
	parsed, err := url.ParseRequestURI(u.rawURL)
	if err != nil {
		return response.ParamsError("文件地址格式错误")
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return response.ParamsError("仅支持 http/https 地址")
	}
	if parsed.Host == "" {
		return response.ParamsError("文件地址格式错误")
	}
	return nil
}

func (u *urlSource) Filename() string {
	parsed, err := url.Parse(u.rawURL)
	if err != nil {
		return ""
	}
	return path.Base(parsed.Path)
}

func (u *urlSource) SaveTo(ctx context.Context, dst string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.rawURL, nil)
	if err != nil {
		return err
	}
	resp, err := urlFetchClient.Do(req)
	if err != nil {
		return response.SystemError("图片下载失败: " + err.Error())
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return response.ParamsError(fmt.Sprintf("图片地址不可访问: %d", resp.StatusCode))
	}

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	// 多读一个字节用于判断超限
	n, err := io.Copy(out, io.LimitReader(resp.Body, maxPictureSize+1))
	if err != nil {
		return err
	}
	if n > maxPictureSize {
		return response.ParamsError("文件大小不能超过 2M")
	}
	return nil
}

// ---- 上传主流程 ----

// uploadResult 上传完成后的归一化结果，两种来源产出的形状完全一致
type uploadResult struct {
	Url       string
	PicName   string
	PicSize   int64
	PicWidth  int
	PicHeight int
	PicScale  float64
	PicFormat string
}

// uploadPicture 校验 → 生成存储路径 → 临时文件落地 → 上传 OSS → 提取元数据
// 临时文件在所有退出路径上都会清理
func (s *PictureService) uploadPicture(ctx context.Context, src UploadSource, pathPrefix string) (*uploadResult, error) {
	if src == nil {
		return nil, response.ParamsError("上传内容不能为空")
	}
	if err := src.Validate(); err != nil {
		return nil, err
	}

	originName := src.Filename()
	declaredExt := pictureExt(originName)

	tmp := filepath.Join(os.TempDir(), "upload_"+uuid.NewString())
	defer func() {
		if err := os.Remove(tmp); err != nil && !os.IsNotExist(err) {
			// 清理失败只记录，不影响主流程结果
			log.L.Warn("remove temp file failed", zap.String("path", tmp), zap.Error(err))
		}
	}()

	if err := src.SaveTo(ctx, tmp); err != nil {
		return nil, err
	}

	stat, err := os.Stat(tmp)
	if err != nil {
		return nil, response.SystemError("文件处理失败")
	}
	if stat.Size() == 0 {
		return nil, response.ParamsError("文件内容为空")
	}
	// URL 来源取回后复核大小，表单来源在 Validate 已拦过一道
	if stat.Size() > maxPictureSize {
		return nil, response.ParamsError("文件大小不能超过 2M")
	}

	width, height, probedFormat, probeErr := probeImage(tmp)

	// URL 声明的后缀不可信，以实际字节探测为准
	ext := declaredExt
	if _, isURL := src.(*urlSource); isURL {
		if probeErr != nil || !allowedFormats[probedFormat] {
			return nil, response.ParamsError("文件类型错误")
		}
		if !sameFormatFamily(ext, probedFormat) {
			ext = probedFormat
		}
	}

	objectKey, err := buildObjectKey(pathPrefix, ext)
	if err != nil {
		return nil, err
	}

	storedURL, info, err := s.Oss.PutPicture(ctx, tmp, objectKey)
	if err != nil {
		log.L.Error("put object failed", zap.String("key", objectKey), zap.Error(err))
		return nil, response.SystemError("上传服务暂时不可用")
	}

	// 优先使用存储端返回的图片信息，缺失时用本地解析结果兜底
	result := &uploadResult{
		Url:       storedURL,
		PicName:   mainName(originName),
		PicSize:   stat.Size(),
		PicWidth:  width,
		PicHeight: height,
		PicFormat: ext,
	}
	if info != nil {
		if info.Width > 0 {
			result.PicWidth = info.Width
		}
		if info.Height > 0 {
			result.PicHeight = info.Height
		}
		if info.Format != "" {
			result.PicFormat = strings.ToLower(info.Format)
		}
		if info.Size > 0 {
			result.PicSize = info.Size
		}
	}
	result.PicScale = aspectRatio(result.PicWidth, result.PicHeight)

	return result, nil
}

// buildObjectKey 生成存储路径 {prefix}/{yyyyMMdd}_{random16}.{ext}
func buildObjectKey(prefix, ext string) (string, error) {
	normalized := strings.Trim(prefix, "/")
	if normalized == "" {
		return "", response.ParamsError("上传路径前缀不能为空")
	}
	return fmt.Sprintf("%s/%s_%s.%s",
		normalized,
		time.Now().Format("20060102"),
		strutil.Random(16),
		ext,
	), nil
}

// probeImage 只读图片头部取尺寸和格式，不解码全图
func probeImage(path string) (width, height int, format string, err error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, 0, "", err
	}
	defer f.Close()

	cfg, format, err := image.DecodeConfig(f)
	if err != nil {
		return 0, 0, "", err
	}
	return cfg.Width, cfg.Height, strings.ToLower(format), nil
}

// aspectRatio 宽高比保留两位小数，高度为 0 时返回 0
func aspectRatio(width, height int) float64 {
	if height <= 0 || width <= 0 {
		return 0
	}
	return math.Round(float64(width)/float64(height)*100) / 100
}

// pictureExt 取小写后缀，不含点
func pictureExt(filename string) string {
	return strings.ToLower(strings.TrimPrefix(path.Ext(filename), "."))
}

// mainName 取不含后缀的文件名
func mainName(filename string) string {
	base := path.Base(filename)
	return strings.TrimSuffix(base, path.Ext(base))
}

// sameFormatFamily jpg 和 jpeg 视为同一格式
func sameFormatFamily(a, b string) bool {
	norm := func(s string) string {
		if s == "jpg" {
			return "jpeg"
		}
		return s
	}
	return norm(a) == norm(b)
}
