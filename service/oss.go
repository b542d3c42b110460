package service

import (
	"context"
	"fmt"
	"io"
	"time"

	"PicCloud/config"

	"github.com/aliyun/alibabacloud-oss-go-sdk-v2/oss"
	"github.com/aliyun/alibabacloud-oss-go-sdk-v2/oss/credentials"
)

// PictureInfo 存储服务返回的图片衍生信息，拿不到时为 nil，由调用方本地兜底
type PictureInfo struct {
	Width  int
	Height int
	Format string
	Size   int64
}

var _ IOssService = (*OssService)(nil)

type IOssService interface {
	// PutPicture 上传本地文件，返回外链 URL 和可选的图片信息
	PutPicture(ctx context.Context, localPath, objectKey string) (string, *PictureInfo, error)

	// DownloadReader 下载为流
	DownloadReader(ctx context.Context, objectKey string) (io.ReadCloser, error)

	// Delete 删除对象
	Delete(ctx context.Context, objectKey string) error

	// SignURL 生成临时访问 URL（秒）
	SignURL(ctx context.Context, objectKey string, expireSeconds int64) (string, error)
}

type OssService struct {
	Client     *oss.Client
	BucketName string
	Host       string
}

func NewOssService(cfg *config.OssConfig) IOssService {
	ossCfg := oss.LoadDefaultConfig().
		WithEndpoint(uploadEndpoint(cfg)).
		WithRegion(cfg.Region).
		WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(
				cfg.AccessKeyID,
				cfg.AccessKeySecret,
			),
		)

	client := oss.NewClient(ossCfg)

	return &OssService{
		Client:     client,
		BucketName: cfg.Bucket,
		Host:       publicHost(cfg),
	}
}

// uploadEndpoint 内网部署时上传走内网端点，外链仍挂公网端点
func uploadEndpoint(cfg *config.OssConfig) string {
	if cfg.InternalEndpoint != "" {
		return cfg.InternalEndpoint
	}
	return cfg.Endpoint
}

// publicHost 外链域名，未配置自定义域名时落到 bucket 公网地址
func publicHost(cfg *config.OssConfig) string {
	if cfg.Host != "" {
		return cfg.Host
	}
	return fmt.Sprintf("https://%s.%s", cfg.Bucket, cfg.Endpoint)
}

func (s *OssService) PutPicture(ctx context.Context, localPath, objectKey string) (string, *PictureInfo, error) {
	_, err := s.Client.PutObjectFromFile(ctx, &oss.PutObjectRequest{
		Bucket: oss.Ptr(s.BucketName),
		Key:    oss.Ptr(objectKey),
	}, localPath)
	if err != nil {
		return "", nil, err
	}

	// OSS 不随 Put 返回图片信息，尺寸由上传链路本地解析
	return s.Host + "/" + objectKey, nil, nil
}

func (s *OssService) DownloadReader(ctx context.Context, objectKey string) (io.ReadCloser, error) {
	out, err := s.Client.GetObject(ctx, &oss.GetObjectRequest{
		Bucket: oss.Ptr(s.BucketName),
		Key:    oss.Ptr(objectKey),
	})
	if err != nil {
		return nil, err
	}

	return out.Body, nil
}

func (s *OssService) Delete(ctx context.Context, objectKey string) error {
	_, err := s.Client.DeleteObject(ctx, &oss.DeleteObjectRequest{
		Bucket: oss.Ptr(s.BucketName),
		Key:    oss.Ptr(objectKey),
	})
	return err
}

func (s *OssService) SignURL(ctx context.Context, objectKey string, expireSeconds int64) (string, error) {
	result, err := s.Client.Presign(ctx, &oss.GetObjectRequest{
		Bucket: oss.Ptr(s.BucketName),
		Key:    oss.Ptr(objectKey),
	}, oss.PresignExpires(time.Duration(expireSeconds)*time.Second))
	if err != nil {
		return "", err
	}

	return result.URL, nil
}
