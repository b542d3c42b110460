package service

import (
	"testing"

	"PicCloud/config"
)

func TestUploadEndpoint(t *testing.T) {
	cfg := &config.OssConfig{Endpoint: "oss-cn-hangzhou.aliyuncs.com"}
	if got := uploadEndpoint(cfg); got != "oss-cn-hangzhou.aliyuncs.com" {
		t.Errorf("未配置内网端点时应走公网: %s", got)
	}

	cfg.InternalEndpoint = "oss-cn-hangzhou-internal.aliyuncs.com"
	if got := uploadEndpoint(cfg); got != "oss-cn-hangzhou-internal.aliyuncs.com" {
		t.Errorf("应优先走内网端点: %s", got)
	}
}

func TestPublicHost(t *testing.T) {
	cfg := &config.OssConfig{Endpoint: "oss-cn-hangzhou.aliyuncs.com", Bucket: "piccloud"}
	if got := publicHost(cfg); got != "https://piccloud.oss-cn-hangzhou.aliyuncs.com" {
		t.Errorf("默认外链域名错误: %s", got)
	}

	cfg.Host = "https://cdn.example.com"
	if got := publicHost(cfg); got != "https://cdn.example.com" {
		t.Errorf("自定义域名应优先: %s", got)
	}
}
