// Package logostore 负责社团 logo 的存储
// 配置了 S3 时上传到对象存储，否则保存到本地目录
package logostore

import (
	"campus-connect/config"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

type LogoStore struct {
	SaveDir string // 本地保存目录
	BaseURL string // 本地访问基础URL

	mu sync.Mutex
}

var instance *LogoStore

func Init() {
	cfg := config.Get()
	instance = &LogoStore{
		SaveDir: filepath.Join(cfg.Storage.Home, "logo"),
		BaseURL: strings.TrimRight(cfg.Storage.BaseURL, "/") + "/logo",
	}
}

func Get() *LogoStore {
	return instance
}

// S3Enabled 是否配置了对象存储
func S3Enabled() bool {
	cfg := config.Get()
	return cfg.S3.Bucket != ""
}

// SaveLogo 保存上传的 logo 并返回访问 URL
func (ls *LogoStore) SaveLogo(ctx context.Context, fileHeader *multipart.FileHeader) (string, error) {
	if S3Enabled() {
		return ls.uploadS3(ctx, fileHeader)
	}
	return ls.saveLocal(fileHeader)
}

// saveLocal 保存到本地目录并返回访问路径
func (ls *LogoStore) saveLocal(fileHeader *multipart.FileHeader) (string, error) {
	file, err := fileHeader.Open()
	if err != nil {
		return "", err
	}
	defer file.Close()

	// 确保保存目录存在
	if err := os.MkdirAll(ls.SaveDir, os.ModePerm); err != nil {
		return "", err
	}

	// 生成唯一文件名
	filename := uniqueFilename(fileHeader.Filename)
	filePath := filepath.Join(ls.SaveDir, filename)

	dst, err := os.Create(filePath)
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		return "", err
	}

	return ls.BaseURL + "/" + filename, nil
}

// uniqueFilename 时间戳 + 原始扩展名
func uniqueFilename(original string) string {
	ext := strings.ToLower(path.Ext(original))
	return fmt.Sprintf("%d%s", time.Now().UnixNano(), ext)
}
