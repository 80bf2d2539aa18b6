package logostore

import (
	"campus-connect/config"
	"context"
	"fmt"
	"mime/multipart"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

var (
	s3Client *s3.Client
	uploader *manager.Uploader
)

// initS3 按需初始化 S3 客户端
func (ls *LogoStore) initS3(ctx context.Context) error {
	ls.mu.Lock()
	defer ls.mu.Unlock()
	if s3Client != nil {
		return nil
	}

	cfg := config.Get()
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.S3.Region),
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.S3.AccessKey, cfg.S3.SecretAccessKey, ""),
		),
	)
	if err != nil {
		return fmt.Errorf("加载 S3 配置失败: %w", err)
	}

	s3Client = s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.S3.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.S3.Endpoint)
		}
		o.UsePathStyle = cfg.S3.UsePathStyle
	})
	uploader = manager.NewUploader(s3Client)
	return nil
}

// uploadS3 将文件上传到对象存储并返回访问 URL
func (ls *LogoStore) uploadS3(ctx context.Context, fileHeader *multipart.FileHeader) (string, error) {
	if err := ls.initS3(ctx); err != nil {
		return "", err
	}

	file, err := fileHeader.Open()
	if err != nil {
		return "", err
	}
	defer file.Close()

	cfg := config.Get()
	key := objectKey(uniqueFilename(fileHeader.Filename))

	contentType := fileHeader.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	_, err = uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(cfg.S3.Bucket),
		Key:         aws.String(key),
		Body:        file,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("上传 S3 失败: %w", err)
	}

	return fileURL(key), nil
}

// PresignedUploadRequest 预签名上传请求参数
type PresignedUploadRequest struct {
	Filename    string // 原始文件名
	ContentType string // 文件 MIME 类型
	ExpiresIn   int64  // 过期时间（秒），默认 15 分钟
}

// PresignedUploadResponse 预签名上传响应
type PresignedUploadResponse struct {
	UploadURL string            `json:"upload_url"` // 预签名上传 URL
	FileKey   string            `json:"file_key"`   // 对象存储中的文件 key
	FileURL   string            `json:"file_url"`   // 上传成功后的访问 URL
	ExpiresAt time.Time         `json:"expires_at"` // 过期时间
	Method    string            `json:"method"`     // HTTP 方法（通常是 PUT）
	Headers   map[string]string `json:"headers"`    // 需要在上传时携带的 Headers
}

// GeneratePresignedUploadURL 生成预签名上传 URL
// 允许前端直接上传文件到 S3，无需经过后端中转
func (ls *LogoStore) GeneratePresignedUploadURL(ctx context.Context, req PresignedUploadRequest) (*PresignedUploadResponse, error) {
	if !S3Enabled() {
		return nil, fmt.Errorf("S3 bucket 未配置")
	}
	if err := ls.initS3(ctx); err != nil {
		return nil, err
	}
	if req.Filename == "" {
		return nil, fmt.Errorf("文件名不能为空")
	}

	// 设置默认过期时间（15 分钟）
	if req.ExpiresIn <= 0 {
		req.ExpiresIn = 900
	}

	contentType := req.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	cfg := config.Get()
	key := objectKey(uniqueFilename(req.Filename))

	presignClient := s3.NewPresignClient(s3Client)
	presignedReq, err := presignClient.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(cfg.S3.Bucket),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
	}, func(opts *s3.PresignOptions) {
		opts.Expires = time.Duration(req.ExpiresIn) * time.Second
	})
	if err != nil {
		return nil, fmt.Errorf("生成预签名 URL 失败: %w", err)
	}

	response := &PresignedUploadResponse{
		UploadURL: presignedReq.URL,
		FileKey:   key,
		FileURL:   fileURL(key),
		ExpiresAt: time.Now().Add(time.Duration(req.ExpiresIn) * time.Second),
		Method:    presignedReq.Method,
		Headers: map[string]string{
			"Content-Type": contentType,
		},
	}

	// 添加预签名请求中的其他 Headers
	for k, v := range presignedReq.SignedHeader {
		if len(v) > 0 {
			response.Headers[k] = v[0]
		}
	}

	return response, nil
}

// objectKey 构建带前缀的对象 key
func objectKey(filename string) string {
	cfg := config.Get()
	key := path.Join(strings.Trim(cfg.S3.Prefix, "/"), "logo", filename)
	return strings.TrimLeft(key, "/")
}

// fileURL 构建上传后的访问 URL
func fileURL(key string) string {
	cfg := config.Get()
	base := strings.TrimRight(cfg.S3.BaseURL, "/")
	if base == "" {
		base = strings.TrimRight(cfg.S3.Endpoint, "/")
	}
	if cfg.S3.UsePathStyle {
		return base + "/" + cfg.S3.Bucket + "/" + key
	}
	return base + "/" + key
}
