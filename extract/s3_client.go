package extract

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/LilVoxy/coursework_trucks/config"
	"github.com/LilVoxy/coursework_trucks/utils"
)

// S3Client представляет клиент для работы с бакетом выгрузок грузовиков
type S3Client struct {
	client *s3.Client
	config config.S3Config
	logger *utils.ETLLogger
}

// NewS3Client создает новый экземпляр S3Client
func NewS3Client(ctx context.Context, s3Config config.S3Config, logger *utils.ETLLogger) (*S3Client, error) {
	configOpts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(s3Config.Region),
	}

	if s3Config.AccessKeyID != "" {
		configOpts = append(configOpts,
			awsconfig.WithCredentialsProvider(
				credentials.NewStaticCredentialsProvider(s3Config.AccessKeyID, s3Config.SecretAccessKey, "")))
	}

	var clientOpts []func(*s3.Options)

	// Локальная разработка через localstack
	if s3Config.Endpoint != "" {
		logger.Info("Используется локальный S3 endpoint: %s", s3Config.Endpoint)
		clientOpts = append(clientOpts, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(s3Config.Endpoint)
			o.UsePathStyle = true
		})
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, configOpts...)
	if err != nil {
		return nil, fmt.Errorf("ошибка при загрузке конфигурации AWS: %w", err)
	}

	return &S3Client{
		client: s3.NewFromConfig(cfg, clientOpts...),
		config: s3Config,
		logger: logger,
	}, nil
}

// ListKeys возвращает список всех ключей в бакете
func (c *S3Client) ListKeys(ctx context.Context) ([]string, error) {
	response, err := c.client.ListObjectsV2(ctx, &s3.ListObjectsV2Input{
		Bucket: aws.String(c.config.Bucket),
	})
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении списка объектов бакета %s: %w", c.config.Bucket, err)
	}

	var keys []string
	for _, object := range response.Contents {
		keys = append(keys, aws.ToString(object.Key))
	}
	return keys, nil
}

// Download скачивает объект бакета в указанный локальный файл
func (c *S3Client) Download(ctx context.Context, key, destPath string) error {
	object, err := c.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(c.config.Bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("ошибка при скачивании объекта %s: %w", key, err)
	}
	defer object.Body.Close()

	file, err := os.Create(destPath)
	if err != nil {
		return fmt.Errorf("ошибка при создании файла %s: %w", destPath, err)
	}
	defer file.Close()

	if _, err := io.Copy(file, object.Body); err != nil {
		return fmt.Errorf("ошибка при записи файла %s: %w", destPath, err)
	}

	return nil
}
