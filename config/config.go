package config

import (
	"os"
	"strconv"
	"time"
)

// PipelineConfig содержит конфигурацию для ETL-процесса
type PipelineConfig struct {
	// Конфигурация для подключения к S3 (источник сырых файлов)
	S3Config S3Config `json:"s3_config"`

	// Конфигурация для подключения к целевой БД
	DBConfig DatabaseConfig `json:"db_config"`

	// Часы, в которые грузовики выгружают файлы транзакций
	AllowedHours []int `json:"allowed_hours"`

	// Базовая директория для скачанных файлов
	DownloadPath string `json:"download_path"`

	// Интервал запуска пайплайна по расписанию
	RunInterval time.Duration `json:"run_interval"`

	// Адрес HTTP-сервера со статусом запусков
	ServerAddr string `json:"server_addr"`
}

// S3Config содержит настройки подключения к S3
type S3Config struct {
	Bucket          string `json:"bucket"`
	Region          string `json:"region"`
	Endpoint        string `json:"endpoint"`
	AccessKeyID     string `json:"access_key_id"`
	SecretAccessKey string `json:"secret_access_key"`
}

// DatabaseConfig содержит настройки подключения к базе данных
type DatabaseConfig struct {
	Driver   string `json:"driver"`
	Host     string `json:"host"`
	Port     int    `json:"port"`
	User     string `json:"user"`
	Password string `json:"password"`
	DBName   string `json:"dbname"`
}

// Значения конфигурации по умолчанию
var DefaultPipelineConfig = PipelineConfig{
	S3Config: S3Config{
		Bucket: "sigma-resources-truck",
		Region: "eu-west-2",
	},
	DBConfig: DatabaseConfig{
		Driver: "mysql",
		Host:   "localhost",
		Port:   3306,
		User:   "root",
		DBName: "truck_analytics",
	},
	AllowedHours: []int{12, 15, 18, 21},
	DownloadPath: "./data-files",
	RunInterval:  1 * time.Hour,
	ServerAddr:   ":8080",
}

// GetConfig возвращает конфигурацию пайплайна, переопределяя значения
// по умолчанию переменными окружения
func GetConfig() PipelineConfig {
	config := DefaultPipelineConfig

	config.S3Config.Bucket = getEnv("BUCKET_NAME", config.S3Config.Bucket)
	config.S3Config.Region = getEnv("AWS_REGION", config.S3Config.Region)
	config.S3Config.Endpoint = getEnv("AWS_ENDPOINT", config.S3Config.Endpoint)
	config.S3Config.AccessKeyID = getEnv("aws_access_key_id", "")
	config.S3Config.SecretAccessKey = getEnv("aws_secret_access_key", "")

	config.DBConfig.Host = getEnv("DB_HOST", config.DBConfig.Host)
	config.DBConfig.Port = getEnvInt("DB_PORT", config.DBConfig.Port)
	config.DBConfig.User = getEnv("DB_USER", config.DBConfig.User)
	config.DBConfig.Password = getEnv("DB_PASSWORD", config.DBConfig.Password)
	config.DBConfig.DBName = getEnv("DB_NAME", config.DBConfig.DBName)

	return config
}

// getEnv возвращает значение переменной окружения или значение по умолчанию
func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

// getEnvInt возвращает числовое значение переменной окружения или значение по умолчанию
func getEnvInt(key string, fallback int) int {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}

	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}
