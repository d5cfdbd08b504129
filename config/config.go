package config

import (
	"time"

	"github.com/gotify/configor"
)

var Conf *Configuration

type Configuration struct {
	App struct {
		ListenAddr    string `default:"" env:"APP_HOST"`
		Port          int    `default:"8080"  env:"APP_PORT"`
		Timezone      string `default:"America/Chicago" env:"APP_TIMEZONE"`
		PublicBaseURL string `default:"http://localhost:8080" env:"APP_PUBLIC_BASE_URL"`
		BodyLimitMb   int    `default:"50" env:"APP_BODY_LIMIT_MB"`
		ErrNotifyAddr string `default:"" env:"APP_ERR_NOTIFY_ADDR"`
		LogLevel      string `default:"info" env:"APP_LOG_LEVEL"`
	}
	Database struct {
		Host           string `default:"127.0.0.1" env:"DB_HOST"`
		Port           string `default:"5432" env:"DB_PORT"`
		Name           string `default:"maintenance" env:"DB_NAME"`
		User           string `default:"postgres" env:"DB_USER"`
		Password       string `default:"postgres" env:"DB_PASSWORD"`
		MigrateOnStart *bool  `default:"true" env:"DB_MIGRATE_ON_START"`
		DebugMode      *bool  `default:"false" env:"DB_DEBUG_MODE"`
		MaxOpenConns   int    `default:"20" env:"DB_MAX_OPEN_CONNS"`
	}
	Smtp struct {
		User       string `default:"" env:"SMTP_USER"`
		Password   string `default:"" env:"SMTP_PASSWORD"`
		Host       string `default:"" env:"SMTP_HOST"`
		Port       string `default:"" env:"SMTP_PORT"`
		TLSEnabled *bool  `default:"true" env:"SMTP_TLS_ENABLED"`
		From       string `default:"no-reply@localhost" env:"SMTP_FROM"`
		FromName   string `default:"Property Maintenance" env:"SMTP_FROM_NAME"`
	}
	Admin struct {
		NotifyEmail    string `default:"" env:"ADMIN_NOTIFY_EMAIL"`
		JWTSecret      string `default:"change-me" env:"ADMIN_JWT_SECRET"`
		JWTExpireInSec int    `default:"86400" env:"ADMIN_JWT_EXPIRE_IN_SEC"`
		SeedEmail      string `default:"" env:"ADMIN_SEED_EMAIL"`
		SeedPassword   string `default:"" env:"ADMIN_SEED_PASSWORD"`
	}
	Storage struct {
		Driver    string `default:"local" env:"STORAGE_DRIVER"` // local|s3
		LocalRoot string `default:"./storage" env:"STORAGE_LOCAL_ROOT"`
		TempDir   string `default:"" env:"STORAGE_TEMP_DIR"` // для s3 - локальная копия файлов при отправке почты
	}
	S3 struct {
		Endpoint        string `default:"" env:"S3_ENDPOINT"`
		AccessKeyID     string `default:"" env:"S3_ACCESS_KEY_ID"`
		SecretAccessKey string `default:"" env:"S3_SECRET_ACCESS_KEY"`
		UseSSL          *bool  `default:"false" env:"S3_USE_SSL"`
		BucketName      string `default:"maintenance" env:"S3_BUCKET_NAME"`
	}
	Redis struct {
		Addr     string `default:"" env:"REDIS_ADDR"`
		Password string `default:"" env:"REDIS_PASSWORD"`
		DB       int    `default:"0" env:"REDIS_DB"`
	}
	YandexGPT struct {
		IAMToken       string `default:"" env:"YANDEX_GPT_IAM_TOKEN"`
		CatalogID      string `default:"" env:"YANDEX_GPT_CATALOG_ID"`
		TimeoutSeconds int    `default:"15" env:"YANDEX_GPT_TIMEOUT_SECONDS"`
	}
	Pdf struct {
		FontDir string `default:"" env:"PDF_FONT_DIR"`
	}
	Submission struct {
		GuardTTLHours int `default:"24" env:"SUBMISSION_GUARD_TTL_HOURS"`
		MaxImages     int `default:"10" env:"SUBMISSION_MAX_IMAGES"`
		MaxImageMb    int `default:"10" env:"SUBMISSION_MAX_IMAGE_MB"`
	}
}

func configFiles() []string {
	return []string{"config.yml"}
}

func InitConfig() {
	if Conf != nil {
		return
	}
	conf := new(Configuration)
	err := configor.New(&configor.Config{}).Load(conf, configFiles()...)
	if err != nil {
		panic(err)
	}
	Conf = conf
}

// Location часовой пояс организации, все даты заявок считаются в нем
func (c *Configuration) Location() *time.Location {
	loc, err := time.LoadLocation(c.App.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}

func (c *Configuration) GuardTTL() time.Duration {
	if c.Submission.GuardTTLHours <= 0 {
		return 24 * time.Hour
	}
	return time.Duration(c.Submission.GuardTTLHours) * time.Hour
}
