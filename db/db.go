package db

import (
	"fmt"
	"time"

	gorm_logrus "github.com/onrik/gorm-logrus"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

type Options struct {
	Host      string
	Port      string
	Name      string
	User      string
	Password  string
	DebugMode bool
	Migrate   bool
	// MaxOpenConns 0 - без ограничения
	MaxOpenConns int
}

func (o Options) dsn() string {
	return fmt.Sprintf("host=%s port=%s user=%s dbname=%s sslmode=disable password=%s TimeZone=UTC",
		o.Host, o.Port, o.User, o.Name, o.Password)
}

func Connect(opts Options) error {
	if DB != nil {
		return nil
	}
	gdb, err := gorm.Open(postgres.Open(opts.dsn()), &gorm.Config{
		Logger: gorm_logrus.New(),
		// нарушение уникального индекса приходит как gorm.ErrDuplicatedKey
		TranslateError: true,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return errors.Wrap(err, "Ошибка подключения к БД")
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		return errors.Wrap(err, "Ошибка подключения к БД")
	}
	sqlDB.SetMaxOpenConns(opts.MaxOpenConns)
	sqlDB.SetConnMaxIdleTime(5 * time.Minute)
	if opts.DebugMode {
		gdb.Logger = logger.Default.LogMode(logger.Info)
		gdb = gdb.Debug()
	}
	DB = gdb
	if opts.Migrate {
		if err = AutoMigrateDB(); err != nil {
			return err
		}
	}
	log.WithField("host", opts.Host).WithField("db", opts.Name).Info("Сервис успешно подключен к БД")
	return nil
}

func PingDB() error {
	if DB == nil {
		return errors.New("БД не инициализирована")
	}
	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}
