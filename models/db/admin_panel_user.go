package dbmodels

import (
	"time"

	"github.com/pkg/errors"
	"maintenance-backend/models"
)

type AdminPanelUser struct {
	BaseModel
	IsActive    bool
	Role        models.UserRole `gorm:"type:varchar(50)"`
	Password    string          `gorm:"type:varchar(128)"`
	FirstName   string          `gorm:"type:varchar(150)"`
	LastName    string          `gorm:"type:varchar(150)"`
	Email       string          `gorm:"type:varchar(255);uniqueIndex"`
	PhoneNumber string          `gorm:"type:varchar(32)"`
	LastLogin   *time.Time
}

func (u AdminPanelUser) Validate() error {
	if u.Email == "" {
		return errors.New("email не указан")
	}
	if u.FirstName == "" {
		return errors.New("имя не указано")
	}
	return nil
}

func (u AdminPanelUser) GetFullName() string {
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}
