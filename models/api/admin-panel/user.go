package adminpanelapimodels

import (
	"net/mail"
	"time"

	"github.com/pkg/errors"
	"maintenance-backend/models"
	dbmodels "maintenance-backend/models/db"
)

type UserView struct {
	User
	ID        string     `json:"id"`
	IsActive  bool       `json:"is_active"`
	LastLogin *time.Time `json:"last_login,omitempty"`
}

type User struct {
	Email       string          `json:"email"`
	FirstName   string          `json:"first_name"`
	LastName    string          `json:"last_name"`
	PhoneNumber string          `json:"phone_number"`
	Password    string          `json:"password,omitempty"`
	Role        models.UserRole `json:"role"`
}

func (u User) Validate() error {
	if u.Email == "" {
		return errors.New("email не указан")
	}
	if _, err := mail.ParseAddress(u.Email); err != nil {
		return errors.New("email имеет неправильный формат")
	}
	if u.FirstName == "" {
		return errors.New("имя не указано")
	}
	if len(u.Password) < 8 {
		return errors.New("пароль должен содержать не менее 8 символов")
	}
	if u.Role != "" && u.Role != models.UserRoleAdmin && u.Role != models.UserRoleSuperAdmin {
		return errors.New("некорректная роль пользователя")
	}
	return nil
}

func UserConvert(rec dbmodels.AdminPanelUser) UserView {
	return UserView{
		User: User{
			Email:       rec.Email,
			FirstName:   rec.FirstName,
			LastName:    rec.LastName,
			PhoneNumber: rec.PhoneNumber,
			Role:        rec.Role,
		},
		ID:        rec.ID,
		IsActive:  rec.IsActive,
		LastLogin: rec.LastLogin,
	}
}
