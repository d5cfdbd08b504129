package adminpaneluserstore

import (
	"strings"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"maintenance-backend/models"
	dbmodels "maintenance-backend/models/db"
)

var ErrEmailTaken = errors.New("пользователь с указанной почтой уже существует")

type Provider interface {
	Create(rec dbmodels.AdminPanelUser) (userID string, err error)
	GetByID(userID string) (*dbmodels.AdminPanelUser, error)
	// FindByEmail поиск без учета регистра
	FindByEmail(email string) (*dbmodels.AdminPanelUser, error)
	Update(userID string, updMap map[string]interface{}) error
	List() ([]dbmodels.AdminPanelUser, error)
	ListActiveAdminIDs() ([]string, error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.AdminPanelUser) (string, error) {
	rec.Email = normalizeEmail(rec.Email)
	if err := rec.Validate(); err != nil {
		return "", err
	}
	existed, err := i.FindByEmail(rec.Email)
	if err != nil {
		return "", err
	}
	if existed != nil {
		return "", ErrEmailTaken
	}
	err = i.db.Create(&rec).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		// параллельное создание с той же почтой
		return "", ErrEmailTaken
	}
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetByID(userID string) (*dbmodels.AdminPanelUser, error) {
	return i.first(i.db.Where("id = ?", userID))
}

func (i impl) FindByEmail(email string) (*dbmodels.AdminPanelUser, error) {
	return i.first(i.db.Where("email = ?", normalizeEmail(email)))
}

func (i impl) Update(userID string, updMap map[string]interface{}) error {
	if len(updMap) == 0 {
		return nil
	}
	if email, ok := updMap["Email"].(string); ok {
		updMap["Email"] = normalizeEmail(email)
	}
	err := i.db.
		Model(&dbmodels.AdminPanelUser{}).
		Where("id = ?", userID).
		Updates(updMap).
		Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrEmailTaken
	}
	return err
}

func (i impl) List() ([]dbmodels.AdminPanelUser, error) {
	list := []dbmodels.AdminPanelUser{}
	err := i.db.
		Order("created_at").
		Find(&list).
		Error
	return list, err
}

// ListActiveAdminIDs получатели уведомлений о новых заявках
func (i impl) ListActiveAdminIDs() ([]string, error) {
	var ids []string
	err := i.db.
		Model(&dbmodels.AdminPanelUser{}).
		Where("is_active = ?", true).
		Where("role IN ?", []models.UserRole{models.UserRoleAdmin, models.UserRoleSuperAdmin}).
		Order("created_at").
		Pluck("id", &ids).
		Error
	return ids, err
}

func (i impl) first(tx *gorm.DB) (*dbmodels.AdminPanelUser, error) {
	rec := dbmodels.AdminPanelUser{}
	err := tx.First(&rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
