package repository

import (
	"github.com/capital-schemes/backend/internal/domain"
	"github.com/capital-schemes/backend/internal/models"
	"gorm.io/gorm"
)

// GormAuthorities stores authorities in the relational database.
type GormAuthorities struct{}

func (GormAuthorities) Add(authorities ...domain.Authority) error {
	return models.DB.Transaction(func(tx *gorm.DB) error {
		for _, authority := range authorities {
			row := models.Authority{
				Model: models.Model{ID: authority.ID},
				Name:  authority.Name,
			}

			if err := tx.Save(&row).Error; err != nil {
				return err
			}
		}

		return nil
	})
}

func (GormAuthorities) Get(id uint) (*domain.Authority, error) {
	var row models.Authority
	if err := models.DB.First(&row, id).Error; err != nil {
		return nil, err
	}

	authority := domain.Authority{ID: row.ID, Name: row.Name}
	return &authority, nil
}

func (GormAuthorities) List() ([]domain.Authority, error) {
	var rows []models.Authority
	if err := models.DB.Order("id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}

	authorities := make([]domain.Authority, 0, len(rows))
	for _, row := range rows {
		authorities = append(authorities, domain.Authority{ID: row.ID, Name: row.Name})
	}

	return authorities, nil
}

func (GormAuthorities) Clear() error {
	return models.DB.Unscoped().Where("true").Delete(&models.Authority{}).Error
}

// GormUsers stores users in the relational database.
type GormUsers struct{}

func (GormUsers) Add(users ...*domain.User) error {
	return models.DB.Transaction(func(tx *gorm.DB) error {
		for _, user := range users {
			row := models.User{
				Email:       user.Email,
				AuthorityID: user.AuthorityID,
			}

			if err := tx.Create(&row).Error; err != nil {
				return err
			}

			user.ID = row.ID
			user.Email = row.Email
		}

		return nil
	})
}

func (GormUsers) GetByAuthority(authorityID uint) ([]domain.User, error) {
	var rows []models.User
	err := models.DB.Where(models.User{AuthorityID: authorityID}).Order("id ASC").Find(&rows).Error
	if err != nil {
		return nil, err
	}

	users := make([]domain.User, 0, len(rows))
	for _, row := range rows {
		users = append(users, domain.User{ID: row.ID, Email: row.Email, AuthorityID: row.AuthorityID})
	}

	return users, nil
}

func (GormUsers) Clear() error {
	return models.DB.Unscoped().Where("true").Delete(&models.User{}).Error
}
