package repository

import (
	"gorm.io/gorm"

	"github.com/ThanhPhat1080/indie-blog/models"
)

type UserRepository interface {
	Create(user *models.User, passwordHash string) error
	GetByID(id string) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	GetCredentialByUserID(userID string) (*models.Credential, error)
	UpdateProfile(id string, updates map[string]interface{}) error
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

// Create persists the user together with its credential record. When the
// credential insert fails the user row is removed again so a half-created
// account cannot linger.
func (r *userRepository) Create(user *models.User, passwordHash string) error {
	if err := r.db.Create(user).Error; err != nil {
		return err
	}

	credential := models.Credential{
		UserID: user.ID,
		Hash:   passwordHash,
	}
	if err := r.db.Create(&credential).Error; err != nil {
		r.db.Delete(user)
		return err
	}

	return nil
}

func (r *userRepository) GetByID(id string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("id = ?", id).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetByEmail(email string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetCredentialByUserID(userID string) (*models.Credential, error) {
	var credential models.Credential
	if err := r.db.Where("user_id = ?", userID).First(&credential).Error; err != nil {
		return nil, err
	}
	return &credential, nil
}

// UpdateProfile applies a merge-patch update map: callers put only the
// fields that should overwrite into the map, everything else keeps its
// stored value.
func (r *userRepository) UpdateProfile(id string, updates map[string]interface{}) error {
	return r.db.Model(&models.User{}).Where("id = ?", id).Updates(updates).Error
}
