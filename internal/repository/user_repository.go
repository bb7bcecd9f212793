// internal/repository/user_repository.go
package repository

import (
	"dm-service/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UserRepository interface {
	GetUserByID(userID uuid.UUID) (*model.User, error)
	GetUserByUsername(username string) (*model.User, error)
	GetUsersByIDs(userIDs []uuid.UUID) ([]model.User, error)
	ListContacts(excludeUserID uuid.UUID) ([]model.User, error)

	Block(blockerID, blockedID uuid.UUID) error
	Unblock(blockerID, blockedID uuid.UUID) error
	GetBlockedIDs(blockerID uuid.UUID) ([]uuid.UUID, error)
	IsBlockedEither(userID, otherID uuid.UUID) (bool, error)
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) GetUserByID(userID uuid.UUID) (*model.User, error) {
	var user model.User
	err := r.db.First(&user, "user_id = ?", userID).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetUserByUsername(username string) (*model.User, error) {
	var user model.User
	err := r.db.First(&user, "username = ?", username).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetUsersByIDs(userIDs []uuid.UUID) ([]model.User, error) {
	if len(userIDs) == 0 {
		return []model.User{}, nil
	}

	var users []model.User
	err := r.db.Where("user_id IN ?", userIDs).Find(&users).Error
	return users, err
}

func (r *userRepository) ListContacts(excludeUserID uuid.UUID) ([]model.User, error) {
	var users []model.User
	err := r.db.Where("user_id != ?", excludeUserID).
		Order("full_name ASC").
		Find(&users).Error

	return users, err
}

func (r *userRepository) Block(blockerID, blockedID uuid.UUID) error {
	block := &model.UserBlock{
		BlockID:   uuid.New(),
		BlockerID: blockerID,
		BlockedID: blockedID,
	}

	// Blocking an already-blocked user is a no-op
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "blocker_id"}, {Name: "blocked_id"}},
		DoNothing: true,
	}).Create(block).Error
}

func (r *userRepository) Unblock(blockerID, blockedID uuid.UUID) error {
	return r.db.
		Where("blocker_id = ? AND blocked_id = ?", blockerID, blockedID).
		Delete(&model.UserBlock{}).Error
}

func (r *userRepository) GetBlockedIDs(blockerID uuid.UUID) ([]uuid.UUID, error) {
	var blocks []model.UserBlock
	err := r.db.Where("blocker_id = ?", blockerID).Find(&blocks).Error
	if err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, 0, len(blocks))
	for _, b := range blocks {
		ids = append(ids, b.BlockedID)
	}
	return ids, nil
}

// IsBlockedEither reports whether a block relation exists between the two
// users in either direction.
func (r *userRepository) IsBlockedEither(userID, otherID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.Model(&model.UserBlock{}).
		Where("(blocker_id = ? AND blocked_id = ?) OR (blocker_id = ? AND blocked_id = ?)",
			userID, otherID, otherID, userID).
		Count(&count).Error

	return count > 0, err
}
