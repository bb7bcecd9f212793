// internal/service/user_service.go
package service

import (
	"errors"
	"fmt"

	"dm-service/internal/middleware"
	"dm-service/internal/model"
	"dm-service/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrSelfBlock    = errors.New("cannot block yourself")
)

// BlockNotifier pushes the one-shot blocked event to the blocked user's live
// connection, if they have one.
type BlockNotifier interface {
	NotifyBlocked(blockedID, byUserID uuid.UUID, byUsername string)
}

// Profile is a user together with their block list, the shape /auth/check and
// the block endpoints return.
type Profile struct {
	User       *model.User
	BlockedIDs []uuid.UUID
}

type UserService interface {
	GetProfile(userID uuid.UUID) (*Profile, error)
	GetUserByUsername(username string) (*model.User, error)
	ListContacts(userID uuid.UUID) ([]model.User, error)
	BlockUser(userID, blockUserID uuid.UUID) (*Profile, error)
	UnblockUser(userID, unblockUserID uuid.UUID) (*Profile, error)
}

type userService struct {
	userRepo repository.UserRepository
	notifier BlockNotifier
	logger   *zap.Logger
}

func NewUserService(userRepo repository.UserRepository, notifier BlockNotifier, logger *zap.Logger) UserService {
	return &userService{
		userRepo: userRepo,
		notifier: notifier,
		logger:   logger,
	}
}

func (s *userService) GetProfile(userID uuid.UUID) (*Profile, error) {
	user, err := s.userRepo.GetUserByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	blockedIDs, err := s.userRepo.GetBlockedIDs(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load block list: %w", err)
	}

	return &Profile{User: user, BlockedIDs: blockedIDs}, nil
}

func (s *userService) GetUserByUsername(username string) (*model.User, error) {
	user, err := s.userRepo.GetUserByUsername(username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *userService) ListContacts(userID uuid.UUID) ([]model.User, error) {
	return s.userRepo.ListContacts(userID)
}

func (s *userService) BlockUser(userID, blockUserID uuid.UUID) (*Profile, error) {
	if userID == blockUserID {
		return nil, ErrSelfBlock
	}

	blocker, err := s.userRepo.GetUserByID(userID)
	if err != nil {
		return nil, err
	}
	if _, err := s.userRepo.GetUserByID(blockUserID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if err := s.userRepo.Block(userID, blockUserID); err != nil {
		return nil, fmt.Errorf("failed to persist block: %w", err)
	}

	middleware.RecordUserBlocked()

	// Relation is durable; the push is a courtesy, dropped if they're offline
	if s.notifier != nil {
		s.notifier.NotifyBlocked(blockUserID, blocker.UserID, blocker.Username)
	}

	s.logger.Info("User blocked",
		zap.String("blockerId", userID.String()),
		zap.String("blockedId", blockUserID.String()))

	return s.GetProfile(userID)
}

func (s *userService) UnblockUser(userID, unblockUserID uuid.UUID) (*Profile, error) {
	if err := s.userRepo.Unblock(userID, unblockUserID); err != nil {
		return nil, fmt.Errorf("failed to remove block: %w", err)
	}

	s.logger.Info("User unblocked",
		zap.String("blockerId", userID.String()),
		zap.String("unblockedId", unblockUserID.String()))

	return s.GetProfile(userID)
}
