// internal/model/user.go
package model

import (
	"time"

	"github.com/google/uuid"
)

// User is the account record. Credential issuance (signup/login/OTP) is owned
// by the auth service; this service only reads users and mutates block relations.
type User struct {
	UserID     uuid.UUID   `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"userId"`
	Email      string      `gorm:"type:varchar(255);not null;uniqueIndex" json:"email"`
	FullName   string      `gorm:"type:varchar(50);not null" json:"fullName"`
	Username   string      `gorm:"type:varchar(50);uniqueIndex" json:"username"`
	ProfilePic string      `gorm:"type:text" json:"profilePic,omitempty"`
	CreatedAt  time.Time   `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt  time.Time   `gorm:"autoUpdateTime" json:"updatedAt"`
	Blocked    []UserBlock `gorm:"foreignKey:BlockerID" json:"-"`
}

// UserBlock is one directed block relation: blocker no longer accepts
// messages from blocked.
type UserBlock struct {
	BlockID   uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"blockId"`
	BlockerID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_blocker_blocked" json:"blockerId"`
	BlockedID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_blocker_blocked" json:"blockedId"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

func (User) TableName() string {
	return "users"
}

func (UserBlock) TableName() string {
	return "user_blocks"
}
