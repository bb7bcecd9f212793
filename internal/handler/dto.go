// internal/handler/dto.go
package handler

import (
	"time"

	"dm-service/internal/model"
	"dm-service/internal/service"
)

// UserSummary는 다른 사용자에게 노출되는 공개 프로필입니다
type UserSummary struct {
	UserID     string `json:"userId" example:"550e8400-e29b-41d4-a716-446655440000"`
	FullName   string `json:"fullName" example:"Jane Doe"`
	Username   string `json:"username" example:"jane"`
	ProfilePic string `json:"profilePic,omitempty" example:"https://example.com/avatar.png"`
} // @name UserSummary

// ProfileResponse는 호출자 본인의 프로필 응답입니다 (차단 목록 포함)
type ProfileResponse struct {
	UserID       string    `json:"userId"`
	Email        string    `json:"email"`
	FullName     string    `json:"fullName"`
	Username     string    `json:"username"`
	ProfilePic   string    `json:"profilePic,omitempty"`
	BlockedUsers []string  `json:"blockedUsers"`
	CreatedAt    time.Time `json:"createdAt"`
} // @name ProfileResponse

func ToUserSummary(user *model.User) UserSummary {
	return UserSummary{
		UserID:     user.UserID.String(),
		FullName:   user.FullName,
		Username:   user.Username,
		ProfilePic: user.ProfilePic,
	}
}

func ToUserSummaries(users []model.User) []UserSummary {
	summaries := make([]UserSummary, len(users))
	for i, user := range users {
		summaries[i] = ToUserSummary(&user)
	}
	return summaries
}

func ToProfileResponse(profile *service.Profile) ProfileResponse {
	blocked := make([]string, len(profile.BlockedIDs))
	for i, id := range profile.BlockedIDs {
		blocked[i] = id.String()
	}

	return ProfileResponse{
		UserID:       profile.User.UserID.String(),
		Email:        profile.User.Email,
		FullName:     profile.User.FullName,
		Username:     profile.User.Username,
		ProfilePic:   profile.User.ProfilePic,
		BlockedUsers: blocked,
		CreatedAt:    profile.User.CreatedAt,
	}
}
