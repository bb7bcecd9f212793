package repository

import (
	"fmt"
	"testing"
	"time"

	"dm-service/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB opens an isolated in-memory sqlite database. The tables are
// created with raw SQL because the postgres column defaults in the model tags
// (gen_random_uuid) do not exist in sqlite.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	statements := []string{
		`CREATE TABLE users (
			user_id TEXT PRIMARY KEY,
			email TEXT NOT NULL,
			full_name TEXT NOT NULL,
			username TEXT NOT NULL,
			profile_pic TEXT,
			created_at DATETIME,
			updated_at DATETIME
		)`,
		`CREATE TABLE user_blocks (
			block_id TEXT PRIMARY KEY,
			blocker_id TEXT NOT NULL,
			blocked_id TEXT NOT NULL,
			created_at DATETIME,
			UNIQUE (blocker_id, blocked_id)
		)`,
		`CREATE TABLE messages (
			message_id TEXT PRIMARY KEY,
			sender_id TEXT NOT NULL,
			receiver_id TEXT NOT NULL,
			text TEXT,
			image TEXT,
			created_at DATETIME
		)`,
	}
	for _, stmt := range statements {
		require.NoError(t, db.Exec(stmt).Error)
	}

	return db
}

func seedUser(t *testing.T, db *gorm.DB, fullName, username string) *model.User {
	t.Helper()

	user := &model.User{
		UserID:   uuid.New(),
		Email:    username + "@example.com",
		FullName: fullName,
		Username: username,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func seedMessage(t *testing.T, db *gorm.DB, senderID, receiverID uuid.UUID, text string, at time.Time) *model.Message {
	t.Helper()

	message := &model.Message{
		MessageID:  uuid.New(),
		SenderID:   senderID,
		ReceiverID: receiverID,
		Text:       text,
		CreatedAt:  at,
	}
	require.NoError(t, db.Create(message).Error)
	return message
}
