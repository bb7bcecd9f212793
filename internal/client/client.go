// internal/client/client.go

// Package client is the Go client for the DM service: a thin HTTP API client,
// a websocket listener for push events, and an optimistic outbox that mirrors
// how the web client renders an outgoing message before the server confirms it.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Message mirrors the server's wire representation.
type Message struct {
	MessageID  string    `json:"messageId"`
	SenderID   string    `json:"senderId"`
	ReceiverID string    `json:"receiverId"`
	Text       string    `json:"text,omitempty"`
	Image      *string   `json:"image,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

type UserSummary struct {
	UserID     string `json:"userId"`
	FullName   string `json:"fullName"`
	Username   string `json:"username"`
	ProfilePic string `json:"profilePic,omitempty"`
}

type Profile struct {
	UserID       string   `json:"userId"`
	Email        string   `json:"email"`
	FullName     string   `json:"fullName"`
	Username     string   `json:"username"`
	ProfilePic   string   `json:"profilePic,omitempty"`
	BlockedUsers []string `json:"blockedUsers"`
}

type sendMessageRequest struct {
	Text  string  `json:"text,omitempty"`
	Image *string `json:"image,omitempty"`
}

type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

func New(baseURL, token string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		token:   token,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

func (c *Client) do(ctx context.Context, method, path string, body interface{}, out interface{}) error {
	var reader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		reader = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.token))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("request failed: status=%d, body=%s", resp.StatusCode, string(respBody))
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// SendMessage persists a message to receiverID and returns the confirmed
// record with its server-assigned identifier and timestamp.
func (c *Client) SendMessage(ctx context.Context, receiverID, text string, image *string) (*Message, error) {
	var message Message
	err := c.do(ctx, "POST", "/api/messages/send/"+receiverID, sendMessageRequest{Text: text, Image: image}, &message)
	if err != nil {
		return nil, err
	}
	return &message, nil
}

// GetMessages returns the conversation with partnerID, oldest first.
func (c *Client) GetMessages(ctx context.Context, partnerID string) ([]Message, error) {
	var messages []Message
	err := c.do(ctx, "GET", "/api/messages/"+partnerID, nil, &messages)
	return messages, err
}

// GetChatPartners returns the users the caller has conversations with.
func (c *Client) GetChatPartners(ctx context.Context) ([]UserSummary, error) {
	var partners []UserSummary
	err := c.do(ctx, "GET", "/api/messages/chats", nil, &partners)
	return partners, err
}

// GetContacts returns all other users.
func (c *Client) GetContacts(ctx context.Context) ([]UserSummary, error) {
	var contacts []UserSummary
	err := c.do(ctx, "GET", "/api/messages/contacts", nil, &contacts)
	return contacts, err
}

// Check returns the caller's own profile.
func (c *Client) Check(ctx context.Context) (*Profile, error) {
	var profile Profile
	err := c.do(ctx, "GET", "/api/auth/check", nil, &profile)
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// BlockUser blocks the given user and returns the updated profile.
func (c *Client) BlockUser(ctx context.Context, blockUserID string) (*Profile, error) {
	var resp struct {
		User Profile `json:"user"`
	}
	err := c.do(ctx, "POST", "/api/auth/block", map[string]string{"blockUserId": blockUserID}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp.User, nil
}

// UnblockUser removes a block and returns the updated profile.
func (c *Client) UnblockUser(ctx context.Context, unblockUserID string) (*Profile, error) {
	var resp struct {
		User Profile `json:"user"`
	}
	err := c.do(ctx, "POST", "/api/auth/unblock", map[string]string{"unblockUserId": unblockUserID}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp.User, nil
}
