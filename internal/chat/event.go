package chat

import "time"

// Event is one decoded chat message from the live stream.
type Event struct {
	ID            string    `json:"id"`
	ParticipantID string    `json:"participantId"`
	DisplayName   string    `json:"displayName"`
	AvatarURL     string    `json:"avatarUrl"`
	Text          string    `json:"text"`
	ReceivedAt    time.Time `json:"receivedAt"`
}
