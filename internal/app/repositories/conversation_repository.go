package repositories

import (
	"sort"
	"time"

	"github.com/rct/connect/internal/app/models"
	"github.com/rct/connect/internal/store"
)

// ConversationRepository handles direct-message threads, their participants
// and messages.
type ConversationRepository struct {
	store *store.Store
}

// NewConversationRepository creates a new ConversationRepository
func NewConversationRepository(s *store.Store) *ConversationRepository {
	return &ConversationRepository{store: s}
}

// ConversationSummary is the header data of one thread from one user's point
// of view, assembled in a single pass.
type ConversationSummary struct {
	ID             string
	ParticipantIDs []string
	LastMessage    *models.Message
	UnreadCount    int
}

// IDsByUser returns the conversation IDs the user participates in.
func (r *ConversationRepository) IDsByUser(userID string) []string {
	var out []string
	r.store.View(func(d *store.Data) {
		for _, cp := range d.ConversationParticipants {
			if cp.UserID == userID {
				out = append(out, cp.ConversationID)
			}
		}
	})
	return out
}

// IsParticipant reports whether the user belongs to the conversation.
func (r *ConversationRepository) IsParticipant(conversationID, userID string) bool {
	found := false
	r.store.View(func(d *store.Data) {
		for _, cp := range d.ConversationParticipants {
			if cp.ConversationID == conversationID && cp.UserID == userID {
				found = true
				return
			}
		}
	})
	return found
}

// Summary assembles the header of one conversation for the given viewer, or
// ErrNotFound when the conversation does not exist.
func (r *ConversationRepository) Summary(conversationID, viewerID string) (*ConversationSummary, error) {
	var summary *ConversationSummary
	r.store.View(func(d *store.Data) {
		exists := false
		for i := range d.Conversations {
			if d.Conversations[i].ID == conversationID {
				exists = true
				break
			}
		}
		if !exists {
			return
		}

		s := &ConversationSummary{ID: conversationID}
		for _, cp := range d.ConversationParticipants {
			if cp.ConversationID == conversationID {
				s.ParticipantIDs = append(s.ParticipantIDs, cp.UserID)
			}
		}

		for i := range d.Messages {
			m := d.Messages[i]
			if m.ConversationID != conversationID {
				continue
			}
			if s.LastMessage == nil || m.CreatedAt.After(s.LastMessage.CreatedAt) {
				last := m
				s.LastMessage = &last
			}
			if m.SenderID != viewerID && !m.Read {
				s.UnreadCount++
			}
		}
		summary = s
	})
	if summary == nil {
		return nil, ErrNotFound
	}
	return summary, nil
}

// FindDirect looks for an existing two-party conversation between the user
// and other. Conversation creation is idempotent per unordered pair, so this
// runs before every create.
func (r *ConversationRepository) FindDirect(userID, otherID string) (string, bool) {
	var conversationID string
	r.store.View(func(d *store.Data) {
		members := make(map[string][]string)
		for _, cp := range d.ConversationParticipants {
			members[cp.ConversationID] = append(members[cp.ConversationID], cp.UserID)
		}
		for id, ids := range members {
			if len(ids) != 2 {
				continue
			}
			if (ids[0] == userID && ids[1] == otherID) || (ids[0] == otherID && ids[1] == userID) {
				conversationID = id
				return
			}
		}
	})
	return conversationID, conversationID != ""
}

// Create stores a conversation with its participant records.
func (r *ConversationRepository) Create(conversation models.Conversation, userIDs []string) error {
	return r.store.Update(func(d *store.Data) error {
		d.Conversations = append(d.Conversations, conversation)
		for _, uid := range userIDs {
			d.ConversationParticipants = append(d.ConversationParticipants, models.ConversationParticipant{
				ConversationID: conversation.ID,
				UserID:         uid,
				JoinedAt:       conversation.CreatedAt,
			})
		}
		return nil
	})
}

// Messages returns a conversation's messages newest first, optionally only
// those before a given instant, capped at limit.
func (r *ConversationRepository) Messages(conversationID string, before *time.Time, limit int) []models.Message {
	var out []models.Message
	r.store.View(func(d *store.Data) {
		for i := range d.Messages {
			m := d.Messages[i]
			if m.ConversationID != conversationID {
				continue
			}
			if before != nil && !m.CreatedAt.Before(*before) {
				continue
			}
			out = append(out, m)
		}
	})
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out
}

// AddMessage appends a message and bumps the conversation's updated_at.
func (r *ConversationRepository) AddMessage(message models.Message) error {
	return r.store.Update(func(d *store.Data) error {
		idx := -1
		for i := range d.Conversations {
			if d.Conversations[i].ID == message.ConversationID {
				idx = i
				break
			}
		}
		if idx == -1 {
			return ErrNotFound
		}
		d.Messages = append(d.Messages, message)
		d.Conversations[idx].UpdatedAt = message.CreatedAt
		return nil
	})
}

// MarkIncomingRead marks every message sent to the viewer in this
// conversation as read. Persistence is fire and forget: this runs on a read
// path and the response does not wait on the disk.
func (r *ConversationRepository) MarkIncomingRead(conversationID, viewerID string) error {
	return r.store.UpdateAsync(func(d *store.Data) error {
		for i := range d.Messages {
			m := &d.Messages[i]
			if m.ConversationID == conversationID && m.SenderID != viewerID && !m.Read {
				m.Read = true
			}
		}
		return nil
	})
}

// GetMessage returns a copy of one message, or ErrNotFound.
func (r *ConversationRepository) GetMessage(messageID string) (*models.Message, error) {
	var found *models.Message
	r.store.View(func(d *store.Data) {
		for i := range d.Messages {
			if d.Messages[i].ID == messageID {
				m := d.Messages[i]
				found = &m
				return
			}
		}
	})
	if found == nil {
		return nil, ErrNotFound
	}
	return found, nil
}

// MarkMessageRead marks a single message read.
func (r *ConversationRepository) MarkMessageRead(messageID string) error {
	return r.store.Update(func(d *store.Data) error {
		for i := range d.Messages {
			if d.Messages[i].ID == messageID {
				d.Messages[i].Read = true
				return nil
			}
		}
		return ErrNotFound
	})
}

// Leave removes the user from the conversation. When nobody remains, the
// conversation and its messages are deleted in the same mutation. Returns
// ErrNotFound when the user was not a participant.
func (r *ConversationRepository) Leave(conversationID, userID string) error {
	return r.store.Update(func(d *store.Data) error {
		idx := -1
		for i, cp := range d.ConversationParticipants {
			if cp.ConversationID == conversationID && cp.UserID == userID {
				idx = i
				break
			}
		}
		if idx == -1 {
			return ErrNotFound
		}
		d.ConversationParticipants = append(d.ConversationParticipants[:idx], d.ConversationParticipants[idx+1:]...)

		remaining := 0
		for _, cp := range d.ConversationParticipants {
			if cp.ConversationID == conversationID {
				remaining++
			}
		}
		if remaining > 0 {
			return nil
		}

		keptConversations := d.Conversations[:0]
		for _, c := range d.Conversations {
			if c.ID != conversationID {
				keptConversations = append(keptConversations, c)
			}
		}
		d.Conversations = keptConversations

		keptMessages := d.Messages[:0]
		for _, m := range d.Messages {
			if m.ConversationID != conversationID {
				keptMessages = append(keptMessages, m)
			}
		}
		d.Messages = keptMessages
		return nil
	})
}
