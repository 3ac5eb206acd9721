// Package models defines the data structures exchanged with the splitroom
// backend and shared between client layers.
package models

// Item is a single receipt line as extracted by the backend. Price keeps the
// backend's textual form; the decimal separator may be a comma or a period.
// Items are immutable once the room is created and are addressed by their
// position in the room's item list.
type Item struct {
	Name  string `json:"name"`
	Price string `json:"price"`
}

// Selection is a claim by one user that they consume one specific item.
// At most one selection exists per (user, item) pair at any time.
type Selection struct {
	UserID    string `json:"user_id"`
	ItemIndex int    `json:"item_index"`
}

// Room is the backend-owned state of one bill-splitting session. The client
// holds it as a read-through cache: it is discarded and refetched after every
// mutation, never merged locally.
type Room struct {
	RoomCode      string      `json:"roomCode"`
	Items         []Item      `json:"items"`
	Selections    []Selection `json:"userSelections"`
	CurrentUserID string      `json:"currentUserId"`
}

// SelectedByCurrentUser reports whether the requesting user has claimed the
// item at the given index.
func (r *Room) SelectedByCurrentUser(index int) bool {
	for _, s := range r.Selections {
		if s.UserID == r.CurrentUserID && s.ItemIndex == index {
			return true
		}
	}
	return false
}
