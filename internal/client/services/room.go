package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/splitroom/internal/client/client"
	"github.com/dmitrijs2005/splitroom/internal/client/models"
	"github.com/dmitrijs2005/splitroom/internal/filex"
)

// ErrInvalidRoomCode reports a room code that is not 6 alphanumeric
// characters.
var ErrInvalidRoomCode = errors.New("invalid room code")

const roomCodeLength = 6

// NormalizeRoomCode validates a user-entered room code and normalizes it to
// the canonical uppercase form used on the wire.
func NormalizeRoomCode(code string) (string, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if len(code) != roomCodeLength {
		return "", fmt.Errorf("%w: %q", ErrInvalidRoomCode, code)
	}
	for _, r := range code {
		if (r < 'A' || r > 'Z') && (r < '0' || r > '9') {
			return "", fmt.Errorf("%w: %q", ErrInvalidRoomCode, code)
		}
	}
	return code, nil
}

// RoomService defines the room interaction operations for the CLI. The room
// state it returns is always freshly fetched from the backend: after a
// selection mutation the room is refetched rather than patched locally,
// because other participants mutate the same selection set concurrently and
// only the backend knows the authoritative result.
type RoomService interface {
	Fetch(ctx context.Context, code string) (*models.Room, error)
	Select(ctx context.Context, code string, itemIndex int) (*models.Room, error)
	Deselect(ctx context.Context, code string, itemIndex int) (*models.Room, error)
	Splits(ctx context.Context, code string) (map[string]models.UserSplit, error)
	CreateFromReceipt(ctx context.Context, imagePath string) (*models.Room, error)
}

type roomService struct {
	client client.Client
}

// NewRoomService constructs a RoomService bound to the given API client.
func NewRoomService(client client.Client) RoomService {
	return &roomService{client: client}
}

func (s *roomService) Fetch(ctx context.Context, code string) (*models.Room, error) {
	normalized, err := NormalizeRoomCode(code)
	if err != nil {
		return nil, err
	}
	return s.client.GetRoom(ctx, normalized)
}

func (s *roomService) Select(ctx context.Context, code string, itemIndex int) (*models.Room, error) {
	normalized, err := NormalizeRoomCode(code)
	if err != nil {
		return nil, err
	}
	if err := s.client.SelectItem(ctx, normalized, itemIndex); err != nil {
		return nil, err
	}
	return s.client.GetRoom(ctx, normalized)
}

func (s *roomService) Deselect(ctx context.Context, code string, itemIndex int) (*models.Room, error) {
	normalized, err := NormalizeRoomCode(code)
	if err != nil {
		return nil, err
	}
	if err := s.client.DeselectItem(ctx, normalized, itemIndex); err != nil {
		return nil, err
	}
	return s.client.GetRoom(ctx, normalized)
}

func (s *roomService) Splits(ctx context.Context, code string) (map[string]models.UserSplit, error) {
	normalized, err := NormalizeRoomCode(code)
	if err != nil {
		return nil, err
	}
	return s.client.GetSplits(ctx, normalized)
}

// CreateFromReceipt uploads a receipt image; the backend extracts the line
// items and creates the room.
func (s *roomService) CreateFromReceipt(ctx context.Context, imagePath string) (*models.Room, error) {
	data, contentType, err := filex.ReadImage(imagePath)
	if err != nil {
		return nil, err
	}
	return s.client.CreateRoom(ctx, data, contentType)
}
