package services

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/splitroom/internal/client/models"
)

// ---- fake client ----

// fakeClient implements client.Client for service unit tests.
type fakeClient struct {
	LoginPair *models.TokenPair
	LoginErr  error

	RegisterErr error
	LogoutErr   error

	RefreshRet string
	RefreshErr error

	GetRoomRet *models.Room
	GetRoomErr error

	SelectErr   error
	DeselectErr error

	SplitsRet map[string]models.UserSplit
	SplitsErr error

	CreateRoomRet *models.Room
	CreateRoomErr error

	// argument capture
	LastLoginEmail    string
	LastRegisterName  string
	LastRoomCode      string
	LastItemIndex     int
	LastImage         []byte
	LastContentType   string
	GetRoomCalls      int
	SelectCalls       int
	DeselectCalls     int
	LogoutCalls       int
}

func (f *fakeClient) Login(ctx context.Context, email, password string) (*models.TokenPair, error) {
	f.LastLoginEmail = email
	return f.LoginPair, f.LoginErr
}

func (f *fakeClient) Register(ctx context.Context, name, email, password string) error {
	f.LastRegisterName = name
	return f.RegisterErr
}

func (f *fakeClient) RefreshToken(ctx context.Context, refreshToken string) (string, error) {
	return f.RefreshRet, f.RefreshErr
}

func (f *fakeClient) Logout(ctx context.Context) error {
	f.LogoutCalls++
	return f.LogoutErr
}

func (f *fakeClient) CreateRoom(ctx context.Context, image []byte, contentType string) (*models.Room, error) {
	f.LastImage = append([]byte(nil), image...)
	f.LastContentType = contentType
	return f.CreateRoomRet, f.CreateRoomErr
}

func (f *fakeClient) GetRoom(ctx context.Context, code string) (*models.Room, error) {
	f.GetRoomCalls++
	f.LastRoomCode = code
	return f.GetRoomRet, f.GetRoomErr
}

func (f *fakeClient) SelectItem(ctx context.Context, code string, itemIndex int) error {
	f.SelectCalls++
	f.LastRoomCode = code
	f.LastItemIndex = itemIndex
	return f.SelectErr
}

func (f *fakeClient) DeselectItem(ctx context.Context, code string, itemIndex int) error {
	f.DeselectCalls++
	f.LastRoomCode = code
	f.LastItemIndex = itemIndex
	return f.DeselectErr
}

func (f *fakeClient) GetSplits(ctx context.Context, code string) (map[string]models.UserSplit, error) {
	f.LastRoomCode = code
	return f.SplitsRet, f.SplitsErr
}

// ---- NormalizeRoomCode ----

func TestNormalizeRoomCode(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    string
		wantErr bool
	}{
		{name: "lowercase normalized", in: "ab12cd", want: "AB12CD"},
		{name: "already canonical", in: "AB12CD", want: "AB12CD"},
		{name: "surrounding spaces", in: " ab12cd ", want: "AB12CD"},
		{name: "too short", in: "ab12", wantErr: true},
		{name: "too long", in: "ab12cd9", wantErr: true},
		{name: "punctuation", in: "ab-2cd", wantErr: true},
		{name: "empty", in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeRoomCode(tt.in)
			if tt.wantErr {
				require.True(t, errors.Is(err, ErrInvalidRoomCode))
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

// ---- RoomService ----

func TestFetch_NormalizesCode(t *testing.T) {
	f := &fakeClient{GetRoomRet: &models.Room{RoomCode: "AB12CD"}}
	s := NewRoomService(f)

	room, err := s.Fetch(context.Background(), "ab12cd")
	require.NoError(t, err)
	require.Equal(t, "AB12CD", room.RoomCode)
	require.Equal(t, "AB12CD", f.LastRoomCode)
}

func TestFetch_InvalidCodeNeverHitsBackend(t *testing.T) {
	f := &fakeClient{}
	s := NewRoomService(f)

	_, err := s.Fetch(context.Background(), "nope")
	require.True(t, errors.Is(err, ErrInvalidRoomCode))
	require.Zero(t, f.GetRoomCalls)
}

func TestSelect_MutatesThenRefetches(t *testing.T) {
	f := &fakeClient{GetRoomRet: &models.Room{
		RoomCode:   "AB12CD",
		Selections: []models.Selection{{UserID: "u1", ItemIndex: 3}},
	}}
	s := NewRoomService(f)

	room, err := s.Select(context.Background(), "ab12cd", 3)
	require.NoError(t, err)
	require.Equal(t, 1, f.SelectCalls)
	require.Equal(t, 1, f.GetRoomCalls, "mutation must be followed by a refetch")
	require.Equal(t, 3, f.LastItemIndex)
	require.Len(t, room.Selections, 1)
}

func TestSelect_MutationErrorSkipsRefetch(t *testing.T) {
	f := &fakeClient{SelectErr: errors.New("rejected")}
	s := NewRoomService(f)

	_, err := s.Select(context.Background(), "AB12CD", 1)
	require.Error(t, err)
	require.Zero(t, f.GetRoomCalls)
}

func TestDeselect_MutatesThenRefetches(t *testing.T) {
	f := &fakeClient{GetRoomRet: &models.Room{RoomCode: "AB12CD"}}
	s := NewRoomService(f)

	_, err := s.Deselect(context.Background(), "AB12CD", 0)
	require.NoError(t, err)
	require.Equal(t, 1, f.DeselectCalls)
	require.Equal(t, 1, f.GetRoomCalls)
}

func TestSplits_DelegatesWithNormalizedCode(t *testing.T) {
	f := &fakeClient{SplitsRet: map[string]models.UserSplit{
		"alice@example.org": {Total: 13, Items: []int{0, 1}},
	}}
	s := NewRoomService(f)

	splits, err := s.Splits(context.Background(), "ab12cd")
	require.NoError(t, err)
	require.Equal(t, "AB12CD", f.LastRoomCode)
	require.Len(t, splits, 1)
}

func TestCreateFromReceipt(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "receipt.jpg")
	require.NoError(t, os.WriteFile(path, []byte{0xff, 0xd8}, 0o600))

	f := &fakeClient{CreateRoomRet: &models.Room{RoomCode: "NEWRM1"}}
	s := NewRoomService(f)

	room, err := s.CreateFromReceipt(context.Background(), path)
	require.NoError(t, err)
	require.Equal(t, "NEWRM1", room.RoomCode)
	require.Equal(t, []byte{0xff, 0xd8}, f.LastImage)
	require.Equal(t, "image/jpeg", f.LastContentType)
}

func TestCreateFromReceipt_UnsupportedFile(t *testing.T) {
	f := &fakeClient{}
	s := NewRoomService(f)

	_, err := s.CreateFromReceipt(context.Background(), "receipt.bmp")
	require.Error(t, err)
	require.Nil(t, f.LastImage)
}
