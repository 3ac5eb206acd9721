package cli

import (
	"bufio"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/splitroom/internal/client/models"
	"github.com/dmitrijs2005/splitroom/internal/client/services"
)

func sampleRoom() *models.Room {
	return &models.Room{
		RoomCode: "AB12CD",
		Items: []models.Item{
			{Name: "Bread", Price: "10,00"},
			{Name: "Milk", Price: "6,00"},
		},
		Selections: []models.Selection{
			{UserID: "u1", ItemIndex: 0},
			{UserID: "u2", ItemIndex: 0},
		},
		CurrentUserID: "u1",
	}
}

func TestOpen_SetsCurrentRoom(t *testing.T) {
	f := &fakeRooms{room: sampleRoom()}
	a := &App{roomService: f}

	require.NoError(t, a.Open(context.Background(), "ab12cd"))
	require.Equal(t, "ab12cd", f.fetchCode)
	require.NotNil(t, a.room)
	require.Equal(t, "AB12CD", a.room.RoomCode)
}

func TestOpen_PromptsWhenCodeMissing(t *testing.T) {
	origST := getSimpleText
	getSimpleText = func(_ *bufio.Reader, _ string, _ io.Writer) (string, error) {
		return "ab12cd", nil
	}
	t.Cleanup(func() { getSimpleText = origST })

	f := &fakeRooms{room: sampleRoom()}
	a := &App{roomService: f}

	require.NoError(t, a.Open(context.Background(), ""))
	require.Equal(t, "ab12cd", f.fetchCode)
}

func TestOpen_InvalidCode(t *testing.T) {
	f := &fakeRooms{fetchErr: services.ErrInvalidRoomCode}
	a := &App{roomService: f}

	err := a.Open(context.Background(), "zz")
	require.Error(t, err)
	require.Nil(t, a.room)
}

func TestSelect_ConvertsToZeroBasedIndex(t *testing.T) {
	f := &fakeRooms{room: sampleRoom()}
	a := &App{roomService: f, room: sampleRoom()}

	require.NoError(t, a.Select(context.Background(), "2"))
	require.Equal(t, 1, f.selectCalls)
	require.Equal(t, 1, f.selectedIdx)
}

func TestSelect_OutOfRangeNumberNeverHitsBackend(t *testing.T) {
	f := &fakeRooms{}
	a := &App{roomService: f, room: sampleRoom()}

	require.NoError(t, a.Select(context.Background(), "9"))
	require.NoError(t, a.Select(context.Background(), "0"))
	require.NoError(t, a.Select(context.Background(), "abc"))
	require.Zero(t, f.selectCalls)
}

func TestSelect_NoOpenRoom(t *testing.T) {
	f := &fakeRooms{}
	a := &App{roomService: f}

	require.NoError(t, a.Select(context.Background(), "1"))
	require.Zero(t, f.selectCalls)
}

func TestDeselect_Delegates(t *testing.T) {
	f := &fakeRooms{room: sampleRoom()}
	a := &App{roomService: f, room: sampleRoom()}

	require.NoError(t, a.Deselect(context.Background(), "1"))
	require.Equal(t, 1, f.deselectCall)
	require.Equal(t, 0, f.selectedIdx)
}

func TestRefresh_ReplacesRoomState(t *testing.T) {
	updated := sampleRoom()
	updated.Selections = append(updated.Selections, models.Selection{UserID: "u3", ItemIndex: 1})

	f := &fakeRooms{room: updated}
	a := &App{roomService: f, room: sampleRoom()}

	require.NoError(t, a.Refresh(context.Background()))
	require.Equal(t, 1, f.fetchCalls)
	require.Len(t, a.room.Selections, 3)
}

func TestRefresh_NoOpenRoom(t *testing.T) {
	f := &fakeRooms{}
	a := &App{roomService: f}

	require.NoError(t, a.Refresh(context.Background()))
	require.Zero(t, f.fetchCalls)
}

func TestScan_CreatesAndOpensRoom(t *testing.T) {
	f := &fakeRooms{room: sampleRoom()}
	a := &App{roomService: f}

	require.NoError(t, a.Scan(context.Background(), "receipt.jpg"))
	require.Equal(t, "receipt.jpg", f.scannedPath)
	require.NotNil(t, a.room)
}

func TestScan_ErrorLeavesNoRoom(t *testing.T) {
	f := &fakeRooms{scanErr: errors.New("upload failed")}
	a := &App{roomService: f}

	require.Error(t, a.Scan(context.Background(), "receipt.jpg"))
	require.Nil(t, a.room)
}

func TestTotal_PrintsUserShare(t *testing.T) {
	a := &App{room: sampleRoom()}
	require.NoError(t, a.Total(context.Background()))
}

func TestSplits_NoOpenRoom(t *testing.T) {
	f := &fakeRooms{}
	a := &App{roomService: f}
	require.NoError(t, a.Splits(context.Background()))
}

func TestBreakdown_LocalComputation(t *testing.T) {
	a := &App{room: sampleRoom()}
	require.NoError(t, a.Breakdown(context.Background()))
}

func TestBreakdown_NoOpenRoom(t *testing.T) {
	a := &App{}
	require.NoError(t, a.Breakdown(context.Background()))
}

func TestSplits_PrintsBreakdown(t *testing.T) {
	f := &fakeRooms{splits: map[string]models.UserSplit{
		"alice@example.org": {Total: 5, Items: []int{0}},
		"bob@example.org":   {Total: 11, Items: []int{0, 1}},
	}}
	a := &App{roomService: f, room: sampleRoom()}
	require.NoError(t, a.Splits(context.Background()))
}
