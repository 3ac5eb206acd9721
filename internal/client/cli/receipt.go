package cli

import (
	"context"
	"fmt"
	"os"
)

// Scan uploads a receipt photo and creates a new room from it. If path is
// empty the user is prompted for one. The new room becomes the current room.
func (a *App) Scan(ctx context.Context, path string) error {
	var err error

	if path == "" {
		path, err = getSimpleText(a.reader, "Enter path to the receipt image (jpg or png)", os.Stdout)
		if err != nil {
			return err
		}
	}

	room, err := a.roomService.CreateFromReceipt(ctx, path)
	if err != nil {
		reportError(err)
		return err
	}

	a.room = room
	fmt.Printf("Created room %s, share this code with the others\n", room.RoomCode)
	return a.renderRoom()
}
