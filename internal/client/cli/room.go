package cli

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"sort"
	"strconv"

	"github.com/dmitrijs2005/splitroom/internal/client/client"
	"github.com/dmitrijs2005/splitroom/internal/client/models"
	"github.com/dmitrijs2005/splitroom/internal/client/services"
	"github.com/dmitrijs2005/splitroom/internal/client/split"
	"github.com/dmitrijs2005/splitroom/internal/common"
)

// reportError prints a friendly message for the well-known failure modes and
// logs anything else. An expired session sends the user back to 'login'.
func reportError(err error) {
	switch {
	case errors.Is(err, common.ErrAuthExpired):
		fmt.Println("Session expired, please log in again with 'login'")
	case errors.Is(err, client.ErrUnavailable):
		fmt.Println("Server unavailable, try again later")
	default:
		log.Printf("error: %v", err)
	}
}

// Open joins a room by its six-character code. If code is empty the user is
// prompted for one. The fetched room becomes the current room and is printed.
func (a *App) Open(ctx context.Context, code string) error {
	var err error

	if code == "" {
		code, err = getSimpleText(a.reader, "Enter room code", os.Stdout)
		if err != nil {
			return err
		}
	}

	room, err := a.roomService.Fetch(ctx, code)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidRoomCode):
			fmt.Println("Room codes are six letters or digits, e.g. AB12CD")
		case errors.Is(err, client.ErrRoomNotFound):
			fmt.Println("No room with that code")
		default:
			reportError(err)
		}
		return err
	}

	a.room = room
	return a.renderRoom()
}

// Refresh refetches the current room so selections made by other members
// become visible.
func (a *App) Refresh(ctx context.Context) error {
	if a.room == nil {
		fmt.Println("No room open. Use: open <code>")
		return nil
	}

	room, err := a.roomService.Fetch(ctx, a.room.RoomCode)
	if err != nil {
		reportError(err)
		return err
	}

	a.room = room
	return a.renderRoom()
}

// Select claims item number n (as displayed, 1-based) for the current user
// and rerenders the room from the server's post-mutation state.
func (a *App) Select(ctx context.Context, arg string) error {
	return a.mutateSelection(ctx, arg, a.roomService.Select)
}

// Deselect releases item number n for the current user.
func (a *App) Deselect(ctx context.Context, arg string) error {
	return a.mutateSelection(ctx, arg, a.roomService.Deselect)
}

func (a *App) mutateSelection(ctx context.Context, arg string,
	op func(ctx context.Context, code string, itemIndex int) (*models.Room, error)) error {

	if a.room == nil {
		fmt.Println("No room open. Use: open <code>")
		return nil
	}

	n, err := strconv.Atoi(arg)
	if err != nil || n < 1 || n > len(a.room.Items) {
		fmt.Printf("Item number must be between 1 and %d\n", len(a.room.Items))
		return nil
	}

	room, err := op(ctx, a.room.RoomCode, n-1)
	if err != nil {
		if errors.Is(err, client.ErrSelectionRejected) {
			fmt.Println("The room rejected that change, refreshing...")
			return a.Refresh(ctx)
		}
		reportError(err)
		return err
	}

	a.room = room
	return a.renderRoom()
}

// Total prints the current user's share of the open room.
func (a *App) Total(ctx context.Context) error {
	if a.room == nil {
		fmt.Println("No room open. Use: open <code>")
		return nil
	}

	share, err := split.UserShare(a.room.Items, a.room.Selections, a.room.CurrentUserID)
	if err != nil {
		reportError(err)
		return err
	}

	fmt.Printf("Your total: %s\n", split.FormatAmount(share))
	return nil
}

// Splits prints the server's per-user breakdown for the open room.
func (a *App) Splits(ctx context.Context) error {
	if a.room == nil {
		fmt.Println("No room open. Use: open <code>")
		return nil
	}

	splits, err := a.roomService.Splits(ctx, a.room.RoomCode)
	if err != nil {
		reportError(err)
		return err
	}

	users := make([]string, 0, len(splits))
	for user := range splits {
		users = append(users, user)
	}
	sort.Strings(users)

	for _, user := range users {
		s := splits[user]
		fmt.Printf("%-30s %10s  (items:", user, split.FormatAmount(s.Total))
		for _, idx := range s.Items {
			fmt.Printf(" %d", idx+1)
		}
		fmt.Println(")")
	}
	return nil
}

// Breakdown prints the per-user shares computed locally from the open room's
// current selections. Unlike Splits it does not call the server, so it
// reflects the last fetched state.
func (a *App) Breakdown(ctx context.Context) error {
	if a.room == nil {
		fmt.Println("No room open. Use: open <code>")
		return nil
	}

	breakdown, err := split.Breakdown(a.room.Items, a.room.Selections)
	if err != nil {
		reportError(err)
		return err
	}

	users := make([]string, 0, len(breakdown))
	for user := range breakdown {
		users = append(users, user)
	}
	sort.Strings(users)

	for _, user := range users {
		s := breakdown[user]
		fmt.Printf("%-30s %10s  (items:", user, split.FormatAmount(s.Total))
		for _, idx := range s.Items {
			fmt.Printf(" %d", idx+1)
		}
		fmt.Println(")")
	}
	return nil
}

// renderRoom prints the current room: each item with its price, how many
// people claimed it, the per-claimant share and a marker on the items the
// current user claimed, followed by the user's running total.
func (a *App) renderRoom() error {
	r := a.room

	fmt.Printf("Room %s (%d items)\n", r.RoomCode, len(r.Items))

	counts := split.Claimants(r.Selections)
	for i, item := range r.Items {
		share, err := split.ItemShare(r.Items, r.Selections, i)
		if err != nil {
			return err
		}

		marker := " "
		if r.SelectedByCurrentUser(i) {
			marker = "*"
		}

		fmt.Printf("%s %2d. %-30s %10s  claimed by %d  each: %s\n",
			marker, i+1, item.Name, item.Price, counts[i], split.FormatAmount(share))
	}

	yours, err := split.UserShare(r.Items, r.Selections, r.CurrentUserID)
	if err != nil {
		return err
	}
	total, err := split.GrandTotal(r.Items)
	if err != nil {
		return err
	}

	fmt.Printf("Your total: %s of %s\n", split.FormatAmount(yours), split.FormatAmount(total))
	return nil
}
