package cli

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
)

func (a *App) getStatus() string {
	ctx := context.Background()

	s := ""
	if claims, err := a.authService.Identity(ctx); err == nil {
		s = claims.Email
	}
	if a.room != nil {
		if s != "" {
			s += " "
		}
		s += a.room.RoomCode
	}
	if s != "" {
		s = fmt.Sprintf("(%s)", s)
	}
	return s
}

// Root starts the interactive loop on stdin. If no usable credential is
// stored the user is asked to log in first.
func (a *App) Root(ctx context.Context) {

	log.Println("Welcome to splitroom CLI (type 'help' for commands)")
	scanner := bufio.NewScanner(os.Stdin)

	if !a.isLoggedIn() {
		a.Login(ctx)
	}

	runREPL(ctx, a, a.getStatus, scanner)
}
