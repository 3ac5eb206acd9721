package cli

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/dmitrijs2005/splitroom/internal/client/client"
	"github.com/dmitrijs2005/splitroom/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Register prompts the user for a display name, email and password and
// attempts to create a new account via the AuthService. Registration does not
// log the user in; they run "login" afterwards.
//
// On success it prints "Success!" and returns nil. The password byte slice
// is securely wiped before returning. Any I/O or service error is returned
// unchanged.
func (a *App) Register(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Enter your name", os.Stdout)
	if err != nil {
		return err
	}

	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.authService.Register(ctx, name, email, password); err != nil {
		log.Printf("Registration unsuccessfull: %s", err.Error())
		return err
	}

	fmt.Println("Success! You can now log in.")
	return nil
}

// Login prompts the user for credentials and authenticates against the
// server. On success the token pair is persisted locally, so the session
// survives restarts. The password is securely wiped before returning.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.authService.Login(ctx, email, password); err != nil {
		if errors.Is(err, client.ErrUnavailable) {
			log.Printf("Server unavailable, try again later")
		} else {
			log.Printf("Login unsuccessfull: %s", err.Error())
		}
		return err
	}

	log.Printf("Login successfull")
	return nil
}

// Logout invalidates the server session (best effort) and clears the local
// tokens. The open room, if any, is forgotten.
func (a *App) Logout(ctx context.Context) error {
	if err := a.authService.Logout(ctx); err != nil {
		return err
	}
	a.room = nil
	fmt.Println("Logged out")
	return nil
}

// Whoami prints the identity embedded in the stored access token.
func (a *App) Whoami(ctx context.Context) error {
	claims, err := a.authService.Identity(ctx)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			fmt.Println("Not logged in")
			return nil
		}
		return err
	}
	fmt.Printf("%s (%s)\n", claims.Email, claims.UserID)
	return nil
}
