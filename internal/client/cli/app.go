package cli

import (
	"bufio"
	"context"
	"log"
	"os"
	"path/filepath"

	"github.com/dmitrijs2005/splitroom/internal/client/client"
	"github.com/dmitrijs2005/splitroom/internal/client/config"
	"github.com/dmitrijs2005/splitroom/internal/client/models"
	"github.com/dmitrijs2005/splitroom/internal/client/services"
	"github.com/dmitrijs2005/splitroom/internal/client/session"
	"github.com/dmitrijs2005/splitroom/internal/filex"
	"github.com/dmitrijs2005/splitroom/internal/logging"

	_ "modernc.org/sqlite"
)

// App holds the wired services and the interactive state of the CLI: the
// currently open room (if any) and the shared stdin reader.
type App struct {
	config      *config.Config
	authService services.AuthService
	roomService services.RoomService
	room        *models.Room
	reader      *bufio.Reader
}

func NewApp(c *config.Config, logger logging.Logger) (*App, error) {

	ctx := context.Background()

	dbPath := c.DatabasePath
	// Bare filenames go under ./data instead of wherever the binary is run.
	if !filepath.IsAbs(dbPath) && filepath.Dir(dbPath) == "." {
		dir, err := filex.EnsureSubdDir("data")
		if err != nil {
			return nil, err
		}
		dbPath = filepath.Join(dir, dbPath)
	}

	db, err := client.InitDatabase(ctx, dbPath)
	if err != nil {
		log.Printf("error initializing database: %s", err.Error())
		return nil, err
	}

	sess := session.New(db)
	apiClient := client.NewHTTPClient(c.ServerBaseURL, sess, c.RequestTimeout, logger)

	as := services.NewAuthService(apiClient, sess, logger)
	rs := services.NewRoomService(apiClient)

	return &App{config: c, authService: as, roomService: rs, reader: bufio.NewReader(os.Stdin)}, nil
}

func (a *App) Run(ctx context.Context) {
	a.Root(ctx)
}

func (a *App) isLoggedIn() bool {
	return a.authService.Authenticated(context.Background())
}

func (a *App) hasOpenRoom() bool {
	return a.room != nil
}
