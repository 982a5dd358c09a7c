// Package cli implements the interactive commands of the credkeeper client.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/credkeeper/internal/client/client"
	"github.com/dmitrijs2005/credkeeper/internal/client/config"
)

// APIClient is the subset of client.HTTPClient the commands use.
type APIClient interface {
	Signup(ctx context.Context, name, email string, password []byte) (*client.User, error)
	Login(ctx context.Context, email string, password []byte) (*client.LoginResult, error)
	Me(ctx context.Context, token string) (string, error)
}

var ErrUnknownCommand = errors.New("unknown command")

const usage = `Usage: client [-a server-url] [-t timeout] <command>

Commands:
  signup        create an account
  login         log in and print the access token
  me <token>    show the identity a token belongs to`

type App struct {
	config *config.Config
	api    APIClient
	reader *bufio.Reader
	out    io.Writer
}

func NewApp(c *config.Config) *App {
	return &App{
		config: c,
		api:    client.NewHTTPClient(c.ServerURL, c.RequestTimeout),
		reader: bufio.NewReader(os.Stdin),
		out:    os.Stdout,
	}
}

// Run dispatches args[0] to a command.
func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Fprintln(a.out, usage)
		return nil
	}

	switch args[0] {
	case "signup", "register":
		return a.Signup(ctx)
	case "login":
		return a.Login(ctx)
	case "me":
		if len(args) < 2 {
			return fmt.Errorf("usage: me <token>")
		}
		return a.Me(ctx, args[1])
	case "help", "-h", "--help":
		fmt.Fprintln(a.out, usage)
		return nil
	default:
		return fmt.Errorf("%w: %s", ErrUnknownCommand, args[0])
	}
}
