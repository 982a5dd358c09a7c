package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/credkeeper/internal/client/client"
	"github.com/dmitrijs2005/credkeeper/internal/common"
)

// getSimpleText and getPassword point to the interactive input helpers and
// can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Signup prompts for name, email and password and creates the account.
// The password bytes are wiped before returning.
func (a *App) Signup(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Enter name", a.out)
	if err != nil {
		return err
	}

	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	user, err := a.api.Signup(ctx, name, email, password)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Account created, id %s\n", user.ID)
	return nil
}

// Login prompts for credentials and prints the access token on success.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	res, err := a.api.Login(ctx, email, password)
	if err != nil {
		if errors.Is(err, client.ErrInvalidCredentials) {
			fmt.Fprintln(a.out, "Invalid credentials")
		}
		return err
	}

	fmt.Fprintf(a.out, "Logged in as %s\n", res.UserID)
	fmt.Fprintln(a.out, res.Token)
	return nil
}

func (a *App) Me(ctx context.Context, token string) error {
	id, err := a.api.Me(ctx, token)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, id)
	return nil
}
