package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/dmitrijs2005/gtstudio/internal/common"
	"github.com/dmitrijs2005/gtstudio/internal/models"
)

// getSimpleText, getMultiline, getMetadata and getPassword are indirections
// used to facilitate testing. They point to interactive input helpers and can
// be swapped in tests.
var (
	getSimpleText = GetSimpleText
	getMultiline  = GetMultiline
	getMetadata   = GetMetadata
	getPassword   = GetPassword
)

// Login prompts the user for credentials and tries to authenticate.
//
// Failures are reported to the user: a rejected pair shows
// "Invalid username or password", anything else a generic message. The
// password byte slice is securely wiped before returning.
func (a *App) Login(ctx context.Context) error {
	userName, err := getSimpleText(a.reader, "Enter username", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.auth.Login(ctx, userName, string(password)); err != nil {
		printlnFn(err.Error())
		return err
	}

	if user := a.auth.CurrentUser(); user != nil {
		printlnFn(fmt.Sprintf("Welcome, %s!", user.Username))
	}
	return nil
}

// Register prompts for account details and attempts to create a new account.
//
// On success it prints "Success!" and returns nil. The password byte slice
// is securely wiped before returning.
func (a *App) Register(ctx context.Context) error {
	userName, err := getSimpleText(a.reader, "Enter username", os.Stdout)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}
	fullName, err := getSimpleText(a.reader, "Enter full name", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	_, err = a.auth.Register(ctx, models.RegisterRequest{
		Username: userName,
		Email:    email,
		FullName: fullName,
		Password: string(password),
	})
	if err != nil {
		printlnFn(err.Error())
		return err
	}

	printlnFn("Success! You can now log in.")
	return nil
}

// Logout signs the user out and drops the collection selection.
func (a *App) Logout(ctx context.Context) error {
	if err := a.auth.Logout(ctx); err != nil {
		printlnFn(err.Error())
		return err
	}
	a.collections.ClearCurrentCollection()
	printlnFn("Logged out.")
	return nil
}

// Me prints the signed-in profile.
func (a *App) Me(ctx context.Context) error {
	user := a.auth.CurrentUser()
	if user == nil {
		printlnFn("Not logged in.")
		return nil
	}

	printlnFn(fmt.Sprintf("Username:  %s", user.Username))
	printlnFn(fmt.Sprintf("Full name: %s", user.FullName))
	printlnFn(fmt.Sprintf("Email:     %s", user.Email))
	printlnFn(fmt.Sprintf("Roles:     %s", strings.Join(user.Roles, ", ")))
	return nil
}
