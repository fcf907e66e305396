// Package keyring keeps the PostgreSQL connection string in the OS keyring so
// the config file never has to carry a password.
package keyring

import (
	"errors"
	"fmt"

	gokeyring "github.com/zalando/go-keyring"

	"github.com/julianstephens/projcal/internal/constants"
)

var (
	ErrNotFound           = errors.New("credentials not found in keyring")
	ErrKeyringUnavailable = errors.New("OS keyring is not available")
)

// Credentials addresses one keyring entry under the projcal service.
type Credentials struct {
	user string
}

// New returns the entry for user, or the default connection entry when user is empty.
func New(user string) Credentials {
	if user == "" {
		user = constants.DefaultKeyringUser
	}
	return Credentials{user: user}
}

func (c Credentials) User() string { return c.user }

func (c Credentials) Get() (string, error) {
	secret, err := gokeyring.Get(constants.AppName, c.user)
	switch {
	case errors.Is(err, gokeyring.ErrNotFound):
		return "", ErrNotFound
	case err != nil:
		return "", fmt.Errorf("%w: %v", ErrKeyringUnavailable, err)
	}
	return secret, nil
}

func (c Credentials) Set(secret string) error {
	if secret == "" {
		return errors.New("connection string cannot be empty")
	}
	if err := gokeyring.Set(constants.AppName, c.user, secret); err != nil {
		return fmt.Errorf("failed to store credentials in keyring: %w", err)
	}
	return nil
}

func (c Credentials) Delete() error {
	err := gokeyring.Delete(constants.AppName, c.user)
	switch {
	case errors.Is(err, gokeyring.ErrNotFound):
		return ErrNotFound
	case err != nil:
		return fmt.Errorf("failed to delete credentials from keyring: %w", err)
	}
	return nil
}

// Available reports whether the keyring answers at all; a missing probe entry still counts.
func Available() bool {
	_, err := gokeyring.Get(constants.AppName, "availability-probe")
	return err == nil || errors.Is(err, gokeyring.ErrNotFound)
}

// ConnectionString reads the default database entry.
func ConnectionString() (string, error) {
	return New("").Get()
}
