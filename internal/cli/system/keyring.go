package system

import (
	"errors"
	"fmt"
	"strings"

	"github.com/julianstephens/projcal/internal/cli"
	"github.com/julianstephens/projcal/internal/keyring"
	"github.com/julianstephens/projcal/internal/storage/postgres"
)

type KeyringSetCmd struct {
	ConnectionString string `arg:"" help:"PostgreSQL connection string to store in the keyring."`
}

func (cmd *KeyringSetCmd) Run(ctx *cli.Context) error {
	if !postgres.IsConnString(cmd.ConnectionString) {
		return errors.New("connection string must be a PostgreSQL URL or key=value DSN")
	}
	if _, err := postgres.ValidateConnString(cmd.ConnectionString); err != nil && !errors.Is(err, postgres.ErrEmbeddedCredentials) {
		return fmt.Errorf("invalid connection string: %w", err)
	}

	if err := keyring.New("").Set(cmd.ConnectionString); err != nil {
		return err
	}
	fmt.Println("✓ Connection string stored in OS keyring")
	fmt.Println("  Use it with: projcal --db keyring <command>")
	return nil
}

type KeyringGetCmd struct{}

func (cmd *KeyringGetCmd) Run(ctx *cli.Context) error {
	connStr, err := keyring.ConnectionString()
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return errors.New("no connection string found in keyring, use 'projcal keyring set' to store one")
		}
		return err
	}
	fmt.Println(maskPassword(connStr))
	return nil
}

type KeyringDeleteCmd struct{}

func (cmd *KeyringDeleteCmd) Run(ctx *cli.Context) error {
	if err := keyring.New("").Delete(); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return errors.New("no connection string found in keyring")
		}
		return err
	}
	fmt.Println("✓ Connection string deleted from OS keyring")
	return nil
}

type KeyringStatusCmd struct{}

func (cmd *KeyringStatusCmd) Run(ctx *cli.Context) error {
	if !keyring.Available() {
		fmt.Println("❌ OS keyring is not available on this system")
		return keyring.ErrKeyringUnavailable
	}
	fmt.Println("✓ OS keyring is available")
	if _, err := keyring.ConnectionString(); err == nil {
		fmt.Println("✓ Connection string is stored in keyring")
	} else {
		fmt.Println("ℹ No connection string stored in keyring")
	}
	return nil
}

// maskPassword hides the password of a URL or DSN connection string.
func maskPassword(connStr string) string {
	if strings.HasPrefix(connStr, "postgres://") || strings.HasPrefix(connStr, "postgresql://") {
		scheme := strings.Index(connStr, "://")
		rest := connStr[scheme+3:]
		at := strings.LastIndex(rest, "@")
		if at == -1 {
			return connStr
		}
		userInfo := rest[:at]
		colon := strings.Index(userInfo, ":")
		if colon == -1 {
			return connStr
		}
		return connStr[:scheme+3] + userInfo[:colon] + ":****" + rest[at:]
	}

	fields := strings.Fields(connStr)
	for i, f := range fields {
		if strings.HasPrefix(strings.ToLower(f), "password=") {
			fields[i] = "password=****"
		}
	}
	return strings.Join(fields, " ")
}
