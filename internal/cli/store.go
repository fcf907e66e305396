package cli

import (
	"errors"
	"fmt"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/projcal/internal/constants"
	"github.com/julianstephens/projcal/internal/keyring"
	"github.com/julianstephens/projcal/internal/storage"
	"github.com/julianstephens/projcal/internal/storage/postgres"
	"github.com/julianstephens/projcal/internal/storage/sqlite"
)

// OpenStore picks the backend named by the --db value: "keyring" reads a
// PostgreSQL connection string from the OS keyring, a postgres URL or DSN
// selects PostgreSQL, anything else is a SQLite file path.
func OpenStore(db string) (storage.Provider, error) {
	if db == constants.KeyringConfigValue {
		connStr, err := keyring.ConnectionString()
		if err != nil {
			if errors.Is(err, keyring.ErrNotFound) {
				return nil, fmt.Errorf("no connection string in keyring, run 'projcal keyring set' first")
			}
			return nil, err
		}
		if !postgres.IsConnString(connStr) {
			return nil, fmt.Errorf("keyring entry is not a PostgreSQL connection string")
		}
		// Passwords are allowed here since the keyring itself is the secret store.
		return postgres.New(connStr), nil
	}

	if postgres.IsConnString(db) {
		if _, err := postgres.ValidateConnString(db); err != nil {
			if errors.Is(err, postgres.ErrEmbeddedCredentials) {
				return nil, fmt.Errorf("%w: store the connection string with 'projcal keyring set' and pass --db keyring, or use .pgpass", err)
			}
			return nil, err
		}
		return postgres.New(db), nil
	}

	return sqlite.NewStore(kong.ExpandPath(db)), nil
}
