package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/julianstephens/habitual/internal/keyring"
	"github.com/julianstephens/habitual/internal/storage/postgres"
)

// KeyringSetSecretCmd stores the token signing secret in the OS keyring.
type KeyringSetSecretCmd struct {
	Secret string `arg:"" optional:"" help:"Secret to store. A random one is generated when omitted."`
}

func (cmd *KeyringSetSecretCmd) Run(ctx *Context) error {
	secret := cmd.Secret
	if secret == "" {
		var err error
		if secret, err = keyring.GenerateSecret(); err != nil {
			return err
		}
	}
	if err := keyring.SetSigningSecret(secret); err != nil {
		return err
	}

	ctx.println("✓ Signing secret stored in OS keyring")
	ctx.println("  Tokens issued with the previous secret are no longer valid")
	return nil
}

type KeyringDeleteSecretCmd struct{}

func (cmd *KeyringDeleteSecretCmd) Run(ctx *Context) error {
	if err := keyring.DeleteSigningSecret(); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return errors.New("no signing secret found in keyring")
		}
		return err
	}
	ctx.println("✓ Signing secret deleted from OS keyring")
	return nil
}

// KeyringSetDBCmd stores the database connection string in the OS keyring.
type KeyringSetDBCmd struct {
	ConnectionString string `arg:"" help:"PostgreSQL connection string to store in keyring."`
}

func (cmd *KeyringSetDBCmd) Run(ctx *Context) error {
	if !isPostgres(cmd.ConnectionString) {
		return errors.New("connection string must be a valid PostgreSQL connection string")
	}

	if err := postgres.ValidateConnString(cmd.ConnectionString); err != nil {
		if !errors.Is(err, postgres.ErrEmbeddedCredentials) {
			return fmt.Errorf("invalid connection string: %w", err)
		}
		ctx.println("⚠️  Warning: Connection string contains embedded credentials.")
		ctx.println("   It will be stored as-is in the encrypted OS keyring.")
	}

	if err := keyring.SetConnectionString(cmd.ConnectionString); err != nil {
		return err
	}

	ctx.println("✓ Connection string stored successfully in OS keyring")
	ctx.println("  habitual will use it whenever --db is not given")
	return nil
}

// KeyringStatusCmd reports keyring availability and what is stored.
type KeyringStatusCmd struct{}

func (cmd *KeyringStatusCmd) Run(ctx *Context) error {
	if !keyring.IsAvailable() {
		ctx.println("❌ OS keyring is not available on this system")
		return keyring.ErrKeyringUnavailable
	}
	ctx.println("✓ OS keyring is available")

	if connStr, err := keyring.GetConnectionString(); err == nil {
		ctx.printf("✓ Connection string: %s\n", maskPassword(connStr))
	} else {
		ctx.println("ℹ No connection string stored")
	}

	if _, err := keyring.GetSigningSecret(); err == nil {
		ctx.println("✓ Signing secret is stored")
	} else {
		ctx.println("ℹ No signing secret stored, 'habitual serve' will generate one")
	}
	return nil
}

// maskPassword masks passwords in connection strings for display.
func maskPassword(connStr string) string {
	if postgres.IsConnString(connStr) {
		if idx := strings.Index(connStr, "://"); idx != -1 {
			remaining := connStr[idx+3:]
			// The last @ separates user info from host.
			if atIdx := strings.LastIndex(remaining, "@"); atIdx != -1 {
				userInfo := remaining[:atIdx]
				if colonIdx := strings.Index(userInfo, ":"); colonIdx != -1 {
					return connStr[:idx+3] + userInfo[:colonIdx] + ":****" + connStr[idx+3+atIdx:]
				}
			}
		}
	}

	if strings.Contains(connStr, "password=") {
		parts := strings.Fields(connStr)
		for i, part := range parts {
			if strings.HasPrefix(part, "password=") {
				parts[i] = "password=****"
			}
		}
		return strings.Join(parts, " ")
	}

	return connStr
}
