package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/habitual/internal/backup"
	"github.com/julianstephens/habitual/internal/constants"
	"github.com/julianstephens/habitual/internal/keyring"
	"github.com/julianstephens/habitual/internal/logger"
	"github.com/julianstephens/habitual/internal/service"
	"github.com/julianstephens/habitual/internal/storage"
	"github.com/julianstephens/habitual/internal/storage/postgres"
	"github.com/julianstephens/habitual/internal/storage/sqlite"
)

// Globals are the flags shared by every command.
type Globals struct {
	Version  kong.VersionFlag `help:"Print the version and exit."`
	DB       string           `help:"SQLite database path or PostgreSQL connection string. Falls back to the OS keyring, then ${default_db}." env:"HABITUAL_DB"`
	Timezone string           `help:"IANA timezone that decides what 'today' is." default:"UTC" env:"HABITUAL_TIMEZONE"`
	Debug    bool             `help:"Log at debug level and tee logs to stderr." env:"HABITUAL_DEBUG"`
	LogLevel string           `help:"Log level (debug, info, warn, error)." default:"warn" enum:"debug,info,warn,error" env:"HABITUAL_LOG_LEVEL"`
	LogDir   string           `help:"Directory that holds logs/." default:"~/.config/habitual" type:"path" env:"HABITUAL_LOG_DIR"`
}

type Context struct {
	Ctx      context.Context
	Store    storage.Provider
	Location *time.Location
	Out      io.Writer
	// Now overrides the clock; nil means time.Now.
	Now func() time.Time
	// BcryptCost is the password hashing cost; zero means the default.
	BcryptCost int
}

// Service returns the habit service bound to the configured timezone.
func (c *Context) Service() *service.Service {
	opts := []service.Option{service.WithLocation(c.Location)}
	if c.Now != nil {
		opts = append(opts, service.WithClock(c.Now))
	}
	return service.New(c.Store, opts...)
}

func (c *Context) printf(format string, args ...any) {
	fmt.Fprintf(c.Out, format, args...)
}

func (c *Context) println(args ...any) {
	fmt.Fprintln(c.Out, args...)
}

// UserID resolves an account email to its id.
func (c *Context) UserID(email string) (string, error) {
	u, err := c.Store.GetUserByEmail(c.Ctx, strings.ToLower(strings.TrimSpace(email)))
	if errors.Is(err, storage.ErrNotFound) {
		return "", fmt.Errorf("no user with email %s, create one with 'habitual user add'", email)
	}
	if err != nil {
		return "", err
	}
	return u.ID, nil
}

// PerformAutomaticBackup snapshots a SQLite database and only logs failures.
func (c *Context) PerformAutomaticBackup() {
	if _, ok := c.Store.(*sqlite.Store); !ok {
		return
	}
	mgr := backup.NewManager(c.Store.GetConfigPath())
	if _, err := mgr.Create(c.Ctx); err != nil {
		logger.Warn("Automatic backup failed", "error", err)
	}
}

// UserFlag selects the account a habit command acts for.
type UserFlag struct {
	User string `help:"Email of the account to act as." required:"" env:"HABITUAL_USER"`
}

// OpenStore picks the backend for db: PostgreSQL for connection strings,
// SQLite otherwise. An empty db reads the keyring before falling back to the
// default SQLite path.
func OpenStore(db string) (storage.Provider, error) {
	fromKeyring := false
	if db == "" {
		connStr, err := keyring.GetConnectionString()
		switch {
		case err == nil:
			db, fromKeyring = connStr, true
		case errors.Is(err, keyring.ErrNotFound):
			db = constants.DefaultConfigPath
		default:
			logger.Debug("Keyring lookup failed", "error", err)
			db = constants.DefaultConfigPath
		}
	}

	if isPostgres(db) {
		if err := postgres.ValidateConnString(db); err != nil {
			// The keyring is an acceptable home for passwords.
			if !fromKeyring || !errors.Is(err, postgres.ErrEmbeddedCredentials) {
				return nil, err
			}
		}
		return postgres.New(db), nil
	}

	path, err := expandHome(db)
	if err != nil {
		return nil, err
	}
	return sqlite.NewStore(path), nil
}

func isPostgres(s string) bool {
	return postgres.IsConnString(s) || strings.Contains(s, "host=")
}

func expandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}

// parseWeekdays parses a comma-separated list of weekday names or numbers
// (0=Sunday) into weekday numbers.
func parseWeekdays(s string) ([]int, error) {
	parts := strings.Split(s, ",")
	var weekdays []int

	dayMap := map[string]time.Weekday{
		"sun":       time.Sunday,
		"sunday":    time.Sunday,
		"mon":       time.Monday,
		"monday":    time.Monday,
		"tue":       time.Tuesday,
		"tuesday":   time.Tuesday,
		"wed":       time.Wednesday,
		"wednesday": time.Wednesday,
		"thu":       time.Thursday,
		"thursday":  time.Thursday,
		"fri":       time.Friday,
		"friday":    time.Friday,
		"sat":       time.Saturday,
		"saturday":  time.Saturday,
	}

	for _, part := range parts {
		part = strings.TrimSpace(strings.ToLower(part))
		if wd, ok := dayMap[part]; ok {
			weekdays = append(weekdays, int(wd))
			continue
		}
		num, err := strconv.Atoi(part)
		if err != nil || num < 0 || num > 6 {
			return nil, fmt.Errorf("invalid weekday: %s", part)
		}
		weekdays = append(weekdays, num)
	}

	return weekdays, nil
}
