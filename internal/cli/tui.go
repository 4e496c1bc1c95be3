package cli

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/habitual/internal/habitcache"
	"github.com/julianstephens/habitual/internal/logger"
	"github.com/julianstephens/habitual/internal/tui"
)

type TuiCmd struct {
	UserFlag `embed:""`

	Cache string `help:"Where the habit list is cached between runs." default:"${default_cache}" type:"path"`
}

func (c *TuiCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(ctx.Ctx); err != nil {
		return err
	}
	userID, err := ctx.UserID(c.User)
	if err != nil {
		return err
	}

	// Perform automatic backup on TUI startup (after successful load)
	ctx.PerformAutomaticBackup()

	svc := ctx.Service()
	opts := []habitcache.Option{habitcache.WithPersister(habitcache.NewFileStore(c.Cache))}
	if ctx.Now != nil {
		opts = append(opts, habitcache.WithClock(ctx.Now))
	} else {
		loc := ctx.Location
		opts = append(opts, habitcache.WithClock(func() time.Time { return time.Now().In(loc) }))
	}
	cache := habitcache.New(habitcache.ForUser(svc, userID), opts...)
	if err := cache.Rehydrate(); err != nil {
		logger.Warn("Ignoring unreadable habit cache", "path", c.Cache, "error", err)
	}

	p := tea.NewProgram(tui.NewModel(svc, cache, userID), tea.WithAltScreen())
	_, err = p.Run()
	return err
}
