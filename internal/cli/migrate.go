package cli

type MigrateCmd struct{}

// Run creates the database if needed and applies pending migrations.
func (c *MigrateCmd) Run(ctx *Context) error {
	if err := ctx.Store.Init(ctx.Ctx); err != nil {
		return err
	}
	ctx.printf("Database ready at: %s\n", ctx.Store.GetConfigPath())
	return nil
}
