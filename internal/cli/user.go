package cli

import (
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/habitual/internal/auth"
	"github.com/julianstephens/habitual/internal/models"
)

type UserAddCmd struct {
	Email    string `arg:"" help:"Account email."`
	Name     string `short:"n" help:"Full name."`
	Password string `help:"Account password. Prompted for when omitted." env:"HABITUAL_PASSWORD"`
}

func (c *UserAddCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(ctx.Ctx); err != nil {
		return err
	}

	password := c.Password
	if password == "" {
		err := huh.NewInput().
			Title("Password").
			EchoMode(huh.EchoModePassword).
			Value(&password).
			Run()
		if err != nil {
			return err
		}
	}

	in := models.SignupInput{Email: c.Email, Password: password}
	if c.Name != "" {
		in.FullName = &c.Name
	}

	// Registration never signs tokens.
	svc := auth.NewService(ctx.Store, nil, auth.NewPasswordHasher(ctx.BcryptCost))
	u, err := svc.Register(ctx.Ctx, in)
	if err != nil {
		return err
	}

	ctx.printf("Created user: %s (ID: %s)\n", u.Email, u.ID)
	return nil
}
