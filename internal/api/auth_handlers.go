package api

import (
	"github.com/gofiber/fiber/v2"

	"github.com/julianstephens/habitual/internal/models"
)

func (s *Server) signup(c *fiber.Ctx) error {
	var in models.SignupInput
	if err := parseBody(c, &in); err != nil {
		return err
	}
	sess, err := s.auth.Signup(c.UserContext(), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": sess})
}

func (s *Server) login(c *fiber.Ctx) error {
	var in models.LoginInput
	if err := parseBody(c, &in); err != nil {
		return err
	}
	sess, err := s.auth.Login(c.UserContext(), in)
	if err != nil {
		return err
	}
	return data(c, sess)
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

func (s *Server) refresh(c *fiber.Ctx) error {
	var req refreshRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	sess, err := s.auth.Refresh(c.UserContext(), req.RefreshToken)
	if err != nil {
		return err
	}
	return data(c, sess)
}

func (s *Server) me(c *fiber.Ctx) error {
	u, err := s.auth.Me(c.UserContext(), userID(c))
	if err != nil {
		return err
	}
	return data(c, u)
}
