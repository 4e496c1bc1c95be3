package api

import (
	"github.com/gofiber/fiber/v2"

	"github.com/julianstephens/habitual/internal/models"
)

func data(c *fiber.Ctx, v any) error {
	return c.JSON(fiber.Map{"data": v})
}

// parseBody decodes an optional JSON body. An empty body leaves v untouched.
func parseBody(c *fiber.Ctx, v any) error {
	if len(c.Body()) == 0 {
		return nil
	}
	if err := c.BodyParser(v); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	return nil
}

func (s *Server) listHabits(c *fiber.Ctx) error {
	views, err := s.habits.ListHabits(c.UserContext(), userID(c), c.QueryBool("all"))
	if err != nil {
		return err
	}
	return data(c, views)
}

func (s *Server) dueHabits(c *fiber.Ctx) error {
	views, err := s.habits.DueHabits(c.UserContext(), userID(c))
	if err != nil {
		return err
	}
	return data(c, views)
}

func (s *Server) createHabit(c *fiber.Ctx) error {
	var in models.HabitInput
	if err := parseBody(c, &in); err != nil {
		return err
	}
	h, err := s.habits.CreateHabit(c.UserContext(), userID(c), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": h})
}

func (s *Server) getHabit(c *fiber.Ctx) error {
	h, err := s.habits.GetHabit(c.UserContext(), userID(c), c.Params("id"))
	if err != nil {
		return err
	}
	return data(c, h)
}

func (s *Server) updateHabit(c *fiber.Ctx) error {
	var in models.HabitInput
	if err := parseBody(c, &in); err != nil {
		return err
	}
	h, err := s.habits.UpdateHabit(c.UserContext(), userID(c), c.Params("id"), in)
	if err != nil {
		return err
	}
	return data(c, h)
}

func (s *Server) deleteHabit(c *fiber.Ctx) error {
	if err := s.habits.DeleteHabit(c.UserContext(), userID(c), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true})
}

type toggleRequest struct {
	Date string `json:"date"`
}

func (s *Server) toggleCompletion(c *fiber.Ctx) error {
	req := toggleRequest{Date: c.Query("date")}
	if err := parseBody(c, &req); err != nil {
		return err
	}
	res, err := s.habits.ToggleCompletion(c.UserContext(), userID(c), c.Params("id"), req.Date)
	if err != nil {
		return err
	}
	return c.JSON(res)
}

func (s *Server) listCompletions(c *fiber.Ctx) error {
	rows, err := s.habits.Completions(c.UserContext(), userID(c), c.Params("id"),
		models.Day(c.Query("from")), models.Day(c.Query("to")))
	if err != nil {
		return err
	}
	return data(c, rows)
}

func (s *Server) habitStats(c *fiber.Ctx) error {
	stats, err := s.habits.HabitStats(c.UserContext(), userID(c), c.Params("id"))
	if err != nil {
		return err
	}
	return data(c, stats)
}

func (s *Server) habitSchedule(c *fiber.Ctx) error {
	v, err := s.habits.Schedule(c.UserContext(), userID(c), c.Params("id"), c.Query("start"), c.Query("end"))
	if err != nil {
		return err
	}
	return data(c, v)
}

func (s *Server) analytics(c *fiber.Ctx) error {
	snap, err := s.habits.Analytics(c.UserContext(), userID(c))
	if err != nil {
		return err
	}
	return data(c, snap)
}
