// Package api exposes the holiday engine as a JSON HTTP API.
package api

import (
	"context"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/google/uuid"

	"github.com/julianstephens/projcal/internal/calendar"
	"github.com/julianstephens/projcal/internal/constants"
	"github.com/julianstephens/projcal/internal/holidays"
	"github.com/julianstephens/projcal/internal/logger"
)

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Server struct {
	app       *fiber.App
	svc       *holidays.Service
	store     Pinger
	validator *validator.Validate
}

// New builds the fiber app with every route registered.
func New(svc *holidays.Service, store Pinger) *Server {
	s := &Server{
		svc:       svc,
		store:     store,
		validator: validator.New(),
	}

	s.app = fiber.New(fiber.Config{
		AppName:               constants.AppName,
		DisableStartupMessage: true,
		ErrorHandler:          errorHandler,
		ReadTimeout:           15 * time.Second,
		WriteTimeout:          constants.RequestTimeout,
	})
	s.app.Use(recover.New())
	s.app.Use(requestLogger)
	s.routes()
	return s
}

// App returns the underlying fiber app.
func (s *Server) App() *fiber.App {
	return s.app
}

// requestLogger tags each request with an id, bounds it with a timeout and logs the outcome.
func requestLogger(c *fiber.Ctx) error {
	id := c.Get("X-Request-ID")
	if id == "" {
		id = uuid.New().String()
	}
	c.Set("X-Request-ID", id)

	ctx, cancel := context.WithTimeout(c.UserContext(), constants.RequestTimeout)
	defer cancel()
	c.SetUserContext(ctx)

	start := time.Now()
	err := c.Next()
	if err != nil {
		// Let the error handler pick the status before it is logged.
		if herr := c.App().ErrorHandler(c, err); herr != nil {
			return herr
		}
	}
	logger.Info("Request", "id", id, "method", c.Method(), "path", c.OriginalURL(),
		"status", c.Response().StatusCode(), "duration", time.Since(start))
	return nil
}

func (s *Server) routes() {
	s.app.Get("/health", s.health)

	api := s.app.Group("/api")
	projects := api.Group("/projects/:project_id")
	projects.Post("/holidays/recurrent", s.createRecurrent)
	projects.Post("/holidays/specific", s.createSpecific)
	projects.Post("/holidays/range", s.createRange)
	projects.Get("/holidays", s.listHolidays)
	projects.Get("/holidays/check", s.checkHoliday)
	projects.Get("/conflicts", s.listConflicts)
	projects.Post("/tasks/move", s.moveTasks)

	api.Patch("/holidays/:id", s.updateHoliday)
	api.Delete("/holidays/:id", s.deleteHoliday)
}

// Listen serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Listen(ctx context.Context, addr string) error {
	errCh := make(chan error, 1)
	go func() {
		logger.Info("API listening", "addr", addr)
		errCh <- s.app.Listen(addr)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return s.app.ShutdownWithContext(shutdownCtx)
	}
}

func (s *Server) bind(c *fiber.Ctx, out interface{}) error {
	if err := c.BodyParser(out); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	return s.validator.Struct(out)
}

func (s *Server) health(c *fiber.Ctx) error {
	if err := s.store.Ping(c.UserContext()); err != nil {
		return Error(c, fiber.StatusServiceUnavailable, "database unreachable")
	}
	return Success(c, "ok", nil)
}

type batchRequest interface {
	toRequest() (calendar.Request, error)
}

func (s *Server) runBatch(c *fiber.Ctx, req batchRequest) error {
	if err := s.bind(c, req); err != nil {
		return err
	}
	r, err := req.toRequest()
	if err != nil {
		return err
	}
	result, err := s.svc.RunBatch(c.UserContext(), c.Params("project_id"), r)
	if err != nil {
		return err
	}
	return SuccessWithCode(c, fiber.StatusCreated, "holidays saved", result)
}

func (s *Server) createRecurrent(c *fiber.Ctx) error {
	return s.runBatch(c, &recurrentRequest{})
}

func (s *Server) createSpecific(c *fiber.Ctx) error {
	return s.runBatch(c, &specificRequest{})
}

func (s *Server) createRange(c *fiber.Ctx) error {
	return s.runBatch(c, &rangeRequest{})
}

func (s *Server) listHolidays(c *fiber.Ctx) error {
	includeDeleted, _ := strconv.ParseBool(c.Query("include_deleted", "false"))
	list, err := s.svc.ListHolidays(c.UserContext(), c.Params("project_id"), includeDeleted)
	if err != nil {
		return err
	}
	out := make([]holidayResponse, 0, len(list))
	for _, h := range list {
		out = append(out, toHolidayResponse(h))
	}
	return Success(c, "holidays", out)
}

func (s *Server) checkHoliday(c *fiber.Ctx) error {
	date, err := calendar.ParseDate(c.Query("date"))
	if err != nil {
		return err
	}
	isHoliday, err := s.svc.IsHoliday(c.UserContext(), c.Params("project_id"), date)
	if err != nil {
		return err
	}
	return Success(c, "holiday check", fiber.Map{"date": calendar.Format(date), "is_holiday": isHoliday})
}

func (s *Server) listConflicts(c *fiber.Ctx) error {
	conflicts, err := s.svc.ActiveConflicts(c.UserContext(), c.Params("project_id"))
	if err != nil {
		return err
	}
	return Success(c, "conflicts", conflicts)
}

func (s *Server) updateHoliday(c *fiber.Ctx) error {
	var req updateHolidayRequest
	if err := s.bind(c, &req); err != nil {
		return err
	}
	update, err := req.toUpdate()
	if err != nil {
		return err
	}
	h, err := s.svc.UpdateHoliday(c.UserContext(), c.Params("id"), update)
	if err != nil {
		return err
	}
	return Success(c, "holiday updated", toHolidayResponse(h))
}

func (s *Server) deleteHoliday(c *fiber.Ctx) error {
	if err := s.svc.DeleteHoliday(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return Success(c, "holiday deleted", nil)
}

func (s *Server) moveTasks(c *fiber.Ctx) error {
	var req moveRequest
	if err := s.bind(c, &req); err != nil {
		return err
	}
	result, err := s.svc.MoveTasks(c.UserContext(), c.Params("project_id"), req.TaskIDs, req.WorkingDays)
	if err != nil {
		return err
	}
	return Success(c, "tasks moved", result)
}
