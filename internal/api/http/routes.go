package httpapi

import (
	"bytes"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"

	"github.com/wesellis/WeatherStar-4000-Python/internal/engine"
	"github.com/wesellis/WeatherStar-4000-Python/internal/pages"
	"github.com/wesellis/WeatherStar-4000-Python/internal/render"
	"github.com/wesellis/WeatherStar-4000-Python/internal/settings"
	"github.com/wesellis/WeatherStar-4000-Python/internal/weather"
)

var validate = validator.New()

// Engine is the part of the render loop the API talks to.
type Engine interface {
	Submit(engine.Command) bool
	Status() engine.Status
	Snapshot() *weather.Snapshot
}

// Frames holds the most recent composed frame.
type Frames interface {
	WritePNG(w io.Writer) error
	LinkAt(x, y int) (string, bool)
	Seq() (uint64, time.Time)
}

// Deps are the handlers' collaborators. Metrics may be nil.
type Deps struct {
	Engine  Engine
	Frames  Frames
	Metrics http.Handler
	Now     func() time.Time
}

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, deps Deps) {
	now := deps.Now
	if now == nil {
		now = time.Now
	}

	app.Get("/frame", func(c *fiber.Ctx) error {
		var buf bytes.Buffer
		if err := deps.Frames.WritePNG(&buf); err != nil {
			if errors.Is(err, render.ErrNoFrame) {
				return fiber.NewError(fiber.StatusServiceUnavailable, "No frame available")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "failed to encode frame")
		}
		seq, _ := deps.Frames.Seq()
		c.Set("Content-Type", "image/png")
		c.Set("Cache-Control", "no-store")
		c.Set("X-Frame-Seq", strconv.FormatUint(seq, 10))
		return c.Send(buf.Bytes())
	})

	if deps.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(deps.Metrics))
	}

	v1 := app.Group("/api/v1")

	v1.Get("/state", func(c *fiber.Ctx) error {
		return c.JSON(newStateResponse(deps.Engine.Status(), now()))
	})

	v1.Get("/weather", func(c *fiber.Ctx) error {
		snap := deps.Engine.Snapshot()
		if snap == nil {
			return fiber.NewError(fiber.StatusServiceUnavailable, "weather data not loaded yet")
		}
		return c.JSON(snap)
	})

	v1.Post("/control", func(c *fiber.Ctx) error {
		var req controlRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}
		if err := validate.Struct(req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		if !deps.Engine.Submit(req.command()) {
			return fiber.NewError(fiber.StatusServiceUnavailable, "command queue full")
		}
		return c.Status(fiber.StatusAccepted).JSON(fiber.Map{"accepted": req.Command})
	})

	v1.Get("/settings", func(c *fiber.Ctx) error {
		return c.JSON(deps.Engine.Status().Display)
	})

	v1.Put("/settings", func(c *fiber.Ctx) error {
		var req settingsRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}
		if err := validate.Struct(req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		d := req.apply(deps.Engine.Status().Display)
		if !deps.Engine.Submit(engine.Command{Kind: engine.CmdApplySettings, Display: d}) {
			return fiber.NewError(fiber.StatusServiceUnavailable, "command queue full")
		}
		return c.Status(fiber.StatusAccepted).JSON(d)
	})

	v1.Get("/click", func(c *fiber.Ctx) error {
		var q clickQuery
		if err := q.bind(c); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		if err := validate.Struct(q); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		url, ok := deps.Frames.LinkAt(q.X, q.Y)
		if !ok {
			return fiber.NewError(fiber.StatusNotFound, "nothing to open at that position")
		}
		return c.Redirect(url, fiber.StatusFound)
	})
}

type stateResponse struct {
	Pages              []string         `json:"pages"`
	CurrentIndex       int              `json:"currentIndex"`
	CurrentPage        string           `json:"currentPage,omitempty"`
	ElapsedMS          int64            `json:"elapsedMs"`
	AutoAdvance        bool             `json:"autoAdvance"`
	MenuOpen           bool             `json:"menuOpen"`
	Location           string           `json:"location,omitempty"`
	SnapshotUpdatedAt  *time.Time       `json:"snapshotUpdatedAt,omitempty"`
	SnapshotAgeSeconds *float64         `json:"snapshotAgeSeconds,omitempty"`
	Display            settings.Display `json:"display"`
}

func newStateResponse(st engine.Status, now time.Time) stateResponse {
	resp := stateResponse{
		Pages:        pages.Strings(st.ActivePages),
		CurrentIndex: st.CurrentIndex,
		ElapsedMS:    st.Elapsed.Milliseconds(),
		AutoAdvance:  st.AutoAdvance,
		MenuOpen:     st.MenuOpen,
		Display:      st.Display,
	}
	if p, ok := st.Current(); ok {
		resp.CurrentPage = p.String()
	}
	if !st.SnapshotUpdatedAt.IsZero() {
		at := st.SnapshotUpdatedAt
		age := now.Sub(at).Seconds()
		resp.SnapshotUpdatedAt = &at
		resp.SnapshotAgeSeconds = &age
		resp.Location = st.Location.Label()
	}
	return resp
}

// controlRequest is the body of POST /api/v1/control.
type controlRequest struct {
	Command string `json:"command" validate:"required,oneof=next previous jump toggle settings quit refresh"`
	Index   *int   `json:"index" validate:"required_if=Command jump,omitempty,gte=0"`
}

func (r controlRequest) command() engine.Command {
	kind, _ := engine.ParseKind(r.Command)
	cmd := engine.Command{Kind: kind}
	if r.Index != nil {
		cmd.Index = *r.Index
	}
	return cmd
}

// settingsRequest holds the display fields to change; omitted fields keep
// their current value.
type settingsRequest struct {
	ShowMarine     *bool    `json:"show_marine"`
	ShowTrends     *bool    `json:"show_trends"`
	ShowHistorical *bool    `json:"show_historical"`
	ShowMSN        *bool    `json:"show_msn"`
	ShowReddit     *bool    `json:"show_reddit"`
	ShowLocalNews  *bool    `json:"show_local_news"`
	MusicVolume    *float64 `json:"music_volume" validate:"omitempty,gte=0,lte=1"`
}

func (r settingsRequest) apply(d settings.Display) settings.Display {
	set := func(dst *bool, v *bool) {
		if v != nil {
			*dst = *v
		}
	}
	set(&d.ShowMarine, r.ShowMarine)
	set(&d.ShowTrends, r.ShowTrends)
	set(&d.ShowHistorical, r.ShowHistorical)
	set(&d.ShowMSN, r.ShowMSN)
	set(&d.ShowReddit, r.ShowReddit)
	set(&d.ShowLocalNews, r.ShowLocalNews)
	if r.MusicVolume != nil {
		d.MusicVolume = *r.MusicVolume
	}
	return d
}

// clickQuery holds the frame coordinates of a left click.
type clickQuery struct {
	X int `validate:"gte=0,lt=640"`
	Y int `validate:"gte=0,lt=480"`
}

func (q *clickQuery) bind(c *fiber.Ctx) error {
	xs, ys := c.Query("x"), c.Query("y")
	if xs == "" || ys == "" {
		return errors.New("x and y query parameters are required")
	}
	x, err := strconv.Atoi(xs)
	if err != nil {
		return errors.New("x must be an integer")
	}
	y, err := strconv.Atoi(ys)
	if err != nil {
		return errors.New("y must be an integer")
	}
	q.X, q.Y = x, y
	return nil
}
