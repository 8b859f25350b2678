package httpapi

import (
	"bytes"
	"errors"
	"fmt"
	"log"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/mpetrenko/museum-weather-dashboard/internal/artwork"
	"github.com/mpetrenko/museum-weather-dashboard/internal/geo"
	"github.com/mpetrenko/museum-weather-dashboard/internal/httpx"
	"github.com/mpetrenko/museum-weather-dashboard/internal/session"
	"github.com/mpetrenko/museum-weather-dashboard/internal/weather"
)

var validate = validator.New()

// Deps bundles the services the HTTP layer presents.
type Deps struct {
	Artworks *artwork.Service
	Weather  *weather.Service
	Sessions *session.Store

	// Labeler is optional; without it map clicks get numeric labels.
	Labeler geo.Labeler

	// DefaultCity is used when a session has no stored location yet.
	DefaultCity weather.City
}

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, deps Deps) {
	v1 := app.Group("/api/v1")

	v1.Get("/artworks/search", func(c *fiber.Ctx) error {
		q, err := parseArtworkQuery(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		result, err := deps.Artworks.Search(c.UserContext(), q)
		if err != nil {
			return upstreamError(err, "search")
		}

		if result.Count == 0 {
			// Empty result sets are informational, never errors.
			return c.JSON(fiber.Map{
				"query":    result.Query,
				"count":    0,
				"artworks": []artwork.Record{},
				"message":  fmt.Sprintf("No artworks found for %q. Try other keywords like 'flower' or 'Chinese figure with bird'!", result.Query),
			})
		}

		return c.JSON(result)
	})

	v1.Get("/artworks/export", func(c *fiber.Ctx) error {
		q, err := parseArtworkQuery(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		result, err := deps.Artworks.Search(c.UserContext(), q)
		if err != nil {
			return upstreamError(err, "search")
		}

		var buf bytes.Buffer
		if err := artwork.WriteCSV(&buf, result.Artworks); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "failed to build CSV export")
		}

		c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
		c.Set(fiber.HeaderContentDisposition, `attachment; filename="artworks.csv"`)
		return c.Send(buf.Bytes())
	})

	v1.Get("/artworks/departments", func(c *fiber.Ctx) error {
		departments, err := deps.Artworks.Departments(c.UserContext())
		if err != nil {
			return upstreamError(err, "departments")
		}
		return c.JSON(fiber.Map{"departments": departments})
	})

	v1.Get("/weather", func(c *fiber.Ctx) error {
		loc, err := resolveLocation(c, deps)
		if err != nil {
			return err
		}

		bundle, err := deps.Weather.Forecast(c.UserContext(), loc)
		if err != nil {
			return upstreamError(err, "weather")
		}
		return c.JSON(bundle)
	})

	v1.Get("/weather/cities", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"cities": deps.Weather.Cities()})
	})

	v1.Get("/session/location", func(c *fiber.Ctx) error {
		loc, err := deps.Sessions.Location(sessionID(c))
		if err != nil {
			if errors.Is(err, session.ErrNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "no location stored for this session")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "failed to read session location")
		}
		return c.JSON(loc)
	})

	// Map clicks land here: arbitrary coordinates are clamped/wrapped into
	// valid ranges and optionally labeled via reverse geocoding.
	v1.Put("/session/location", func(c *fiber.Ctx) error {
		var body struct {
			Latitude  float64 `json:"latitude"`
			Longitude float64 `json:"longitude"`
			Label     string  `json:"label"`
		}
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid location payload")
		}

		loc := geo.Normalize(geo.Coordinate{
			Latitude:  body.Latitude,
			Longitude: body.Longitude,
			Label:     body.Label,
		})

		if loc.Label == "" && deps.Labeler != nil {
			label, err := deps.Labeler.Label(loc)
			if err != nil {
				log.Printf("reverse geocode failed for %s: %v", loc.Key(), err)
			} else {
				loc.Label = label
			}
		}
		if loc.Label == "" {
			loc.Label = fmt.Sprintf("%.4f, %.4f", loc.Latitude, loc.Longitude)
		}

		stored := deps.Sessions.SetLocation(sessionID(c), loc)
		return c.JSON(stored)
	})
}

// artworkQuery holds query parameters for the artwork search endpoints.
type artworkQuery struct {
	Keyword      string `validate:"required"`
	DepartmentID int    `validate:"gte=0"`
	Highlight    bool
	Limit        int `validate:"gte=0,lte=50"`
}

func parseArtworkQuery(c *fiber.Ctx) (artwork.Query, error) {
	q := artworkQuery{
		Keyword:      c.Query("q"),
		DepartmentID: c.QueryInt("departmentId", 0),
		Highlight:    c.QueryBool("highlight", false),
		Limit:        c.QueryInt("limit", 0),
	}

	if err := validate.Struct(q); err != nil {
		return artwork.Query{}, err
	}

	return artwork.Query{
		Keyword:       q.Keyword,
		DepartmentID:  q.DepartmentID,
		HighlightOnly: q.Highlight,
		Limit:         q.Limit,
	}, nil
}

// resolveLocation picks the coordinate for a weather request: explicit query
// coordinates win (and become the session's location), then the session's
// stored value, then the default city. Out-of-range values are silently
// normalized, never rejected.
func resolveLocation(c *fiber.Ctx, deps Deps) (geo.Coordinate, error) {
	latStr := c.Query("latitude")
	lonStr := c.Query("longitude")

	if latStr != "" || lonStr != "" {
		lat, err := strconv.ParseFloat(latStr, 64)
		if err != nil {
			return geo.Coordinate{}, fiber.NewError(fiber.StatusBadRequest, "invalid latitude")
		}
		lon, err := strconv.ParseFloat(lonStr, 64)
		if err != nil {
			return geo.Coordinate{}, fiber.NewError(fiber.StatusBadRequest, "invalid longitude")
		}

		loc := geo.Coordinate{Latitude: lat, Longitude: lon, Label: c.Query("label")}
		return deps.Sessions.SetLocation(sessionID(c), loc), nil
	}

	if loc, err := deps.Sessions.Location(sessionID(c)); err == nil {
		return loc, nil
	}
	return deps.DefaultCity.Coordinate(), nil
}

func sessionID(c *fiber.Ctx) string {
	if id := c.Get("X-Session-ID"); id != "" {
		return id
	}
	return "default"
}

// upstreamError phrases transport failures for the user. Timeouts are called
// out explicitly; everything else is a generic upstream failure. Either way
// the render degrades to "no data" rather than anything fatal.
func upstreamError(err error, what string) error {
	if errors.Is(err, httpx.ErrTimeout) {
		return fiber.NewError(fiber.StatusGatewayTimeout, "Connection timed out. Please try again later.")
	}
	return fiber.NewError(fiber.StatusBadGateway, fmt.Sprintf("%s request failed: %v", what, err))
}
