package httpapi

import (
	"errors"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/portalhava/weather-data-service/internal/history"
	"github.com/portalhava/weather-data-service/internal/hubs"
	"github.com/portalhava/weather-data-service/internal/lifestyle"
	"github.com/portalhava/weather-data-service/internal/weather"
)

var validate = validator.New()

// Deps bundles the collaborators the handlers need.
type Deps struct {
	Service  *weather.Service
	History  *history.Engine
	Resolver *hubs.Resolver
}

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, deps Deps) {
	v1 := app.Group("/api/v1")

	v1.Get("/forecast", forecastHandler(deps, weather.ViewNow))
	v1.Get("/forecast/tomorrow", forecastHandler(deps, weather.ViewTomorrow))
	v1.Get("/forecast/weekend", forecastHandler(deps, weather.ViewWeekend))

	v1.Get("/history", func(c *fiber.Ctx) error {
		req, err := parsePlaceQuery(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		coord, city, err := resolvePlace(c, deps, req)
		if err != nil {
			return err
		}

		data, err := deps.History.History(c.Context(), city, coord)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "failed to build history")
		}
		return c.JSON(data)
	})

	v1.Get("/lifestyle", func(c *fiber.Ctx) error {
		req, err := parsePlaceQuery(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		model := fetchModel(c, deps, req)
		return c.JSON(fiber.Map{
			"city":       model.City,
			"advisories": lifestyle.Evaluate(lifestyle.FromCurrent(model.Current)),
		})
	})

	v1.Get("/hubs", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"hubs": deps.Resolver.Hubs()})
	})

	v1.Get("/hubs/nearest", func(c *fiber.Ctx) error {
		var req hubQuery
		if err := req.bind(c); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		resolved := deps.Resolver.Nearest(weather.Coordinate{Lat: req.Lat, Lon: req.Lon}, hubs.Capability(req.Capability))
		if resolved == nil {
			return fiber.NewError(fiber.StatusNotFound, "no hub covers the requested point")
		}
		return c.JSON(resolved)
	})

	v1.Get("/marine", func(c *fiber.Ctx) error {
		req, err := parsePlaceQuery(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		coord, _, err := resolvePlace(c, deps, req)
		if err != nil {
			return err
		}

		if deps.Resolver.Nearest(coord, hubs.CapabilityMarine) == nil {
			return fiber.NewError(fiber.StatusNotFound, "no marine coverage for the requested point")
		}

		data := deps.Service.MarineFor(c.Context(), coord)
		if data == nil {
			return fiber.NewError(fiber.StatusServiceUnavailable, "marine data temporarily unavailable")
		}
		return c.JSON(data)
	})

	v1.Get("/soil", func(c *fiber.Ctx) error {
		req, err := parsePlaceQuery(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		coord, _, err := resolvePlace(c, deps, req)
		if err != nil {
			return err
		}

		if deps.Resolver.Nearest(coord, hubs.CapabilitySoil) == nil {
			return fiber.NewError(fiber.StatusNotFound, "no soil coverage for the requested point")
		}

		data := deps.Service.SoilFor(c.Context(), coord)
		if data == nil {
			return fiber.NewError(fiber.StatusServiceUnavailable, "soil data temporarily unavailable")
		}
		return c.JSON(data)
	})
}

// forecastHandler serves the requested view. Configured cities are answered
// from the warm snapshot when one exists; everything else fetches live.
func forecastHandler(deps Deps, view weather.View) fiber.Handler {
	return func(c *fiber.Ctx) error {
		req, err := parsePlaceQuery(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		model := fetchModel(c, deps, req)

		switch view {
		case weather.ViewTomorrow:
			model = weather.ProjectTomorrow(model)
		case weather.ViewWeekend:
			model = weather.ProjectWeekend(model)
		}
		return c.JSON(model)
	}
}

func fetchModel(c *fiber.Ctx, deps Deps, req placeQuery) *weather.WeatherModel {
	if req.coord() == nil && req.City != "" {
		if snapshot, err := deps.Service.Latest(req.City); err == nil {
			return snapshot
		}
	}
	return deps.Service.Fetch(c.Context(), req.City, req.coord())
}

// resolvePlace turns the query into a concrete coordinate, geocoding the
// city name when none was supplied.
func resolvePlace(c *fiber.Ctx, deps Deps, req placeQuery) (weather.Coordinate, string, error) {
	if coord := req.coord(); coord != nil {
		return *coord, req.City, nil
	}

	place := deps.Service.Geocode(c.Context(), req.City)
	if place == nil {
		return weather.Coordinate{}, "", fiber.NewError(fiber.StatusNotFound, "could not resolve city to a coordinate")
	}
	return place.Coordinate, place.Name, nil
}

// placeQuery identifies a place either by city name or by coordinate.
type placeQuery struct {
	City string
	Lat  *float64
	Lon  *float64
}

func (p placeQuery) coord() *weather.Coordinate {
	if p.Lat == nil || p.Lon == nil {
		return nil
	}
	return &weather.Coordinate{Lat: *p.Lat, Lon: *p.Lon}
}

func parsePlaceQuery(c *fiber.Ctx) (placeQuery, error) {
	var q placeQuery
	q.City = c.Query("city")

	lat, err := optionalFloat(c, "lat")
	if err != nil {
		return q, err
	}
	lon, err := optionalFloat(c, "lon")
	if err != nil {
		return q, err
	}
	q.Lat, q.Lon = lat, lon

	if q.City == "" && (q.Lat == nil || q.Lon == nil) {
		return q, errors.New("either city or both lat and lon are required")
	}
	if (q.Lat == nil) != (q.Lon == nil) {
		return q, errors.New("lat and lon must be supplied together")
	}
	return q, nil
}

func optionalFloat(c *fiber.Ctx, key string) (*float64, error) {
	raw := c.Query(key)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, errors.New("invalid " + key + " query parameter")
	}
	return &v, nil
}

// hubQuery holds query parameters for the nearest-hub endpoint.
type hubQuery struct {
	Lat        float64 `validate:"gte=-90,lte=90"`
	Lon        float64 `validate:"gte=-180,lte=180"`
	Capability string  `validate:"required"`
}

func (h *hubQuery) bind(c *fiber.Ctx) error {
	latStr := c.Query("lat")
	lonStr := c.Query("lon")
	if latStr == "" || lonStr == "" {
		return errors.New("lat and lon query parameters are required")
	}

	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil {
		return errors.New("invalid lat query parameter")
	}
	lon, err := strconv.ParseFloat(lonStr, 64)
	if err != nil {
		return errors.New("invalid lon query parameter")
	}

	h.Lat = lat
	h.Lon = lon
	h.Capability = c.Query("capability")

	return validate.Struct(h)
}
