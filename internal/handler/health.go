package handler

import (
	"database/sql"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/iliyamo/ticketr/internal/database"
)

// Health is a liveness probe for load balancers.
func Health(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}

// Index lists the API entry points.
func Index(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"message": "TicketR API is running",
		"endpoints": echo.Map{
			"users":          "/api/users",
			"organizations":  "/api/organizations",
			"events":         "/api/events",
			"tickets":        "/api/tickets",
			"payments":       "/api/payments",
			"chats":          "/api/chats",
			"advertisements": "/api/advertisements",
		},
	})
}

// ServiceHandler serves the endpoints that need the database pool.
type ServiceHandler struct {
	DB  *sql.DB
	Log zerolog.Logger
}

func NewServiceHandler(db *sql.DB, log zerolog.Logger) *ServiceHandler {
	return &ServiceHandler{DB: db, Log: log}
}

// TestDB reports the name of the connected database.
func (h *ServiceHandler) TestDB(c echo.Context) error {
	ctx, cancel := dbContext(c)
	defer cancel()

	name, err := database.CurrentDatabase(ctx, h.DB)
	if err != nil {
		return serverError(c, h.Log, err, "Database connection failed")
	}
	return c.JSON(http.StatusOK, echo.Map{"database": name})
}
