package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// IndexMessage is the plain text banner served at the root path.
const IndexMessage = "Employetica server is running"

// Index answers liveness probes that only need a 200.
func Index(c echo.Context) error {
	return c.String(http.StatusOK, IndexMessage)
}
