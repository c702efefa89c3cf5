// Package handlers contains the HTTP route handler functions for the Patient
// Management System API. Each handler corresponds to one API endpoint and is
// responsible for reading the request, performing any business logic, and
// writing a response.
package handlers

import "github.com/gofiber/fiber/v2"

// HealthCheck handles GET /health.
// It returns a simple JSON response indicating the server is alive and
// reachable. Intentionally lightweight — no database queries. Used by
// container orchestrators and load balancers to decide if this instance is
// healthy, and by developers checking the server started correctly.
func HealthCheck(c *fiber.Ctx) error {
	// fiber.Map is just a shorthand for map[string]interface{}.
	return c.JSON(fiber.Map{"status": "ok"})
}

// Root handles GET /. A friendly landing response so hitting the bare host
// in a browser shows the service name instead of a 404.
func Root(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"message": "Patient Management System API"})
}

// About handles GET /about — a one-line description of what this service does.
func About(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"message": "A full-featured Patient Management System API built to handle patient records",
	})
}
