package auth

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"

	"github.com/6Elmas9/KlasNet/app/database"
)

// AuthMiddleware validates the JWT from the jwt_token cookie or the
// Authorization header and loads the user into c.Locals.
func AuthMiddleware(db *sql.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString := c.Cookies("jwt_token")
		if tokenString == "" {
			authHeader := c.Get("Authorization")
			if len(authHeader) > 7 && authHeader[:7] == "Bearer " {
				tokenString = authHeader[7:]
			}
		}

		if tokenString == "" {
			return c.Status(401).JSON(fiber.Map{"error": "Authentication required"})
		}

		claims, err := ValidateJWT(tokenString)
		if err != nil {
			return c.Status(401).JSON(fiber.Map{"error": "Invalid or expired token"})
		}

		user, err := database.GetUserByID(db, claims.UserID)
		if err != nil {
			return c.Status(401).JSON(fiber.Map{"error": "User not found"})
		}

		c.Locals("user", user)
		c.Locals("user_id", user.ID)
		c.Locals("user_email", user.Email)

		return c.Next()
	}
}

func SetupAuthRoutes(app *fiber.App, db *sql.DB) {
	app.Post("/api/auth/login", func(c *fiber.Ctx) error {
		return LoginAPI(c, db)
	})
	app.Post("/api/auth/logout", LogoutAPI)

	protected := app.Group("/api/auth", AuthMiddleware(db))
	protected.Get("/me", MeAPI)
	protected.Post("/change-password", func(c *fiber.Ctx) error {
		return ChangePasswordAPI(c, db)
	})
}
