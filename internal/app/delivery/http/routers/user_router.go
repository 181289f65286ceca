package routers

import (
	"medplus-service/internal/app/delivery/http/middlewares"
	"medplus-service/internal/app/services/core/users"

	"github.com/go-chi/chi/v5"
)

func attachUserRoutes(router chi.Router, middlewares *middlewares.Middlewares, userController *users.UserController) {
	router.With(middlewares.Authenticate).Get("/profile", userController.GetProfile)
	router.With(middlewares.Authenticate).Put("/profile", userController.UpdateProfile)
	router.With(middlewares.Authenticate).Post("/profile/image", userController.PresignProfileImage)
	router.With(middlewares.Authenticate).Post("/devices", userController.RegisterDevice)
}
