package routers

import (
	"medplus-service/internal/app/delivery/http/middlewares"
	"medplus-service/internal/app/services/core/auth"

	"github.com/go-chi/chi/v5"
)

func attachAuthRoutes(router chi.Router, middlewares *middlewares.Middlewares, authController *auth.AuthController) {
	router.Post("/register", authController.RegisterUser)
	router.Post("/verify-email", authController.VerifyEmail)
	router.Post("/login", authController.LoginUser)
	router.Post("/forgot-password", authController.ForgotPassword)
	router.Post("/reset-password", authController.ResetPassword)
	router.With(middlewares.Authenticate).Post("/logout", authController.LogoutUser)
}
