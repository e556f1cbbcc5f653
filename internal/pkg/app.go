package pkg

import (
	"fmt"

	"budget-backend/internal/app/config"
	"budget-backend/internal/app/handler"
	"budget-backend/internal/app/middleware"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type Application struct {
	Config         *config.Config
	Router         *gin.Engine
	Handler        *handler.APIHandler
	AuthMiddleware *middleware.AuthMiddleware
}

func NewApp(c *config.Config, r *gin.Engine, h *handler.APIHandler, m *middleware.AuthMiddleware) *Application {
	return &Application{
		Config:         c,
		Router:         r,
		Handler:        h,
		AuthMiddleware: m,
	}
}

func (a *Application) RunApp() {
	logrus.Info("Server start up")

	a.Handler.RegisterAPIRoutes(a.Router, a.AuthMiddleware)

	serverAddress := fmt.Sprintf("%s:%d", a.Config.ServiceHost, a.Config.ServicePort)
	logrus.Infof("Starting server on %s", serverAddress)

	if err := a.Router.Run(serverAddress); err != nil {
		logrus.Fatal(err)
	}

	logrus.Info("Server down")
}
