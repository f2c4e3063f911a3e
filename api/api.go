package api

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/course-catalog/utils/response"
)

const appName = "course-catalog"

type APIServer struct {
	app           *fiber.App
	listenAddress string
}

func NewAPIServer(listenAddress string) *APIServer {
	return &APIServer{
		app: fiber.New(fiber.Config{
			AppName:      appName,
			ErrorHandler: response.ErrorHandler,
		}),
		listenAddress: listenAddress,
	}
}

func (s *APIServer) GetEngine() *fiber.App {
	return s.app
}

func (s *APIServer) Run() error {
	log.Println("Starting API Server")
	log.Printf("Listening on %s", s.listenAddress)

	return s.app.Listen(s.listenAddress)
}

// Shutdown stops accepting connections and waits for in-flight requests
func (s *APIServer) Shutdown() error {
	log.Println("Shutting down API Server")
	return s.app.Shutdown()
}
