package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/example/minipm/modules/api"
	"github.com/example/minipm/modules/auth"
	"github.com/example/minipm/modules/tracker"
	gfshutdown "github.com/gelmium/graceful-shutdown"
	"github.com/go-monolith/mono"
)

const shutdownTimeout = 30 * time.Second

func main() {
	log.Println("=== MiniPM Project Tracker ===")

	// Create mono application
	app, err := mono.NewMonoApplication(
		mono.WithShutdownTimeout(shutdownTimeout),
		mono.WithLogLevel(mono.LogLevelInfo),
		mono.WithLogFormat(mono.LogFormatText),
	)
	if err != nil {
		log.Fatalf("Failed to create application: %v", err)
	}

	// Register modules with the framework
	// Order: independent modules first, then dependent modules
	app.Register(auth.NewModule())    // Independent module (users, credentials, tokens)
	app.Register(tracker.NewModule()) // Independent module (projects, tasks, scheduler)
	app.Register(api.NewModule())     // Depends on auth and tracker modules

	// Start application
	if err := app.Start(context.Background()); err != nil {
		log.Fatalf("Failed to start application: %v", err)
	}

	printStartupInfo()

	// Graceful shutdown
	wait := gfshutdown.GracefulShutdown(
		context.Background(),
		shutdownTimeout,
		map[string]gfshutdown.Operation{
			"mono-app": func(ctx context.Context) error {
				log.Println("Graceful shutdown initiated...")
				return app.Stop(ctx)
			},
		},
	)

	exitCode := <-wait
	log.Printf("Application exited with code: %d", exitCode)
	os.Exit(exitCode)
}

func printStartupInfo() {
	log.Println("")
	log.Println("Application started successfully!")
	log.Println("")
	log.Println("REST API Endpoints (http://localhost:3000):")
	log.Println("")
	log.Println("  Public Endpoints:")
	log.Println("  POST   /api/v1/auth/register          - Register a new user")
	log.Println("  POST   /api/v1/auth/login             - Login and get a token")
	log.Println("  GET    /health                        - Health check")
	log.Println("")
	log.Println("  Protected Endpoints (require Bearer token):")
	log.Println("  GET    /api/v1/projects               - List own projects")
	log.Println("  POST   /api/v1/projects               - Create a project")
	log.Println("  GET    /api/v1/projects/:id           - Get a project with its tasks")
	log.Println("  DELETE /api/v1/projects/:id           - Delete a project and its tasks")
	log.Println("  POST   /api/v1/projects/:id/tasks     - Add a task to a project")
	log.Println("  PUT    /api/v1/tasks/:id              - Update a task")
	log.Println("  DELETE /api/v1/tasks/:id              - Delete a task")
	log.Println("  PUT    /api/v1/tasks/:id/toggle       - Toggle task completion")
	log.Println("  POST   /api/v1/projects/:id/schedule  - Lay out incomplete tasks on dates")
	log.Println("")
	log.Println("Press Ctrl+C to shutdown gracefully")
}
