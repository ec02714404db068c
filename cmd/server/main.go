package main

import "taskmanager/internal/app"

// @title           Task Manager API
// @version         1.0.0
// @description     REST API for task management with a layered architecture.
// @BasePath        /api/v1
func main() {
	app.Run()
}
