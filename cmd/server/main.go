package main

import "devflow/internal/app"

// @title           DevFlow API
// @version         1.0
// @description     Task tracking and team analytics backend for development teams.

// @host      localhost:5000
// @BasePath  /api
func main() {
	app.Run()
}
