// Command server runs the campus events API.
//
//go:generate swag init -g cmd/server/main.go -d ../../ -o ../../docs
//
// @title Campus Events API
// @version 1.0
// @description Browse, search and like university events; administrators manage events and send announcements.
// @BasePath /
// @securityDefinitions.apikey CookieAuth
// @in cookie
// @name auth_token
package main

import "campusevents/cmd/server/cmd"

func main() {
	cmd.Execute()
}
