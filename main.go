package main

import "github.com/lx-annotate/annotate-api/cmd"

// @title           Annotate Gateway API
// @version         1.0.0
// @description     State and persistence gateway for medical video annotation dashboards
// @contact.name    API Support
// @contact.url     https://github.com/lx-annotate/annotate-api
// @license.name    MIT
// @license.url     https://opensource.org/licenses/MIT
// @host            localhost:8080
// @BasePath        /
// @schemes         http https
func main() {
	cmd.Execute()
}
