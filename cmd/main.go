package main

import "github.com/Varshithx/task-manager/internal/app"

func main() {
	app.InitDefaultLogger()
	app.MustReadConfig()
	app.MustInitApplicationLogger()

	app.MustConnectPostgres()
	defer app.DisconnectPostgres()
	app.MustBootstrapSchema()

	app.MustListenAndServeHTTP()
}
