// Package main runs the folio blog and portfolio server.
//
//	@title						Folio Admin API
//	@version					1.0
//	@description				Admin API and probes of the folio blog and portfolio
//	@host						localhost:8080
//	@BasePath					/
//	@schemes					http https
//	@securityDefinitions.basic	BasicAuth
package main

import (
	"go.uber.org/fx"

	_ "github.com/sp3dr4/folio/docs"
	folioFX "github.com/sp3dr4/folio/internal/fx"
)

func main() {
	fx.New(folioFX.HTTPServerModules).Run()
}
