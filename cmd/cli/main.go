package main

import (
	"context"
	"log"
	"os"

	"github.com/Amelia-Slapek/clea-client/internal/buildinfo"
	"github.com/Amelia-Slapek/clea-client/internal/client/cli"
	"github.com/Amelia-Slapek/clea-client/internal/client/config"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()
	app, err := cli.NewApp(ctx, cfg)

	if err != nil {
		log.Fatalf("%v", err)
		return
	}

	app.Run(ctx)

}
