package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/indigo-web/fileserve"
	"github.com/indigo-web/fileserve/router"
)

func main() {
	log.SetFlags(log.LstdFlags)

	port := flag.Int("port", 8000, "port to listen on (all interfaces)")
	root := flag.String("root", ".", "directory to serve files from")
	flag.Parse()

	app := fileserve.New(fmt.Sprintf(":%d", *port))

	log.Printf("serving %s at port %d", *root, *port)

	if err := app.Serve(router.NewStatic(*root)); err != nil {
		log.Fatal(err)
	}
}
