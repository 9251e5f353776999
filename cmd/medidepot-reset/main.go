package main

import (
	"context"
	"fmt"
	"os"

	"github.com/medidepot/medidepot/app"
)

func main() {
	if err := app.Reset(context.Background(), os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
