package main

import (
	"fmt"
	"os"

	"github.com/vgwingman/wingman/wingmanservice"
)

func main() {
	if err := wingmanservice.Run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
