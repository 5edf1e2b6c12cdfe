package main

import (
	"github.com/weathervane/weathervane/cmd/weathervane/cmd"
)

func main() {
	cmd.Execute()
}
