package main

import (
	"skyscraper/internal/cmd"
)

func main() {
	cmd.Run()
}
