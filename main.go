package main

import "github.com/cmmoran/sdlgen/cmd"

func main() {
	cmd.Execute()
}
