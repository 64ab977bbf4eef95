package main

import "github.com/cmmoran/propkeygen/cmd"

func main() {
	cmd.Execute()
}
