package main

import "knowmap/cmd/knowmap-cli/cmd"

func main() {
	cmd.Execute()
}
