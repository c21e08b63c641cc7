package main

import "github.com/specforge/specforge/cmd"

func main() {
	cmd.Execute()
}
