package main

import "go-bumpversion/cmd"

func main() {
	cmd.Execute()
}
