package main

import "github.com/openswoop/socharvest/cmd"

func main() {
	cmd.Execute()
}
