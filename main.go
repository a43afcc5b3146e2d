package main

import "github.com/stanfield-dev/store.locator/cmd"

func main() {
	cmd.Execute()
}
