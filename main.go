package main

import "github.com/cmtalleyrand/counterpoint/cmd"

func main() {
	cmd.Execute()
}
