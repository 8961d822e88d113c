package main

import "github.com/kiesman99/planetize/cmd"

func main() {
	cmd.Execute()
}
