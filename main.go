package main

import "github.com/frahmantamala/workforce-timekeeping/cmd"

func main() {
	cmd.Execute()
}
