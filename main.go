package main

import "tripplanner/cmd"

func main() {
	cmd.Execute()
}
