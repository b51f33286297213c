package main

import "osm-linker/cmd"

func main() {
	cmd.Execute()
}
