package main

import "radarr-sync/cmd"

func main() {
	cmd.Execute()
}
