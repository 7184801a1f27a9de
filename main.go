package main

import "github.com/terrancemacgregor/wtmd-playlist-tracker/cmd"

func main() {
	cmd.Execute()
}
