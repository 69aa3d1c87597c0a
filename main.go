package main

import "blogsmith/cmd"

func main() {
	cmd.Execute()
}
