package main

import "gitdesk/internal/cmd"

func main() {
	cmd.Execute()
}
