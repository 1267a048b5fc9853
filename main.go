package main

import "github.com/fakeyudi/timetrack/cmd"

func main() {
	cmd.Execute()
}
