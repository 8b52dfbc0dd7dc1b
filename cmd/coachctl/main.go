package main

import "github.com/metabolic-health/coach/cmd/coachctl/command"

func main() {
	command.Execute()
}
