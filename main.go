package main

import "github.com/metabolic-health/coach/api"

func main() {
	api.MainLoop()
}
