//go:build tinygo

package main

import (
	"trail/app"
	"trail/hal"
)

func main() {
	app.Run(hal.New())
}
