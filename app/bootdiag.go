//go:build !(tinygo && bootdebug)

package app

func startDiag(*Controller) {}
