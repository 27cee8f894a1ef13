package main

import (
	"detprod/internal/appshell"
	"detprod/internal/screenapp"
)

func main() { appshell.Main(screenapp.RunContext) }
