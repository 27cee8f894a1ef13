package main

import (
	"detprod/internal/appshell"
	"detprod/internal/productsapp"
)

func main() { appshell.Main(productsapp.RunContext) }
