package main

import (
	_ "time/tzdata"
)

func main() {
	Execute()
}
