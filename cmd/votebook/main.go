package main

import (
	"boscoin.io/votebook/cmd/votebook/cmd"
)

func main() {
	cmd.Execute()
}
