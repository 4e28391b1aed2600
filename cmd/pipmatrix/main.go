package main

import (
	"github.com/k8ika0s/pipmatrix/internal/cli"
)

func main() {
	cli.Execute()
}
