package main

import (
	"github.com/invoiceflow/site/cmd"
)

func main() {
	cmd.Execute()
}
