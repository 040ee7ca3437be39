package main

import (
	"fmt"
	"os"

	"fjacquet/finassist/cmd/bulk"
	"fjacquet/finassist/cmd/categorize"
	"fjacquet/finassist/cmd/chat"
	"fjacquet/finassist/cmd/models"
	"fjacquet/finassist/cmd/root"
)

func init() {
	root.Init()

	root.Cmd.AddCommand(chat.Cmd)
	root.Cmd.AddCommand(categorize.Cmd)
	root.Cmd.AddCommand(bulk.Cmd)
	root.Cmd.AddCommand(models.Cmd)
}

func main() {
	if err := root.Cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
