package main

import (
	"fmt"
	"os"

	"finsight/cmd/classify"
	"finsight/cmd/preprocess"
	recommendcmd "finsight/cmd/recommend"
	"finsight/cmd/root"
	"finsight/cmd/serve"
)

func init() {
	root.Init()

	root.Cmd.AddCommand(preprocess.Cmd)
	root.Cmd.AddCommand(classify.Cmd)
	root.Cmd.AddCommand(serve.Cmd)
	root.Cmd.AddCommand(recommendcmd.Cmd)
}

func main() {
	if err := root.Cmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
