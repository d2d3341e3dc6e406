package main

import "github.com/yukihiko-shinoda/staticpress-e2e/cmd"

func main() {
	cmd.Execute()
}
