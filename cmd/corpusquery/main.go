package main

import "github.com/dbsmedya/corpusquery/cmd/corpusquery/cmd"

func main() {
	cmd.Execute()
}
