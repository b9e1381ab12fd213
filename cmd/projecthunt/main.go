package main

import "github.com/projecthunt/backend/cmd/server"

func main() {
	s := server.NewServer()
	defer s.Hub.Stop()
	s.Run()
}
