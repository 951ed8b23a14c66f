package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	srv, err := NewServer()
	if err != nil {
		log.Fatal("server init failed: ", err)
	}

	if err := srv.Start(); err != nil {
		log.Fatal("server start failed: ", err)
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	if err := srv.Shutdown(); err != nil {
		log.Fatal("shutdown failed: ", err)
	}
}
