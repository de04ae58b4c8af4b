package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/joho/godotenv"
	"github.com/stpnv0/EventMarket/internal/app"
	"github.com/stpnv0/EventMarket/internal/auth"
	"github.com/stpnv0/EventMarket/internal/config"
)

func main() {
	issueFor := flag.String("issue-session", "", "print a session token for the given user id and exit")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file loaded: %v", err)
	}

	cfg := config.MustLoad()

	if *issueFor != "" {
		sessions, err := auth.NewSessions(cfg.Auth.Secret, cfg.Auth.SessionTTL)
		if err != nil {
			log.Fatalf("init sessions: %v", err)
		}
		token, err := sessions.Issue(*issueFor)
		if err != nil {
			log.Fatalf("issue session: %v", err)
		}
		fmt.Println(token)
		return
	}

	application, err := app.New(cfg)
	if err != nil {
		log.Fatalf("app init: %v", err)
	}

	if err = application.Run(); err != nil {
		log.Fatalf("app run: %v", err)
	}
}
