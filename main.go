package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"uas_backend/config"
	mongodb "uas_backend/database/mongo"
)

func main() {
	config.LoadEnv()

	uri := config.GetEnv("MONGODB_URI", "mongodb://localhost:27017")
	dbName := config.GetEnv("DATABASE_NAME", "university")

	db, err := mongodb.Connect(context.Background(), uri, dbName)
	if err != nil {
		log.Fatal("MongoDB connection failed: ", err)
	}

	app := config.NewFiberApp(db)

	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
		<-sig
		log.Println("Shutting down...")
		_ = app.Shutdown()
	}()

	host := config.GetEnv("HOST", "")
	port := config.GetEnv("PORT", "8000")
	if err := app.Listen(host + ":" + port); err != nil {
		log.Fatal("Server stopped: ", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := db.Close(ctx); err != nil {
		log.Println("MongoDB disconnect failed:", err)
	}
}
