package initializers

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		// No .env file is fine in production; env vars come from the host.
		if !os.IsNotExist(err) {
			log.Println("could not load .env:", err)
		}
	}
}
