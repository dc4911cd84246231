package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/foracure/backend/pkg"

	log "github.com/sirupsen/logrus"
)

// passhash prints the values for ADMIN_PASSWORD_HASH and SESSION_SECRET
func main() {
	genSecret := flag.Bool("secret", false, "also generate a random SESSION_SECRET")
	flag.Parse()

	fmt.Print("admin password: ")
	password, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		log.Fatalf("read password: %s", err)
	}
	password = strings.TrimRight(password, "\r\n")
	if password == "" {
		log.Fatalln("password must not be empty")
	}

	hash, err := pkg.HashPassword(password)
	if err != nil {
		log.Fatalf("hash password: %s", err)
	}
	fmt.Printf("ADMIN_PASSWORD_HASH=%s\n", hash)

	if *genSecret {
		secret, err := pkg.GenerateRandomString(48)
		if err != nil {
			log.Fatalf("generate session secret: %s", err)
		}
		fmt.Printf("SESSION_SECRET=%s\n", secret)
	}
}
