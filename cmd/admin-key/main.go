package main

import (
	"flag"
	"fmt"
	"log"

	"aqua-maker.backend/pkg/crypto"
)

// Generates an admin API key and its bcrypt hash. The hash goes into
// ADMIN_API_KEY_HASH; the key goes to the operator, once.
func main() {
	length := flag.Int("length", 32, "key length in bytes before hex encoding")
	flag.Parse()

	key, err := crypto.GenerateAdminKey(*length)
	if err != nil {
		log.Fatalf("failed to generate key: %v", err)
	}
	hash, err := crypto.HashAdminKey(key)
	if err != nil {
		log.Fatalf("failed to hash key: %v", err)
	}

	fmt.Printf("admin key:            %s\n", key)
	fmt.Printf("ADMIN_API_KEY_HASH:   %s\n", hash)
}
