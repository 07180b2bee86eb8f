package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"foody.backend/pkg/crypto"
)

// apikey-gen mints a merchant capability key outside the registration
// flow, for support scenarios where a merchant lost theirs. The raw key
// goes to the merchant; the hash goes into foody_api_keys.key_hash.

var (
	exit   = os.Exit
	stdout = os.Stdout
)

func main() {
	count := flag.Int("n", 1, "number of keys to generate")
	flag.Parse()

	if err := run(*count); err != nil {
		log.Print(err)
		exit(1)
	}
}

func run(count int) error {
	if count <= 0 {
		return fmt.Errorf("invalid n: %d (must be positive)", count)
	}

	for i := 0; i < count; i++ {
		rawKey, err := crypto.GenerateApiKey()
		if err != nil {
			return fmt.Errorf("failed to generate api key: %w", err)
		}
		fmt.Fprintf(stdout, "API_KEY=%s\n", rawKey)
		fmt.Fprintf(stdout, "KEY_PREFIX=%s\n", rawKey[:len(crypto.ApiKeyPrefix)+4])
		fmt.Fprintf(stdout, "KEY_HASH=%s\n", crypto.HashApiKey(rawKey))
	}
	return nil
}
