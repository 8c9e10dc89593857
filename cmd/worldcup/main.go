// Command worldcup replays tournament scripts against a roster.
//
// Usage:
//
//	worldcup run games.in
//	worldcup run < games.in
//	worldcup dot games.in | dot -Tsvg > teams.svg
//
// A script holds one command per line, e.g.
//
//	add_team 1
//	add_player 7 1 2,1,3,4,5 0 10 0 true
//	play_match 1 2
//
// Every command prints a line "op: STATUS" or "op: SUCCESS, value".
package main

import (
	"os"

	"github.com/joho/godotenv"
)

func main() {
	// only try dotenv if it exists
	if _, err := os.Stat(".env"); err == nil {
		_ = godotenv.Load()
	}
	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
