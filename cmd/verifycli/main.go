// Command verifycli exposes the standalone audit primitive as a
// command-line tool: a player (or anyone else) who holds a revealed
// serverSeed, the clientSeed and gameId a game was played under, and the
// commitment the server published up front can check the server's
// honesty without trusting the server at all. It runs identically to the
// server-side replay used by /game/{id}/finish.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/paddla/fair-core/internal/logging"
	"github.com/paddla/fair-core/internal/model"
	"github.com/paddla/fair-core/internal/verify"
)

// request is the on-disk shape consumed by this tool: everything a
// player accumulates over the course of a game, plus what the server
// reveals on finish.
type request struct {
	ServerSeed          string              `json:"serverSeed"`
	ClientSeed          string              `json:"clientSeed"`
	GameID              string              `json:"gameId"`
	ExpectedCommitment  string              `json:"commitment"`
	ExpectedGameSeedHex string              `json:"gameSeedHex"`
	NumBalls            int                 `json:"numBalls"`
	InputLog            []model.InputRecord `json:"inputLog"`
	ClaimedTotalWin     int                 `json:"claimedTotalWin"`
}

func main() {
	path := flag.String("f", "", "path to the verification request JSON (defaults to stdin)")
	flag.Parse()

	log := logging.New()

	req, err := readRequest(*path)
	if err != nil {
		log.Error("request_read_failed", "error", err.Error())
		os.Exit(2)
	}

	result := verify.Verify(
		req.ServerSeed, req.ClientSeed, req.GameID,
		req.ExpectedCommitment, req.ExpectedGameSeedHex,
		req.NumBalls, req.InputLog, req.ClaimedTotalWin,
	)

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(result)

	if !result.Valid {
		os.Exit(1)
	}
}

func readRequest(path string) (request, error) {
	var r io.Reader = os.Stdin
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return request{}, fmt.Errorf("open %s: %w", path, err)
		}
		defer f.Close()
		r = f
	}

	var req request
	if err := json.NewDecoder(r).Decode(&req); err != nil {
		return request{}, fmt.Errorf("decode verification request: %w", err)
	}
	return req, nil
}
