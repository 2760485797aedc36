// Command ledger-sim drives the sign-flow orchestrator from the desktop:
// it chunks a manifest fixture the way the host transport would, feeds it
// through signflow.Orchestrator, and prints the resulting transcript and
// status word.
package main

import (
	"crypto/ed25519"
	"encoding/hex"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli"

	"github.com/rdx-hw/ledger-core/errs"
	"github.com/rdx-hw/ledger-core/keypath"
	"github.com/rdx-hw/ledger-core/signflow"
	"github.com/rdx-hw/ledger-core/simdisplay"
	"github.com/rdx-hw/ledger-core/simnvm"
)

// devSigner is a development-only Signer: it derives a single fixed
// ed25519 key pair from a static seed, matching crypto.DevStdCryptoProvider's
// "unblock early tooling, not FIPS" posture. secp256k1 isn't implemented —
// the real curve arithmetic is out of scope per spec.md §1's Non-goals, and
// this simulator only needs to exercise the orchestrator's control flow.
type devSigner struct {
	seed [ed25519.SeedSize]byte
}

func newDevSigner() *devSigner {
	var s devSigner
	copy(s.seed[:], []byte("ledger-sim-development-only-seed"))
	return &s
}

func (s *devSigner) Sign(curve signflow.Curve, path keypath.Path, hash [32]byte) (signature, publicKey []byte, err error) {
	if curve != signflow.CurveEd25519 {
		return nil, nil, fmt.Errorf("ledger-sim: secp256k1 signing is not implemented in the simulator")
	}
	priv := ed25519.NewKeyFromSeed(s.seed[:])
	sig := ed25519.Sign(priv, hash[:])
	pub := priv.Public().(ed25519.PublicKey)
	return sig, []byte(pub), nil
}

func main() {
	app := cli.NewApp()
	app.Name = "ledger-sim"
	app.Usage = "desktop simulator for the Radix hardware-wallet sign flow"
	app.Flags = []cli.Flag{
		cli.StringFlag{Name: "fixture", Usage: "path to a raw manifest-payload fixture (binary or hex)"},
		cli.StringFlag{Name: "hex", Usage: "manifest payload as an inline hex string, alternative to --fixture"},
		cli.StringFlag{Name: "path", Value: "m/44'/1022'/1'/525'/0'/1238'", Usage: "derivation path, account/tx-sign by default"},
		cli.IntFlag{Name: "ins", Value: int(signflow.InsSignTxEd25519Summary), Usage: "sign instruction byte"},
		cli.IntFlag{Name: "chunk-size", Value: 200, Usage: "max bytes per simulated APDU chunk"},
		cli.BoolFlag{Name: "show-digest", Usage: "set P1's show-digest bit on the first chunk"},
		cli.StringFlag{Name: "datadir", Value: "./ledger-sim-data", Usage: "simulator settings directory"},
		cli.BoolFlag{Name: "auto-approve", Usage: "skip the interactive approval prompt and approve automatically"},
	}
	app.Action = run

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	payload, err := loadPayload(c)
	if err != nil {
		return err
	}

	path, err := keypath.ParseString(c.String("path"))
	if err != nil {
		return fmt.Errorf("parse path: %w", err)
	}
	pathBytes := encodePathWire(path)

	store, err := simnvm.Open(c.String("datadir"))
	if err != nil {
		return fmt.Errorf("open settings: %w", err)
	}
	defer store.Close()
	settings, err := store.Get()
	if err != nil {
		return fmt.Errorf("read settings: %w", err)
	}
	fmt.Printf("settings: verbose=%v blind_signing=%v\n", settings.VerboseMode, settings.BlindSigning)

	term := simdisplay.NewTerminal()
	var approver signflow.Approver = term
	if c.Bool("auto-approve") {
		approver = autoApprover{}
	}
	orch := signflow.NewOrchestrator(newDevSigner(), approver, term)

	data := append(pathBytes, payload...)
	resp := driveChunks(orch, byte(c.Int("ins")), byte(boolToBit(c.Bool("show-digest"))), data, c.Int("chunk-size"))

	fmt.Println("status:", resp.SW)
	if resp.SW == errs.OK {
		fmt.Println("digest:   ", hex.EncodeToString(resp.Digest))
		fmt.Println("signature:", hex.EncodeToString(resp.Signature))
		fmt.Println("pubkey:   ", hex.EncodeToString(resp.PublicKey))
	}
	return nil
}

func boolToBit(b bool) int {
	if b {
		return 1
	}
	return 0
}

// driveChunks feeds data through the orchestrator as Regular, then
// Continuation, then LastData frames, mirroring how the host transport
// splits one long APDU payload: the first frame carries the whole
// derivation path (its count byte plus 4 bytes per element) followed by up
// to chunkSize payload bytes, and the rest is split into chunk-size pieces.
func driveChunks(orch *signflow.Orchestrator, ins, p1 byte, data []byte, chunkSize int) signflow.Response {
	if chunkSize <= 0 {
		chunkSize = len(data)
	}
	var chunks [][]byte
	if len(data) > 0 {
		n := 1 + 4*int(data[0]) + chunkSize
		if n > len(data) {
			n = len(data)
		}
		chunks = append(chunks, data[:n])
		data = data[n:]
	}
	for len(data) > 0 {
		n := chunkSize
		if n > len(data) {
			n = len(data)
		}
		chunks = append(chunks, data[:n])
		data = data[n:]
	}
	if len(chunks) == 0 {
		chunks = [][]byte{{}}
	}

	resp := orch.Handle(signflow.Frame{Class: signflow.ClassRegular, Ins: ins, P1: p1, Data: chunks[0]})
	if resp.SW != errs.OK {
		return resp
	}
	for i := 1; i < len(chunks); i++ {
		class := signflow.ClassContinuation
		if i == len(chunks)-1 {
			class = signflow.ClassLastData
		}
		resp = orch.Handle(signflow.Frame{Class: class, Ins: ins, Data: chunks[i]})
		if resp.SW != errs.OK {
			return resp
		}
	}
	if len(chunks) == 1 {
		resp = orch.Handle(signflow.Frame{Class: signflow.ClassLastData})
	}
	return resp
}

func loadPayload(c *cli.Context) ([]byte, error) {
	if h := c.String("hex"); h != "" {
		return hex.DecodeString(strings.TrimSpace(h))
	}
	path := c.String("fixture")
	if path == "" {
		return nil, fmt.Errorf("one of --fixture or --hex is required")
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixture: %w", err)
	}
	trimmed := strings.TrimSpace(string(raw))
	if decoded, err := hex.DecodeString(trimmed); err == nil && len(trimmed) > 0 {
		return decoded, nil
	}
	return raw, nil
}

func encodePathWire(p keypath.Path) []byte {
	out := []byte{byte(p.Len)}
	for i := 0; i < p.Len; i++ {
		v := p.Elements[i]
		out = append(out, byte(v>>24), byte(v>>16), byte(v>>8), byte(v))
	}
	return out
}

type autoApprover struct{}

func (autoApprover) Approve() bool { return true }
