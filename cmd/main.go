package main

import (
	"bufio"
	"encoding/hex"
	"errors"
	"fmt"
	"os"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/sirupsen/logrus"
	sphinx "github.com/sphinxmix/sphinx"
	"github.com/urfave/cli/v2"
)

const (
	BOB     = "71df4af67d0236f148e8c4d764ead3662693b4561b7bca19c6c7b3d804098fee"
	CHARLIE = "3aae4a7a4717e9721b49e8247be4a1280c2d9afad9f011dedc9e3650051c9ae9"
	DAVE    = "34df19f85e920cb3a0dd529fd61dace4ac9a567c00c521b98e75762eed06911b"
)

var (
	log = logrus.New()

	bob     *secp256k1.PrivateKey
	charlie *secp256k1.PrivateKey
	dave    *secp256k1.PrivateKey
)

func setupKeys(ctx *cli.Context) error {
	keybytes, _ := hex.DecodeString(BOB)
	bob = secp256k1.PrivKeyFromBytes(keybytes)

	keybytes, _ = hex.DecodeString(CHARLIE)
	charlie = secp256k1.PrivKeyFromBytes(keybytes)

	keybytes, _ = hex.DecodeString(DAVE)
	dave = secp256k1.PrivKeyFromBytes(keybytes)

	return nil
}

func main() {
	app := cli.App{
		Name:  "sphinx",
		Usage: "build and peel BOLT-04 style Sphinx onion packets",
		Commands: []*cli.Command{
			onionCmd,
			parseCmd,
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.WithError(err).Fatal("sphinx command failed")
	}
}

var onionCmd = &cli.Command{
	Name:   "onion",
	Usage:  "build an onion addressed to bob, charlie, then dave",
	Before: setupKeys,
	Action: buildOnion,
}

func buildOnion(ctx *cli.Context) error {
	sessionKey, err := secp256k1.GeneratePrivateKey()
	if err != nil {
		return err
	}

	fmt.Println("start building the onion. What payload do you want to put for Bob:")

	reader := bufio.NewReader(os.Stdin)
	bobPayload, err := reader.ReadString('\n')
	if err != nil {
		return fmt.Errorf("could not read input: %w", err)
	}

	fmt.Println("What payload do you want to put for Charlie (2nd hop):")
	charliePayload, err := reader.ReadString('\n')
	if err != nil {
		return fmt.Errorf("could not read input: %w", err)
	}

	fmt.Println("What payload do you want to put for Dave (last hop):")
	davePayload, err := reader.ReadString('\n')
	if err != nil {
		return fmt.Errorf("could not read input: %w", err)
	}

	params := sphinx.BOLT04Params()
	scalar, err := params.Group.ScalarFromBytes(sessionKey.Serialize())
	if err != nil {
		return err
	}

	route := []sphinx.HopInput{
		{Point: asPoint(bob.PubKey()), Payload: padPayload([]byte(bobPayload), params.L)},
		{Point: asPoint(charlie.PubKey()), Payload: padPayload([]byte(charliePayload), params.L)},
		{Point: asPoint(dave.PubKey()), Payload: padPayload([]byte(davePayload), params.L)},
	}

	onion, err := sphinx.Construct(params, scalar, route, nil, nil, nil)
	if err != nil {
		return err
	}

	log.WithField("hops", len(route)).Info("onion constructed")
	fmt.Printf("onion to pass to first hop (bob): %x\n", onion.Serialize())

	return nil
}

var parseCmd = &cli.Command{
	Name:      "parse",
	Usage:     "parse onion",
	ArgsUsage: "[ONION]",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:  "hop",
			Usage: "specify hop (bob, charlie or dave) from which to parse onion",
		},
	},
	Before: setupKeys,
	Action: parseOnion,
}

func parseOnion(ctx *cli.Context) error {
	args := ctx.Args()
	if args.Len() < 1 {
		return errors.New("pass an onion to parse")
	}

	hop := ctx.String("hop")

	var hopKey *secp256k1.PrivateKey
	switch hop {
	case "bob":
		hopKey = bob
	case "charlie":
		hopKey = charlie
	case "dave":
		hopKey = dave
	default:
		return errors.New("invalid hop")
	}

	onionBytes, err := hex.DecodeString(args.First())
	if err != nil {
		return fmt.Errorf("error decoding onion: %w", err)
	}

	params := sphinx.BOLT04Params()
	onion, err := sphinx.Deserialize(params, onionBytes)
	if err != nil {
		return err
	}

	scalar, err := params.Group.ScalarFromBytes(hopKey.Serialize())
	if err != nil {
		return err
	}

	processed, err := sphinx.Process(params, scalar, onion, nil)
	if errors.Is(err, sphinx.ErrExitHop) {
		fmt.Printf("payload for %v: %s\n", hop, trimPayload(processed.Payload))
		fmt.Println("this is the onion's final destination")
		return nil
	} else if err != nil {
		return err
	}

	log.WithFields(logrus.Fields{"hop": hop}).Info("forwarding onion to next hop")
	fmt.Printf("payload for %v: %s\n", hop, trimPayload(processed.Payload))
	fmt.Printf("onion for the next hop: %x\n", processed.Next.Serialize())

	return nil
}

// padPayload right-pads (or truncates) to the fixed per-hop width the
// profile requires; the on-wire routing_info width never varies with
// payload content.
func padPayload(payload []byte, l int) []byte {
	out := make([]byte, l)
	copy(out, payload)
	return out
}

func trimPayload(payload []byte) []byte {
	end := len(payload)
	for end > 0 && payload[end-1] == 0 {
		end--
	}
	return payload[:end]
}

// asPoint re-parses pk through Secp256k1Group so the point has the
// concrete type that group's DH accepts.
func asPoint(pk *secp256k1.PublicKey) sphinx.Point {
	pt, err := sphinx.Secp256k1Group{}.ParsePoint(pk.SerializeCompressed())
	if err != nil {
		panic(err) // a valid public key always re-parses
	}
	return pt
}
