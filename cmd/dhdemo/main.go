package main

import (
	"fmt"
	"math/big"
	"math/rand"

	env "github.com/nicolas3355/discrete-log-toy/config"
	"github.com/nicolas3355/discrete-log-toy/dhe"
	"github.com/nicolas3355/discrete-log-toy/filer"
	"github.com/nicolas3355/discrete-log-toy/generator"
	dlrand "github.com/nicolas3355/discrete-log-toy/rand"
	"github.com/sirupsen/logrus"
)

type demoConfig struct {
	SafePrimeQ int64  `mapstructure:"safe_prime_q"`
	Seed       int64  `mapstructure:"seed"`
	Break      bool   `mapstructure:"break"`
	Transcript string `mapstructure:"transcript"`
	Message    string `mapstructure:"message"`
	LogLevel   string `mapstructure:"log_level"`
}

func main() {
	var cfg demoConfig
	env.Read(&cfg)

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		logrus.Fatalf("invalid log level: %s", err)
	}
	logrus.SetLevel(level)

	if err := run(cfg); err != nil {
		logrus.Fatalf("dhdemo: %+v", err)
	}
}

func run(cfg demoConfig) error {
	params, err := dhe.NewParams(big.NewInt(cfg.SafePrimeQ))
	if err != nil {
		return err
	}
	elems, err := generator.Enumerate(params.G)
	if err != nil {
		return err
	}
	fmt.Printf("p = %s, q = %s, g = %s\n", params.P, params.Q, params.G)
	fmt.Println(elems)

	r, err := newRand(cfg.Seed)
	if err != nil {
		return err
	}
	alice := dhe.NewParty("alice", params, r)
	bob := dhe.NewParty("bob", params, r)

	transcript, err := dhe.Exchange(alice, bob)
	if err != nil {
		return err
	}
	publics := map[string]string{
		transcript.InitiatorName: transcript.InitiatorPublic.String(),
		transcript.ResponderName: transcript.ResponderPublic.String(),
	}
	for _, p := range []*dhe.Party{alice, bob} {
		secret, err := p.Secret()
		if err != nil {
			return err
		}
		shared, err := p.SharedSecret()
		if err != nil {
			return err
		}
		fmt.Printf("%s: secret = %s, public = %s, shared = %s\n", p.Name(), secret, publics[p.Name()], shared)
	}

	aliceShared, err := alice.SharedSecret()
	if err != nil {
		return err
	}
	aliceCrypter, err := dhe.SessionCrypter(aliceShared)
	if err != nil {
		return err
	}
	cipherText, err := aliceCrypter.EnCrypt([]byte(cfg.Message))
	if err != nil {
		return err
	}
	fmt.Printf("alice -> bob: %x\n", cipherText)

	if cfg.Transcript != "" {
		if err := transcript.Save(filer.NewJsonFiler("  "), cfg.Transcript); err != nil {
			return err
		}
	}

	if cfg.Break {
		cracked, err := dhe.Break(transcript)
		if err != nil {
			return err
		}
		fmt.Printf("cracked shared secret = %s\n", cracked)

		eveCrypter, err := dhe.SessionCrypter(cracked)
		if err != nil {
			return err
		}
		plain, err := eveCrypter.DeCrypt(cipherText)
		if err != nil {
			return err
		}
		fmt.Printf("eve reads: %s\n", plain)
	}
	return nil
}

func newRand(seed int64) (*rand.Rand, error) {
	if seed != 0 {
		return dlrand.New(seed), nil
	}
	return dlrand.NewSeeded()
}
