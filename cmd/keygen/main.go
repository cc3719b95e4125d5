// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Command keygen provisions and inspects the key material of a
// go-config-keeper deployment without starting the configuration
// service itself.
//
// Usage:
//
//	keygen init   [flags]   provision the master key (idempotent)
//	keygen status [flags]   report key store health and key presence
//
// Flags override the KEEPER_* environment variables and the optional
// JSON options file; see internal/config for the full list.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/MKhiriev/go-config-keeper/internal/config"
	"github.com/MKhiriev/go-config-keeper/internal/crypto"
	"github.com/MKhiriev/go-config-keeper/internal/logger"
	"github.com/MKhiriev/go-config-keeper/internal/service"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewLogger("keeper-keygen")

	flags := flag.NewFlagSet("keygen", flag.ExitOnError)
	flags.Usage = func() { usage(flags) }

	var overrides config.Options
	flags.StringVar(&overrides.Root, "root", "", "settings directory (env KEEPER_ROOT)")
	flags.StringVar(&overrides.KeyStoreKind, "keystore", "", `key store kind: "file" or "sqlite" (env KEEPER_KEYSTORE_KIND)`)
	flags.StringVar(&overrides.KeyStorePath, "keystore-path", "", "file key store directory (env KEEPER_KEYSTORE_PATH)")
	flags.StringVar(&overrides.KeyStoreDSN, "keystore-dsn", "", "sqlite key store DSN (env KEEPER_KEYSTORE_DSN)")
	flags.StringVar(&overrides.Algorithm, "algorithm", "", `envelope cipher: "aes-gcm" or "chacha20poly1305" (env KEEPER_ALGORITHM)`)
	flags.StringVar(&overrides.Passphrase, "passphrase", "", "wrap the master key under this passphrase (env KEEPER_PASSPHRASE)")

	if len(os.Args) < 2 {
		usage(flags)
		os.Exit(2)
	}
	command := os.Args[1]
	_ = flags.Parse(os.Args[2:])

	opts, err := config.GetOptions(&overrides)
	if err != nil {
		log.Fatal().Err(err).Msg("error getting options")
	}

	ctx := context.Background()
	switch command {
	case "init":
		err = runInit(ctx, *opts, log)
	case "status":
		err = runStatus(ctx, *opts, log)
	default:
		usage(flags)
		os.Exit(2)
	}
	if err != nil {
		log.Fatal().Err(err).Str("command", command).Msg("keygen failed")
	}
}

// runInit makes sure the master key exists in the configured store,
// wrapped under the passphrase when one is set. Re-running it against a
// provisioned store is a no-op, except that a raw-stored key gets
// rewrapped once a passphrase appears.
func runInit(ctx context.Context, opts config.Options, log *logger.Logger) error {
	store, err := service.OpenKeyStore(ctx, opts, log)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	keys, err := crypto.NewKeyService(store, opts.Algorithm, opts.Passphrase, log)
	if err != nil {
		return err
	}
	defer func() { _ = keys.Close() }()

	created, err := keys.ProvisionMaster(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("Key store:  %s (%s)\n", opts.KeyStoreKind, storeLocation(opts))
	if created {
		fmt.Println("Master key: created")
	} else {
		fmt.Println("Master key: already provisioned")
	}
	if opts.Passphrase != "" {
		fmt.Println("Protection: passphrase-wrapped")
	} else {
		fmt.Println("Protection: none")
	}
	return nil
}

// runStatus reports whether the configured store is reachable and a
// master key is provisioned. It never creates or alters key material.
func runStatus(ctx context.Context, opts config.Options, log *logger.Logger) error {
	fmt.Printf("Key store:  %s (%s)\n", opts.KeyStoreKind, storeLocation(opts))

	store, err := service.OpenKeyStore(ctx, opts, log)
	if err != nil {
		fmt.Println("Reachable:  no")
		return err
	}
	defer func() { _ = store.Close() }()

	present, err := store.Exists(ctx, crypto.MasterKeyID)
	if err != nil {
		fmt.Println("Reachable:  no")
		return err
	}
	fmt.Println("Reachable:  yes")
	if present {
		fmt.Println("Master key: provisioned")
	} else {
		fmt.Println("Master key: absent (run keygen init)")
	}
	return nil
}

// storeLocation renders where the selected store keeps its blobs.
func storeLocation(opts config.Options) string {
	if opts.KeyStoreKind == config.KeyStoreSQLite {
		return opts.KeyStoreDSN
	}
	if opts.KeyStorePath != "" {
		return opts.KeyStorePath
	}
	return filepath.Join(opts.Root, "keys")
}

func usage(flags *flag.FlagSet) {
	fmt.Fprintln(os.Stderr, "Usage: keygen <init|status> [flags]")
	fmt.Fprintln(os.Stderr)
	fmt.Fprintln(os.Stderr, "  init    provision the master key (idempotent)")
	fmt.Fprintln(os.Stderr, "  status  report key store health and master key presence")
	fmt.Fprintln(os.Stderr)
	flags.PrintDefaults()
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}
	if buildDate == "" {
		buildDate = "N/A"
	}
	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
