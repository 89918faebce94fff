package attest

import (
	"crypto/rand"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/takakv/bpattest/attestation"
	"github.com/takakv/bpattest/boneh"
	"github.com/takakv/bpattest/config"
	"github.com/takakv/bpattest/elgamal"
	"github.com/takakv/bpattest/group"
	"github.com/takakv/bpattest/scheme"
	"github.com/takakv/bpattest/telemetry"
	"github.com/takakv/bpattest/verifier"
)

const (
	configFileFlag    = "config"
	valueFlag         = "value"
	claimFlag         = "claim"
	schemeFlag        = "scheme"
	groupFlag         = "group"
	keyBitsFlag       = "key-bits"
	hashFlag          = "hash"
	honestyChecksFlag = "honesty-checks"
	workersFlag       = "workers"
	logLevelFlag      = "log-level"
)

func GetCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "attest",
		Short: "Attest a value and verify a claim against the attestation",
		RunE:  runCommand,
	}
	setFlags(cmd)
	return cmd
}

func setFlags(cmd *cobra.Command) {
	defaults := config.Default()
	flags := cmd.Flags()
	flags.String(configFileFlag, "", "Used to specify YAML config file path")
	flags.String(valueFlag, "", "Attribute value held by the prover")
	flags.String(claimFlag, "", "Attribute value claimed to the verifier (defaults to --value)")
	flags.String(schemeFlag, defaults.Scheme, "Homomorphic scheme: boneh or elgamal")
	flags.String(groupFlag, defaults.Group, "ElGamal group: secp256k1, P-256, P-384 or ristretto255")
	flags.Int(keyBitsFlag, defaults.KeyBits, "Size of each boneh key prime")
	flags.String(hashFlag, defaults.Hash, "Hash: sha256, sha512 or sha256_4")
	flags.Int(honestyChecksFlag, defaults.HonestyChecks, "Honesty checks planted per session")
	flags.Int(workersFlag, defaults.Workers, "Challenges in flight")
	flags.String(logLevelFlag, defaults.LogLevel, "Log level")
	_ = cmd.MarkFlagRequired(valueFlag)
}

// loadConfig reads the config file, if any, and applies explicitly set flags.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	flags := cmd.Flags()
	cfg := config.Default()
	if path, _ := flags.GetString(configFileFlag); path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if flags.Changed(schemeFlag) {
		cfg.Scheme, _ = flags.GetString(schemeFlag)
	}
	if flags.Changed(groupFlag) {
		cfg.Group, _ = flags.GetString(groupFlag)
	}
	if flags.Changed(keyBitsFlag) {
		cfg.KeyBits, _ = flags.GetInt(keyBitsFlag)
	}
	if flags.Changed(hashFlag) {
		cfg.Hash, _ = flags.GetString(hashFlag)
	}
	if flags.Changed(honestyChecksFlag) {
		cfg.HonestyChecks, _ = flags.GetInt(honestyChecksFlag)
	}
	if flags.Changed(workersFlag) {
		cfg.Workers, _ = flags.GetInt(workersFlag)
	}
	if flags.Changed(logLevelFlag) {
		cfg.LogLevel, _ = flags.GetString(logLevelFlag)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func generateKeys(cfg *config.Config) (scheme.PublicKey, scheme.PrivateKey, error) {
	switch cfg.Scheme {
	case config.SchemeElGamal:
		g, err := group.ByName(cfg.Group)
		if err != nil {
			return nil, nil, err
		}
		sk, err := elgamal.GenerateKeys(rand.Reader, g)
		if err != nil {
			return nil, nil, err
		}
		return sk.Public(), sk, nil
	default:
		sk, err := boneh.GenerateKeys(rand.Reader, cfg.KeyBits)
		if err != nil {
			return nil, nil, err
		}
		return sk.Public(), sk, nil
	}
}

func runCommand(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	level, _ := log.ParseLevel(cfg.LogLevel)
	log.SetLevel(level)

	value, _ := cmd.Flags().GetString(valueFlag)
	claim, _ := cmd.Flags().GetString(claimFlag)
	if claim == "" {
		claim = value
	}

	logger := log.WithFields(log.Fields{
		"scheme": cfg.Scheme,
		"hash":   cfg.Hash,
	})

	pk, sk, err := generateKeys(cfg)
	if err != nil {
		return fmt.Errorf("generate keys: %w", err)
	}
	logger.Debug("keys generated")

	hash, bitSpace, _ := cfg.HashFunc()
	att, err := attestation.Attest(rand.Reader, pk, hash([]byte(value)), bitSpace)
	if err != nil {
		return fmt.Errorf("attest: %w", err)
	}
	logger.WithField("bitPairs", att.Len()).Info("attestation created")

	v := verifier.New(
		verifier.WithHonestyChecks(cfg.HonestyChecks),
		verifier.WithWorkers(cfg.Workers),
		verifier.WithCacheTTL(cfg.CacheTTL),
		verifier.WithLogger(logger),
		verifier.WithMetrics(telemetry.NewMetrics(prometheus.DefaultRegisterer)),
	)
	session, err := v.NewSession(att, hash([]byte(claim)), bitSpace)
	if err != nil {
		return err
	}
	result, err := session.Run(cmd.Context(), verifier.LocalResponder{Key: sk})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "session:   %s\n", result.SessionID)
	fmt.Fprintf(out, "expected:  %s\n", session.Expected())
	fmt.Fprintf(out, "observed:  %s\n", session.Observed())
	fmt.Fprintf(out, "honest:    %t\n", result.Honest)
	fmt.Fprintf(out, "match:     %.6f\n", result.Match)
	fmt.Fprintf(out, "certainty: %.6f\n", result.Certainty)
	return nil
}
