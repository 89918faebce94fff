package config

import (
	"errors"
	"fmt"
	"math/big"
	"os"
	"time"

	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/takakv/bpattest/boneh"
	"github.com/takakv/bpattest/group"
	"github.com/takakv/bpattest/util"
)

const (
	SchemeBoneh   = "boneh"
	SchemeElGamal = "elgamal"

	HashSHA256   = "sha256"
	HashSHA512   = "sha512"
	HashSHA256x4 = "sha256_4"
)

// Config holds the parameters of the attest command.
type Config struct {
	// Scheme selects the homomorphic backend: boneh or elgamal.
	Scheme string `yaml:"scheme"`
	// Group is the elgamal group; ignored by boneh.
	Group string `yaml:"group"`
	// KeyBits is the size of each boneh key prime.
	KeyBits int `yaml:"key_bits"`
	// Hash maps attribute values to integers and fixes the bit space.
	Hash          string        `yaml:"hash"`
	HonestyChecks int           `yaml:"honesty_checks"`
	Workers       int           `yaml:"workers"`
	CacheTTL      time.Duration `yaml:"cache_ttl"`
	LogLevel      string        `yaml:"log_level"`
}

func Default() *Config {
	return &Config{
		Scheme:        SchemeBoneh,
		Group:         "secp256k1",
		KeyBits:       128,
		Hash:          HashSHA256x4,
		HonestyChecks: 4,
		Workers:       4,
		CacheTTL:      10 * time.Minute,
		LogLevel:      "info",
	}
}

// Load reads a YAML file on top of the defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, errors.New("config path is empty")
	}

	log.Debugf("ConfigPath=%s", path)
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(content, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	switch c.Scheme {
	case SchemeBoneh:
		if c.KeyBits < boneh.MinKeyBits {
			return boneh.ErrKeySize
		}
	case SchemeElGamal:
		if _, err := group.ByName(c.Group); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown scheme %q", c.Scheme)
	}

	if _, _, err := c.HashFunc(); err != nil {
		return err
	}
	if c.HonestyChecks < 0 {
		return errors.New("honesty_checks must not be negative")
	}
	if c.Workers < 1 {
		return errors.New("workers must be positive")
	}
	if c.CacheTTL <= 0 {
		return errors.New("cache_ttl must be positive")
	}
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// HashFunc returns the configured hash and the bit space of its output.
func (c *Config) HashFunc() (func([]byte) *big.Int, int, error) {
	switch c.Hash {
	case HashSHA256:
		return util.SHA256AsInt, 256, nil
	case HashSHA512:
		return util.SHA512AsInt, 512, nil
	case HashSHA256x4:
		return util.SHA256x4AsInt, 32, nil
	}
	return nil, 0, fmt.Errorf("unknown hash %q", c.Hash)
}
