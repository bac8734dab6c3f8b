package domain

import (
	"fmt"
	"strings"
)

// HashID identifies a digest algorithm. It is written into every signed-file
// header, so values must never be renumbered.
type HashID uint8

const (
	HashSHA256     HashID = 1
	HashSHA384     HashID = 2
	HashSHA512     HashID = 3
	HashSHA3_256   HashID = 4
	HashBLAKE2b256 HashID = 5
)

// SupportedHashes lists every HashID in ascending order.
func SupportedHashes() []HashID {
	return []HashID{HashSHA256, HashSHA384, HashSHA512, HashSHA3_256, HashBLAKE2b256}
}

// Valid reports whether h is a known digest algorithm.
func (h HashID) Valid() bool {
	switch h {
	case HashSHA256, HashSHA384, HashSHA512, HashSHA3_256, HashBLAKE2b256:
		return true
	default:
		return false
	}
}

func (h HashID) String() string {
	switch h {
	case HashSHA256:
		return "sha256"
	case HashSHA384:
		return "sha384"
	case HashSHA512:
		return "sha512"
	case HashSHA3_256:
		return "sha3-256"
	case HashBLAKE2b256:
		return "blake2b-256"
	default:
		return fmt.Sprintf("hash(%d)", uint8(h))
	}
}

// ParseHashID maps a name such as "sha256" or "SHA-512" to its HashID.
func ParseHashID(name string) (HashID, error) {
	n := strings.ToLower(strings.ReplaceAll(name, "_", "-"))
	switch n {
	case "sha256", "sha-256":
		return HashSHA256, nil
	case "sha384", "sha-384":
		return HashSHA384, nil
	case "sha512", "sha-512":
		return HashSHA512, nil
	case "sha3-256", "sha3":
		return HashSHA3_256, nil
	case "blake2b-256", "blake2b":
		return HashBLAKE2b256, nil
	}
	return 0, fmt.Errorf("unknown hash function %q", name)
}

// AlgorithmID identifies a signature scheme independently of the hash it is
// paired with.
type AlgorithmID uint8

const (
	AlgorithmDilithium2 AlgorithmID = 1
	AlgorithmFalcon512  AlgorithmID = 2
	AlgorithmRSA2048    AlgorithmID = 3
)

func (a AlgorithmID) String() string {
	switch a {
	case AlgorithmDilithium2:
		return "Dilithium2"
	case AlgorithmFalcon512:
		return "Falcon512"
	case AlgorithmRSA2048:
		return "RSA"
	default:
		return fmt.Sprintf("algorithm(%d)", uint8(a))
	}
}

// PostQuantum reports whether the scheme is believed to resist quantum attacks.
func (a AlgorithmID) PostQuantum() bool {
	return a == AlgorithmDilithium2 || a == AlgorithmFalcon512
}

// SuiteID is the persisted cipher-suite identifier. It is the single source
// of truth for which (algorithm, hash) pairing a persona or signed file uses.
type SuiteID uint8

const (
	SuiteDilithium2SHA256 SuiteID = 1
	SuiteDilithium2SHA512 SuiteID = 2
	SuiteFalcon512SHA256  SuiteID = 3
	SuiteFalcon512SHA512  SuiteID = 4
	SuiteRSASHA256        SuiteID = 5
)

// SupportedSuites lists every SuiteID in ascending order.
func SupportedSuites() []SuiteID {
	return []SuiteID{
		SuiteDilithium2SHA256,
		SuiteDilithium2SHA512,
		SuiteFalcon512SHA256,
		SuiteFalcon512SHA512,
		SuiteRSASHA256,
	}
}

// SuiteDescriptor is the (algorithm, hash) pairing behind a SuiteID.
type SuiteDescriptor struct {
	ID        SuiteID
	Algorithm AlgorithmID
	Hash      HashID
}

// Descriptor resolves id to its pairing. This is the only table of suites;
// adding a suite means adding a case here and to SupportedSuites.
func (id SuiteID) Descriptor() (SuiteDescriptor, error) {
	switch id {
	case SuiteDilithium2SHA256:
		return SuiteDescriptor{id, AlgorithmDilithium2, HashSHA256}, nil
	case SuiteDilithium2SHA512:
		return SuiteDescriptor{id, AlgorithmDilithium2, HashSHA512}, nil
	case SuiteFalcon512SHA256:
		return SuiteDescriptor{id, AlgorithmFalcon512, HashSHA256}, nil
	case SuiteFalcon512SHA512:
		return SuiteDescriptor{id, AlgorithmFalcon512, HashSHA512}, nil
	case SuiteRSASHA256:
		return SuiteDescriptor{id, AlgorithmRSA2048, HashSHA256}, nil
	default:
		return SuiteDescriptor{}, fmt.Errorf("%w: %d", ErrUnsupportedCipherSuite, uint8(id))
	}
}

// Valid reports whether id is one of the supported suites.
func (id SuiteID) Valid() bool {
	_, err := id.Descriptor()
	return err == nil
}

func (id SuiteID) String() string {
	d, err := id.Descriptor()
	if err != nil {
		return fmt.Sprintf("suite(%d)", uint8(id))
	}
	return fmt.Sprintf("%d (%s/%s)", uint8(id), d.Algorithm, d.Hash)
}
