package wallet

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"
	"time"
	"unicode"

	"github.com/rs/zerolog"

	"sigil/internal/ciphersuite"
	"sigil/internal/domain"
	"sigil/internal/store"
	"sigil/internal/util/memzero"
)

// minPassphraseLength is the shortest secret accepted without a warning.
const minPassphraseLength = 12

// Service owns the in-memory view of one wallet document.
//
// Every mutation is written back with a synchronous atomic save before it
// returns. The service is safe for concurrent use within one process.
type Service struct {
	wallet domain.WalletStore
	keys   domain.KeyFileStore
	log    zerolog.Logger

	mu  sync.Mutex
	doc domain.WalletFile
	now func() time.Time
}

// New returns a wallet service over the given stores. Call Load or InitEmpty
// before use.
func New(ws domain.WalletStore, keys domain.KeyFileStore, log zerolog.Logger) *Service {
	return &Service{
		wallet: ws,
		keys:   keys,
		log:    log.With().Str("component", "wallet").Logger(),
		doc:    domain.NewWalletFile(),
		now:    time.Now,
	}
}

// Load replaces the in-memory view with the document on disk.
func (s *Service) Load() error {
	doc, err := s.wallet.LoadWallet()
	if err != nil {
		return err
	}
	if doc.Personas == nil {
		doc.Personas = map[string]domain.PersonaRecord{}
	}
	s.mu.Lock()
	s.doc = doc
	s.mu.Unlock()
	s.log.Debug().Int("personas", len(doc.Personas)).Msg("wallet loaded")
	return nil
}

// LoadOrInit loads the wallet, starting empty only when no document exists
// yet. Any other load failure is returned.
func (s *Service) LoadOrInit() error {
	err := s.Load()
	if err != nil && errors.Is(err, os.ErrNotExist) {
		s.log.Info().Msg("no wallet found, starting empty")
		s.InitEmpty()
		return nil
	}
	return err
}

// InitEmpty discards the in-memory view and starts from an empty wallet.
// Nothing is written until the first mutation.
func (s *Service) InitEmpty() {
	s.mu.Lock()
	s.doc = domain.NewWalletFile()
	s.mu.Unlock()
}

// Create generates a key pair for suite id under a new persona name and
// persists it. With a non-empty secret the private key is sealed; without one
// it is stored in plaintext and the entry is marked unencrypted.
func (s *Service) Create(name string, id domain.SuiteID, secret []byte) (*ciphersuite.Suite, error) {
	if err := domain.ValidatePersonaName(name); err != nil {
		return nil, err
	}
	if !id.Valid() {
		return nil, fmt.Errorf("%w: %d", domain.ErrUnsupportedCipherSuite, uint8(id))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Key file stems are the persona name, so names equal under case
	// folding would share files on case-insensitive filesystems.
	for existing := range s.doc.Personas {
		if strings.EqualFold(existing, name) {
			return nil, fmt.Errorf("%w: %q (existing %q)", domain.ErrDuplicatePersona, name, existing)
		}
	}

	suite, err := ciphersuite.Generate(name, id)
	if err != nil {
		return nil, err
	}
	priv, err := suite.PrivateKeyBytes()
	if err != nil {
		return nil, err
	}

	rec := domain.PersonaRecord{
		SuiteID:     id,
		Fingerprint: suite.Fingerprint(),
		CreatedAt:   s.now().Unix(),
	}

	blob := priv
	ks := store.NewKeyStore(secret)
	if ks.Enabled() {
		if !isSecurePassphrase(string(secret)) {
			s.log.Warn().Str("persona", name).Msg("passphrase is weak (use 12+ characters mixing upper, lower, digits and symbols)")
		}
		sealed, params, err := ks.Seal(priv, associatedData(name, id))
		if err != nil {
			return nil, err
		}
		blob = sealed
		rec.Encrypted = true
		rec.KDF = &params
	} else {
		s.log.Warn().Str("persona", name).Msg("no passphrase supplied, private key stored unencrypted")
	}

	privPath, pubPath, err := s.keys.WriteKeys(name, blob, suite.PublicKeyBytes())
	if err != nil {
		return nil, err
	}
	rec.PrivateKeyPath = privPath
	rec.PublicKeyPath = pubPath

	s.doc.Personas[name] = rec
	if err := s.wallet.SaveWallet(s.doc); err != nil {
		delete(s.doc.Personas, name)
		if rmErr := s.keys.RemoveKeys(privPath, pubPath).Err(); rmErr != nil {
			s.log.Error().Err(rmErr).Str("persona", name).Msg("cleanup after failed save")
		}
		return nil, err
	}

	s.log.Info().
		Str("persona", name).
		Stringer("suite", id).
		Bool("encrypted", rec.Encrypted).
		Msg("persona created")
	return suite, nil
}

// Get rebuilds the suite for name. It returns (nil, false, nil) when the
// persona does not exist. The private key is loaded when it is stored in
// plaintext or when secret opens it; an encrypted persona requested without
// a secret yields a verify-only suite.
func (s *Service) Get(name string, secret []byte) (*ciphersuite.Suite, bool, error) {
	s.mu.Lock()
	rec, ok := s.doc.Personas[name]
	s.mu.Unlock()
	if !ok {
		return nil, false, nil
	}

	pub, err := s.keys.ReadPublic(rec.PublicKeyPath)
	if err != nil {
		return nil, true, err
	}

	var priv []byte
	switch {
	case !rec.Encrypted:
		priv, err = s.keys.ReadPrivate(rec.PrivateKeyPath)
		if err != nil {
			return nil, true, err
		}
	case len(secret) > 0:
		if rec.KDF == nil {
			return nil, true, fmt.Errorf("%w: persona %q has no kdf parameters", domain.ErrWalletLoad, name)
		}
		blob, err := s.keys.ReadPrivate(rec.PrivateKeyPath)
		if err != nil {
			return nil, true, err
		}
		priv, err = store.NewKeyStore(secret).Open(blob, associatedData(name, rec.SuiteID), *rec.KDF)
		if err != nil {
			return nil, true, err
		}
	}

	suite, err := ciphersuite.New(name, rec.SuiteID, pub, priv)
	if err != nil {
		memzero.Zero(priv)
		return nil, true, err
	}
	return suite, true, nil
}

// Verifier rebuilds a verify-only suite for name from its public key alone.
// The private key file is never read. It returns (nil, false, nil) when the
// persona does not exist.
func (s *Service) Verifier(name string) (*ciphersuite.Suite, bool, error) {
	s.mu.Lock()
	rec, ok := s.doc.Personas[name]
	s.mu.Unlock()
	if !ok {
		return nil, false, nil
	}
	pub, err := s.keys.ReadPublic(rec.PublicKeyPath)
	if err != nil {
		return nil, true, err
	}
	suite, err := ciphersuite.New(name, rec.SuiteID, pub, nil)
	if err != nil {
		return nil, true, err
	}
	return suite, true, nil
}

// Remove deletes the persona from the wallet, saves, and then removes its key
// files. The wallet entry is gone once Remove returns without error even if
// some key file could not be deleted; the report says which.
func (s *Service) Remove(name string) (domain.RemovalReport, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.doc.Personas[name]
	if !ok {
		return domain.RemovalReport{}, fmt.Errorf("%w: %q", domain.ErrPersonaNotFound, name)
	}

	delete(s.doc.Personas, name)
	if err := s.wallet.SaveWallet(s.doc); err != nil {
		s.doc.Personas[name] = rec
		return domain.RemovalReport{}, err
	}

	report := s.keys.RemoveKeys(rec.PrivateKeyPath, rec.PublicKeyPath)
	ev := s.log.Info()
	if report.Err() != nil {
		ev = s.log.Warn().Err(report.Err())
	}
	ev.Str("persona", name).Msg("persona removed")
	return report, nil
}

// Lookup returns the persona view for name.
func (s *Service) Lookup(name string) (domain.Persona, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.doc.Personas[name]
	if !ok {
		return domain.Persona{}, false
	}
	return toPersona(name, rec), true
}

// List returns all personas sorted by name.
func (s *Service) List() []domain.Persona {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.Persona, 0, len(s.doc.Personas))
	for name, rec := range s.doc.Personas {
		out = append(out, toPersona(name, rec))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func toPersona(name string, rec domain.PersonaRecord) domain.Persona {
	return domain.Persona{
		Name:        name,
		SuiteID:     rec.SuiteID,
		Encrypted:   rec.Encrypted,
		Fingerprint: rec.Fingerprint,
		CreatedAt:   rec.CreatedAt,
	}
}

// associatedData binds a sealed key to its persona and suite.
func associatedData(name string, id domain.SuiteID) []byte {
	return fmt.Appendf(nil, "sigil/persona/%s/%d", name, uint8(id))
}

func isSecurePassphrase(passphrase string) bool {
	var hasUpper, hasLower, hasDigit, hasSymbol bool
	if len(passphrase) < minPassphraseLength {
		return false
	}
	for _, r := range passphrase {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		case unicode.IsPunct(r), unicode.IsSymbol(r):
			hasSymbol = true
		}
	}
	return hasUpper && hasLower && hasDigit && hasSymbol
}
