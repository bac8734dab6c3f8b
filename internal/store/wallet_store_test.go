package store_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"sigil/internal/domain"
	"sigil/internal/store"
)

func TestWalletStore_MissingFile(t *testing.T) {
	ws := store.NewWalletFileStore(filepath.Join(t.TempDir(), "wallet.json"))
	_, err := ws.LoadWallet()
	if !errors.Is(err, domain.ErrWalletLoad) || !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected ErrWalletLoad wrapping ErrNotExist, got %v", err)
	}
}

func TestWalletStore_SaveLoad_PreservesUnknownFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wallet.json")
	doc := `{"version":1,"personas":{"alice":{"cs_id":3,"public_key_path":"keys/alice.pub","private_key_path":"keys/alice.key","encrypted":true,"created_at":5,"future":"x"}},"labels":{"team":"ops"}}`
	if err := os.WriteFile(path, []byte(doc), 0o600); err != nil {
		t.Fatal(err)
	}

	ws := store.NewWalletFileStore(path)
	w, err := ws.LoadWallet()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	rec, ok := w.Personas["alice"]
	if !ok || rec.SuiteID != domain.SuiteFalcon512SHA256 || !rec.Encrypted {
		t.Fatalf("unexpected record: %+v", rec)
	}

	if err := ws.SaveWallet(w); err != nil {
		t.Fatalf("save: %v", err)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(raw), `"labels"`) {
		t.Fatalf("unknown top-level field dropped: %s", raw)
	}
	again, err := ws.LoadWallet()
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if again.Personas["alice"].PublicKeyPath != "keys/alice.pub" {
		t.Fatal("record changed across save")
	}
}

func TestWalletStore_Invalid(t *testing.T) {
	dir := t.TempDir()
	for name, body := range map[string]string{
		"empty":   "",
		"garbage": "not json",
		"null":    "null",
		"future":  `{"version":99,"personas":{}}`,
	} {
		path := filepath.Join(dir, name+".json")
		if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
			t.Fatal(err)
		}
		if _, err := store.NewWalletFileStore(path).LoadWallet(); !errors.Is(err, domain.ErrWalletLoad) {
			t.Fatalf("%s: expected ErrWalletLoad, got %v", name, err)
		}
	}
}

func TestKeyFileStore_WriteReadRemove(t *testing.T) {
	base := t.TempDir()
	ks := store.NewKeyFileStore(base, filepath.Join(base, "keys"))

	privPath, pubPath, err := ks.WriteKeys("alice", []byte("sealed"), []byte("public"))
	if err != nil {
		t.Fatalf("write: %v", err)
	}
	if privPath != filepath.Join("keys", "alice.key") || pubPath != filepath.Join("keys", "alice.pub") {
		t.Fatalf("unexpected paths %q %q", privPath, pubPath)
	}
	info, err := os.Stat(ks.Resolve(privPath))
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm() != 0o600 {
		t.Fatalf("private key mode %v", info.Mode().Perm())
	}

	priv, err := ks.ReadPrivate(privPath)
	if err != nil || string(priv) != "sealed" {
		t.Fatalf("read private: %q %v", priv, err)
	}
	pub, err := ks.ReadPublic(pubPath)
	if err != nil || string(pub) != "public" {
		t.Fatalf("read public: %q %v", pub, err)
	}

	report := ks.RemoveKeys(privPath, pubPath)
	if report.Err() != nil {
		t.Fatalf("remove: %v", report.Err())
	}
	if _, err := ks.ReadPrivate(privPath); !errors.Is(err, domain.ErrIO) {
		t.Fatalf("expected ErrIO after removal, got %v", err)
	}

	// Already gone counts as removed.
	if report := ks.RemoveKeys(privPath, pubPath); report.Err() != nil {
		t.Fatalf("second remove: %v", report.Err())
	}
}

func TestKeyFileStore_RemoveReportsEachFile(t *testing.T) {
	base := t.TempDir()
	ks := store.NewKeyFileStore(base, filepath.Join(base, "keys"))
	privPath, pubPath, err := ks.WriteKeys("bob", []byte("sealed"), []byte("public"))
	if err != nil {
		t.Fatal(err)
	}

	// A non-empty directory in place of the public key cannot be removed.
	pubFile := ks.Resolve(pubPath)
	if err := os.Remove(pubFile); err != nil {
		t.Fatal(err)
	}
	if err := os.MkdirAll(filepath.Join(pubFile, "child"), 0o700); err != nil {
		t.Fatal(err)
	}

	report := ks.RemoveKeys(privPath, pubPath)
	if report.PrivateKeyErr != nil {
		t.Fatalf("private key removal should succeed: %v", report.PrivateKeyErr)
	}
	if !errors.Is(report.PublicKeyErr, domain.ErrIO) {
		t.Fatalf("expected public key failure, got %v", report.PublicKeyErr)
	}
	if _, err := os.Stat(ks.Resolve(privPath)); !os.IsNotExist(err) {
		t.Fatal("private key still present")
	}
}

func TestKeyFileStore_RemoveStaysInKeysDir(t *testing.T) {
	base := t.TempDir()
	ks := store.NewKeyFileStore(base, filepath.Join(base, "keys"))
	if _, _, err := ks.WriteKeys("carol", []byte("sealed"), []byte("public")); err != nil {
		t.Fatal(err)
	}

	victim := filepath.Join(t.TempDir(), "important.txt")
	if err := os.WriteFile(victim, []byte("keep"), 0o600); err != nil {
		t.Fatal(err)
	}
	wallet := filepath.Join(base, "wallet.json")
	if err := os.WriteFile(wallet, []byte("{}"), 0o600); err != nil {
		t.Fatal(err)
	}

	report := ks.RemoveKeys(victim, filepath.Join("keys", "..", "wallet.json"))
	if !errors.Is(report.PrivateKeyErr, domain.ErrIO) || !errors.Is(report.PublicKeyErr, domain.ErrIO) {
		t.Fatalf("expected both removals refused, got %+v", report)
	}
	for _, p := range []string{victim, wallet} {
		if _, err := os.Stat(p); err != nil {
			t.Fatalf("%s was removed: %v", p, err)
		}
	}

	// Paths inside the keys dir, relative or absolute, are still removed.
	report = ks.RemoveKeys(filepath.Join("keys", "carol.key"), filepath.Join(base, "keys", "carol.pub"))
	if report.Err() != nil {
		t.Fatalf("in-dir removal: %v", report.Err())
	}
}
