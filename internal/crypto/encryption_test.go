package crypto

import "testing"

func TestEncryptDecryptRoundTrip(t *testing.T) {
	key, err := GenerateKey()
	if err != nil {
		t.Fatalf("GenerateKey() failed: %v", err)
	}

	plaintext := "screenshot of the abusive conversation"
	ciphertext, err := Encrypt(plaintext, key)
	if err != nil {
		t.Fatalf("Encrypt() failed: %v", err)
	}
	if ciphertext == plaintext {
		t.Error("ciphertext must differ from plaintext")
	}

	got, err := Decrypt(ciphertext, key)
	if err != nil {
		t.Fatalf("Decrypt() failed: %v", err)
	}
	if got != plaintext {
		t.Errorf("round trip = %q, want %q", got, plaintext)
	}
}

func TestDecryptWrongKey(t *testing.T) {
	key, _ := GenerateKey()
	other, _ := GenerateKey()

	ciphertext, err := Encrypt("secret", key)
	if err != nil {
		t.Fatalf("Encrypt() failed: %v", err)
	}
	if _, err := Decrypt(ciphertext, other); err == nil {
		t.Error("decrypting with the wrong key must fail")
	}
}

func TestInvalidKeySize(t *testing.T) {
	if _, err := Encrypt("x", []byte("short")); err != ErrInvalidKeySize {
		t.Errorf("Encrypt with short key: err = %v, want ErrInvalidKeySize", err)
	}
	if _, err := Decrypt("x", []byte("short")); err != ErrInvalidKeySize {
		t.Errorf("Decrypt with short key: err = %v, want ErrInvalidKeySize", err)
	}
}

func TestDecryptGarbage(t *testing.T) {
	key, _ := GenerateKey()
	if _, err := Decrypt("not base64 at all!!!", key); err == nil {
		t.Error("expected an error for invalid base64 input")
	}
	if _, err := Decrypt("YWJj", key); err == nil { // 3 bytes, shorter than a nonce
		t.Error("expected an error for truncated ciphertext")
	}
}
