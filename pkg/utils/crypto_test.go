package utils

import "testing"

func TestEncryptDecryptRoundTrip(t *testing.T) {
	key := []byte("0123456789abcdef0123456789abcdef")

	encrypted, err := Encrypt([]byte("platform-access-token"), key)
	if err != nil {
		t.Fatalf("encrypt: %v", err)
	}
	if encrypted == "platform-access-token" {
		t.Fatal("ciphertext equals plaintext")
	}

	decrypted, err := Decrypt(encrypted, key)
	if err != nil {
		t.Fatalf("decrypt: %v", err)
	}
	if decrypted != "platform-access-token" {
		t.Errorf("round trip = %q", decrypted)
	}
}

func TestDecryptWrongKeyFails(t *testing.T) {
	key := []byte("0123456789abcdef0123456789abcdef")
	other := []byte("fedcba9876543210fedcba9876543210")

	encrypted, err := Encrypt([]byte("secret"), key)
	if err != nil {
		t.Fatalf("encrypt: %v", err)
	}
	if _, err := Decrypt(encrypted, other); err == nil {
		t.Fatal("decrypt with the wrong key must fail")
	}
}

func TestDecryptGarbageFails(t *testing.T) {
	key := []byte("0123456789abcdef0123456789abcdef")
	if _, err := Decrypt("not-base64!", key); err == nil {
		t.Fatal("invalid base64 must fail")
	}
	if _, err := Decrypt("YWJj", key); err == nil {
		t.Fatal("ciphertext shorter than the nonce must fail")
	}
}
