package service

import (
	"crypto/sha512"
	"encoding/hex"
	"strings"
	"testing"
	"time"
)

func TestNewTxnID_Format(t *testing.T) {
	now := time.UnixMilli(1700000000000)

	id := NewTxnID("user_abcdef123456", now)
	if id != "TXN_1700000000000_123456" {
		t.Fatalf("unexpected txn id: %s", id)
	}

	id = NewTxnID("", now)
	if id != "TXN_1700000000000_anon" {
		t.Fatalf("unexpected anonymous txn id: %s", id)
	}

	id = NewTxnID("abc", now)
	if id != "TXN_1700000000000_abc" {
		t.Fatalf("short user ids should be used whole, got %s", id)
	}
}

func TestPayURequestHash_Sequence(t *testing.T) {
	req := PayURequest{
		Key:         "merchantkey",
		TxnID:       "TXN_1_abc",
		Amount:      "839.00",
		ProductInfo: "Palm + Birth Chart Bundle",
		FirstName:   "Customer",
		Email:       "c@example.com",
		UDF1:        "user_1",
		UDF2:        "bundle",
		UDF3:        "palm-birth",
		UDF4:        "",
		UDF5:        "",
	}

	seq := "merchantkey|TXN_1_abc|839.00|Palm + Birth Chart Bundle|Customer|c@example.com|user_1|bundle|palm-birth||||||||salt123"
	sum := sha512.Sum512([]byte(seq))
	want := hex.EncodeToString(sum[:])

	got := PayURequestHash(req, "salt123")
	if got != want {
		t.Fatalf("request hash mismatch:\n got %s\nwant %s", got, want)
	}
}

func TestPayUResponseHash_ReverseSequence(t *testing.T) {
	cb := PayUCallback{
		Key:         "merchantkey",
		TxnID:       "TXN_1_abc",
		Amount:      "839.00",
		ProductInfo: "Palm + Birth Chart Bundle",
		FirstName:   "Customer",
		Email:       "c@example.com",
		Status:      "success",
		UDF1:        "user_1",
		UDF2:        "bundle",
		UDF3:        "palm-birth",
	}

	seq := strings.Join([]string{
		"salt123", "success", "", "", "", "", "",
		"", "", "palm-birth", "bundle", "user_1",
		"c@example.com", "Customer", "Palm + Birth Chart Bundle", "839.00", "TXN_1_abc", "merchantkey",
	}, "|")
	sum := sha512.Sum512([]byte(seq))
	want := hex.EncodeToString(sum[:])

	got := PayUResponseHash(cb, "salt123")
	if got != want {
		t.Fatalf("response hash mismatch:\n got %s\nwant %s", got, want)
	}
}

func TestVerifyPayUCallback(t *testing.T) {
	cb := PayUCallback{
		Key:    "k",
		TxnID:  "TXN_2_x",
		Amount: "499.00",
		Status: "success",
	}
	cb.Hash = PayUResponseHash(cb, "s")

	if !VerifyPayUCallback(cb, "s") {
		t.Fatal("expected callback with correct hash to verify")
	}

	cb.Hash = "deadbeef"
	if VerifyPayUCallback(cb, "s") {
		t.Fatal("expected callback with wrong hash to fail verification")
	}

	// Tampered amount must break the hash.
	cb.Hash = PayUResponseHash(cb, "s")
	cb.Amount = "1.00"
	if VerifyPayUCallback(cb, "s") {
		t.Fatal("expected tampered callback to fail verification")
	}
}
