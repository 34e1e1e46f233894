package service

import (
	"crypto/sha512"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"strings"
	"time"
)

// PayU request fields that participate in the hash, in wire order.
type PayURequest struct {
	Key         string
	TxnID       string
	Amount      string // rupees with two decimals, e.g. "839.00"
	ProductInfo string
	FirstName   string
	Email       string
	UDF1        string // userId
	UDF2        string // purchase type
	UDF3        string // bundle/package id
	UDF4        string // feature
	UDF5        string // coins
}

// PayUCallback carries the fields PayU echoes back to the verify endpoint.
type PayUCallback struct {
	TxnID       string `json:"txnid"`
	MihPayID    string `json:"mihpayid"`
	Status      string `json:"status"`
	Hash        string `json:"hash"`
	Amount      string `json:"amount"`
	ProductInfo string `json:"productinfo"`
	FirstName   string `json:"firstname"`
	Email       string `json:"email"`
	UDF1        string `json:"udf1"`
	UDF2        string `json:"udf2"`
	UDF3        string `json:"udf3"`
	UDF4        string `json:"udf4"`
	UDF5        string `json:"udf5"`
	Key         string `json:"key"`
}

// NewTxnID builds a unique transaction id from the current time and the tail
// of the user id, matching the TXN_<millis>_<suffix> scheme payments are keyed
// by downstream.
func NewTxnID(userID string, now time.Time) string {
	suffix := userID
	if suffix == "" {
		suffix = "anon"
	}
	if len(suffix) > 6 {
		suffix = suffix[len(suffix)-6:]
	}
	return fmt.Sprintf("TXN_%d_%s", now.UnixMilli(), suffix)
}

// PayURequestHash computes the SHA-512 request hash over the sequence
// key|txnid|amount|productinfo|firstname|email|udf1..udf5||||||salt.
// The six empty slots before the salt are part of PayU's scheme; the field
// order and delimiter placement must be reproduced exactly.
func PayURequestHash(p PayURequest, salt string) string {
	seq := strings.Join([]string{
		p.Key, p.TxnID, p.Amount, p.ProductInfo, p.FirstName, p.Email,
		p.UDF1, p.UDF2, p.UDF3, p.UDF4, p.UDF5,
		"", "", "", "", "", salt,
	}, "|")
	sum := sha512.Sum512([]byte(seq))
	return hex.EncodeToString(sum[:])
}

// PayUResponseHash computes the reverse-sequence hash PayU uses for callbacks:
// salt|status||||||udf5|udf4|udf3|udf2|udf1|email|firstname|productinfo|amount|txnid|key.
func PayUResponseHash(cb PayUCallback, salt string) string {
	seq := strings.Join([]string{
		salt, cb.Status, "", "", "", "", "",
		cb.UDF5, cb.UDF4, cb.UDF3, cb.UDF2, cb.UDF1,
		cb.Email, cb.FirstName, cb.ProductInfo, cb.Amount, cb.TxnID, cb.Key,
	}, "|")
	sum := sha512.Sum512([]byte(seq))
	return hex.EncodeToString(sum[:])
}

// VerifyPayUCallback reports whether the callback's hash matches the expected
// reverse-sequence digest.
func VerifyPayUCallback(cb PayUCallback, salt string) bool {
	expected := PayUResponseHash(cb, salt)
	return subtle.ConstantTimeCompare([]byte(expected), []byte(cb.Hash)) == 1
}
