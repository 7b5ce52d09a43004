package utils

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHashString_MatchesHMAC(t *testing.T) {
	mac := hmac.New(sha256.New, []byte("otp-key"))
	mac.Write([]byte("123456"))
	want := hex.EncodeToString(mac.Sum(nil))

	assert.Equal(t, want, HashString("123456", "otp-key"))
}

func TestHashString_DifferentKeys(t *testing.T) {
	assert.NotEqual(t, HashString("123456", "key-one"), HashString("123456", "key-two"))
}

func TestEqualHash(t *testing.T) {
	h := HashString("654321", "k")
	assert.True(t, EqualHash(h, HashString("654321", "k")))
	assert.False(t, EqualHash(h, HashString("654322", "k")))
}
