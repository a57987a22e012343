package utils

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"lms/config"
	"testing"

	"github.com/stretchr/testify/assert"
)

func signPayment(orderID, paymentID, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

func TestVerifyPaymentSignature(t *testing.T) {
	config.AppConfig = &config.Config{RazorpayKeySecret: "gw-secret"}

	orderID := "order_Hq9Zb1example"
	paymentID := "pay_Hq9Zc7example"
	signature := signPayment(orderID, paymentID, "gw-secret")

	assert.True(t, VerifyPaymentSignature(orderID, paymentID, signature))

	t.Run("mutated order id", func(t *testing.T) {
		assert.False(t, VerifyPaymentSignature("order_Hq9Zb1examplf", paymentID, signature))
	})

	t.Run("mutated payment id", func(t *testing.T) {
		assert.False(t, VerifyPaymentSignature(orderID, "pay_Hq9Zc7examplf", signature))
	})

	t.Run("mutated signature", func(t *testing.T) {
		bad := []byte(signature)
		if bad[0] == 'a' {
			bad[0] = 'b'
		} else {
			bad[0] = 'a'
		}
		assert.False(t, VerifyPaymentSignature(orderID, paymentID, string(bad)))
	})

	t.Run("wrong secret", func(t *testing.T) {
		assert.False(t, VerifyPaymentSignature(orderID, paymentID, signPayment(orderID, paymentID, "other-secret")))
	})

	t.Run("empty signature", func(t *testing.T) {
		assert.False(t, VerifyPaymentSignature(orderID, paymentID, ""))
	})
}
