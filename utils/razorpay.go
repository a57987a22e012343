package utils

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"lms/config"
	"net/http"

	"github.com/go-resty/resty/v2"
)

// GatewayOrder represents a hosted order created on the payment gateway
type GatewayOrder struct {
	ID       string `json:"id"`
	Amount   uint   `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
	Status   string `json:"status"`
}

// CreateGatewayOrder creates a hosted order for the given amount in
// minor units (paise). The client later pays against the returned id.
func CreateGatewayOrder(amount uint, receipt string) (*GatewayOrder, error) {
	client := resty.New()

	resp, err := client.R().
		SetBasicAuth(config.AppConfig.RazorpayKeyID, config.AppConfig.RazorpayKeySecret).
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]interface{}{
			"amount":   amount,
			"currency": "INR",
			"receipt":  receipt,
		}).
		SetResult(&GatewayOrder{}).
		Post(config.AppConfig.RazorpayBaseURL + "/orders")
	if err != nil {
		return nil, fmt.Errorf("failed to create gateway order: %v", err)
	}

	if resp.StatusCode() != http.StatusOK && resp.StatusCode() != http.StatusCreated {
		return nil, fmt.Errorf("gateway error: %s", resp.String())
	}

	order, ok := resp.Result().(*GatewayOrder)
	if !ok || order.ID == "" {
		return nil, fmt.Errorf("gateway returned an unexpected response")
	}

	return order, nil
}

// VerifyPaymentSignature recomputes the HMAC-SHA256 over "orderId|paymentId"
// with the gateway secret and compares it to the submitted signature in
// constant time.
func VerifyPaymentSignature(orderID, paymentID, signature string) bool {
	mac := hmac.New(sha256.New, []byte(config.AppConfig.RazorpayKeySecret))
	mac.Write([]byte(orderID + "|" + paymentID))
	expected := hex.EncodeToString(mac.Sum(nil))

	return hmac.Equal([]byte(expected), []byte(signature))
}
