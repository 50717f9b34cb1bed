package utils

import (
	"fmt"
	"os"
	"time"

	"github.com/go-resty/resty/v2"
)

// SendOrderSMS notifies a customer that their order was received. Delivery
// is best-effort: a missing provider configuration or an upstream failure
// is reported to the caller, who logs and moves on.
func SendOrderSMS(phone, orderNumber, formattedTotal string) error {
	apiURL := os.Getenv("SMS_API_URL")
	apiKey := os.Getenv("SMS_API_KEY")
	if apiURL == "" || apiKey == "" {
		return fmt.Errorf("sms provider is not configured")
	}

	message := fmt.Sprintf("Your order %s has been received. Total: %s. Thank you for shopping with JR Rodriguez Meat Dealer!", orderNumber, formattedTotal)

	resp, err := resty.New().SetTimeout(10 * time.Second).R().
		SetHeader("Content-Type", "application/json").
		SetHeader("Authorization", "Bearer "+apiKey).
		SetBody(map[string]string{
			"to":      phone,
			"from":    os.Getenv("SMS_SENDER_NAME"),
			"message": message,
		}).
		Post(apiURL)
	if err != nil {
		return fmt.Errorf("send sms: %w", err)
	}
	if resp.StatusCode() >= 300 {
		return fmt.Errorf("sms provider returned status %d: %s", resp.StatusCode(), resp.Body())
	}
	return nil
}
