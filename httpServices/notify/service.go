package notify

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"remote-voting/logger"
)

// Client delivers one-time codes to a voter's registered contact through an
// external SMS/email gateway. Delivery is fire-and-forget for the core: an
// issued code stands whether or not the gateway accepted it, and the voter
// can always request a fresh code.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

func NewClient(baseURL string) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// SendOTP dispatches the code to the destination. Channel is picked from the
// destination shape: anything with '@' goes out as email, the rest as SMS.
// Without a configured gateway the code is logged for local development,
// matching how the system behaves before the gateway contract is live.
func (c *Client) SendOTP(destination, code string) error {
	if c.baseURL == "" {
		logger.Printf("OTP for %s: %s (delivery gateway not configured)", destination, code)
		return nil
	}

	channel := "sms"
	if strings.Contains(destination, "@") {
		channel = "email"
	}

	body, err := json.Marshal(DispatchRequest{
		Destination: destination,
		Channel:     channel,
		Message:     fmt.Sprintf("Your voting one-time password is %s. It expires in 10 minutes.", code),
	})
	if err != nil {
		return err
	}

	httpReq, err := http.NewRequest(http.MethodPost, c.baseURL+"/dispatch/", bytes.NewBuffer(body))
	if err != nil {
		return err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return errors.New("delivery gateway returned non-OK status: " + resp.Status)
	}

	var apiResp DispatchResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return err
	}
	if strings.ToLower(apiResp.Status) != "success" {
		return errors.New("delivery gateway rejected dispatch: " + apiResp.Message)
	}
	return nil
}
