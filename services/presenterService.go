package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"
)

// VerificationCard is everything the gateway needs to render a pending
// submission on the verification channel. How it is displayed (embeds,
// buttons, colors) is entirely the gateway's business.
type VerificationCard struct {
	Kind         string `json:"kind"` // "lore" or "moment"
	SubmissionID int    `json:"submissionId"`
	AuthorID     int64  `json:"authorId"`
	Title        string `json:"title,omitempty"`
	Content      string `json:"content"`
}

// Presenter posts verification prompts to the gateway and later marks them
// decided. The returned message ref is opaque to this service.
type Presenter interface {
	PresentForVerification(channelID int64, card VerificationCard) (string, error)
	UpdatePresentation(messageRef string, status string) error
}

var presenter Presenter

// InitPresenterService wires the webhook presenter from the environment.
func InitPresenterService() {
	webhookURL := os.Getenv("PRESENTER_WEBHOOK_URL")

	if webhookURL == "" {
		log.Println("WARNING: PRESENTER_WEBHOOK_URL not set. Verification prompts will not be delivered.")
		return
	}

	presenter = &webhookPresenter{
		baseURL: webhookURL,
		client:  &http.Client{Timeout: 10 * time.Second},
	}

	log.Println("Presenter service initialized")
}

// GetPresenter returns the active presenter, or nil when none is configured.
func GetPresenter() Presenter {
	return presenter
}

// SetPresenter swaps the active presenter. Used by tests and by alternate
// gateway wiring.
func SetPresenter(p Presenter) {
	presenter = p
}

// webhookPresenter delivers cards to the gateway over HTTP.
type webhookPresenter struct {
	baseURL string
	client  *http.Client
}

func (p *webhookPresenter) PresentForVerification(channelID int64, card VerificationCard) (string, error) {
	payload := struct {
		ChannelID int64            `json:"channelId"`
		Card      VerificationCard `json:"card"`
	}{ChannelID: channelID, Card: card}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	resp, err := p.client.Post(p.baseURL+"/messages", "application/json", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return "", fmt.Errorf("presenter returned status %d", resp.StatusCode)
	}

	var result struct {
		MessageRef string `json:"messageRef"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", err
	}
	if result.MessageRef == "" {
		return "", fmt.Errorf("presenter returned no message ref")
	}
	return result.MessageRef, nil
}

func (p *webhookPresenter) UpdatePresentation(messageRef string, status string) error {
	body, err := json.Marshal(struct {
		Status string `json:"status"`
	}{Status: status})
	if err != nil {
		return err
	}

	req, err := http.NewRequest(http.MethodPatch, p.baseURL+"/messages/"+messageRef, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		return fmt.Errorf("presenter returned status %d", resp.StatusCode)
	}
	return nil
}
