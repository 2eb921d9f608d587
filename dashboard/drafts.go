// Package dashboard is the client side of the sponsor dashboard: it keeps
// the in-memory listing collection a sponsor is looking at and performs the
// confirm-style actions the dashboard UI exposes against the API.
package dashboard

import (
	"fmt"
	"io"
	"log"
	"net/http"
	"time"
)

// ListingSummary is the dashboard's view of one listing row.
type ListingSummary struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Status string `json:"status"`
}

// Client talks to the sponsor dashboard API on behalf of one signed-in
// sponsor and tracks the listing rows currently shown.
type Client struct {
	BaseURL  string
	Token    string
	HTTP     *http.Client
	Listings []ListingSummary
}

func NewClient(baseURL, token string) *Client {
	return &Client{
		BaseURL: baseURL,
		Token:   token,
		HTTP: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// ConfirmDeleteDraft is the confirm action of the delete-draft dialog. It
// deletes the draft on the server and, on success, removes that row from the
// local collection. A failed request is logged and swallowed so the dialog
// can close either way; the collection is left untouched in that case.
func (c *Client) ConfirmDeleteDraft(listingID string) {
	if err := c.deleteDraft(listingID); err != nil {
		log.Printf("[DASHBOARD] delete draft %s failed: %v", listingID, err)
		return
	}

	kept := make([]ListingSummary, 0, len(c.Listings))
	for _, l := range c.Listings {
		if l.ID != listingID {
			kept = append(kept, l)
		}
	}
	c.Listings = kept
}

func (c *Client) deleteDraft(listingID string) error {
	url := fmt.Sprintf("%s/api/listings/delete/%s", c.BaseURL, listingID)

	req, err := http.NewRequest("POST", url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.Token)

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("delete returned status %d: %s", resp.StatusCode, string(body))
	}
	return nil
}
