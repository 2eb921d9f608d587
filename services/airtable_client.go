// sponsor-dashboard-system/services/airtable_client.go
package services

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"time"
)

// UnsubProvider returns the current list of addresses that opted out of
// notification emails.
type UnsubProvider interface {
	UnsubscribedEmails() ([]string, error)
}

// AirtableClient reads the unsubscribe table from Airtable's REST API.
type AirtableClient struct {
	BaseURL string // full table URL, e.g. https://api.airtable.com/v0/<base>/<table>
	Token   string
	Client  *http.Client
}

func NewAirtableClient(cfg Config) *AirtableClient {
	return &AirtableClient{
		BaseURL: cfg.AirtableUnsubURL,
		Token:   cfg.AirtableToken,
		Client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

type airtableRecord struct {
	Fields struct {
		Email string `json:"Email"`
	} `json:"fields"`
}

type airtableListResponse struct {
	Records []airtableRecord `json:"records"`
	Offset  string           `json:"offset"`
}

// UnsubscribedEmails pages through the unsubscribe table and collects every
// email field.
func (c *AirtableClient) UnsubscribedEmails() ([]string, error) {
	var emails []string
	offset := ""

	for {
		reqURL := c.BaseURL
		if offset != "" {
			reqURL = fmt.Sprintf("%s?offset=%s", c.BaseURL, url.QueryEscape(offset))
		}

		req, err := http.NewRequest("GET", reqURL, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Authorization", "Bearer "+c.Token)

		resp, err := c.Client.Do(req)
		if err != nil {
			return nil, fmt.Errorf("airtable request failed: %w", err)
		}

		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			log.Printf("Airtable unsubscribe list returned %d: %s", resp.StatusCode, string(body))
			return nil, fmt.Errorf("airtable returned status %d", resp.StatusCode)
		}

		var out airtableListResponse
		if err := json.Unmarshal(body, &out); err != nil {
			return nil, err
		}

		for _, rec := range out.Records {
			if rec.Fields.Email != "" {
				emails = append(emails, rec.Fields.Email)
			}
		}

		if out.Offset == "" {
			return emails, nil
		}
		offset = out.Offset
	}
}
