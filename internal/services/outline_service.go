package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"toursync/pkg/utils"
)

// OutlineDocument is the slice of an Outline document this system reads.
type OutlineDocument struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Text      string `json:"text"`
	UpdatedAt string `json:"updatedAt"`
}

type OutlineClientInterface interface {
	// ListDocuments pages through documents.list for one parent folder.
	ListDocuments(ctx context.Context, parentID string) ([]OutlineDocument, error)
	// GetDocument fetches full content via documents.info.
	GetDocument(ctx context.Context, id string) (*OutlineDocument, error)
}

type OutlineClient struct {
	HTTP     *http.Client
	BaseURL  string
	APIKey   string
	PageSize int
}

func NewOutlineClient() *OutlineClient {
	key := os.Getenv("OUTLINE_API_KEY")
	if key == "" {
		panic("OUTLINE_API_KEY is empty")
	}

	base := os.Getenv("OUTLINE_API_URL")
	if base == "" {
		base = "https://app.getoutline.com/api"
	}

	return &OutlineClient{
		HTTP:     &http.Client{Timeout: 15 * time.Second},
		BaseURL:  base,
		APIKey:   key,
		PageSize: 100,
	}
}

// Outline endpoints are uniformly POST-with-JSON, even reads.
func (c *OutlineClient) post(ctx context.Context, endpoint string, payload interface{}, out interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/"+endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("%w: outline %s: %v", utils.ErrUpstreamError, endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		return fmt.Errorf("%w: outline %s: status %s", utils.ErrUpstreamError, endpoint, resp.Status)
	}

	return json.NewDecoder(resp.Body).Decode(out)
}

func (c *OutlineClient) ListDocuments(ctx context.Context, parentID string) ([]OutlineDocument, error) {
	var all []OutlineDocument
	offset := 0

	for {
		payload := map[string]interface{}{
			"parentDocumentId": parentID,
			"limit":            c.PageSize,
			"offset":           offset,
		}

		var result struct {
			Data []OutlineDocument `json:"data"`
		}
		if err := c.post(ctx, "documents.list", payload, &result); err != nil {
			return nil, err
		}

		all = append(all, result.Data...)
		if len(result.Data) < c.PageSize {
			return all, nil
		}
		offset += c.PageSize
	}
}

func (c *OutlineClient) GetDocument(ctx context.Context, id string) (*OutlineDocument, error) {
	var result struct {
		Data OutlineDocument `json:"data"`
	}
	if err := c.post(ctx, "documents.info", map[string]interface{}{"id": id}, &result); err != nil {
		return nil, err
	}
	return &result.Data, nil
}
