package editor

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Client wraps HTTP calls to the lab record API.
type Client struct {
	BaseURL    string
	Token      string
	HTTPClient *http.Client
}

// NewClient creates a Client from a base URL (e.g. http://localhost:8080)
// and bearer token.
func NewClient(baseURL, token string) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/") + "/api",
		Token:   token,
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Response is the standard { success, data, error } envelope.
type Response[T any] struct {
	Success bool   `json:"success"`
	Data    T      `json:"data"`
	Error   string `json:"error,omitempty"`
}

// APIError is returned when the server sends a non-2xx status.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api: %d: %s", e.Status, e.Message)
}

// --- wire types matching the backend JSON ---

type User struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

type LoginResult struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}

type LabRecord struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	TemplateType string    `json:"templateType"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

type Section struct {
	ID          string `json:"id"`
	LabRecordID string `json:"labRecordId"`
	Title       string `json:"title"`
	Content     string `json:"content"`
	Order       int    `json:"order"`
	IsHidden    bool   `json:"isHidden"`
	SectionType string `json:"sectionType"`
}

type OrderUpdate struct {
	ID    string `json:"id"`
	Order int    `json:"order"`
}

// --- low-level helpers ---

func (c *Client) newRequest(method, path string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequest(method, c.BaseURL+path, body)
	if err != nil {
		return nil, err
	}
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}
	req.Header.Set("Accept", "application/json")
	return req, nil
}

func (c *Client) doJSON(req *http.Request, out interface{}) error {
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode >= 400 {
		var errResp struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(data, &errResp) == nil && errResp.Error != "" {
			return &APIError{Status: resp.StatusCode, Message: errResp.Error}
		}
		return &APIError{Status: resp.StatusCode, Message: string(data)}
	}

	if out != nil && len(data) > 0 {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}
	}
	return nil
}

func (c *Client) send(method, path string, body interface{}, out interface{}) error {
	var r io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		r = bytes.NewReader(data)
	}
	req, err := c.newRequest(method, path, r)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.doJSON(req, out)
}

// --- typed operations ---

func (c *Client) Login(email, password string) (*LoginResult, error) {
	var resp Response[LoginResult]
	err := c.send(http.MethodPost, "/auth/login", map[string]string{
		"email":    email,
		"password": password,
	}, &resp)
	if err != nil {
		return nil, err
	}
	c.Token = resp.Data.Token
	return &resp.Data, nil
}

func (c *Client) ListRecords() ([]LabRecord, error) {
	var resp Response[[]LabRecord]
	if err := c.send(http.MethodGet, "/lab-records", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

func (c *Client) GetRecord(id string) (*LabRecord, error) {
	var resp Response[LabRecord]
	if err := c.send(http.MethodGet, "/lab-records/"+id, nil, &resp); err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

func (c *Client) CreateRecord(title, templateType string) (*LabRecord, error) {
	var resp Response[LabRecord]
	err := c.send(http.MethodPost, "/lab-records", map[string]string{
		"title":        title,
		"templateType": templateType,
	}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

func (c *Client) UpdateRecordTitle(id, title string) (*LabRecord, error) {
	var resp Response[LabRecord]
	err := c.send(http.MethodPatch, "/lab-records/"+id, map[string]string{"title": title}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

func (c *Client) DuplicateRecord(id string) (*LabRecord, error) {
	var resp Response[LabRecord]
	if err := c.send(http.MethodPost, "/lab-records/"+id+"/duplicate", nil, &resp); err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

func (c *Client) ListSections(recordID string) ([]Section, error) {
	var resp Response[[]Section]
	if err := c.send(http.MethodGet, "/lab-records/"+recordID+"/sections", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

func (c *Client) CreateSection(recordID, title, sectionType string, order int) (*Section, error) {
	var resp Response[Section]
	err := c.send(http.MethodPost, "/lab-records/"+recordID+"/sections", map[string]interface{}{
		"title":       title,
		"sectionType": sectionType,
		"order":       order,
	}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

func (c *Client) UpdateSection(id string, updates map[string]interface{}) (*Section, error) {
	var resp Response[Section]
	if err := c.send(http.MethodPatch, "/sections/"+id, updates, &resp); err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

func (c *Client) DeleteSection(id string) error {
	return c.send(http.MethodDelete, "/sections/"+id, nil, nil)
}

func (c *Client) ReorderSections(recordID string, updates []OrderUpdate) error {
	return c.send(http.MethodPost, "/lab-records/"+recordID+"/sections/reorder", map[string]interface{}{
		"sectionOrders": updates,
	}, nil)
}

// ExportRecord fetches the rendered file for a record.
func (c *Client) ExportRecord(id, format string, landscape bool) ([]byte, error) {
	path := "/lab-records/" + id + "/export?format=" + format
	if landscape {
		path += "&orientation=landscape"
	}
	req, err := c.newRequest(http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		body, _ := io.ReadAll(resp.Body)
		return nil, &APIError{Status: resp.StatusCode, Message: string(body)}
	}
	return io.ReadAll(resp.Body)
}
