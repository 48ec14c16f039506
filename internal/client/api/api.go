// Package api implements the typed client for the departamento-del-agua REST
// API. All calls go through the http.Client built by the transport package,
// which injects the bearer token and reacts to authorization failures.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/santi-esquerre/departamento-del-agua-api/internal/models"
)

// Error is a non-2xx API response, carrying the HTTP status and the server's
// detail message when one was decodable.
type Error struct {
	Status int
	Detail string
}

func (e *Error) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("api: %d: %s", e.Status, e.Detail)
	}
	return fmt.Sprintf("api: unexpected status %d", e.Status)
}

// Client issues requests against a base URL.
type Client struct {
	base string
	http *http.Client
}

// New returns a Client for the given base URL using hc for transport.
func New(baseURL string, hc *http.Client) *Client {
	return &Client{base: strings.TrimRight(baseURL, "/"), http: hc}
}

// Login exchanges credentials for a bearer token via POST /auth/login.
// Bad credentials come back as an *Error with status 401.
func (c *Client) Login(ctx context.Context, username, password string) (string, error) {
	body, _ := json.Marshal(models.LoginRequest{Username: username, Password: password})
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+"/auth/login", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	var tr models.TokenResponse
	if err := c.do(req, &tr); err != nil {
		return "", err
	}
	return tr.AccessToken, nil
}

// FetchPersonales lists all staff identity records via GET /personal.
func (c *Client) FetchPersonales(ctx context.Context) ([]models.Personal, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base+"/personal", nil)
	if err != nil {
		return nil, err
	}
	var list []models.Personal
	if err := c.do(req, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// CreatePersonal creates a new staff identity via POST /personal and returns
// the record with its server-assigned id.
func (c *Client) CreatePersonal(ctx context.Context, p models.Personal) (*models.Personal, error) {
	body, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+"/personal", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	var created models.Personal
	if err := c.do(req, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UploadFile uploads a photo or CV via POST /archivos/upload as a multipart
// body with a single field named "file". The returned record's Ruta is the
// storable reference.
func (c *Client) UploadFile(ctx context.Context, filename string, r io.Reader) (*models.Archivo, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(part, r); err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+"/archivos/upload", &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	var a models.Archivo
	if err := c.do(req, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

// do performs the request, converts non-2xx responses into *Error and
// decodes a 2xx body into out when out is non-nil.
func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &Error{Status: resp.StatusCode}
		var detail struct {
			Detail string `json:"detail"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&detail); err == nil {
			apiErr.Detail = detail.Detail
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
